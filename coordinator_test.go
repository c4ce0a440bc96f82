package commandkit

import (
	"context"
	"testing"
	"time"

	"github.com/samber/oops"
	"github.com/stretchr/testify/require"
)

func TestCoordinator_Sync_RunsHandler(t *testing.T) {
	m := NewManager()
	var ran bool
	require.NoError(t, m.Register(&CommandDefinition{
		Literal: "ping",
		Handler: func(ctx context.Context, cctx *CommandContext) error { ran = true; return nil },
	}))

	future := m.Execute(context.Background(), nil, "ping")
	require.True(t, future.Done())
	_, err := future.Wait(context.Background())
	require.NoError(t, err)
	require.True(t, ran)
}

func TestCoordinator_Async_CompletesEventually(t *testing.T) {
	m := NewManager()
	m.coordinator = NewAsyncCoordinator(m)
	var ran bool
	require.NoError(t, m.Register(&CommandDefinition{
		Literal: "ping",
		Handler: func(ctx context.Context, cctx *CommandContext) error { ran = true; return nil },
	}))

	future := m.Execute(context.Background(), nil, "ping")
	_, err := future.Wait(context.Background())
	require.NoError(t, err)
	require.True(t, ran)
}

func TestCoordinator_PreprocessorShortCircuits(t *testing.T) {
	m := NewManager()
	var ran bool
	require.NoError(t, m.Register(&CommandDefinition{
		Literal: "ping",
		Handler: func(ctx context.Context, cctx *CommandContext) error { ran = true; return nil },
	}))
	m.RegisterPreprocessor(func(ctx context.Context, sender any, raw string) error {
		return ErrCancelled
	})

	future := m.Execute(context.Background(), nil, "ping")
	_, err := future.Wait(context.Background())
	require.Error(t, err)
	require.False(t, ran)
}

func TestCoordinator_PostprocessorObservesResult(t *testing.T) {
	m := NewManager()
	var seen *CommandContext
	require.NoError(t, m.Register(&CommandDefinition{
		Literal: "ping",
		Handler: func(ctx context.Context, cctx *CommandContext) error { return nil },
	}))
	m.RegisterPostprocessor(func(ctx context.Context, cctx *CommandContext) { seen = cctx })

	future := m.Execute(context.Background(), nil, "ping")
	_, err := future.Wait(context.Background())
	require.NoError(t, err)
	require.NotNil(t, seen)
}

func TestCoordinator_CancelledContext(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Register(&CommandDefinition{
		Literal: "ping",
		Handler: func(ctx context.Context, cctx *CommandContext) error { return nil },
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	future := m.Execute(ctx, nil, "ping")
	_, err := future.Wait(context.Background())
	require.ErrorIs(t, err, ErrCancelled)
}

func TestCoordinator_ForkContinuesAfterHandlerError(t *testing.T) {
	m := NewManager()
	var calls int
	target := NewLiteral("target").Executes(func(ctx context.Context, cctx *CommandContext) error {
		calls++
		return require.AnError
	})
	require.NoError(t, m.Tree().Insert(target))
	require.NoError(t, m.Tree().Insert(NewLiteral("alias").Fork(target, func(cctx *CommandContext) ([]*CommandContext, error) {
		return []*CommandContext{cctx.copy(), cctx.copy()}, nil
	})))

	future := m.Execute(context.Background(), nil, "alias")
	_, err := future.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestCoordinator_PartialParseFailureSurfacesUnderlyingError(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Register(&CommandDefinition{
		Literal:    "test",
		Components: []*CommandComponent{NewComponent[int32]("n", NewBoundedRange[int32](1, 100))},
		Handler:    func(ctx context.Context, cctx *CommandContext) error { return nil },
	}))

	future := m.Execute(context.Background(), nil, "test 101")
	_, err := future.Wait(context.Background())
	require.Error(t, err)
	oErr, ok := oops.AsOops(err)
	require.True(t, ok)
	require.Equal(t, CodeNumberOutOfRange, oErr.Code())
}

func TestFuture_WaitTimesOutOnContextDeadline(t *testing.T) {
	f := newFuture[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Wait(ctx)
	require.ErrorIs(t, err, ErrCancelled)
}
