package commandkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandContext_StoreAndGet(t *testing.T) {
	cctx := NewCommandContext(context.Background(), "sender", NewCommandInput(""), nil, NewInjectionRegistry())
	key := NewCloudKey[int32]("n")
	Store(cctx, key, int32(3))

	v, err := Get(cctx, key)
	require.NoError(t, err)
	require.Equal(t, int32(3), v)
	require.True(t, Contains(cctx, key))
}

func TestCommandContext_GetMissingErrors(t *testing.T) {
	cctx := NewCommandContext(context.Background(), nil, NewCommandInput(""), nil, NewInjectionRegistry())
	key := NewCloudKey[int32]("missing")
	_, err := Get(cctx, key)
	require.Error(t, err)
	require.False(t, Contains(cctx, key))
}

func TestCommandContext_Inject(t *testing.T) {
	reg := NewInjectionRegistry()
	reg.Register("clock", func() any { return "a-clock" })
	cctx := NewCommandContext(context.Background(), nil, NewCommandInput(""), nil, reg)

	v, ok := Inject[string](cctx, "clock")
	require.True(t, ok)
	require.Equal(t, "a-clock", v)

	_, ok = Inject[string](cctx, "missing")
	require.False(t, ok)
}

func TestCommandContext_Copy_IsIndependent(t *testing.T) {
	cctx := NewCommandContext(context.Background(), nil, NewCommandInput(""), nil, NewInjectionRegistry())
	key := NewCloudKey[int32]("n")
	Store(cctx, key, int32(1))

	clone := cctx.copy()
	Store(clone, key, int32(2))

	orig, _ := GetArgument(cctx, key)
	cloned, _ := GetArgument(clone, key)
	require.Equal(t, int32(1), orig)
	require.Equal(t, int32(2), cloned)
}

func TestCommandContext_Flags(t *testing.T) {
	cctx := NewCommandContext(context.Background(), nil, NewCommandInput(""), nil, NewInjectionRegistry())
	require.Nil(t, cctx.Flags())
	cctx.withFlag("force", true)
	require.Equal(t, true, cctx.Flags()["force"])
}

func TestCommandContext_WithNode_TracksRangeAndCommand(t *testing.T) {
	cmd := func(ctx context.Context, cctx *CommandContext) error { return nil }
	n := NewLiteral("greet").Executes(cmd)
	cctx := NewCommandContext(context.Background(), nil, NewCommandInput("greet"), n, NewInjectionRegistry())

	require.False(t, cctx.HasNodes())
	cctx.withNode(n, StringRange{Start: 0, End: 5})
	require.True(t, cctx.HasNodes())
	require.NotNil(t, cctx.command)
	require.Equal(t, StringRange{Start: 0, End: 5}, cctx.Range())
}

func TestCommandContext_FindSuggestionContext_EmptyWalk(t *testing.T) {
	root := newRootNode()
	cctx := NewCommandContext(context.Background(), nil, NewCommandInput("gr"), root, NewInjectionRegistry())
	sc, err := cctx.findSuggestionContext(2)
	require.NoError(t, err)
	require.Equal(t, 0, sc.Start)
	require.Equal(t, CommandNode(root), sc.Parent)
}
