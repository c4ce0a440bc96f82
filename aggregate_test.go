package commandkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int32
}

func newPointParser() *AggregateParser[point] {
	return NewAggregateParser[point](
		func(agg *AggregateContext) (point, error) {
			x, _ := agg.Value("x")
			y, _ := agg.Value("y")
			return point{X: x.(int32), Y: y.(int32)}, nil
		},
		NewComponent[int32]("x", NewBounded[int32]()),
		NewComponent[int32]("y", NewBounded[int32]()),
	)
}

func TestAggregateParser_Sequential(t *testing.T) {
	p := newPointParser()
	in := NewCommandInput("3 4")
	v, err := p.Parse(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, point{X: 3, Y: 4}, v)
	require.False(t, in.CanRead())
}

func TestAggregateParser_OptionalDefault(t *testing.T) {
	p := NewAggregateParser[point](
		func(agg *AggregateContext) (point, error) {
			x, _ := agg.Value("x")
			y, _ := agg.Value("y")
			return point{X: x.(int32), Y: y.(int32)}, nil
		},
		NewComponent[int32]("x", NewBounded[int32]()),
		NewComponent[int32]("y", NewBounded[int32]()).Apply(WithDefault(int32(9))),
	)
	in := NewCommandInput("3")
	v, err := p.Parse(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, point{X: 3, Y: 9}, v)
}

func TestAggregateParser_MissingRequired(t *testing.T) {
	p := newPointParser()
	in := NewCommandInput("3")
	_, err := p.Parse(context.Background(), in)
	require.Error(t, err)
}

func TestAggregateParser_ComponentFailureRestoresCursor(t *testing.T) {
	p := newPointParser()
	in := NewCommandInput("3 notanumber")
	start := in.Branch()
	_, err := p.Parse(context.Background(), in)
	require.Error(t, err)
	require.Equal(t, start, in.Branch())
}

func TestAggregateParser_Sender(t *testing.T) {
	var sawSender any
	p := NewAggregateParser[int32](
		func(agg *AggregateContext) (int32, error) {
			sawSender = agg.Sender()
			v, _ := agg.Value("n")
			return v.(int32), nil
		},
		NewComponent[int32]("n", NewBounded[int32]()),
	)
	in := NewCommandInput("1")
	ctx := withSender(context.Background(), "player1")
	_, err := p.Parse(ctx, in)
	require.NoError(t, err)
	require.Equal(t, "player1", sawSender)
}
