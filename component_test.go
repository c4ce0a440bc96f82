package commandkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewComponent_RequiredByDefault(t *testing.T) {
	c := NewComponent[int32]("n", NewBounded[int32]())
	require.Equal(t, "n", c.Name())
	require.False(t, c.IsOptional())
	require.False(t, c.IsGreedy())
}

func TestComponent_WithDefault(t *testing.T) {
	c := NewComponent[int32]("n", NewBounded[int32]()).Apply(WithDefault(int32(7)))
	require.True(t, c.IsOptional())
	require.Equal(t, int32(7), c.defaultValue)
}

func TestComponent_WithGreedy(t *testing.T) {
	c := NewComponent[string]("rest", String).Apply(WithGreedy())
	require.True(t, c.IsGreedy())
}

func TestComponent_ParseDelegatesToArgumentType(t *testing.T) {
	c := NewComponent[int32]("n", NewBounded[int32]())
	in := NewCommandInput("42")
	v, err := c.parse(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, int32(42), v)
}

func TestGetArgument_MatchesNameAndType(t *testing.T) {
	cctx := NewCommandContext(context.Background(), nil, NewCommandInput(""), nil, NewInjectionRegistry())
	key := NewCloudKey[int32]("n")
	Store(cctx, key, int32(5))

	v, ok := GetArgument(cctx, key)
	require.True(t, ok)
	require.Equal(t, int32(5), v)
}

func TestGetArgument_WrongTypeMisses(t *testing.T) {
	cctx := NewCommandContext(context.Background(), nil, NewCommandInput(""), nil, NewInjectionRegistry())
	key := NewCloudKey[int32]("n")
	cctx.withArgument(key.untyped(), "not an int32")

	_, ok := GetArgument(cctx, key)
	require.False(t, ok)
}

func TestMustGetArgument_ZeroValueWhenAbsent(t *testing.T) {
	cctx := NewCommandContext(context.Background(), nil, NewCommandInput(""), nil, NewInjectionRegistry())
	key := NewCloudKey[int32]("missing")
	require.Equal(t, int32(0), MustGetArgument(cctx, key))
}
