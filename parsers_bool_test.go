package commandkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoolParser_Strict(t *testing.T) {
	in := NewCommandInput("yes")
	_, err := Bool.Parse(context.Background(), in)
	require.Error(t, err)
}

func TestBoolParser_Liberal(t *testing.T) {
	p := &BoolParser{Liberal: true}
	in := NewCommandInput("yes")
	v, err := p.Parse(context.Background(), in)
	require.NoError(t, err)
	require.True(t, v)

	in = NewCommandInput("no")
	v, err = p.Parse(context.Background(), in)
	require.NoError(t, err)
	require.False(t, v)
}
