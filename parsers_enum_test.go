package commandkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnumParser(t *testing.T) {
	p := NewEnumParser("Red", "Green", "Blue")
	in := NewCommandInput("green")
	v, err := p.Parse(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "Green", v)
}

func TestEnumParser_Unknown(t *testing.T) {
	p := NewEnumParser("Red", "Green", "Blue")
	in := NewCommandInput("purple")
	_, err := p.Parse(context.Background(), in)
	require.Error(t, err)
}
