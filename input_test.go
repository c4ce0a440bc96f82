package commandkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandInput_Read(t *testing.T) {
	in := NewCommandInput("hello world")
	tok, err := in.Read()
	require.NoError(t, err)
	require.Equal(t, "hello", tok)
	in.SkipAllWhitespace()
	tok, err = in.Read()
	require.NoError(t, err)
	require.Equal(t, "world", tok)
}

func TestCommandInput_ReadQuoted(t *testing.T) {
	in := NewCommandInput(`"hello world"`)
	tok, err := in.Read()
	require.NoError(t, err)
	require.Equal(t, "hello world", tok)
}

func TestCommandInput_UnterminatedQuote(t *testing.T) {
	in := NewCommandInput(`"hello`)
	_, err := in.Read()
	require.Error(t, err)
}

func TestCommandInput_BranchRestore(t *testing.T) {
	in := NewCommandInput("abc")
	b := in.Branch()
	in.Skip()
	in.Skip()
	require.Equal(t, 2, in.Cursor)
	in.Restore(b)
	require.Equal(t, 0, in.Cursor)
}

func TestCommandInput_ReadStringGreedyFlagAware(t *testing.T) {
	in := NewCommandInput("hello there --loud")
	text := in.ReadStringGreedyFlagAware()
	require.Equal(t, "hello there", text)
	require.Equal(t, "--loud", in.Remaining())
}

func TestCommandInput_ReadBool(t *testing.T) {
	in := NewCommandInput("true false nope")
	b, err := in.ReadBool()
	require.NoError(t, err)
	require.True(t, b)
	in.SkipAllWhitespace()
	b, err = in.ReadBool()
	require.NoError(t, err)
	require.False(t, b)
	in.SkipAllWhitespace()
	_, err = in.ReadBool()
	require.Error(t, err)
}
