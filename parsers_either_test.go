package commandkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEitherParser_PrimaryWins(t *testing.T) {
	p := NewEitherParser[int32, string](NewBounded[int32](), String)
	in := NewCommandInput("42")
	v, err := p.Parse(context.Background(), in)
	require.NoError(t, err)
	require.True(t, v.IsA())
	n, ok := v.A()
	require.True(t, ok)
	require.Equal(t, int32(42), n)
}

func TestEitherParser_FallbackOnPrimaryFailure(t *testing.T) {
	p := NewEitherParser[int32, string](NewBounded[int32](), String)
	in := NewCommandInput("hello")
	v, err := p.Parse(context.Background(), in)
	require.NoError(t, err)
	require.False(t, v.IsA())
	s, ok := v.B()
	require.True(t, ok)
	require.Equal(t, "hello", s)
}

func TestEitherParser_ListSuggestionsConcatenatesBothAlternatives(t *testing.T) {
	p := NewEitherParser[string, bool](NewEnumParser("1", "2", "3"), Bool)
	builder := newSuggestionsBuilder("", 0)
	out := p.ListSuggestions(context.Background(), nil, builder)

	var texts []string
	for _, s := range out {
		texts = append(texts, s.Text)
	}
	require.ElementsMatch(t, []string{"1", "2", "3", "true", "false"}, texts)
}

func TestEitherParser_BothFail(t *testing.T) {
	p := NewEitherParser[int32, string](NewBounded[int32](), NewEnumParser("red", "blue"))
	in := NewCommandInput("nope")
	_, err := p.Parse(context.Background(), in)
	require.Error(t, err)
	var ef *EitherFailure
	require.ErrorAs(t, err, &ef)
}
