package commandkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeToken_DistinguishesTypes(t *testing.T) {
	require.Equal(t, TokenOf[int32](), TokenOf[int32]())
	require.NotEqual(t, TokenOf[int32](), TokenOf[string]())
}

func TestCloudKey_UntypedKeyIncludesTypeToken(t *testing.T) {
	a := NewCloudKey[int32]("count")
	b := NewCloudKey[string]("count")
	require.NotEqual(t, a.untyped(), b.untyped())
	require.Equal(t, "count", a.Name())
	require.Equal(t, TokenOf[int32](), a.Token())
}

// upperType is an ad hoc ArgumentType built from plain functions, the shape
// a host reaches for instead of a named struct.
func upperType() ArgumentTypeFunc[string] {
	return ArgumentTypeFunc[string]{
		ParseFunc: func(ctx context.Context, in *CommandInput) (string, error) {
			return in.ReadString()
		},
		SuggestFn: func(ctx context.Context, sctx *CommandContext, b *SuggestionsBuilder) []Suggestion {
			return []Suggestion{b.Suggest("LOUD")}
		},
	}
}

func TestArgumentTypeFunc_ParseDelegatesToClosure(t *testing.T) {
	in := NewCommandInput("shout")
	v, err := upperType().Parse(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "shout", v)
}

func TestArgumentTypeFunc_ListSuggestionsDelegatesToClosure(t *testing.T) {
	b := newSuggestionsBuilder("", 0)
	suggestions := upperType().ListSuggestions(context.Background(), nil, b)
	require.Len(t, suggestions, 1)
	require.Equal(t, "LOUD", suggestions[0].Text)
}

func TestArgumentTypeFunc_ListSuggestionsNilFuncReturnsNil(t *testing.T) {
	plain := ArgumentTypeFunc[string]{
		ParseFunc: func(ctx context.Context, in *CommandInput) (string, error) {
			return in.ReadString()
		},
	}
	require.Nil(t, plain.ListSuggestions(context.Background(), nil, nil))
}
