package commandkit

import (
	"context"
	"reflect"
)

// TypeToken identifies the runtime type a CloudKey or ArgumentType produces,
// replacing the teacher's reliance on reflect.TypeOf comparisons scattered
// across call sites with one stable, comparable id.
type TypeToken struct{ rt reflect.Type }

// TokenOf returns the TypeToken for T.
func TokenOf[T any]() TypeToken {
	var zero T
	return TypeToken{rt: reflect.TypeOf(&zero).Elem()}
}

func (t TypeToken) String() string {
	if t.rt == nil {
		return "<nil>"
	}
	return t.rt.String()
}

// IsZero reports whether t is the unset TypeToken, e.g.
// CommandDefinition.SenderType left at its zero value to mean "any sender".
func (t TypeToken) IsZero() bool { return t.rt == nil }

// tokenOfValue returns the TypeToken for v's dynamic type, for comparing a
// resolved sender against a CommandDefinition's declared SenderType.
func tokenOfValue(v any) TypeToken {
	if v == nil {
		return TypeToken{}
	}
	return TypeToken{rt: reflect.TypeOf(v)}
}

// CloudKey is a generic typed key addressing a single value stored in a
// CommandContext (parsed arguments, sender, injected services). Two keys are
// equal only when both their name and type token match, so "count" of type
// int and "count" of type string never collide.
type CloudKey[T any] struct {
	name  string
	token TypeToken
}

// NewCloudKey builds a key named name for values of type T.
func NewCloudKey[T any](name string) CloudKey[T] {
	return CloudKey[T]{name: name, token: TokenOf[T]()}
}

// Name returns the key's name.
func (k CloudKey[T]) Name() string { return k.name }

// Token returns the key's TypeToken.
func (k CloudKey[T]) Token() TypeToken { return k.token }

func (k CloudKey[T]) untyped() untypedKey { return untypedKey{name: k.name, token: k.token} }

// untypedKey is the internal storage key shape: CloudKey erased of its Go
// generic parameter so heterogeneous keys can live in one map.
type untypedKey struct {
	name  string
	token TypeToken
}

// ArgumentType is the capability every standard and custom parser
// implements: read one value of type T off a CommandInput. Parsers are
// selected by capability (does this component's ArgumentType implement
// SuggestionProvider?), never by a type hierarchy.
type ArgumentType[T any] interface {
	// Parse consumes as much of in as this type needs and returns the typed
	// value, or a failure describing what went wrong and where.
	Parse(ctx context.Context, in *CommandInput) (T, error)
}

// SuggestionProvider is implemented by an ArgumentType that can offer
// completions for a not-yet-valid or partially-typed token. Not every
// ArgumentType needs one: a type with no natural finite vocabulary (plain
// String) simply doesn't implement it, and the tree's suggestion walk treats
// its absence as "no local suggestions, only further structure".
type SuggestionProvider interface {
	ListSuggestions(ctx context.Context, sctx *CommandContext, builder *SuggestionsBuilder) []Suggestion
}

// ArgumentTypeFunc adapts two plain functions into an ArgumentType, the
// closure equivalent of the teacher's ArgumentTypeFuncs, for ad hoc types
// that don't warrant a named struct.
type ArgumentTypeFunc[T any] struct {
	ParseFunc func(ctx context.Context, in *CommandInput) (T, error)
	SuggestFn func(ctx context.Context, sctx *CommandContext, builder *SuggestionsBuilder) []Suggestion
}

func (f ArgumentTypeFunc[T]) Parse(ctx context.Context, in *CommandInput) (T, error) {
	return f.ParseFunc(ctx, in)
}

func (f ArgumentTypeFunc[T]) ListSuggestions(ctx context.Context, sctx *CommandContext, builder *SuggestionsBuilder) []Suggestion {
	if f.SuggestFn == nil {
		return nil
	}
	return f.SuggestFn(ctx, sctx, builder)
}
