package commandkit

import "context"

// erasedParseFunc is an ArgumentType[T].Parse with T erased to any, the
// storage shape every CommandComponent holds internally so heterogeneous
// components (string here, int64 there) can live in one tree.
type erasedParseFunc func(ctx context.Context, in *CommandInput) (any, error)

// erasedSuggestFunc is a SuggestionProvider.ListSuggestions with T erased.
type erasedSuggestFunc func(ctx context.Context, sctx *CommandContext, b *SuggestionsBuilder) []Suggestion

// Optionality distinguishs a component that must be present in the input
// from one that may be omitted, in which case DefaultValue is used.
type Optionality uint8

const (
	Required Optionality = iota
	Optional
)

// CommandComponent is the parser-backed descriptor behind an argument tree
// node: a name, the erased ArgumentType doing the actual reading, and
// (for optional components) a default value substituted when the input
// doesn't supply one.
type CommandComponent struct {
	name         string
	token        TypeToken
	optionality  Optionality
	defaultValue any
	parseFn      erasedParseFunc
	suggestFn    erasedSuggestFunc
	isFlagSet    bool
	greedy       bool
}

// IsGreedy reports whether the component consumes the rest of the input
// unconditionally (a greedy string, or a flag region), relevant to I4
// ("at most one greedy-last component").
func (c *CommandComponent) IsGreedy() bool { return c.greedy }

// Name returns the component's name, the key arguments are stored under in
// a CommandContext.
func (c *CommandComponent) Name() string { return c.name }

// Token returns the TypeToken of the value this component produces.
func (c *CommandComponent) Token() TypeToken { return c.token }

// IsOptional reports whether the component may be omitted from the input.
func (c *CommandComponent) IsOptional() bool { return c.optionality == Optional }

// NewComponent builds a required CommandComponent named name, parsed by t.
// Apply WithDefault to make it optional.
func NewComponent[T any](name string, t ArgumentType[T]) *CommandComponent {
	c := &CommandComponent{
		name:  name,
		token: TokenOf[T](),
		parseFn: func(ctx context.Context, in *CommandInput) (any, error) {
			return t.Parse(ctx, in)
		},
	}
	if sp, ok := t.(SuggestionProvider); ok {
		c.suggestFn = sp.ListSuggestions
	}
	if sp, ok := any(t).(*StringParser); ok && (sp.Mode == GreedyPhrase || sp.Mode == GreedyFlagYielding) {
		c.greedy = true
	}
	return c
}

// ComponentOption configures a CommandComponent built by NewComponent.
type ComponentOption func(*CommandComponent)

// WithDefault marks the component optional, substituting value when the
// input omits it. The provided value's type must match T used in
// NewComponent; this is enforced by validateDefinition (validate.go) when
// the component is registered through CommandManager.Register, rather than
// at the type level, since Go methods cannot carry their own type parameter
// independent of the receiver's.
func WithDefault[T any](value T) ComponentOption {
	return func(c *CommandComponent) {
		c.optionality = Optional
		c.defaultValue = value
	}
}

// WithGreedy marks the component as consuming the rest of the input, so
// validation rejects any sibling declared after it.
func WithGreedy() ComponentOption {
	return func(c *CommandComponent) { c.greedy = true }
}

// Apply applies opts to c and returns c, for chaining at construction:
//
//	NewComponent[int32]("count", NewBounded[int32]()).Apply(WithDefault(int32(1)))
func (c *CommandComponent) Apply(opts ...ComponentOption) *CommandComponent {
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CommandComponent) untypedKey() untypedKey {
	return untypedKey{name: c.name, token: c.token}
}

func (c *CommandComponent) parse(ctx context.Context, in *CommandInput) (any, error) {
	return c.parseFn(ctx, in)
}

func (c *CommandComponent) listSuggestions(ctx context.Context, sctx *CommandContext, b *SuggestionsBuilder) []Suggestion {
	if c.suggestFn == nil {
		return nil
	}
	return c.suggestFn(ctx, sctx, b)
}

// GetArgument retrieves the value stored under key from cctx, matching both
// name and type. The zero value of T and false are returned if the key
// isn't present or holds a different type.
func GetArgument[T any](cctx *CommandContext, key CloudKey[T]) (T, bool) {
	var zero T
	v, ok := cctx.getRaw(key.untyped())
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// MustGetArgument is GetArgument without the ok return, for handlers that
// only run once the tree has already guaranteed the argument is present.
func MustGetArgument[T any](cctx *CommandContext, key CloudKey[T]) T {
	v, _ := GetArgument(cctx, key)
	return v
}
