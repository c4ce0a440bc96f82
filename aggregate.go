package commandkit

import "context"

// AggregateContext exposes the values aggregate components before the
// current one have already produced, addressed by component name, so the
// mapper and later components can build on earlier results (spec.md §4.4).
type AggregateContext struct {
	sender any
	values map[string]any
}

// Value retrieves the raw value an earlier sub-component stored under name.
func (a *AggregateContext) Value(name string) (any, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Sender returns the invocation's sender, available to the mapper without
// it needing a full CommandContext.
func (a *AggregateContext) Sender() any { return a.sender }

// AggregateMapper combines the values an AggregateParser's sub-components
// produced into one composite value T.
type AggregateMapper[T any] func(agg *AggregateContext) (T, error)

// AggregateParser runs an ordered list of inner CommandComponents
// sequentially against the same input, then reduces their results with a
// mapper into one composite value (spec.md §4.4).
type AggregateParser[T any] struct {
	Components []*CommandComponent
	Mapper     AggregateMapper[T]
}

// NewAggregateParser builds an AggregateParser over components, reduced by
// mapper.
func NewAggregateParser[T any](mapper AggregateMapper[T], components ...*CommandComponent) *AggregateParser[T] {
	return &AggregateParser[T]{Components: components, Mapper: mapper}
}

func (p *AggregateParser[T]) Parse(ctx context.Context, in *CommandInput) (T, error) {
	var zero T
	start := in.Branch()
	agg := &AggregateContext{sender: senderFromContext(ctx), values: map[string]any{}}

	for _, c := range p.Components {
		in.SkipAllWhitespace()
		if in.IsEmpty() {
			if c.IsOptional() {
				agg.values[c.Name()] = c.defaultValue
				continue
			}
			in.Restore(start)
			return zero, newAggregateMissingInputError(in, c.Name())
		}
		value, err := c.parse(ctx, in)
		if err != nil {
			if c.IsOptional() {
				agg.values[c.Name()] = c.defaultValue
				continue
			}
			in.Restore(start)
			return zero, newAggregateComponentFailureError(in, c.Name(), err)
		}
		agg.values[c.Name()] = value
	}

	result, err := p.Mapper(agg)
	if err != nil {
		in.Restore(start)
		return zero, newAggregateComponentFailureError(in, "<mapper>", err)
	}
	return result, nil
}

// ListSuggestions walks the inner components in order, accumulating
// already-typed ones into the aggregate context, and returns the first
// component's suggestions that the cursor still falls within (spec.md §4.4
// "Suggestions: walk components until the cursor is exhausted").
func (p *AggregateParser[T]) ListSuggestions(ctx context.Context, sctx *CommandContext, builder *SuggestionsBuilder) []Suggestion {
	in := &CommandInput{Source: builder.Input, Cursor: builder.Start}
	for _, c := range p.Components {
		in.SkipAllWhitespace()
		sub := newSuggestionsBuilder(builder.Input, in.Cursor)
		if in.IsEmpty() {
			return c.listSuggestions(ctx, sctx, sub)
		}
		start := in.Cursor
		_, err := c.parse(ctx, in)
		if err != nil {
			in.Cursor = start
			return c.listSuggestions(ctx, sctx, sub)
		}
	}
	return nil
}
