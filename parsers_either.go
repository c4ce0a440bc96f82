package commandkit

import "context"

// Either holds exactly one of A or B, the result of an EitherParser parse.
type Either[A, B any] struct {
	a     A
	b     B
	isA   bool
}

// NewEitherA builds an Either holding the A alternative.
func NewEitherA[A, B any](a A) Either[A, B] { return Either[A, B]{a: a, isA: true} }

// NewEitherB builds an Either holding the B alternative.
func NewEitherB[A, B any](b B) Either[A, B] { return Either[A, B]{b: b} }

// IsA reports whether the A alternative is held.
func (e Either[A, B]) IsA() bool { return e.isA }

// A returns the A alternative and whether it is the one held.
func (e Either[A, B]) A() (A, bool) { return e.a, e.isA }

// B returns the B alternative and whether it is the one held.
func (e Either[A, B]) B() (B, bool) { return e.b, !e.isA }

// EitherParser tries Primary first; on any failure of Primary it restores
// the cursor and tries Fallback (spec.md §9 Open Question: the fallback
// trigger is unconditional on any primary failure, not filtered by kind).
type EitherParser[A, B any] struct {
	Primary  ArgumentType[A]
	Fallback ArgumentType[B]
}

// NewEitherParser builds an EitherParser trying primary then fallback.
func NewEitherParser[A, B any](primary ArgumentType[A], fallback ArgumentType[B]) *EitherParser[A, B] {
	return &EitherParser[A, B]{Primary: primary, Fallback: fallback}
}

func (p *EitherParser[A, B]) Parse(ctx context.Context, in *CommandInput) (Either[A, B], error) {
	start := in.Branch()
	a, errA := p.Primary.Parse(ctx, in)
	if errA == nil {
		return NewEitherA[A, B](a), nil
	}
	in.Restore(start)
	b, errB := p.Fallback.Parse(ctx, in)
	if errB == nil {
		return NewEitherB[A, B](b), nil
	}
	in.Restore(start)
	var zero Either[A, B]
	return zero, newEitherFailedError(in, errA, errB)
}

// ListSuggestions concatenates both alternatives' suggestions (spec.md §4.3
// "suggestions are the concatenation"). An alternative that doesn't
// implement SuggestionProvider at all (e.g. an unbounded Bounded[T] range)
// simply contributes nothing.
func (p *EitherParser[A, B]) ListSuggestions(ctx context.Context, sctx *CommandContext, builder *SuggestionsBuilder) []Suggestion {
	var out []Suggestion
	if sp, ok := any(p.Primary).(SuggestionProvider); ok {
		out = append(out, sp.ListSuggestions(ctx, sctx, builder)...)
	}
	if sp, ok := any(p.Fallback).(SuggestionProvider); ok {
		out = append(out, sp.ListSuggestions(ctx, sctx, builder)...)
	}
	return out
}
