package commandkit

import "context"

// StringMode selects how StringParser consumes its token, mirroring the
// teacher's SingleWord/QuotablePhase/GreedyPhrase trio plus a fourth mode for
// greedy reads that must still respect a following flag component.
type StringMode uint8

const (
	// SingleWord reads one unquoted token.
	SingleWord StringMode = iota
	// QuotablePhrase reads one token, honoring surrounding quotes.
	QuotablePhrase
	// GreedyPhrase consumes everything remaining in the input.
	GreedyPhrase
	// GreedyFlagYielding consumes everything remaining up to the start of
	// the next flag token, so a FlagParser placed after it can still claim
	// its own arguments. When a component sets both GREEDY and
	// GREEDY_FLAG_YIELDING, GreedyFlagYielding always wins (spec.md §9 Open
	// Question: greedy vs flag-yielding precedence).
	GreedyFlagYielding
)

// StringParser is the String ArgumentType (spec.md §4.3).
type StringParser struct{ Mode StringMode }

// String builtin argument types.
var (
	String             ArgumentType[string] = &StringParser{Mode: QuotablePhrase}
	StringWord         ArgumentType[string] = &StringParser{Mode: SingleWord}
	StringGreedy       ArgumentType[string] = &StringParser{Mode: GreedyPhrase}
	StringFlagYielding ArgumentType[string] = &StringParser{Mode: GreedyFlagYielding}
)

func (p *StringParser) Parse(_ context.Context, in *CommandInput) (string, error) {
	switch p.Mode {
	case GreedyPhrase:
		return in.ReadStringGreedy(), nil
	case GreedyFlagYielding:
		return in.ReadStringGreedyFlagAware(), nil
	case SingleWord:
		return in.readUnquoted(), nil
	default:
		return in.Read()
	}
}

// EscapeIfRequired quotes and escapes s if it contains a character that
// would not round-trip through an unquoted token, matching the teacher's
// StringArgumentType.EscapeIfRequired used when building usage/example text.
func EscapeIfRequired(s string) string {
	for _, c := range s {
		if !IsAllowedInUnquotedToken(c) {
			return Escape(s)
		}
	}
	return s
}

// Escape quotes s and backslash-escapes embedded quotes/backslashes.
func Escape(s string) string {
	var out []byte
	out = append(out, '"')
	for _, c := range []byte(s) {
		if c == '\\' || c == '"' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	out = append(out, '"')
	return string(out)
}
