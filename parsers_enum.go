package commandkit

import (
	"context"
	"strings"
)

// EnumParser parses a token against a fixed, case-insensitive vocabulary,
// returning the canonically-cased variant on success (spec.md §4.3).
type EnumParser struct {
	Variants []string
}

// NewEnumParser builds an EnumParser accepting any of variants,
// case-insensitively.
func NewEnumParser(variants ...string) *EnumParser {
	return &EnumParser{Variants: variants}
}

func (p *EnumParser) Parse(_ context.Context, in *CommandInput) (string, error) {
	start := in.Cursor
	token, err := in.Read()
	if err != nil {
		return "", err
	}
	lower := strings.ToLower(token)
	for _, v := range p.Variants {
		if strings.ToLower(v) == lower {
			return v, nil
		}
	}
	in.Cursor = start
	return "", newEnumUnknownError(in, token, p.Variants)
}

func (p *EnumParser) ListSuggestions(_ context.Context, _ *CommandContext, builder *SuggestionsBuilder) []Suggestion {
	remaining := strings.ToLower(builder.RemainingLowerCase())
	out := make([]Suggestion, 0, len(p.Variants))
	for _, v := range p.Variants {
		if strings.HasPrefix(strings.ToLower(v), remaining) {
			out = append(out, builder.Suggest(v))
		}
	}
	return out
}
