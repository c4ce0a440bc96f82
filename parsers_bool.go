package commandkit

import (
	"context"
	"strings"
)

// BoolParser is the Bool ArgumentType (spec.md §4.3). In Liberal mode it
// additionally accepts "yes"/"no"/"y"/"n"/"1"/"0" (case-insensitive); in
// strict mode (the default, matching the teacher) only "true"/"false".
type BoolParser struct{ Liberal bool }

var Bool ArgumentType[bool] = &BoolParser{}

var liberalTrue = map[string]bool{"true": true, "yes": true, "y": true, "1": true}
var liberalFalse = map[string]bool{"false": true, "no": true, "n": true, "0": true}

func (p *BoolParser) Parse(_ context.Context, in *CommandInput) (bool, error) {
	if !p.Liberal {
		return in.ReadBool()
	}
	start := in.Cursor
	value, err := in.Read()
	if err != nil {
		return false, err
	}
	lower := strings.ToLower(value)
	if liberalTrue[lower] {
		return true, nil
	}
	if liberalFalse[lower] {
		return false, nil
	}
	in.Cursor = start
	return false, newBooleanMalformedError(in, value)
}

func (p *BoolParser) ListSuggestions(_ context.Context, _ *CommandContext, builder *SuggestionsBuilder) []Suggestion {
	var out []Suggestion
	remaining := strings.ToLower(builder.RemainingLowerCase())
	for _, v := range []string{"true", "false"} {
		if strings.HasPrefix(v, remaining) {
			out = append(out, builder.Suggest(v))
		}
	}
	return out
}
