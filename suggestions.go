package commandkit

import (
	"context"
	"math"
	"sort"
	"strings"
)

// Suggestion is a single command completion: replacement text for a span of
// the original input.
type Suggestion struct {
	Range   StringRange
	Text    string
	Tooltip string
}

// Expand rewrites s's text so it applies to the wider range, borrowing the
// surrounding original-input text outside s's own range (teacher's
// Suggestion.Expand).
func (s Suggestion) Expand(command string, target StringRange) Suggestion {
	if target == s.Range {
		return s
	}
	var b strings.Builder
	if target.Start < s.Range.Start {
		b.WriteString(command[target.Start:s.Range.Start])
	}
	b.WriteString(s.Text)
	if target.End > s.Range.End {
		b.WriteString(command[s.Range.End:target.End])
	}
	return Suggestion{Range: target, Text: b.String(), Tooltip: s.Tooltip}
}

// Suggestions is a deduplicated, sorted set of Suggestion sharing one range.
type Suggestions struct {
	Range StringRange
	Items []Suggestion
}

var emptySuggestions = Suggestions{}

// SuggestionsBuilder accumulates Suggestion values contributed by the
// parsers reachable at one position in the input.
type SuggestionsBuilder struct {
	Input              string
	InputLowerCase     string
	Start              int
	Remaining          string
	remainingLowerCase string
	Result             []Suggestion
}

// RemainingLowerCase returns the lowercased unparsed suffix of the input
// from the builder's Start, the substring every standard parser's
// suggestion matching is anchored on.
func (b *SuggestionsBuilder) RemainingLowerCase() string { return b.remainingLowerCase }

// Suggest appends a literal replacement for the builder's span, skipping it
// if it equals what's already typed.
func (b *SuggestionsBuilder) Suggest(text string) Suggestion {
	s := Suggestion{Range: StringRange{Start: b.Start, End: len(b.Input)}, Text: text}
	if text != b.Remaining {
		b.Result = append(b.Result, s)
	}
	return s
}

// SuggestWithTooltip is Suggest plus a tooltip string attached to the result.
func (b *SuggestionsBuilder) SuggestWithTooltip(text, tooltip string) Suggestion {
	s := Suggestion{Range: StringRange{Start: b.Start, End: len(b.Input)}, Text: text, Tooltip: tooltip}
	if text != b.Remaining {
		b.Result = append(b.Result, s)
	}
	return s
}

// Build finalizes the builder's accumulated suggestions.
func (b *SuggestionsBuilder) Build() Suggestions { return CreateSuggestions(b.Input, b.Result) }

func newSuggestionsBuilder(fullInput string, start int) *SuggestionsBuilder {
	remaining := fullInput[start:]
	return &SuggestionsBuilder{
		Input:              fullInput,
		InputLowerCase:     strings.ToLower(fullInput),
		Start:              start,
		Remaining:          remaining,
		remainingLowerCase: strings.ToLower(remaining),
	}
}

// MergeSuggestionSets merges several Suggestions computed over the same
// command string into one deduplicated, range-normalized set.
func MergeSuggestionSets(command string, sets []Suggestions) Suggestions {
	if len(sets) == 0 {
		return emptySuggestions
	}
	if len(sets) == 1 {
		return sets[0]
	}
	seen := make(map[string]struct{})
	var all []Suggestion
	for _, set := range sets {
		for _, s := range set.Items {
			if _, ok := seen[s.Text]; !ok {
				seen[s.Text] = struct{}{}
				all = append(all, s)
			}
		}
	}
	return CreateSuggestions(command, all)
}

// CreateSuggestions normalizes a flat slice of Suggestion into one
// deduplicated, range-widened, alphabetically sorted Suggestions.
func CreateSuggestions(command string, items []Suggestion) Suggestions {
	if len(items) == 0 {
		return emptySuggestions
	}
	start, end := math.MaxInt32, math.MinInt32
	for _, s := range items {
		start = min(s.Range.Start, start)
		end = max(s.Range.End, end)
	}
	r := StringRange{Start: start, End: end}
	seen := make(map[string]struct{}, len(items))
	out := make([]Suggestion, 0, len(items))
	for _, s := range items {
		if _, ok := seen[s.Text]; ok {
			continue
		}
		seen[s.Text] = struct{}{}
		out = append(out, s.Expand(command, r))
	}
	sort.Slice(out, func(i, j int) bool { return strings.EqualFold(out[i].Text, out[j].Text) && out[i].Text < out[j].Text || strings.ToLower(out[i].Text) < strings.ToLower(out[j].Text) })
	return Suggestions{Range: r, Items: out}
}

// CompletionSuggestions computes suggestions for the end of the parsed
// input (CommandManager.Suggest's entry point for "what comes after everything
// typed so far").
func (t *CommandTree) CompletionSuggestions(ctx context.Context, parse *ParseResult) (Suggestions, error) {
	return t.CompletionSuggestionsAt(ctx, parse, len(parse.Input.Source))
}

// CompletionSuggestionsAt computes suggestions as of cursor, which may be
// inside the already-parsed prefix (mid-token suggestion requests).
func (t *CommandTree) CompletionSuggestionsAt(ctx context.Context, parse *ParseResult, cursor int) (Suggestions, error) {
	sctx := parse.Context
	nodeBefore, err := sctx.findSuggestionContext(cursor)
	if err != nil {
		return emptySuggestions, err
	}
	start := min(nodeBefore.Start, cursor)
	fullInput := parse.Input.Source
	truncated := fullInput[:cursor]

	var sets []Suggestions
	for _, child := range nodeBefore.Parent.ChildrenOrdered() {
		if !child.CanUse(sctx) {
			continue
		}
		builder := newSuggestionsBuilder(truncated, start)
		set := child.listSuggestions(ctx, sctx.buildFor(truncated), builder)
		sets = append(sets, set)
	}
	return MergeSuggestionSets(fullInput, sets), nil
}

// suggestionContext names the node before a given cursor position and the
// offset suggestions for that position should replace from.
type suggestionContext struct {
	Parent CommandNode
	Start  int
}
