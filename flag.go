package commandkit

import (
	"context"
	"strings"
)

// FlagDefinition describes one `--name`/`-x` flag a FlagParser recognizes
// (spec.md §4.5). A presence flag (Value == nil) stores true when given; a
// valued flag delegates to Value's ArgumentType for its argument.
type FlagDefinition struct {
	Name    string
	Aliases []string
	Value   *CommandComponent // nil for a presence flag
}

func (f *FlagDefinition) matches(token string) bool {
	if token == f.Name {
		return true
	}
	for _, a := range f.Aliases {
		if token == a {
			return true
		}
	}
	return false
}

func (f *FlagDefinition) shortAliases() []string {
	var out []string
	for _, a := range append([]string{f.Name}, f.Aliases...) {
		if len(a) == 1 {
			out = append(out, a)
		}
	}
	return out
}

// FlagParser consumes a trailing region of zero or more `--name`,
// `--name=value`, `--name value`, `-x`, and bundled `-xyz` flags
// (spec.md §4.5), producing a map of flag name to parsed value (true for
// presence flags).
type FlagParser struct {
	Flags []*FlagDefinition
}

// NewFlagParser builds a FlagParser recognizing defs.
func NewFlagParser(defs ...*FlagDefinition) *FlagParser { return &FlagParser{Flags: defs} }

// NewFlagComponent wraps a FlagParser into a CommandComponent suitable for
// attaching to the tree as its own node (spec.md §3 "component-type = FLAG");
// by convention this is the command's last, optional component.
func NewFlagComponent(name string, p *FlagParser) *CommandComponent {
	c := NewComponent[map[string]any](name, p)
	c.isFlagSet = true
	c.greedy = true
	c.optionality = Optional
	c.defaultValue = map[string]any{}
	return c
}

func (p *FlagParser) findLong(name string) *FlagDefinition {
	for _, f := range p.Flags {
		if f.Name == name || f.matches(name) {
			return f
		}
	}
	return nil
}

func (p *FlagParser) findShort(c byte) *FlagDefinition {
	for _, f := range p.Flags {
		for _, a := range f.shortAliases() {
			if a[0] == c {
				return f
			}
		}
	}
	return nil
}

func (p *FlagParser) Parse(ctx context.Context, in *CommandInput) (map[string]any, error) {
	result := map[string]any{}
	seen := map[string]bool{}

	for {
		in.SkipAllWhitespace()
		if in.IsEmpty() || in.Peek() != '-' {
			break
		}
		start := in.Cursor
		token, err := in.Read()
		if err != nil {
			return nil, err
		}

		switch {
		case strings.HasPrefix(token, "--"):
			name := token[2:]
			var inlineValue string
			hasInline := false
			if i := strings.IndexByte(name, '='); i >= 0 {
				inlineValue, name = name[i+1:], name[:i]
				hasInline = true
			}
			def := p.findLong(name)
			if def == nil {
				in.Cursor = start
				return nil, newFlagError(in, FlagUnknown, name)
			}
			if seen[def.Name] {
				in.Cursor = start
				return nil, newFlagError(in, FlagDuplicate, def.Name)
			}
			seen[def.Name] = true
			if def.Value == nil {
				result[def.Name] = true
				continue
			}
			if hasInline {
				sub := NewCommandInput(inlineValue)
				value, err := def.Value.parse(ctx, sub)
				if err != nil {
					in.Cursor = start
					return nil, err
				}
				result[def.Name] = value
				continue
			}
			in.SkipAllWhitespace()
			if in.IsEmpty() {
				in.Cursor = start
				return nil, newFlagError(in, FlagMissingValue, def.Name)
			}
			value, err := def.Value.parse(ctx, in)
			if err != nil {
				in.Cursor = start
				return nil, newFlagError(in, FlagMissingValue, def.Name)
			}
			result[def.Name] = value

		case len(token) > 1:
			letters := token[1:]
			allPresence := true
			for i := 0; i < len(letters); i++ {
				if def := p.findShort(letters[i]); def == nil || def.Value != nil {
					allPresence = false
					break
				}
			}
			if len(letters) > 1 && !allPresence {
				in.Cursor = start
				return nil, newFlagError(in, FlagBundledNonPresence, letters)
			}
			for i := 0; i < len(letters); i++ {
				def := p.findShort(letters[i])
				if def == nil {
					in.Cursor = start
					return nil, newFlagError(in, FlagUnknown, string(letters[i]))
				}
				if def.Value == nil {
					result[def.Name] = true
					continue
				}
				if seen[def.Name] {
					in.Cursor = start
					return nil, newFlagError(in, FlagDuplicate, def.Name)
				}
				seen[def.Name] = true
				in.SkipAllWhitespace()
				if in.IsEmpty() {
					in.Cursor = start
					return nil, newFlagError(in, FlagMissingValue, def.Name)
				}
				value, err := def.Value.parse(ctx, in)
				if err != nil {
					in.Cursor = start
					return nil, newFlagError(in, FlagMissingValue, def.Name)
				}
				result[def.Name] = value
			}

		default:
			in.Cursor = start
			return nil, newFlagError(in, FlagUnknown, token)
		}
	}

	return result, nil
}

func (p *FlagParser) ListSuggestions(_ context.Context, _ *CommandContext, builder *SuggestionsBuilder) []Suggestion {
	remaining := builder.RemainingLowerCase()
	if !strings.HasPrefix(remaining, "-") {
		return nil
	}
	var out []Suggestion
	for _, f := range p.Flags {
		name := "--" + f.Name
		if strings.HasPrefix(strings.ToLower(name), remaining) {
			out = append(out, builder.Suggest(name))
		}
	}
	return out
}
