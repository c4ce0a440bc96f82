package commandkit

import (
	"strconv"
	"strings"
)

// ArgumentSeparator is the rune required to separate individual tokens in an
// input string.
const ArgumentSeparator rune = ' '

const (
	syntaxDoubleQuote rune = '"'
	syntaxSingleQuote rune = '\''
	syntaxEscape      rune = '\\'
)

// IsQuoteStart reports whether c opens a quoted token.
func IsQuoteStart(c rune) bool {
	return c == syntaxDoubleQuote || c == syntaxSingleQuote
}

// IsAllowedInUnquotedToken reports whether c may appear in an unquoted token.
func IsAllowedInUnquotedToken(c rune) bool {
	return c >= '0' && c <= '9' ||
		c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c == '_' || c == '-' || c == '.' || c == '+'
}

func isAllowedNumberRune(c rune) bool { return c >= '0' && c <= '9' || c == '.' || c == '-' }

// CommandInput is an immutable source string plus a mutable cursor. It is
// the single contract every ArgumentParser reads through: peek/read, greedy
// and flag-aware greedy reads, and branch/restore for speculative parses.
//
// The cursor is monotonically non-decreasing except through an explicit
// Restore of a Branch taken earlier.
type CommandInput struct {
	Source string
	Cursor int
}

// NewCommandInput creates a CommandInput over source, cursor at the start.
func NewCommandInput(source string) *CommandInput {
	return &CommandInput{Source: source}
}

// Branch is a lightweight snapshot of a CommandInput's cursor, used by
// speculative parses (tree candidate walks, Either, suggestion walks).
type Branch struct{ cursor int }

// Branch snapshots the current cursor.
func (in *CommandInput) Branch() Branch { return Branch{cursor: in.Cursor} }

// Restore rewinds the cursor to a previously taken Branch.
func (in *CommandInput) Restore(b Branch) { in.Cursor = b.cursor }

// CanRead reports whether at least one more rune can be read.
func (in *CommandInput) CanRead() bool { return in.CanReadLen(1) }

// CanReadLen reports whether length more runes can be read.
func (in *CommandInput) CanReadLen(length int) bool { return in.Cursor+length <= len(in.Source) }

// IsEmpty reports whether the input has nothing left to read.
func (in *CommandInput) IsEmpty() bool { return !in.CanRead() }

// Peek returns the next rune without consuming it.
func (in *CommandInput) Peek() rune { return rune(in.Source[in.Cursor]) }

// Skip advances the cursor by one rune.
func (in *CommandInput) Skip() { in.Cursor++ }

// SkipWhitespace consumes up to n consecutive ArgumentSeparator runes.
func (in *CommandInput) SkipWhitespace(n int) {
	for i := 0; i < n && in.CanRead() && in.Peek() == ArgumentSeparator; i++ {
		in.Skip()
	}
}

// SkipAllWhitespace consumes all leading ArgumentSeparator runes.
func (in *CommandInput) SkipAllWhitespace() {
	for in.CanRead() && in.Peek() == ArgumentSeparator {
		in.Skip()
	}
}

// Remaining returns the unread suffix of the source.
func (in *CommandInput) Remaining() string { return in.Source[in.Cursor:] }

// RemainingLen returns the length of Remaining.
func (in *CommandInput) RemainingLen() int { return len(in.Source) - in.Cursor }

func (in *CommandInput) readRune() rune {
	c := in.Source[in.Cursor]
	in.Cursor++
	return rune(c)
}

// PeekToken returns the next whitespace-delimited token (quoted or not) without
// consuming it.
func (in *CommandInput) PeekToken() (string, error) {
	b := in.Branch()
	defer in.Restore(b)
	return in.Read()
}

// Read consumes and returns the next token: a quoted span (honoring `"` and
// `\"`/`\\` escapes) or an unquoted run of IsAllowedInUnquotedToken runes.
// Reading from empty input fails with NoInputProvided. An unterminated
// quote fails with UnterminatedQuote.
func (in *CommandInput) Read() (string, error) {
	if !in.CanRead() {
		return "", newNoInputProvidedError(in)
	}
	next := in.Peek()
	if IsQuoteStart(next) {
		in.Skip()
		return in.readUntil(next)
	}
	return in.readUnquoted(), nil
}

// ReadString is an alias for Read, returning the raw (unescaped-boundary)
// token text.
func (in *CommandInput) ReadString() (string, error) { return in.Read() }

func (in *CommandInput) readUnquoted() string {
	start := in.Cursor
	for in.CanRead() && IsAllowedInUnquotedToken(in.Peek()) {
		in.Skip()
	}
	return in.Source[start:in.Cursor]
}

func (in *CommandInput) readUntil(terminator rune) (string, error) {
	var result strings.Builder
	escaped := false
	for in.CanRead() {
		c := in.readRune()
		if escaped {
			if c == terminator || c == syntaxEscape {
				result.WriteRune(c)
				escaped = false
			} else {
				in.Cursor--
				return "", newInvalidEscapeError(in, string(c))
			}
		} else if c == syntaxEscape {
			escaped = true
		} else if c == terminator {
			return result.String(), nil
		} else {
			result.WriteRune(c)
		}
	}
	return "", newUnterminatedQuoteError(in)
}

// ReadStringGreedy consumes and returns everything remaining in the input.
func (in *CommandInput) ReadStringGreedy() string {
	text := in.Remaining()
	in.Cursor = len(in.Source)
	return text
}

// ReadStringGreedyFlagAware consumes everything remaining up to (but not
// including) a bare token that starts with '-' at a token boundary,
// honoring quoted spans along the way.
func (in *CommandInput) ReadStringGreedyFlagAware() string {
	start := in.Cursor
	for in.CanRead() {
		in.SkipAllWhitespace()
		if !in.CanRead() {
			break
		}
		tokenStart := in.Cursor
		next := in.Peek()
		if next == '-' && tokenStart > start {
			in.Cursor = tokenStart
			break
		}
		if IsQuoteStart(next) {
			in.Skip()
			if _, err := in.readUntil(next); err != nil {
				in.Cursor = tokenStart
				break
			}
		} else {
			in.readUnquoted()
			if in.Cursor == tokenStart {
				in.Skip()
			}
		}
	}
	text := in.Source[start:in.Cursor]
	return strings.TrimRight(text, string(ArgumentSeparator))
}

// ReadBool reads a strict "true"/"false" token (case-insensitive).
func (in *CommandInput) ReadBool() (bool, error) {
	start := in.Cursor
	value, err := in.Read()
	if err != nil {
		return false, err
	}
	if value == "" {
		return false, newBooleanMalformedError(in, value)
	}
	switch strings.ToLower(value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	in.Cursor = start
	return false, newBooleanMalformedError(in, value)
}

func (in *CommandInput) readDigits(bitSize int) string {
	start := in.Cursor
	for in.CanRead() && isAllowedNumberRune(in.Peek()) {
		in.Skip()
	}
	return in.Source[start:in.Cursor]
}

// ReadInt64 reads a signed integer token made of digits and '-' (parsed with
// strconv.ParseInt base 0, so a leading 0 selects octal). A letter ends the
// token, so 0x/0b/0o prefixes are not read.
func (in *CommandInput) ReadInt64() (int64, error) {
	start := in.Cursor
	number := in.readDigits(64)
	if number == "" {
		return 0, newNumberMalformedError(in, number, "int64")
	}
	i, err := strconv.ParseInt(number, 0, 64)
	if err != nil {
		in.Cursor = start
		return 0, newNumberMalformedError(in, number, "int64")
	}
	return i, nil
}

// ReadFloat64 reads a floating point token.
func (in *CommandInput) ReadFloat64() (float64, error) {
	start := in.Cursor
	number := in.readDigits(64)
	if number == "" {
		return 0, newNumberMalformedError(in, number, "float64")
	}
	f, err := strconv.ParseFloat(number, 64)
	if err != nil {
		in.Cursor = start
		return 0, newNumberMalformedError(in, number, "float64")
	}
	return f, nil
}

// StringRange is a half-open-by-convention [Start, End) span over an input
// string, used for suggestion ranges and parsed-node ranges.
type StringRange struct{ Start, End int }

// IsEmpty reports whether the range spans zero runes.
func (r StringRange) IsEmpty() bool { return r.Start == r.End }

// Slice returns the substring of s covered by r.
func (r StringRange) Slice(s string) string { return s[r.Start:r.End] }

// Encompass returns the smallest range covering both a and b.
func Encompass(a, b StringRange) StringRange {
	return StringRange{Start: min(a.Start, b.Start), End: max(a.End, b.End)}
}
