package commandkit

import (
	"fmt"

	"github.com/samber/oops"
)

// Error codes for the spec.md §7 exception taxonomy. A host branches on
// these via oops.AsOops(err).Code() instead of string- or type-matching,
// mirroring holomush/internal/command/errors.go.
const (
	CodeNoInputProvided        = "NO_INPUT_PROVIDED"
	CodeUnterminatedQuote      = "UNTERMINATED_QUOTE"
	CodeUnknownLiteral         = "UNKNOWN_LITERAL"
	CodeNumberOutOfRange       = "NUMBER_OUT_OF_RANGE"
	CodeNumberMalformed        = "NUMBER_MALFORMED"
	CodeEnumUnknown            = "ENUM_UNKNOWN"
	CodeUuidMalformed          = "UUID_MALFORMED"
	CodeBooleanMalformed       = "BOOLEAN_MALFORMED"
	CodeFlagUnknown            = "FLAG_UNKNOWN"
	CodeFlagMissingValue       = "FLAG_MISSING_VALUE"
	CodeFlagDuplicate          = "FLAG_DUPLICATE"
	CodeFlagBundledNonPresence = "FLAG_BUNDLED_NON_PRESENCE"
	CodeAggregateMissingInput  = "AGGREGATE_MISSING_INPUT"
	CodeAggregateComponentFail = "AGGREGATE_COMPONENT_FAILURE"
	CodeEitherFailed           = "EITHER_FAILED"
	CodeInvalidSyntax          = "INVALID_SYNTAX"
	CodeNoSuchCommand          = "NO_SUCH_COMMAND"
	CodeAmbiguousNode          = "AMBIGUOUS_NODE"
	CodeNoPermission           = "NO_PERMISSION"
	CodeInvalidCommandSender   = "INVALID_COMMAND_SENDER"
	CodeCommandExecution       = "COMMAND_EXECUTION"
	CodeCancelled              = "CANCELLED"
	CodeRegistrationLocked     = "REGISTRATION_LOCKED"
	CodeInvalidCommand         = "INVALID_COMMAND"
)

// ParseFailure is the structured result of a failed ArgumentParser.Parse or
// CommandTree walk step: a caption key + variables a host can render
// (spec.md §7 "User-visible behavior"), wrapping an oops error carrying the
// same code/context for programmatic branching.
type ParseFailure struct {
	CaptionKey  string
	Variables   map[string]any
	Cursor      int
	Err         error
}

func (f *ParseFailure) Error() string {
	if f.Err != nil {
		return f.Err.Error()
	}
	return f.CaptionKey
}

func (f *ParseFailure) Unwrap() error { return f.Err }

func newFailure(in *CommandInput, code, captionKey string, vars map[string]any, msg string, msgArgs ...any) *ParseFailure {
	b := oops.Code(code).With("cursor", in.Cursor)
	for k, v := range vars {
		b = b.With(k, v)
	}
	return &ParseFailure{
		CaptionKey: captionKey,
		Variables:  vars,
		Cursor:     in.Cursor,
		Err:        b.Errorf(msg, msgArgs...),
	}
}

func newNoInputProvidedError(in *CommandInput) *ParseFailure {
	return newFailure(in, CodeNoInputProvided, "commandkit.no_input", nil, "no input provided")
}

func newUnterminatedQuoteError(in *CommandInput) *ParseFailure {
	return newFailure(in, CodeUnterminatedQuote, "commandkit.unterminated_quote", nil, "unclosed quoted string")
}

func newInvalidEscapeError(in *CommandInput, c string) *ParseFailure {
	return newFailure(in, CodeUnterminatedQuote, "commandkit.invalid_escape",
		map[string]any{"char": c}, "invalid escape sequence %q", c)
}

func newUnknownLiteralError(in *CommandInput, literal string) *ParseFailure {
	return newFailure(in, CodeUnknownLiteral, "commandkit.unknown_literal",
		map[string]any{"literal": literal}, "unknown literal %q", literal)
}

func newNumberMalformedError(in *CommandInput, value, kind string) *ParseFailure {
	return newFailure(in, CodeNumberMalformed, "commandkit.number_malformed",
		map[string]any{"value": value, "kind": kind}, "malformed %s %q", kind, value)
}

func newNumberOutOfRangeError[T any](in *CommandInput, value, min, max T) *ParseFailure {
	return newFailure(in, CodeNumberOutOfRange, "commandkit.number_out_of_range",
		map[string]any{"value": value, "min": min, "max": max},
		"number %v not in range [%v, %v]", value, min, max)
}

func newEnumUnknownError(in *CommandInput, input string, variants []string) *ParseFailure {
	return newFailure(in, CodeEnumUnknown, "commandkit.enum_unknown",
		map[string]any{"input": input, "variants": variants}, "unknown value %q, expected one of %v", input, variants)
}

func newUuidMalformedError(in *CommandInput, value string) *ParseFailure {
	return newFailure(in, CodeUuidMalformed, "commandkit.uuid_malformed",
		map[string]any{"value": value}, "malformed UUID %q", value)
}

func newBooleanMalformedError(in *CommandInput, value string) *ParseFailure {
	return newFailure(in, CodeBooleanMalformed, "commandkit.boolean_malformed",
		map[string]any{"value": value}, "malformed boolean %q", value)
}

// FlagErrorKind distinguishes the ways FlagParser can fail.
type FlagErrorKind uint8

const (
	FlagUnknown FlagErrorKind = iota
	FlagMissingValue
	FlagDuplicate
	FlagBundledNonPresence
)

func newFlagError(in *CommandInput, kind FlagErrorKind, name string) *ParseFailure {
	code := map[FlagErrorKind]string{
		FlagUnknown:            CodeFlagUnknown,
		FlagMissingValue:       CodeFlagMissingValue,
		FlagDuplicate:          CodeFlagDuplicate,
		FlagBundledNonPresence: CodeFlagBundledNonPresence,
	}[kind]
	return newFailure(in, code, "commandkit.flag_error",
		map[string]any{"flag": name, "kind": kind}, "flag error for %q (%v)", name, kind)
}

func newAggregateMissingInputError(in *CommandInput, component string) *ParseFailure {
	return newFailure(in, CodeAggregateMissingInput, "commandkit.aggregate_missing_input",
		map[string]any{"component": component}, "missing input for aggregate component %q", component)
}

func newAggregateComponentFailureError(in *CommandInput, component string, cause error) *ParseFailure {
	f := newFailure(in, CodeAggregateComponentFail, "commandkit.aggregate_component_failure",
		map[string]any{"component": component}, "aggregate component %q failed: %v", component, cause)
	f.Err = fmt.Errorf("%w: %w", f.Err, cause)
	return f
}

// EitherFailure carries both inner failures of a failed Either parse.
type EitherFailure struct {
	*ParseFailure
	A, B error
}

func newEitherFailedError(in *CommandInput, a, b error) *EitherFailure {
	base := newFailure(in, CodeEitherFailed, "commandkit.either_failed", nil,
		"neither alternative matched: %v / %v", a, b)
	return &EitherFailure{ParseFailure: base, A: a, B: b}
}

func newInvalidSyntaxError(in *CommandInput, correctSyntax string) *ParseFailure {
	return newFailure(in, CodeInvalidSyntax, "commandkit.invalid_syntax",
		map[string]any{"syntax": correctSyntax}, "invalid syntax, expected: %s", correctSyntax)
}

func newNoSuchCommandError(in *CommandInput) *ParseFailure {
	return newFailure(in, CodeNoSuchCommand, "commandkit.no_such_command", nil, "no such command")
}

// AmbiguousNodeError is a registration-time-only failure: inserting a
// command whose new sibling would violate the tree's T1-T4 invariants.
type AmbiguousNodeError struct {
	Parent   CommandNode
	NewChild CommandNode
	Siblings []CommandNode
	err      error
}

func (e *AmbiguousNodeError) Error() string { return e.err.Error() }
func (e *AmbiguousNodeError) Unwrap() error { return e.err }

func newAmbiguousNodeError(parent, newChild CommandNode, siblings []CommandNode) *AmbiguousNodeError {
	names := make([]string, 0, len(siblings))
	for _, s := range siblings {
		names = append(names, s.Name())
	}
	err := oops.Code(CodeAmbiguousNode).
		With("parent", parent.Name()).
		With("new_node", newChild.Name()).
		With("siblings", names).
		Errorf("ambiguous node %q beside siblings %v under %q", newChild.Name(), names, parent.Name())
	return &AmbiguousNodeError{Parent: parent, NewChild: newChild, Siblings: siblings, err: err}
}

// InvalidCommandError is a registration-time-only failure for structural
// violations of invariants I1-I4 (literal-first, required-before-optional,
// at most one flag component last, at most one greedy-last component).
type InvalidCommandError struct{ err error }

func (e *InvalidCommandError) Error() string { return e.err.Error() }
func (e *InvalidCommandError) Unwrap() error { return e.err }

func newInvalidCommandError(reason string) *InvalidCommandError {
	return &InvalidCommandError{err: oops.Code(CodeInvalidCommand).With("reason", reason).Errorf("invalid command: %s", reason)}
}

// ErrRegistrationLocked is returned by Manager.Register once the manager has
// transitioned out of the REGISTERING state.
var ErrRegistrationLocked = oops.Code(CodeRegistrationLocked).Errorf("command manager registration is locked")

// NoPermissionError is fatal at the node it occurs on: siblings are not
// tried once permission is denied (spec.md §7 "Propagation policy").
type NoPermissionError struct {
	Node CommandNode
	err  error
}

func newNoPermissionError(node CommandNode) *NoPermissionError {
	return &NoPermissionError{
		Node: node,
		err:  oops.Code(CodeNoPermission).With("node", node.Name()).Errorf("no permission for %q", node.Name()),
	}
}

func (e *NoPermissionError) Error() string { return e.err.Error() }
func (e *NoPermissionError) Unwrap() error { return e.err }

// InvalidCommandSenderError is fatal at the owning command node: the
// resolved sender type does not match the command's required sender type.
type InvalidCommandSenderError struct {
	Node     CommandNode
	Required string
	GotType  string
	err      error
}

func newInvalidCommandSenderError(node CommandNode, required, got string) *InvalidCommandSenderError {
	return &InvalidCommandSenderError{
		Node:     node,
		Required: required,
		GotType:  got,
		err: oops.Code(CodeInvalidCommandSender).
			With("node", node.Name()).
			With("required", required).
			With("got", got).
			Errorf("command %q requires sender type %q, got %q", node.Name(), required, got),
	}
}

func (e *InvalidCommandSenderError) Error() string { return e.err.Error() }
func (e *InvalidCommandSenderError) Unwrap() error { return e.err }

// CommandExecutionError wraps a handler-thrown error for routing through
// the ExceptionController.
type CommandExecutionError struct {
	Cause error
}

func (e *CommandExecutionError) Error() string {
	return oops.Code(CodeCommandExecution).Wrap(e.Cause).Error()
}
func (e *CommandExecutionError) Unwrap() error {
	return oops.Code(CodeCommandExecution).Wrap(e.Cause)
}

// ErrCancelled is returned when a suspended operation observes cancellation
// at one of the suspension points listed in spec.md §5.
var ErrCancelled = oops.Code(CodeCancelled).Errorf("operation cancelled")
