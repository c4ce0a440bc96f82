package commandkit

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New()

// CommandDefinition is the declarative record a host builds and hands to
// CommandManager.Register: a literal name, its ordered argument components,
// an optional trailing flag component, and the handler invoked once the
// full path parses (spec.md §3 "Command").
type CommandDefinition struct {
	Literal       string `validate:"required"`
	Aliases       []string
	Components    []*CommandComponent
	FlagComponent *CommandComponent
	Handler       Command `validate:"required"`
	Requirement   RequireFn
	Description   string
	SenderType    TypeToken
}

// validateDefinition runs struct-tag validation (required fields) plus the
// structural invariants a tag can't express: I2 (no required component
// after an optional one), I3 (at most one flag component, trailing), I4
// (at most one greedy component, trailing). I1 (root is a literal) holds by
// construction, since buildCommandChain always roots on def.Literal.
func validateDefinition(def *CommandDefinition) error {
	if err := structValidator.Struct(def); err != nil {
		return newInvalidCommandError(err.Error())
	}

	sawOptional := false
	sawGreedy := false
	for _, c := range def.Components {
		if sawGreedy {
			return newInvalidCommandError(fmt.Sprintf("component %q declared after a greedy component", c.Name()))
		}
		if sawOptional && !c.IsOptional() {
			return newInvalidCommandError(fmt.Sprintf("required component %q declared after an optional component", c.Name()))
		}
		if c.IsOptional() && c.defaultValue != nil && !reflect.TypeOf(c.defaultValue).AssignableTo(c.token.rt) {
			return newInvalidCommandError(fmt.Sprintf("default value of component %q is %T, not %s", c.Name(), c.defaultValue, c.token))
		}
		if c.IsOptional() {
			sawOptional = true
		}
		if c.IsGreedy() {
			sawGreedy = true
		}
	}
	if def.FlagComponent != nil && !def.FlagComponent.IsOptional() {
		return newInvalidCommandError("flag component must be optional")
	}
	return nil
}

// buildCommandChain validates def and builds the unattached node chain
// CommandTree.Insert grafts onto the tree: a literal root, one nested
// ArgumentNode per component in order, and the flag component last, with
// the handler and requirement attached to the innermost node.
func buildCommandChain(def *CommandDefinition) (*LiteralNode, error) {
	if err := validateDefinition(def); err != nil {
		return nil, err
	}

	root := NewLiteral(def.Literal)
	leaf := attachChain(root, def.Components, def.FlagComponent, def.Handler, def.Requirement)
	if !def.SenderType.IsZero() {
		setNodeSenderType(leaf, def.SenderType)
	}
	return root, nil
}

// attachChain builds components as a nested chain under parent and returns
// the deepest node, onto which handler/requirement are finally attached.
func attachChain(parent CommandNode, components []*CommandComponent, flag *CommandComponent, handler Command, req RequireFn) CommandNode {
	current := parent
	for _, c := range components {
		arg := NewArgument(c)
		attach(current, arg)
		current = arg
	}
	if flag != nil {
		arg := NewArgument(flag)
		attach(current, arg)
		current = arg
	}
	setNodeCommand(current, handler)
	if req != nil {
		setNodeRequirement(current, req)
	}
	return current
}

func attach(parent CommandNode, child CommandNode) {
	switch p := parent.(type) {
	case *LiteralNode:
		p.Then(child)
	case *ArgumentNode:
		p.Then(child)
	case *RootNode:
		p.AddChild(child)
	}
}

func setNodeRequirement(n CommandNode, req RequireFn) {
	switch t := n.(type) {
	case *LiteralNode:
		t.requirement = req
	case *ArgumentNode:
		t.requirement = req
	case *RootNode:
		t.requirement = req
	}
}
