package commandkit

import (
	"context"
	"sort"
	"strings"
)

// Command is the terminal handler attached to the node that owns a
// complete command path. It runs once the tree walk reaches a leaf with no
// remaining input.
type Command func(ctx context.Context, cctx *CommandContext) error

// RequireFn gates entry to a node: CanUse returns false if it rejects cctx
// (typically a permission or capability check).
type RequireFn func(cctx *CommandContext) bool

// RedirectModifier transforms one parsed context into the one or more
// contexts a redirect/fork should continue with.
type RedirectModifier func(cctx *CommandContext) ([]*CommandContext, error)

// CommandNode is one node of the CommandTree: a literal, a parsed
// component, or the synthetic root. Implementations are selected by walk
// and insertion code through this capability surface, never by concrete
// type switch.
type CommandNode interface {
	Name() string
	ChildrenOrdered() []CommandNode
	GetChild(name string) (CommandNode, bool)
	AddChild(child CommandNode)
	Command() Command
	Requirement() RequireFn
	SenderType() TypeToken
	Redirect() CommandNode
	RedirectModifier() RedirectModifier
	IsFork() bool
	CanUse(cctx *CommandContext) bool

	isLiteral() bool
	relevantNodes(in *CommandInput) []CommandNode
	parseSelf(ctx context.Context, in *CommandInput, cctx *CommandContext) error
	listSuggestions(ctx context.Context, sctx *CommandContext, b *SuggestionsBuilder) Suggestions
}

// nodeBase implements the bookkeeping every CommandNode shares: ordered
// children (literals-before-variables, per CommandTree's T1-T3 priority
// order), and the execution/requirement/redirect metadata a builder sets.
type nodeBase struct {
	children        StringCommandNodeMap
	literalChildren StringCommandNodeMap
	command         Command
	requirement     RequireFn
	senderType      TypeToken
	redirect        CommandNode
	modifier        RedirectModifier
	forks           bool
}

func newNodeBase() nodeBase {
	return nodeBase{children: NewStringCommandNodeMap(), literalChildren: NewStringCommandNodeMap()}
}

func (n *nodeBase) ChildrenOrdered() []CommandNode {
	names := n.literalChildren.Keys()
	sort.Strings(names)
	out := make([]CommandNode, 0, n.children.Size())
	for _, name := range names {
		c, _ := n.literalChildren.Get(name)
		out = append(out, c)
	}
	for _, c := range n.children.Values() {
		if !c.isLiteral() {
			out = append(out, c)
		}
	}
	return out
}

func (n *nodeBase) GetChild(name string) (CommandNode, bool) { return n.children.Get(name) }

// AddChild inserts child, or if a child of the same name already exists,
// merges child's own children into it (teacher's ArgumentBuilder.build
// idiom: building the same path twice grows the existing node instead of
// shadowing it). Ambiguity is enforced by CommandTree.Insert before this is
// called, not here.
func (n *nodeBase) AddChild(child CommandNode) {
	if existing, ok := n.children.Get(child.Name()); ok {
		for _, c := range child.ChildrenOrdered() {
			existing.AddChild(c)
		}
		if child.Command() != nil {
			setNodeCommand(existing, child.Command())
		}
		return
	}
	n.children.Put(child.Name(), child)
	if child.isLiteral() {
		n.literalChildren.Put(child.Name(), child)
	}
}

func (n *nodeBase) Command() Command                 { return n.command }
func (n *nodeBase) Requirement() RequireFn           { return n.requirement }
func (n *nodeBase) SenderType() TypeToken            { return n.senderType }
func (n *nodeBase) Redirect() CommandNode            { return n.redirect }
func (n *nodeBase) RedirectModifier() RedirectModifier { return n.modifier }
func (n *nodeBase) IsFork() bool                     { return n.forks }

func (n *nodeBase) CanUse(cctx *CommandContext) bool {
	if n.requirement == nil {
		return true
	}
	return n.requirement(cctx)
}

func (n *nodeBase) setForward(target CommandNode, modifier RedirectModifier, fork bool) *nodeBase {
	if n.children.Size() != 0 {
		return n // cannot forward a node that already has children
	}
	n.redirect = target
	n.modifier = modifier
	n.forks = fork
	return n
}

// relevantNodes returns the children of n worth branching to for the token
// starting at in's cursor: the one matching literal if any, else every
// non-literal (variable/flag) child in insertion order.
func (n *nodeBase) relevantNodes(in *CommandInput) []CommandNode {
	if n.literalChildren.Size() != 0 {
		start := in.Cursor
		for in.CanRead() && in.Peek() != ArgumentSeparator {
			in.Skip()
		}
		text := in.Source[start:in.Cursor]
		in.Cursor = start
		if child, ok := n.literalChildren.Get(text); ok {
			return []CommandNode{child}
		}
	}
	var variable []CommandNode
	for _, c := range n.children.Values() {
		if !c.isLiteral() {
			variable = append(variable, c)
		}
	}
	return variable
}

func setNodeCommand(n CommandNode, cmd Command) {
	switch t := n.(type) {
	case *LiteralNode:
		t.command = cmd
	case *ArgumentNode:
		t.command = cmd
	case *RootNode:
		t.command = cmd
	}
}

func setNodeSenderType(n CommandNode, token TypeToken) {
	switch t := n.(type) {
	case *LiteralNode:
		t.senderType = token
	case *ArgumentNode:
		t.senderType = token
	case *RootNode:
		t.senderType = token
	}
}

// LiteralNode matches one fixed keyword (spec.md §3 "component-type = LITERAL").
type LiteralNode struct {
	nodeBase
	literal     string
	lowerCached string
}

// NewLiteral builds an unattached LiteralNode; use Then/Executes/etc to
// configure it before CommandTree.Insert.
func NewLiteral(literal string) *LiteralNode {
	n := &LiteralNode{literal: literal}
	n.nodeBase = newNodeBase()
	return n
}

func (n *LiteralNode) Name() string    { return n.literal }
func (n *LiteralNode) isLiteral() bool { return true }

func (n *LiteralNode) Then(children ...CommandNode) *LiteralNode {
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}
func (n *LiteralNode) Executes(cmd Command) *LiteralNode  { n.command = cmd; return n }
func (n *LiteralNode) Requires(fn RequireFn) *LiteralNode { n.requirement = fn; return n }
func (n *LiteralNode) Redirect(target CommandNode) *LiteralNode {
	n.setForward(target, nil, false)
	return n
}
func (n *LiteralNode) RedirectWithModifier(target CommandNode, modifier RedirectModifier) *LiteralNode {
	n.setForward(target, modifier, false)
	return n
}
func (n *LiteralNode) Fork(target CommandNode, modifier RedirectModifier) *LiteralNode {
	n.setForward(target, modifier, true)
	return n
}

func (n *LiteralNode) parseSelf(_ context.Context, in *CommandInput, cctx *CommandContext) error {
	start := in.Cursor
	end := n.tryConsume(in)
	if end < 0 {
		return newUnknownLiteralError(in, n.literal)
	}
	cctx.withNode(n, StringRange{Start: start, End: end})
	return nil
}

func (n *LiteralNode) tryConsume(in *CommandInput) int {
	start := in.Cursor
	if in.CanReadLen(len(n.literal)) {
		end := start + len(n.literal)
		if in.Source[start:end] == n.literal {
			in.Cursor = end
			if !in.CanRead() || in.Peek() == ArgumentSeparator {
				return end
			}
			in.Cursor = start
		}
	}
	return -1
}

func (n *LiteralNode) listSuggestions(_ context.Context, _ *CommandContext, b *SuggestionsBuilder) Suggestions {
	if n.lowerCached == "" {
		n.lowerCached = strings.ToLower(n.literal)
	}
	if strings.HasPrefix(n.lowerCached, b.RemainingLowerCase()) {
		b.Suggest(n.literal)
		return b.Build()
	}
	return emptySuggestions
}

// ArgumentNode parses a CommandComponent's value (required or optional
// variable, spec.md §3).
type ArgumentNode struct {
	nodeBase
	component *CommandComponent
}

// NewArgument builds an unattached ArgumentNode wrapping component.
func NewArgument(component *CommandComponent) *ArgumentNode {
	n := &ArgumentNode{component: component}
	n.nodeBase = newNodeBase()
	return n
}

func (n *ArgumentNode) Name() string                  { return n.component.Name() }
func (n *ArgumentNode) Component() *CommandComponent  { return n.component }
func (n *ArgumentNode) isLiteral() bool                { return false }

func (n *ArgumentNode) Then(children ...CommandNode) *ArgumentNode {
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}
func (n *ArgumentNode) Executes(cmd Command) *ArgumentNode  { n.command = cmd; return n }
func (n *ArgumentNode) Requires(fn RequireFn) *ArgumentNode { n.requirement = fn; return n }
func (n *ArgumentNode) Redirect(target CommandNode) *ArgumentNode {
	n.setForward(target, nil, false)
	return n
}
func (n *ArgumentNode) RedirectWithModifier(target CommandNode, modifier RedirectModifier) *ArgumentNode {
	n.setForward(target, modifier, false)
	return n
}
func (n *ArgumentNode) Fork(target CommandNode, modifier RedirectModifier) *ArgumentNode {
	n.setForward(target, modifier, true)
	return n
}

func (n *ArgumentNode) parseSelf(ctx context.Context, in *CommandInput, cctx *CommandContext) error {
	start := in.Cursor
	if in.IsEmpty() && n.component.IsOptional() {
		cctx.withArgument(n.component.untypedKey(), n.component.defaultValue)
		cctx.withNode(n, StringRange{Start: start, End: start})
		return nil
	}
	value, err := n.component.parse(ctx, in)
	if err != nil {
		// A flag-set component only ever fails once it has committed to a
		// "-"-prefixed token (FlagParser.Parse returns cleanly with no flags
		// when none is present); that failure is a genuine structured error,
		// never "argument absent", so it must not be masked by the default.
		if n.component.IsOptional() && !n.component.isFlagSet {
			in.Cursor = start
			cctx.withArgument(n.component.untypedKey(), n.component.defaultValue)
			cctx.withNode(n, StringRange{Start: start, End: start})
			return nil
		}
		return err
	}
	cctx.withArgument(n.component.untypedKey(), value)
	if n.component.isFlagSet {
		if flags, ok := value.(map[string]any); ok {
			for name, v := range flags {
				cctx.withFlag(name, v)
			}
		}
	}
	cctx.withNode(n, StringRange{Start: start, End: in.Cursor})
	return nil
}

func (n *ArgumentNode) listSuggestions(ctx context.Context, sctx *CommandContext, b *SuggestionsBuilder) Suggestions {
	items := n.component.listSuggestions(ctx, sctx, b)
	return CreateSuggestions(b.Input, items)
}

// RootNode is the tree's synthetic, unnamed root (spec.md §3 "a rooted
// tree with a synthetic root whose children are top-level literals").
type RootNode struct{ nodeBase }

func newRootNode() *RootNode {
	n := &RootNode{}
	n.nodeBase = newNodeBase()
	return n
}

func (n *RootNode) Name() string    { return "" }
func (n *RootNode) isLiteral() bool { return false }
func (n *RootNode) parseSelf(context.Context, *CommandInput, *CommandContext) error {
	return nil
}
func (n *RootNode) listSuggestions(context.Context, *CommandContext, *SuggestionsBuilder) Suggestions {
	return emptySuggestions
}
