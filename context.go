package commandkit

import (
	"context"
	"fmt"
)

type senderCtxKey struct{}

// withSender stashes sender on ctx so parsers that only see a bare
// context.Context (ArgumentType[T].Parse never receives a CommandContext)
// can still reach it, e.g. AggregateContext.Sender.
func withSender(ctx context.Context, sender any) context.Context {
	return context.WithValue(ctx, senderCtxKey{}, sender)
}

func senderFromContext(ctx context.Context) any {
	return ctx.Value(senderCtxKey{})
}

// ParsedNode records that node matched the input span r during a parse
// walk, the per-step trail CommandContext.findSuggestionContext replays.
type ParsedNode struct {
	Node  CommandNode
	Range StringRange
}

// CommandContext is the per-invocation typed store threaded through a
// parse walk and handed to the terminal Command handler (spec.md §4.8). It
// is owned exclusively by the invocation that created it and must not be
// accessed concurrently, though it may be handed across goroutines between
// suspension points.
type CommandContext struct {
	ctx      context.Context
	sender   any
	values   map[untypedKey]any
	flags    map[string]any
	input    *CommandInput
	rootNode CommandNode
	nodes    []ParsedNode
	rng      StringRange
	child    *CommandContext
	command  Command
	modifier RedirectModifier
	forks    bool

	injector *InjectionRegistry
}

// NewCommandContext builds the root CommandContext for one invocation.
func NewCommandContext(ctx context.Context, sender any, in *CommandInput, root CommandNode, injector *InjectionRegistry) *CommandContext {
	return &CommandContext{
		ctx:      ctx,
		sender:   sender,
		input:    in,
		rootNode: root,
		rng:      StringRange{Start: in.Cursor, End: in.Cursor},
		injector: injector,
	}
}

// Context returns the context.Context carried by this invocation (for
// cancellation and deadline propagation into parsers/handlers).
func (c *CommandContext) Context() context.Context { return c.ctx }

// Sender returns the invocation's sender value, typically type-asserted by
// the host to its own sender type.
func (c *CommandContext) Sender() any { return c.sender }

// Input returns the CommandInput this invocation is parsing.
func (c *CommandContext) Input() *CommandInput { return c.input }

// HasNodes reports whether the walk has matched at least one node so far.
func (c *CommandContext) HasNodes() bool { return len(c.nodes) != 0 }

// Nodes returns the matched-node trail in walk order.
func (c *CommandContext) Nodes() []ParsedNode { return append([]ParsedNode(nil), c.nodes...) }

// Range returns the span of input consumed by the walk so far.
func (c *CommandContext) Range() StringRange { return c.rng }

// Flags returns the set of matched flags captured by a FlagParser
// (spec.md §4.8 "flags()").
func (c *CommandContext) Flags() map[string]any { return c.flags }

func (c *CommandContext) withFlag(name string, value any) {
	if c.flags == nil {
		c.flags = map[string]any{}
	}
	c.flags[name] = value
}

// Store saves value under key, overwriting any prior value at the same key.
func Store[T any](cctx *CommandContext, key CloudKey[T], value T) {
	if cctx.values == nil {
		cctx.values = map[untypedKey]any{}
	}
	cctx.values[key.untyped()] = value
}

func (c *CommandContext) withArgument(key untypedKey, value any) {
	if c.values == nil {
		c.values = map[untypedKey]any{}
	}
	c.values[key] = value
}

func (c *CommandContext) getRaw(key untypedKey) (any, bool) {
	if c.values == nil {
		return nil, false
	}
	v, ok := c.values[key]
	return v, ok
}

// Get retrieves the required value stored under key, returning a plain
// error (with no oops code) if it is missing — spec.md §4.8's
// get<T>(CloudKey) "throws if missing".
func Get[T any](cctx *CommandContext, key CloudKey[T]) (T, error) {
	v, ok := GetArgument(cctx, key)
	if !ok {
		return v, fmt.Errorf("commandkit: no value stored for key %q (%s)", key.Name(), key.Token())
	}
	return v, nil
}

// Contains reports whether key has a stored value.
func Contains[T any](cctx *CommandContext, key CloudKey[T]) bool {
	_, ok := cctx.getRaw(key.untyped())
	return ok
}

// Inject resolves a service of type T from the CommandContext's injection
// registry (spec.md §4.8 "inject<T>(Class)"), for handler dependencies that
// don't come from parsed input.
func Inject[T any](cctx *CommandContext, name string) (T, bool) {
	var zero T
	if cctx.injector == nil {
		return zero, false
	}
	return injectFrom[T](cctx.injector, name)
}

func (c *CommandContext) withNode(node CommandNode, r StringRange) {
	c.nodes = append(c.nodes, ParsedNode{Node: node, Range: r})
	c.rng = Encompass(c.rng, r)
	c.modifier = node.RedirectModifier()
	c.forks = node.IsFork()
	if node.Command() != nil {
		c.command = node.Command()
	}
}

// copy deep-copies the mutable parts of c (teacher's CommandContext.Copy),
// used before branching into a candidate child during the parse walk.
func (c *CommandContext) copy() *CommandContext {
	clone := &CommandContext{
		ctx:      c.ctx,
		sender:   c.sender,
		input:    c.input,
		rootNode: c.rootNode,
		nodes:    append([]ParsedNode(nil), c.nodes...),
		rng:      c.rng,
		child:    c.child,
		command:  c.command,
		modifier: c.modifier,
		forks:    c.forks,
		injector: c.injector,
	}
	if c.values != nil {
		clone.values = make(map[untypedKey]any, len(c.values))
		for k, v := range c.values {
			clone.values[k] = v
		}
	}
	if c.flags != nil {
		clone.flags = make(map[string]any, len(c.flags))
		for k, v := range c.flags {
			clone.flags[k] = v
		}
	}
	return clone
}

// buildFor rebuilds c (and recursively its redirect child) against a
// possibly-truncated input string, for the suggestion walk, which replays
// the already-successful parse against a shorter prefix of the same input
// (teacher's CommandContext.build).
func (c *CommandContext) buildFor(truncatedInput string) *CommandContext {
	var child *CommandContext
	if c.child != nil {
		child = c.child.buildFor(truncatedInput)
	}
	clone := c.copy()
	clone.child = child
	clone.input = &CommandInput{Source: truncatedInput, Cursor: len(truncatedInput)}
	return clone
}

// findSuggestionContext locates the node and replacement start offset that
// suggestions for cursor should be anchored on (teacher's
// CommandContext.FindSuggestionContext, spec.md §4.6 "suggestion walk").
func (c *CommandContext) findSuggestionContext(cursor int) (*suggestionContext, error) {
	if c.rng.Start > cursor {
		return nil, newNoSuchCommandError(c.input)
	}
	if c.rng.End < cursor {
		if c.child != nil {
			return c.child.findSuggestionContext(cursor)
		}
		if len(c.nodes) != 0 {
			last := c.nodes[len(c.nodes)-1]
			return &suggestionContext{Parent: last.Node, Start: last.Range.End + 1}, nil
		}
		return &suggestionContext{Parent: c.rootNode, Start: c.rng.Start}, nil
	}
	prev := c.rootNode
	for _, n := range c.nodes {
		if n.Range.Start <= cursor && cursor <= n.Range.End {
			return &suggestionContext{Parent: prev, Start: n.Range.Start}, nil
		}
		prev = n.Node
	}
	return &suggestionContext{Parent: prev, Start: c.rng.Start}, nil
}
