package commandkit

import (
	"context"
	"sort"
)

// CommandTree is the rooted tree of CommandNodes (spec.md §3/§4.6): grows
// monotonically via Insert while the owning CommandManager is REGISTERING,
// is read-only and safely shared once locked.
type CommandTree struct {
	root *RootNode
}

// NewCommandTree builds an empty tree with a synthetic, unnamed root.
func NewCommandTree() *CommandTree {
	return &CommandTree{root: newRootNode()}
}

// Root returns the tree's synthetic root node.
func (t *CommandTree) Root() CommandNode { return t.root }

// Insert grafts node (and, recursively, its own children) onto the tree at
// the root, enforcing T1-T3 ambiguity invariants at every level it merges
// through. On an AmbiguousNodeError the tree is left exactly as it was
// before the call (spec.md §4.6 "Ambiguity detection").
func (t *CommandTree) Insert(node CommandNode) error {
	return mergeNode(t.root, node)
}

func mergeNode(parent CommandNode, incoming CommandNode) error {
	if err := checkAmbiguity(parent, incoming); err != nil {
		return err
	}
	existing, ok := parent.GetChild(incoming.Name())
	if !ok {
		parent.AddChild(incoming)
		return nil
	}
	if incoming.Command() != nil {
		setNodeCommand(existing, incoming.Command())
	}
	for _, child := range incoming.ChildrenOrdered() {
		if err := mergeNode(existing, child); err != nil {
			return err
		}
	}
	return nil
}

// checkAmbiguity enforces T2/T3: a parent may have at most one variable
// (non-literal) child, and an optional variable may never share a parent
// with any other variable sibling. Literal/literal collisions merge rather
// than conflict (re-declaring "test" twice grows one subtree), so T1's
// alias-distinctness is a no-op here — literals carry no alias set in this
// implementation.
func checkAmbiguity(parent CommandNode, incoming CommandNode) error {
	if incoming.isLiteral() {
		return nil
	}
	for _, sib := range parent.ChildrenOrdered() {
		if sib.isLiteral() || sib.Name() == incoming.Name() {
			continue
		}
		return newAmbiguousNodeError(parent, incoming, []CommandNode{sib})
	}
	return nil
}

// ParseResult is the outcome of one CommandTree.Parse call: the populated
// CommandContext, the input cursor state it left off at, and the
// candidate-node failures collected along any paths that didn't pan out.
type ParseResult struct {
	Context *CommandContext
	Input   *CommandInput
	Errs    map[CommandNode]error
}

// firstErr returns an arbitrary error from Errs, used when the walk must
// report "no candidate worked" without a single obviously-best failure.
func (r *ParseResult) firstErr() error {
	for _, err := range r.Errs {
		return err
	}
	return nil
}

// Parse walks the tree against input starting at root, mutating a fresh
// CommandContext as it descends (spec.md §4.6 "Parse walk"). Parsing itself
// never fails outright: inspect the returned ParseResult's Input.CanRead()
// and Errs to determine whether a full command was matched.
func (t *CommandTree) Parse(ctx context.Context, sender any, in *CommandInput, injector *InjectionRegistry) *ParseResult {
	ctx = withSender(ctx, sender)
	root := NewCommandContext(ctx, sender, in, t.root, injector)
	return t.parseNode(ctx, t.root, in, root)
}

func (t *CommandTree) parseNode(ctx context.Context, node CommandNode, original *CommandInput, soFar *CommandContext) *ParseResult {
	errs := map[CommandNode]error{}
	var potentials []*ParseResult
	cursor := original.Cursor

	for _, child := range node.relevantNodes(original) {
		if !child.CanUse(soFar) {
			// Fatal at this node: no sibling candidate is tried, and
			// parseSelf is never called on it.
			return &ParseResult{Context: soFar, Input: original, Errs: map[CommandNode]error{child: newNoPermissionError(child)}}
		}
		if child.Command() != nil {
			if want := child.SenderType(); !want.IsZero() && want != tokenOfValue(soFar.sender) {
				err := newInvalidCommandSenderError(child, want.String(), tokenOfValue(soFar.sender).String())
				return &ParseResult{Context: soFar, Input: original, Errs: map[CommandNode]error{child: err}}
			}
		}
		candidateCtx := soFar.copy()
		candidateIn := &CommandInput{Source: original.Source, Cursor: original.Cursor}

		err := child.parseSelf(ctx, candidateIn, candidateCtx)
		if err == nil && candidateIn.CanRead() && candidateIn.Peek() != ArgumentSeparator {
			err = newInvalidSyntaxError(candidateIn, child.Name())
		}
		if err != nil {
			errs[child] = err
			candidateIn.Cursor = cursor
			continue
		}

		redirect := child.Redirect()
		needed := 2
		if redirect != nil {
			needed = 1
		}
		if candidateIn.CanReadLen(needed) {
			candidateIn.Skip()
			if redirect != nil {
				childCtx := NewCommandContext(ctx, soFar.sender, candidateIn, redirect, soFar.injector)
				sub := t.parseNode(ctx, redirect, candidateIn, childCtx)
				candidateCtx.child = sub.Context
				potentials = append(potentials, &ParseResult{Context: candidateCtx, Input: sub.Input, Errs: sub.Errs})
				continue
			}
			potentials = append(potentials, t.parseNode(ctx, child, candidateIn, candidateCtx))
		} else if redirect != nil {
			// Nothing left to parse into the redirect's own children: adopt its
			// terminal command directly rather than leaving candidateCtx commandless.
			candidateCtx.command = redirect.Command()
			if candidateCtx.modifier == nil {
				candidateCtx.modifier = redirect.RedirectModifier()
			}
			potentials = append(potentials, &ParseResult{Context: candidateCtx, Input: candidateIn})
		} else if candidateIn.IsEmpty() {
			// Input ran out exactly here, but child may still have optional
			// children carrying their own defaults (and possibly the handler
			// itself, since attachChain attaches it to the deepest node): keep
			// descending rather than leaving candidateCtx commandless
			// (spec.md §4.6 "Parse walk" step 2).
			potentials = append(potentials, t.parseNode(ctx, child, candidateIn, candidateCtx))
		} else {
			potentials = append(potentials, &ParseResult{Context: candidateCtx, Input: candidateIn})
		}
	}

	if len(potentials) != 0 {
		if len(potentials) > 1 {
			sort.SliceStable(potentials, func(i, j int) bool {
				a, b := potentials[i], potentials[j]
				if !a.Input.CanRead() && b.Input.CanRead() {
					return true
				}
				if a.Input.CanRead() && !b.Input.CanRead() {
					return false
				}
				if len(a.Errs) == 0 && len(b.Errs) != 0 {
					return true
				}
				if len(a.Errs) != 0 && len(b.Errs) == 0 {
					return false
				}
				return false
			})
		}
		return potentials[0]
	}

	if len(errs) == 0 && original.CanRead() {
		// No child was even a candidate: the token matched none of the
		// literal children and there is no variable child to try.
		for _, child := range node.ChildrenOrdered() {
			if child.isLiteral() {
				errs[child] = newUnknownLiteralError(original, child.Name())
			}
		}
	}
	return &ParseResult{Context: soFar, Input: original, Errs: errs}
}
