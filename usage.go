package commandkit

import (
	"bytes"
)

// AllUsage lists every executable path reachable from node, one line per
// command, in "simple" form: literals verbatim, arguments as `<name>`. Pass
// CommandManager.Tree().Root() as node for whole-tree output. A line is
// produced for each node that carries a command; a chain built by
// CommandManager.Register carries its handler only on the deepest node, so
// its optional components do not add shorter lines.
//
// Paths are relative to node; node's own path to the root is not prepended,
// since a node may be reachable from more than one place via a redirect.
func AllUsage(sctx *CommandContext, node CommandNode, restricted bool) []string {
	return allUsage(sctx, node, nil, "", restricted)
}

func allUsage(sctx *CommandContext, node CommandNode, result []string, prefix string, restricted bool) []string {
	if restricted && !node.CanUse(sctx) {
		return result
	}
	if node.Command() != nil {
		result = append(result, prefix)
	}
	var b bytes.Buffer
	if node.Redirect() != nil {
		if prefix == "" {
			b.WriteString(usageText(node))
		} else {
			b.WriteString(prefix)
		}
		b.WriteRune(ArgumentSeparator)
		b.WriteString("-> ")
		b.WriteString(usageText(node.Redirect()))
		result = append(result, b.String())
		return result
	}
	for _, child := range node.ChildrenOrdered() {
		b.Reset()
		if prefix != "" {
			b.WriteString(prefix)
			b.WriteRune(ArgumentSeparator)
		}
		b.WriteString(usageText(child))
		result = allUsage(sctx, child, result, b.String(), restricted)
	}
	return result
}

const (
	UsageOptionalOpen  rune = '['
	UsageOptionalClose rune = ']'
	UsageRequiredOpen  rune = '('
	UsageRequiredClose rune = ')'
	UsageOr            rune = '|'
)

// SmartUsage gets the one-line "smart" usage string (mixing `<param>`,
// literal, `[optional]`, and `(either|or)`) for each direct child of node,
// restricted to what sctx can use.
func SmartUsage(sctx *CommandContext, node CommandNode) map[CommandNode]string {
	result := map[CommandNode]string{}
	optional := node.Command() != nil
	for _, child := range node.ChildrenOrdered() {
		usage := smartUsage(sctx, child, optional, false)
		if usage != "" {
			result[child] = usage
		}
	}
	return result
}

func smartUsage(sctx *CommandContext, node CommandNode, optional, deep bool) string {
	if !node.CanUse(sctx) {
		return ""
	}

	var b bytes.Buffer
	if optional {
		b.WriteRune(UsageOptionalOpen)
		b.WriteString(usageText(node))
		b.WriteRune(UsageOptionalClose)
	} else {
		b.WriteString(usageText(node))
	}
	if deep {
		return b.String()
	}

	openChar, closeChar := UsageRequiredOpen, UsageRequiredClose
	childOptional := node.Command() != nil
	if childOptional {
		openChar, closeChar = UsageOptionalOpen, UsageOptionalClose
	}

	if node.Redirect() != nil {
		b.WriteRune(ArgumentSeparator)
		b.WriteString("-> ")
		b.WriteString(usageText(node.Redirect()))
		return b.String()
	}

	var children []CommandNode
	for _, child := range node.ChildrenOrdered() {
		if child.CanUse(sctx) {
			children = append(children, child)
		}
	}
	switch {
	case len(children) == 1:
		usage := smartUsage(sctx, children[0], childOptional, childOptional)
		if usage != "" {
			b.WriteRune(ArgumentSeparator)
			b.WriteString(usage)
		}
	case len(children) > 1:
		var childUsage []string
		seen := map[string]struct{}{}
		for _, child := range children {
			usage := smartUsage(sctx, child, optional, true)
			if usage == "" {
				continue
			}
			if _, ok := seen[usage]; !ok {
				childUsage = append(childUsage, usage)
				seen[usage] = struct{}{}
			}
		}
		if len(childUsage) == 1 {
			b.WriteRune(ArgumentSeparator)
			if childOptional {
				b.WriteRune(UsageOptionalOpen)
				b.WriteString(childUsage[0])
				b.WriteRune(UsageOptionalClose)
			} else {
				b.WriteString(childUsage[0])
			}
		} else if len(childUsage) > 1 {
			var s bytes.Buffer
			s.WriteRune(openChar)
			for i, child := range children {
				if i != 0 {
					s.WriteRune(UsageOr)
				}
				s.WriteString(usageText(child))
			}
			s.WriteRune(closeChar)
			b.WriteRune(ArgumentSeparator)
			b.Write(s.Bytes())
		}
	}
	return b.String()
}

// usageText renders one node as it appears in a usage line: the literal
// text itself, or `<name>` for an argument node.
func usageText(node CommandNode) string {
	if a, ok := node.(*ArgumentNode); ok {
		return "<" + a.Name() + ">"
	}
	return node.Name()
}
