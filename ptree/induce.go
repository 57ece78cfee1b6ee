package ptree

import (
	"github.com/npillmayer/grinfer/grammar"
)

// BuildGrammar returns the grammar induced by trees: every non-terminal node
// contributes the rule payload ➞ child payloads. The start symbol is the
// payload of the first tree's root.
func BuildGrammar(trees []*Node) *grammar.Grammar {
	start := grammar.StartName
	if len(trees) > 0 && trees[0] != nil {
		start = trees[0].Payload
	}
	g := grammar.NewWithStart(start)
	for _, t := range trees {
		t.Walk(func(n *Node) {
			if n.Terminal {
				return
			}
			g.AddBody(n.Payload, Body(n))
		})
	}
	return g
}

// Body returns the grammar body applied at non-terminal node n.
func Body(n *Node) grammar.Body {
	b := make(grammar.Body, len(n.Children))
	for i, c := range n.Children {
		if c.Terminal {
			b[i] = grammar.T(c.Payload)
		} else {
			b[i] = grammar.N(c.Payload)
		}
	}
	return b
}

// Relabel returns a copy of tree where every non-terminal payload found in
// labels is replaced by its mapping.
func Relabel(tree *Node, labels map[string]string) *Node {
	c := tree.Copy()
	c.Walk(func(n *Node) {
		if n.Terminal {
			return
		}
		if l, ok := labels[n.Payload]; ok {
			n.Payload = l
		}
	})
	return c
}

// CollapseUnitChains removes indirections x ➞ x, i.e. nodes with a single
// child carrying the same payload, in place.
func CollapseUnitChains(tree *Node) {
	tree.Walk(func(n *Node) {
		for len(n.Children) == 1 && !n.Children[0].Terminal && n.Children[0].Payload == n.Payload {
			n.Children = n.Children[0].Children
		}
	})
}
