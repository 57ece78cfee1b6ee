package ptree

import (
	"strconv"
	"strings"

	"github.com/cnf/structhash"
)

// Node is a node of a parse tree.
type Node struct {
	Payload  string  // terminal text or non-terminal name
	Terminal bool    // is this a terminal leaf?
	Children []*Node // empty for terminals
}

// Leaf creates a terminal node.
func Leaf(text string) *Node {
	return &Node{Payload: text, Terminal: true}
}

// Inner creates a non-terminal node with the given children.
func Inner(payload string, children ...*Node) *Node {
	return &Node{Payload: payload, Children: children}
}

// Tokenize splits an example into one terminal leaf per character.
func Tokenize(example string) []*Node {
	leaves := make([]*Node, 0, len(example))
	for _, r := range example {
		leaves = append(leaves, Leaf(string(r)))
	}
	return leaves
}

// IsLeaf is true for nodes without children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// ChildPayloads returns the payloads of n's children. For a non-terminal
// node this is the body of the rule applied at n.
func (n *Node) ChildPayloads() []string {
	p := make([]string, len(n.Children))
	for i, c := range n.Children {
		p[i] = c.Payload
	}
	return p
}

// Copy returns a deep copy of the tree rooted at n.
func (n *Node) Copy() *Node {
	if n == nil {
		return nil
	}
	root := &Node{Payload: n.Payload, Terminal: n.Terminal}
	type pair struct{ src, dst *Node }
	stack := []pair{{n, root}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(p.src.Children) == 0 {
			continue
		}
		p.dst.Children = make([]*Node, len(p.src.Children))
		for i, c := range p.src.Children {
			d := &Node{Payload: c.Payload, Terminal: c.Terminal}
			p.dst.Children[i] = d
			stack = append(stack, pair{c, d})
		}
	}
	return root
}

// Equal compares two trees structurally: payload, terminal flag and children.
func (n *Node) Equal(other *Node) bool {
	type pair struct{ a, b *Node }
	stack := []pair{{n, other}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.a == nil || p.b == nil {
			if p.a != p.b {
				return false
			}
			continue
		}
		if p.a.Payload != p.b.Payload || p.a.Terminal != p.b.Terminal ||
			len(p.a.Children) != len(p.b.Children) {
			return false
		}
		for i := range p.a.Children {
			stack = append(stack, pair{p.a.Children[i], p.b.Children[i]})
		}
	}
	return true
}

// Hash returns a structural hash of the tree. Equal trees have equal hashes.
func (n *Node) Hash() string {
	h, err := structhash.Hash(struct{ Tree string }{n.String()}, 1)
	if err != nil {
		tracer().Errorf("cannot hash tree: %v", err)
		return n.String()
	}
	return h
}

// Walk visits the nodes of the tree in pre-order, left to right. Children are
// read after visit returns, so visit may replace them.
func (n *Node) Walk(visit func(*Node)) {
	if n == nil {
		return
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(node)
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}
	}
}

// Leaves returns the terminal leaves of the tree, left to right.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.Walk(func(node *Node) {
		if node.Terminal {
			leaves = append(leaves, node)
		}
	})
	return leaves
}

// DerivedString is the concatenation of the terminal leaves.
func (n *Node) DerivedString() string {
	var b strings.Builder
	n.Walk(func(node *Node) {
		if node.Terminal {
			b.WriteString(node.Payload)
		}
	})
	return b.String()
}

// ContainsNonterminal is true if a non-terminal node with payload nt occurs
// in the tree.
func (n *Node) ContainsNonterminal(nt string) bool {
	found := false
	n.Walk(func(node *Node) {
		if !node.Terminal && node.Payload == nt {
			found = true
		}
	})
	return found
}

// Nonterminals returns the set of non-terminal payloads in the tree.
func (n *Node) Nonterminals() map[string]bool {
	nts := make(map[string]bool)
	n.Walk(func(node *Node) {
		if !node.Terminal {
			nts[node.Payload] = true
		}
	})
	return nts
}

// String returns the tree as an s-expression, with terminals quoted:
//
//     (start (t1 "3") (t2 "+") (t1 "4"))
//
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var b strings.Builder
	type frame struct {
		node *Node
		next int
	}
	stack := []frame{{node: n}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == 0 {
			if top.node.Terminal {
				b.WriteString(strconv.Quote(top.node.Payload))
				stack = stack[:len(stack)-1]
				continue
			}
			b.WriteByte('(')
			b.WriteString(top.node.Payload)
		}
		if top.next < len(top.node.Children) {
			b.WriteByte(' ')
			child := top.node.Children[top.next]
			top.next++
			stack = append(stack, frame{node: child})
			continue
		}
		b.WriteByte(')')
		stack = stack[:len(stack)-1]
	}
	return b.String()
}
