package earley

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/gconf"
)

// Node is a node of a derivation tree. Terminal nodes have Rule == -1 and no
// children.
type Node struct {
	Symbol   Symbol
	Rule     int    // serial of the reduced rule
	Span     [2]int // input positions (from…to)
	Children []*Node
}

// Text returns the input text the node covers.
func (n *Node) Text(input string) string {
	return input[n.Span[0]:n.Span[1]]
}

func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n.Symbol.Terminal {
		b.WriteString(n.Symbol.String())
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Symbol.Value)
	for _, c := range n.Children {
		b.WriteByte(' ')
		c.write(b)
	}
	b.WriteByte(')')
}

// --- Tree Walker -----------------------------------------------------------

// Tree returns one derivation tree for the most recent, successful parse.
// The root node represents the start symbol. If the last parse did not accept
// its input, Tree returns nil.
//
// For ambiguous inputs the walk prefers, for each symbol, the completed item
// with the lowest origin, then the lowest rule serial.
func (p *Parser) Tree() *Node {
	if !p.accept {
		return nil
	}
	p.completed = p.collectCompletions()
	root, ok := p.walk(spanrule{rule: 0, from: 0, to: len(p.input)}, ruleset{})
	if !ok {
		tracer().Debugf("final completions: %s", p.itemSetString(p.completed[len(p.input)]))
		stuck(fmt.Sprintf("no derivation found for accepted input %q", p.input))
		return nil
	}
	return root.Children[0]
}

// collectCompletions indexes completed items by the set they end in.
func (p *Parser) collectCompletions() [][]item {
	completed := make([][]item, len(p.states))
	for i, S := range p.states {
		for _, it := range S.items {
			if it.dot == len(p.g.rules[it.rule].RHS) {
				completed[i] = append(completed[i], it)
			}
		}
		sortCompletions(completed[i])
	}
	return completed
}

func sortCompletions(items []item) {
	for i := 1; i < len(items); i++ { // insertion sort, sets are small
		for j := i; j > 0 && less(items[j], items[j-1]); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}

func less(a, b item) bool {
	if a.origin != b.origin {
		return a.origin < b.origin
	}
	return a.rule < b.rule
}

// walk reduces rule sr.rule over span sr.from…sr.to.
func (p *Parser) walk(sr spanrule, trys ruleset) (*Node, bool) {
	r := p.g.rules[sr.rule]
	trys = trys.add(sr)
	defer trys.delete(sr)
	children, ok := p.matchRHS(r.RHS, sr.from, sr.to, trys)
	if !ok {
		return nil, false
	}
	tracer().Debugf("Tree node    %d|-----%s-----|%d", sr.from, r.LHS, sr.to)
	return &Node{
		Symbol:   NT(r.LHS),
		Rule:     r.Serial,
		Span:     [2]int{sr.from, sr.to},
		Children: children,
	}, true
}

// matchRHS matches the symbols of rhs against from…to, right to left, with
// backtracking over the completed items of the chart.
func (p *Parser) matchRHS(rhs []Symbol, from, to int, trys ruleset) ([]*Node, bool) {
	if len(rhs) == 0 {
		return []*Node{}, from == to
	}
	B := rhs[len(rhs)-1]
	if B.Terminal {
		l := len(B.Value)
		if to-l < from || p.input[to-l:to] != B.Value {
			return nil, false
		}
		rest, ok := p.matchRHS(rhs[:len(rhs)-1], from, to-l, trys)
		if !ok {
			return nil, false
		}
		leaf := &Node{Symbol: B, Rule: -1, Span: [2]int{to - l, to}}
		return append(rest, leaf), true
	}
	for _, c := range p.completed[to] {
		if c.origin < from || p.g.rules[c.rule].LHS != B.Value {
			continue
		}
		sr := spanrule{rule: c.rule, from: c.origin, to: to}
		if trys.contains(sr) {
			continue // we are expanding this reduction further up
		}
		rest, ok := p.matchRHS(rhs[:len(rhs)-1], from, c.origin, trys)
		if !ok {
			continue
		}
		child, ok := p.walk(sr, trys)
		if !ok {
			continue
		}
		return append(rest, child), true
	}
	return nil, false
}

func stuck(msg string) bool {
	tracer().Errorf(msg)
	if gconf.GetBool("panic-on-parser-stuck") {
		panic(`Earley-parser is stuck.

Configuration flag panic-on-parser-stuck is set to true. It is aimed at helping
to debug a parser and do a post-mortem of why it got stuck. However, if this is
a production environment and you did not expect this to panic, please unset
panic-on-parser-stuck to its default (false).

` + msg)
	}
	return true
}

// Leaves returns the terminal nodes of a derivation tree, left to right.
func Leaves(root *Node) []*Node {
	var leaves []*Node
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Symbol.Terminal {
			leaves = append(leaves, n)
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return leaves
}
