package earley

import (
	"fmt"
	"strings"

	"golang.org/x/tools/container/intsets"
)

// item is an Earley item [A ➞ α • β, origin].
type item struct {
	rule   int
	dot    int
	origin int
}

// state is an Earley set.
type state struct {
	items     []item
	index     map[item]struct{}
	predicted intsets.Sparse // dense indices of non-terminals already predicted
}

func newState() *state {
	return &state{index: make(map[item]struct{})}
}

func (S *state) add(it item) bool {
	if _, ok := S.index[it]; ok {
		return false
	}
	S.index[it] = exists
	S.items = append(S.items, it)
	return true
}

// Parser is an Earley parser for a compiled grammar. A parser may be used for
// any number of consecutive parses; it keeps the chart of the most recent one.
// Parsers are not safe for concurrent use.
type Parser struct {
	g         *Grammar
	input     string
	states    []*state
	accept    bool
	completed [][]item // completed items per set, for tree walks
}

// NewParser creates a parser for grammar g.
func NewParser(g *Grammar) *Parser {
	return &Parser{g: g}
}

// Grammar returns the parser's grammar.
func (p *Parser) Grammar() *Grammar {
	return p.g
}

// Parse recognizes input and returns true if input is in the language of the
// parser's grammar.
func (p *Parser) Parse(input string) bool {
	p.input = input
	p.completed = nil
	n := len(input)
	p.states = make([]*state, n+1)
	for i := range p.states {
		p.states[i] = newState()
	}
	p.states[0].add(item{rule: 0})
	for i := 0; i <= n; i++ {
		S := p.states[i]
		for k := 0; k < len(S.items); k++ { // S grows while we iterate
			it := S.items[k]
			r := p.g.rules[it.rule]
			if it.dot == len(r.RHS) {
				p.complete(it, r, i)
				continue
			}
			sym := r.RHS[it.dot]
			if sym.Terminal {
				p.scan(it, sym, i)
			} else {
				p.predict(it, sym, i)
			}
		}
		p.dumpState(i)
	}
	p.accept = false
	if len(p.states[n].items) > 0 {
		_, p.accept = p.states[n].index[item{rule: 0, dot: 1, origin: 0}]
	}
	tracer().Debugf("parse of %q: accept=%v", input, p.accept)
	return p.accept
}

func (p *Parser) scan(it item, sym Symbol, i int) {
	if strings.HasPrefix(p.input[i:], sym.Value) {
		next := it
		next.dot++
		p.states[i+len(sym.Value)].add(next)
	}
}

func (p *Parser) predict(it item, sym Symbol, i int) {
	S := p.states[i]
	nt := p.g.ntIndex[sym.Value]
	if !S.predicted.Has(nt) {
		S.predicted.Insert(nt)
		for _, serial := range p.g.byLHS[sym.Value] {
			S.add(item{rule: serial, dot: 0, origin: i})
		}
	}
	if p.g.nullable.Has(nt) {
		next := it
		next.dot++
		S.add(next)
	}
}

func (p *Parser) complete(it item, r *Rule, i int) {
	O := p.states[it.origin]
	for k := 0; k < len(O.items); k++ {
		jt := O.items[k]
		rr := p.g.rules[jt.rule]
		if jt.dot < len(rr.RHS) && !rr.RHS[jt.dot].Terminal && rr.RHS[jt.dot].Value == r.LHS {
			next := jt
			next.dot++
			p.states[i].add(next)
		}
	}
}

// Accepted returns the result of the most recent parse.
func (p *Parser) Accepted() bool {
	return p.accept
}

func (p *Parser) itemString(it item) string {
	r := p.g.rules[it.rule]
	var b strings.Builder
	b.WriteString(r.LHS)
	b.WriteString(" ➞")
	for n, s := range r.RHS {
		if n == it.dot {
			b.WriteString(" •")
		}
		b.WriteByte(' ')
		b.WriteString(s.String())
	}
	if it.dot == len(r.RHS) {
		b.WriteString(" •")
	}
	b.WriteString(fmt.Sprintf("  (%d)", it.origin))
	return b.String()
}
