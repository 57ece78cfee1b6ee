package earley

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/tools/container/intsets"
)

// Symbol is a symbol on the right hand side of a rule.
type Symbol struct {
	Terminal bool
	Value    string // literal text for terminals, name for non-terminals
}

// Lit creates a terminal symbol for a literal.
func Lit(text string) Symbol {
	return Symbol{Terminal: true, Value: text}
}

// NT creates a non-terminal symbol.
func NT(name string) Symbol {
	return Symbol{Value: name}
}

func (s Symbol) String() string {
	if s.Terminal {
		return strconv.Quote(s.Value)
	}
	return s.Value
}

// Rule is a production LHS → RHS. An empty RHS denotes an epsilon-production.
type Rule struct {
	Serial int
	LHS    string
	RHS    []Symbol
}

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.LHS)
	b.WriteString(" ➞")
	for _, s := range r.RHS {
		b.WriteByte(' ')
		b.WriteString(s.String())
	}
	return b.String()
}

// startName is the LHS of the synthetic top-level rule 0.
const startName = "S'"

// Grammar is a compiled grammar, ready to drive Earley parsers.
type Grammar struct {
	start    string
	rules    []*Rule
	byLHS    map[string][]int // LHS → rule serials
	ntIndex  map[string]int   // non-terminal → dense index
	nullable intsets.Sparse   // dense indices of nullable non-terminals
}

// NewGrammar compiles a set of rules. Rule serials are re-assigned, starting
// at 1; rule 0 is the synthetic rule S' ➞ start.
//
// NewGrammar returns an error if the start symbol is undefined or if any rule
// references an undefined non-terminal.
func NewGrammar(start string, rules []Rule) (*Grammar, error) {
	g := &Grammar{
		start:   start,
		byLHS:   make(map[string][]int),
		ntIndex: make(map[string]int),
	}
	g.addRule(startName, []Symbol{NT(start)})
	for _, r := range rules {
		if r.LHS == startName {
			return nil, fmt.Errorf("non-terminal name %s is reserved", startName)
		}
		rhs := make([]Symbol, 0, len(r.RHS))
		for _, s := range r.RHS {
			if s.Terminal && s.Value == "" {
				continue // epsilon
			}
			rhs = append(rhs, s)
		}
		g.addRule(r.LHS, rhs)
	}
	if _, ok := g.byLHS[start]; !ok {
		return nil, fmt.Errorf("start symbol %s has no rules", start)
	}
	for _, r := range g.rules {
		for _, s := range r.RHS {
			if !s.Terminal {
				if _, ok := g.byLHS[s.Value]; !ok {
					return nil, fmt.Errorf("undefined non-terminal %s in rule %v", s.Value, r)
				}
			}
		}
	}
	g.computeNullable()
	tracer().Debugf("compiled grammar with %d rules, start = %s", len(g.rules), start)
	return g, nil
}

func (g *Grammar) addRule(lhs string, rhs []Symbol) {
	r := &Rule{Serial: len(g.rules), LHS: lhs, RHS: rhs}
	g.rules = append(g.rules, r)
	g.byLHS[lhs] = append(g.byLHS[lhs], r.Serial)
	if _, ok := g.ntIndex[lhs]; !ok {
		g.ntIndex[lhs] = len(g.ntIndex)
	}
}

// Rule returns rule number n.
func (g *Grammar) Rule(n int) *Rule {
	if n < 0 || n >= len(g.rules) {
		return nil
	}
	return g.rules[n]
}

// Size returns the number of rules, including the synthetic start rule.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Start returns the start symbol.
func (g *Grammar) Start() string {
	return g.start
}

// Nullable returns true if non-terminal nt derives the empty string.
func (g *Grammar) Nullable(nt string) bool {
	n, ok := g.ntIndex[nt]
	return ok && g.nullable.Has(n)
}

// computeNullable is a fixed-point iteration over all rules.
func (g *Grammar) computeNullable() {
	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			n := g.ntIndex[r.LHS]
			if g.nullable.Has(n) {
				continue
			}
			all := true
			for _, s := range r.RHS {
				if s.Terminal || !g.nullable.Has(g.ntIndex[s.Value]) {
					all = false
					break
				}
			}
			if all {
				g.nullable.Insert(n)
				changed = true
			}
		}
	}
}
