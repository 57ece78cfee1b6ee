package grammar

import (
	"fmt"
)

// --- Builder ---------------------------------------------------------------

// GrammarBuilder is a helper for creating grammars from code.
//
//    b := NewGrammarBuilder("start")
//    b.LHS("start").N("A").T("x").End()
//
// Errors (a rule without a left hand side, an empty name) are collected and
// reported by Grammar().
type GrammarBuilder struct {
	g    *Grammar
	errs []error
}

// RuleBuilder is a builder type for a single rule body.
type RuleBuilder struct {
	gb   *GrammarBuilder
	lhs  string
	body Body
}

// NewGrammarBuilder gets a new grammar builder with the given start
// non-terminal. An empty start name selects StartName.
func NewGrammarBuilder(start string) *GrammarBuilder {
	if start == "" {
		start = StartName
	}
	return &GrammarBuilder{g: NewWithStart(start)}
}

// LHS starts a rule body for non-terminal s.
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	if s == "" {
		gb.errs = append(gb.errs, fmt.Errorf("empty left hand side"))
	}
	return &RuleBuilder{gb: gb, lhs: s}
}

// Grammar returns the grammar built so far. It fails if any rule was
// malformed or if the start symbol has no rule.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if len(gb.errs) > 0 {
		return nil, gb.errs[0]
	}
	if !gb.g.Has(gb.g.start) {
		return nil, fmt.Errorf("grammar has no rule for start symbol %s", gb.g.start)
	}
	return gb.g, nil
}

// N appends a non-terminal to the body.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	if s == "" {
		rb.gb.errs = append(rb.gb.errs, fmt.Errorf("empty non-terminal name in rule for %s", rb.lhs))
		return rb
	}
	rb.body = append(rb.body, N(s))
	return rb
}

// T appends a terminal literal to the body. An empty literal is ignored.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	if s == "" {
		return rb
	}
	rb.body = append(rb.body, T(s))
	return rb
}

// End closes the body and adds it to the grammar.
func (rb *RuleBuilder) End() *Rule {
	if rb.lhs == "" {
		return nil
	}
	rb.gb.g.AddBody(rb.lhs, rb.body)
	return rb.gb.g.Rule(rb.lhs)
}

// Epsilon adds an empty body and closes the rule.
func (rb *RuleBuilder) Epsilon() *Rule {
	rb.body = nil
	return rb.End()
}
