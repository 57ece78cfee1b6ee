package minimize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/grammar"
	"github.com/npillmayer/schuko/gconf"
)

// selfPlaceholder stands for self references when comparing body sets.
const selfPlaceholder = "\x00self"

type minimizer struct {
	g       *grammar.Grammar
	protect func(nt string) bool // true for non-terminals passes 1–5 must not touch
}

// Aggressive returns a minimized copy of g.
func Aggressive(g *grammar.Grammar) (*grammar.Grammar, error) {
	m := &minimizer{g: g.Copy(), protect: func(nt string) bool { return nt == g.Start() }}
	if err := m.run(); err != nil {
		return nil, err
	}
	return m.g, nil
}

func (m *minimizer) run() error {
	for it := 1; ; it++ {
		before := m.g.Size()
		if err := m.inlineSingletons(); err != nil {
			return err
		}
		m.mergeEquivalent()
		m.dedup()
		if err := m.stripUnitBodies(); err != nil {
			return err
		}
		m.inlineSingleReferences()
		after := m.g.Size()
		tracer().Debugf("minimization iteration %d: %d → %d bodies", it, before, after)
		if after == before {
			break
		}
	}
	if unprod := m.unproductive(); len(unprod) > 0 {
		return unproductive(unprod...)
	}
	return nil
}

// unproductive returns the unproductive non-terminals reachable from the
// start symbol.
func (m *minimizer) unproductive() []string {
	prod := m.g.Productive()
	var unprod []string
	for _, nt := range m.g.Reachable() {
		if !prod[nt] {
			unprod = append(unprod, nt)
		}
	}
	sort.Strings(unprod)
	return unprod
}

func unproductive(nts ...string) error {
	err := &grinfer.UnproductiveGrammarError{Nonterminals: nts}
	if gconf.GetBool("panic-on-unproductive") {
		panic(err.Error())
	}
	tracer().Errorf("%v", err)
	return err
}

// candidates lists the non-terminals passes may touch, in canonical order.
func (m *minimizer) candidates() []string {
	var nts []string
	for _, nt := range m.g.Names() {
		if !m.protect(nt) {
			nts = append(nts, nt)
		}
	}
	return nts
}

// replaceNT removes the rule for nt and substitutes repl for every
// reference.
func (m *minimizer) replaceNT(nt string, repl grammar.Body) {
	m.g.RemoveRule(nt)
	m.g.Replace(nt, repl)
}

// --- Passes ----------------------------------------------------------------

func (m *minimizer) inlineSingletons() error {
	for _, nt := range m.candidates() {
		r := m.g.Rule(nt)
		if r == nil || r.Len() != 1 || len(r.Body(0)) > 1 {
			continue
		}
		body := r.Body(0)
		if body.Contains(nt) {
			return unproductive(nt)
		}
		tracer().Debugf("inlining singleton %s ➞ %v", nt, body)
		m.replaceNT(nt, body)
	}
	return nil
}

func (m *minimizer) mergeEquivalent() {
	groups := make(map[string][]string)
	var order []string
	for _, nt := range m.candidates() {
		k := canonicalBodies(nt, m.g.Rule(nt))
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], nt)
	}
	for _, k := range order {
		nts := groups[k]
		if len(nts) < 2 {
			continue
		}
		replacer := nts[0]
		for _, replacee := range nts[1:] {
			tracer().Debugf("merging %s into equivalent %s", replacee, replacer)
			m.replaceNT(replacee, grammar.Syms(grammar.N(replacer)))
		}
	}
}

// canonicalBodies is a key for the set of bodies of r, with references to nt
// itself replaced by a placeholder.
func canonicalBodies(nt string, r *grammar.Rule) string {
	set := make(map[string]bool)
	for _, b := range r.Bodies() {
		c := make(grammar.Body, len(b))
		for i, s := range b {
			if s.IsNonterminal() && s.Text == nt {
				c[i] = grammar.N(selfPlaceholder)
			} else {
				c[i] = s
			}
		}
		set[c.Key()] = true
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, "\x1e")
}

func (m *minimizer) dedup() {
	for _, nt := range m.candidates() {
		if n := m.g.Rule(nt).Dedup(); n > 0 {
			tracer().Debugf("removed %d duplicate bodies of %s", n, nt)
		}
	}
}

func (m *minimizer) stripUnitBodies() error {
	self := func(nt string) grammar.Body { return grammar.Syms(grammar.N(nt)) }
	for _, nt := range m.candidates() {
		r := m.g.Rule(nt)
		for i := r.Len() - 1; i >= 0; i-- {
			if r.Body(i).Equal(self(nt)) {
				r.RemoveBody(i)
			}
		}
		if r.Len() == 0 {
			return unproductive(nt)
		}
	}
	return nil
}

func (m *minimizer) inlineSingleReferences() {
	refs := m.g.References()
	for _, nt := range m.candidates() {
		r := m.g.Rule(nt)
		if r == nil || r.Len() != 1 || refs[nt] != 1 || r.Body(0).Contains(nt) {
			continue
		}
		tracer().Debugf("inlining %s, referenced once", nt)
		m.replaceNT(nt, r.Body(0))
	}
}

// --- Simple minimization ---------------------------------------------------

// Simple returns a copy of g with duplicate bodies removed, chains of
// single-terminal non-terminals collapsed, and non-terminals with a single
// body which are referenced only once inlined.
func Simple(g *grammar.Grammar) *grammar.Grammar {
	g = g.Copy()
	dedupAll(g)
	// X: non-terminals deriving exactly one symbol which is not itself a
	// defined non-terminal (or is one of X)
	x := make(map[string]grammar.Symbol)
	for updated := true; updated; {
		updated = false
		for _, r := range g.Rules() {
			nt := r.Name()
			if nt == g.Start() || r.Len() != 1 || len(r.Body(0)) != 1 {
				continue
			}
			if _, done := x[nt]; done {
				continue
			}
			sym := r.Body(0)[0]
			if repl, ok := x[sym.Text]; ok && sym.IsNonterminal() {
				x[nt] = repl
				updated = true
			} else if sym.IsTerminal() || !g.Has(sym.Text) {
				x[nt] = sym
				updated = true
			}
		}
	}
	xmap := make(map[string]grammar.Body, len(x))
	for nt, sym := range x {
		xmap[nt] = grammar.Syms(sym)
	}
	update(g, xmap)
	// Y: non-terminals with a single body referenced exactly once
	refs := g.References()
	ymap := make(map[string]grammar.Body)
	for _, r := range g.Rules() {
		nt := r.Name()
		if nt == g.Start() || refs[nt] != 1 || r.Len() != 1 || r.Body(0).Contains(nt) {
			continue
		}
		ymap[nt] = r.Body(0)
	}
	update(g, ymap)
	dedupAll(g)
	return g
}

func dedupAll(g *grammar.Grammar) {
	for _, r := range g.Rules() {
		r.Dedup()
	}
}

// update replaces references to the keys of repl by their bodies, until no
// reference is left, and removes the keys' rules.
func update(g *grammar.Grammar, repl map[string]grammar.Body) {
	keys := make([]string, 0, len(repl))
	for k := range repl {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for round := 0; round <= len(keys); round++ {
		n := 0
		for _, k := range keys {
			n += g.Replace(k, repl[k])
		}
		if n == 0 {
			break
		}
	}
	for _, k := range keys {
		g.RemoveRule(k)
	}
}

// --- Rule maps -------------------------------------------------------------

// RuleMap minimizes a grammar given as a map from rule name to bodies, where
// every body symbol which is a key of the map is a non-terminal and every
// other symbol a terminal. Only lower-case names are subject to
// minimization; other rules (e.g. terminal classes) are kept. The start rule
// is named start.
func RuleMap(rules map[string][][]string) (map[string][][]string, error) {
	g := grammar.New()
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, b := range rules[name] {
			body := make(grammar.Body, len(b))
			for i, s := range b {
				if _, ok := rules[s]; ok {
					body[i] = grammar.N(s)
				} else {
					body[i] = grammar.T(s)
				}
			}
			g.AddBody(name, body)
		}
	}
	if !g.Has(grammar.StartName) {
		return nil, fmt.Errorf("rule map has no rule %s", grammar.StartName)
	}
	m := &minimizer{g: g, protect: func(nt string) bool {
		return nt == grammar.StartName || !isLower(nt)
	}}
	if err := m.run(); err != nil {
		return nil, err
	}
	out := make(map[string][][]string)
	for _, r := range m.g.Rules() {
		bodies := make([][]string, r.Len())
		for i, b := range r.Bodies() {
			bodies[i] = make([]string, len(b))
			for k, s := range b {
				bodies[i][k] = s.Text
			}
		}
		out[r.Name()] = bodies
	}
	return out, nil
}

// isLower is true if s has at least one cased letter and no upper-case one.
func isLower(s string) bool {
	return strings.ToLower(s) == s && strings.ToUpper(s) != s
}
