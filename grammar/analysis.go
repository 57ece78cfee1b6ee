package grammar

import (
	"math"
	"sort"

	"github.com/cnf/structhash"
	"github.com/npillmayer/grinfer/digraph"
)

// ReferenceGraph returns the graph of non-terminal references: an edge A → B
// for every occurrence of B in a body of A. Vertices are the defined
// non-terminals; references to undefined ones are omitted.
func (g *Grammar) ReferenceGraph() *digraph.Graph {
	names := g.Names()
	graph := digraph.New(names)
	for _, r := range g.Rules() {
		for _, b := range r.bodies {
			for _, s := range b {
				if s.IsNonterminal() && g.Has(s.Text) {
					graph.AddEdge(r.name, s.Text)
				}
			}
		}
	}
	return graph
}

// Reachable returns the non-terminals reachable from the start symbol,
// including the start symbol itself.
func (g *Grammar) Reachable() []string {
	if !g.Has(g.start) {
		return nil
	}
	return g.ReferenceGraph().Reachable(g.start)
}

// heights computes for every productive non-terminal the minimal height of a
// derivation tree yielding a terminal string. Unproductive non-terminals are
// missing from the result.
func (g *Grammar) heights() map[string]int {
	h := make(map[string]int)
	changed := true
	for changed {
		changed = false
		for _, r := range g.rules {
			for _, b := range r.bodies {
				bh, ok := g.bodyHeight(b, h)
				if !ok {
					continue
				}
				if old, has := h[r.name]; !has || bh+1 < old {
					h[r.name] = bh + 1
					changed = true
				}
			}
		}
	}
	return h
}

// bodyHeight is the maximum height of the body's non-terminals, or false if
// one of them is not (yet) known to be productive.
func (g *Grammar) bodyHeight(b Body, h map[string]int) (int, bool) {
	max := 0
	for _, s := range b {
		if s.IsTerminal() {
			continue
		}
		sh, ok := h[s.Text]
		if !ok {
			return math.MaxInt32, false
		}
		if sh > max {
			max = sh
		}
	}
	return max, true
}

// Productive returns the set of non-terminals which derive at least one
// finite terminal string.
func (g *Grammar) Productive() map[string]bool {
	prod := make(map[string]bool)
	for nt := range g.heights() {
		prod[nt] = true
	}
	return prod
}

// Unproductive returns the defined non-terminals which cannot derive any
// terminal string, sorted by name.
func (g *Grammar) Unproductive() []string {
	prod := g.Productive()
	var unprod []string
	for name := range g.rules {
		if !prod[name] {
			unprod = append(unprod, name)
		}
	}
	sort.Strings(unprod)
	return unprod
}

// Undefined returns non-terminals which are referenced but not defined,
// sorted by name.
func (g *Grammar) Undefined() []string {
	var undef []string
	for nt := range g.References() {
		if !g.Has(nt) {
			undef = append(undef, nt)
		}
	}
	sort.Strings(undef)
	return undef
}

// fingerprintRecord is the structure hashed by Fingerprint.
type fingerprintRecord struct {
	Start string
	Rules []ruleRecord
}

type ruleRecord struct {
	Name   string
	Bodies []string
}

// Fingerprint returns a structural hash of g, independent of the order of
// rules and bodies. Two grammars with equal fingerprints define the same
// rules.
func (g *Grammar) Fingerprint() string {
	rec := fingerprintRecord{Start: g.start}
	names := make([]string, 0, len(g.rules))
	for n := range g.rules {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		r := g.rules[n]
		rr := ruleRecord{Name: n, Bodies: make([]string, len(r.bodies))}
		for i, b := range r.bodies {
			rr.Bodies[i] = b.String()
		}
		sort.Strings(rr.Bodies)
		rec.Rules = append(rec.Rules, rr)
	}
	h, err := structhash.Hash(rec, 1)
	if err != nil { // cannot happen for plain structs of strings
		tracer().Errorf("cannot hash grammar: %v", err)
		return g.String()
	}
	return h
}
