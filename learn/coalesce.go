package learn

import (
	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/bubble"
	"github.com/npillmayer/grinfer/grammar"
	"github.com/npillmayer/grinfer/ptree"
)

// Coalesce merges non-terminals which may replace each other everywhere.
// g must be the grammar induced by trees. If target is nil, all pairs of
// non-terminals are checked. Otherwise only pairs involving the new
// non-terminals of target are: for a single bubble its non-terminal against
// every other, for a pair the two bubbles' non-terminals against each other.
//
// Coalesce returns the updated grammar and trees and whether any merge took
// place. Inputs are not modified. An error is returned only if the oracle
// fails.
func (l *Learner) Coalesce(trees []*ptree.Node, g *grammar.Grammar, target *bubble.Candidate) (
	*grammar.Grammar, []*ptree.Node, bool, error) {
	//
	nts := nonStart(g)
	var pairs [][2]string
	switch {
	case target == nil:
		for i := 0; i < len(nts); i++ {
			for j := i + 1; j < len(nts); j++ {
				pairs = append(pairs, [2]string{nts[i], nts[j]})
			}
		}
	case target.IsPair():
		pairs = append(pairs, [2]string{target.First.NewNT, target.Second.NewNT})
	default:
		for _, nt := range nts {
			if nt != target.First.NewNT {
				pairs = append(pairs, [2]string{target.First.NewNT, nt})
			}
		}
	}
	caused := false
	into := make(map[string]string) // non-terminal ➞ class it was merged into
	resolve := func(nt string) string {
		for {
			c, ok := into[nt]
			if !ok || nt == g.Start() {
				return nt
			}
			nt = c
		}
	}
	checked := make(map[[2]string]bool)
	for _, p := range pairs {
		first, second := resolve(p[0]), resolve(p[1])
		if first == second || checked[[2]string{first, second}] {
			continue
		}
		checked[[2]string{first, second}] = true
		ok, err := l.mergeable(first, second, trees, g, target)
		if err != nil {
			return nil, nil, false, err
		}
		if !ok {
			continue
		}
		class := l.Session.FreshNT()
		if first == g.Start() || second == g.Start() {
			class = g.Start()
		}
		tracer().Infof("coalescing %s and %s into %s", first, second, class)
		into[first], into[second] = class, class
		g = mergeRules(g, first, second, class)
		trees = relabelTrees(trees, map[string]string{first: class, second: class})
		caused = true
	}
	return g, trees, caused, nil
}

// mergeable is true if nt1 and nt2 can replace each other without leaving
// the oracle's language. With MustExpandInCoalesce the merge must also
// grow the language of g.
func (l *Learner) mergeable(nt1, nt2 string, trees []*ptree.Node, g *grammar.Grammar,
	target *bubble.Candidate) (bool, error) {
	//
	if !g.Has(nt1) || !g.Has(nt2) {
		return false, nil
	}
	level := 0
	if target != nil && target.IsPair() {
		level = 1
	}
	d1 := ptree.LevelNDerivable(trees, nt1, level)
	d2 := ptree.LevelNDerivable(trees, nt2, level)
	mustExpand := l.MustExpandInCoalesce && target != nil
	if mustExpand && equalSets(d1, d2) {
		return false, nil
	}
	ok, checked1, err := l.replacementValid(d1, nt2, trees)
	if !ok || err != nil {
		return false, err
	}
	ok, checked2, err := l.replacementValid(d2, nt1, trees)
	if !ok || err != nil {
		return false, err
	}
	if mustExpand && represented(g, checked1) && represented(g, checked2) {
		return false, nil
	}
	return true, nil
}

// replacementValid checks with the oracle that occurrences of replacee in
// trees may be replaced by any of replacers. It returns the strings checked.
func (l *Learner) replacementValid(replacers []string, replacee string, trees []*ptree.Node) (
	bool, []string, error) {
	//
	set := make(map[string]bool)
	var strs []string
	for _, t := range trees {
		for _, s := range ptree.StringsWithReplacement(t, replacee, replacers) {
			if !set[s] {
				set[s] = true
				strs = append(strs, s)
			}
		}
	}
	if len(strs) == 0 {
		// happens when bubbles conflict (see bubble.ApplicationBreaksOther)
		tracer().Debugf("no replacement strings for %s, skipping", replacee)
		return false, nil, nil
	}
	strs = l.sample(strs)
	ok, err := grinfer.AcceptsAll(l.Oracle, strs)
	if !ok || err != nil {
		return false, nil, err
	}
	return true, strs, nil
}

// mergeRules returns a copy of g where nt1 and nt2 are replaced by class,
// which gets the bodies of both, except for class ➞ class.
func mergeRules(g *grammar.Grammar, nt1, nt2, class string) *grammar.Grammar {
	c := g.Copy()
	ref := grammar.Syms(grammar.N(class))
	c.Replace(nt1, ref)
	c.Replace(nt2, ref)
	merged := grammar.NewRule(class)
	for _, nt := range []string{nt1, nt2} {
		r := c.Rule(nt)
		if r == nil {
			continue
		}
		for _, b := range r.Bodies() {
			if !b.Equal(ref) {
				merged.AddBody(b)
			}
		}
		c.RemoveRule(nt)
	}
	c.AddRule(merged)
	return c
}

func relabelTrees(trees []*ptree.Node, labels map[string]string) []*ptree.Node {
	out := make([]*ptree.Node, len(trees))
	for i, t := range trees {
		out[i] = ptree.Relabel(t, labels)
		ptree.CollapseUnitChains(out[i])
	}
	return out
}

// nonStart lists the non-terminals of g except the start symbol.
func nonStart(g *grammar.Grammar) []string {
	var nts []string
	for _, nt := range g.Names() {
		if nt != g.Start() {
			nts = append(nts, nt)
		}
	}
	return nts
}

// equalSets compares two sorted, duplicate-free string lists.
func equalSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
