package search

import (
	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/grammar"
)

// Mutation transforms a grammar. It returns a modified copy, or g itself if
// it is not applicable. Mutations keep every non-terminal defined.
type Mutation func(g *grammar.Grammar, sess *grinfer.Session) *grammar.Grammar

// Mutations are the structural mutations used by Searcher.
var Mutations = []Mutation{Bubble, Coalesce, Alternate, Repeat}

// Bubble replaces a strict subsequence of some body by a new non-terminal,
// in every body it occurs in.
func Bubble(g *grammar.Grammar, sess *grinfer.Session) *grammar.Grammar {
	var seqs []grammar.Body
	for _, r := range g.Rules() {
		for _, b := range r.Bodies() {
			seqs = append(seqs, StrictSubsequences(b)...)
		}
	}
	if len(seqs) == 0 {
		return g
	}
	seq := seqs[sess.Rand().Intn(len(seqs))]
	nt := grammar.N(sess.FreshNT())
	c := g.Copy()
	for _, r := range c.Rules() {
		bodies := make([]grammar.Body, r.Len())
		for i, b := range r.Bodies() {
			bodies[i] = ReplaceAll(b, seq, nt)
		}
		r.SetBodies(bodies)
		r.Dedup()
	}
	c.AddBody(nt.Text, seq)
	tracer().Debugf("mutation: bubbled %v into %s", seq, nt)
	return c
}

// Coalesce merges two non-terminals other than the start symbol.
func Coalesce(g *grammar.Grammar, sess *grinfer.Session) *grammar.Grammar {
	nts := nonStart(g)
	if len(nts) < 2 {
		return g
	}
	k := sess.Sample(len(nts), 2)
	into, from := nts[k[0]], nts[k[1]]
	c := g.Copy()
	c.Rename(from, into)
	r := c.Rule(into)
	unit := grammar.Syms(grammar.N(into))
	for i := r.Len() - 1; i >= 0; i-- {
		if r.Body(i).Equal(unit) && r.Len() > 1 {
			r.RemoveBody(i)
		}
	}
	tracer().Debugf("mutation: coalesced %s into %s", from, into)
	return c
}

// Alternate adds an alternative to a non-terminal, consisting of another
// non-terminal.
func Alternate(g *grammar.Grammar, sess *grinfer.Session) *grammar.Grammar {
	names := g.Names()
	nts := nonStart(g)
	if len(names) < 2 || len(nts) == 0 {
		return g
	}
	rnd := sess.Rand()
	a, b := names[rnd.Intn(len(names))], nts[rnd.Intn(len(nts))]
	if a == b {
		return g
	}
	c := g.Copy()
	c.AddBody(a, grammar.Syms(grammar.N(b)))
	tracer().Debugf("mutation: %s may be %s", a, b)
	return c
}

// Repeat replaces a symbol y in some body by a new non-terminal x with
// x ➞ y | x y.
func Repeat(g *grammar.Grammar, sess *grinfer.Session) *grammar.Grammar {
	type position struct {
		nt       string
		body, at int
	}
	var positions []position
	for _, r := range g.Rules() {
		for i, b := range r.Bodies() {
			for k := range b {
				positions = append(positions, position{r.Name(), i, k})
			}
		}
	}
	if len(positions) == 0 {
		return g
	}
	p := positions[sess.Rand().Intn(len(positions))]
	c := g.Copy()
	r := c.Rule(p.nt)
	y := r.Body(p.body)[p.at]
	x := grammar.N(sess.FreshNT())
	bodies := make([]grammar.Body, r.Len())
	for i, b := range r.Bodies() {
		bodies[i] = b.Copy()
	}
	bodies[p.body][p.at] = x
	r.SetBodies(bodies)
	r.Dedup()
	c.AddBody(x.Text, grammar.Syms(y))
	c.AddBody(x.Text, grammar.Syms(x, y))
	tracer().Debugf("mutation: repetition %s of %v", x, y)
	return c
}

// --- Helpers ---------------------------------------------------------------

// StrictSubsequences returns the contiguous subsequences of b which are
// neither single symbols nor b itself, without duplicates.
func StrictSubsequences(b grammar.Body) []grammar.Body {
	var subs []grammar.Body
	seen := make(map[string]bool)
	for from := 0; from < len(b)-1; from++ {
		for to := from + 2; to <= len(b) && to < from+len(b); to++ {
			s := b[from:to]
			if k := s.Key(); !seen[k] {
				seen[k] = true
				subs = append(subs, s.Copy())
			}
		}
	}
	return subs
}

// FindSubsequence returns the position of the first occurrence of sub in b,
// or -1.
func FindSubsequence(b, sub grammar.Body) int {
	if len(sub) == 0 {
		return -1
	}
	for i := 0; i+len(sub) <= len(b); i++ {
		if b[i:i+len(sub)].Equal(sub) {
			return i
		}
	}
	return -1
}

// ReplaceAll returns a copy of b with all occurrences of seq replaced by
// sym, left to right.
func ReplaceAll(b, seq grammar.Body, sym grammar.Symbol) grammar.Body {
	r := b.Copy()
	for at := FindSubsequence(r, seq); at >= 0; at = FindSubsequence(r, seq) {
		n := make(grammar.Body, 0, len(r)-len(seq)+1)
		n = append(n, r[:at]...)
		n = append(n, sym)
		r = append(n, r[at+len(seq):]...)
	}
	return r
}

// nonStart lists the non-terminals of g other than the start symbol.
func nonStart(g *grammar.Grammar) []string {
	var nts []string
	for _, nt := range g.Names() {
		if nt != g.Start() {
			nts = append(nts, nt)
		}
	}
	return nts
}
