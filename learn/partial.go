package learn

import (
	"strings"

	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/bubble"
	"github.com/npillmayer/grinfer/grammar"
	"github.com/npillmayer/grinfer/ptree"
)

// location is a position in the body of a rule.
type location struct {
	lhs  string
	body grammar.Body
	pos  int
}

func (loc location) ruleKey() string {
	return ruleKey(loc.lhs, bodyTexts(loc.body))
}

func ruleKey(lhs string, body []string) string {
	return lhs + "\x1f" + strings.Join(body, "\x1f")
}

func bodyTexts(b grammar.Body) []string {
	s := make([]string, len(b))
	for i, sym := range b {
		s[i] = sym.Text
	}
	return s
}

// CoalescePartial performs partial merges. For a pair (full, some) of
// non-terminals, where some derives a single character: if some may replace
// full everywhere, find the positions of some where full may replace it.
// At these positions, and for every occurrence of full, a new non-terminal
// deriving the bodies of both is used.
//
// g must be the grammar induced by trees. If target is not nil, only its
// first bubble's non-terminal is considered for full. Coalesce with the same
// target should have been called before.
func (l *Learner) CoalescePartial(trees []*ptree.Node, g *grammar.Grammar, target *bubble.Candidate) (
	*grammar.Grammar, []*ptree.Node, bool, error) {
	//
	nts := nonStart(g)
	isNT := make(map[string]bool, len(nts))
	for _, nt := range nts {
		isNT[nt] = true
	}
	full := nts
	if target != nil {
		full = []string{target.First.NewNT}
	}
	var some []string
	for _, nt := range nts {
		r := g.Rule(nt)
		if r.Len() == 1 && len(r.Body(0)) == 1 && !isNT[r.Body(0)[0].Text] {
			some = append(some, nt)
		}
	}
	happened := false
	replaced := make(map[string]string)
	resolve := func(nt string) string {
		for {
			r, ok := replaced[nt]
			if !ok || nt == g.Start() {
				return nt
			}
			nt = r
		}
	}
	for _, f := range full {
		for _, s := range some {
			f, s := resolve(f), resolve(s)
			if f == s || !g.Has(f) || !g.Has(s) {
				continue
			}
			locs, err := l.partiallyCoalescable(f, s, trees, g, target)
			if err != nil {
				return nil, nil, false, err
			}
			if len(locs) == 0 {
				continue
			}
			nt := g.Start()
			if f != g.Start() {
				nt = l.Session.FreshNT()
			}
			tracer().Infof("%s replaces %s everywhere, and is replaced by it at %d positions: merged into %s",
				s, f, len(locs), nt)
			g = partialMergeRules(g, locs, f, s, nt)
			trees = partialRelabelTrees(trees, locs, f, nt)
			replaced[f] = nt
			happened = true
		}
	}
	return g, trees, happened, nil
}

// partiallyCoalescable checks whether some can replace everywhere at every
// occurrence, and if so returns the positions of some which everywhere may
// take.
func (l *Learner) partiallyCoalescable(everywhere, some string, trees []*ptree.Node, g *grammar.Grammar,
	target *bubble.Candidate) ([]location, error) {
	//
	var locs []location
	for _, r := range g.Rules() {
		for _, b := range r.Bodies() {
			for i, sym := range b {
				if sym.IsNonterminal() && sym.Text == some {
					locs = append(locs, location{lhs: r.Name(), body: b.Copy(), pos: i})
				}
			}
		}
	}
	everywhereStrs := ptree.LevelNDerivable(trees, everywhere, 0)
	someStrs := ptree.LevelNDerivable(trees, some, 0)
	var candidates []string
	for _, t := range trees {
		candidates = append(candidates, ptree.StringsWithReplacement(t, everywhere, someStrs)...)
	}
	candidates = l.sample(candidates)
	mustExpand := l.MustExpandInPartial && target != nil
	expanded := true
	if mustExpand && represented(g, candidates) {
		expanded = false
	} else {
		ok, err := grinfer.AcceptsAll(l.Oracle, candidates)
		if !ok || err != nil {
			return nil, err
		}
	}
	if len(everywhereStrs) == 0 {
		return nil, nil
	}
	var positions []location
	for _, loc := range locs {
		var cands []string
		for _, t := range trees {
			cands = append(cands, ptree.StringsWithReplacementInRule(t, loc.lhs, bodyTexts(loc.body),
				loc.pos, everywhereStrs)...)
		}
		cands = l.sample(cands)
		if mustExpand && represented(g, cands) {
			positions = append(positions, loc)
			continue
		}
		ok, err := grinfer.AcceptsAll(l.Oracle, cands)
		if err != nil {
			return nil, err
		}
		if ok {
			positions = append(positions, loc)
			expanded = true
		}
	}
	if mustExpand && !expanded {
		return nil, nil
	}
	return positions, nil
}

// partialMergeRules returns a copy of g where the locations and every
// reference to full use nt instead. nt derives the bodies of full and some.
// The rule for some is dropped if nothing references it any more.
func partialMergeRules(g *grammar.Grammar, locs []location, full, some, nt string) *grammar.Grammar {
	c := g.Copy()
	byBody := make(map[string][]location)
	var order []string
	for _, loc := range locs {
		k := loc.ruleKey()
		if _, ok := byBody[k]; !ok {
			order = append(order, k)
		}
		byBody[k] = append(byBody[k], loc)
	}
	for _, k := range order {
		group := byBody[k]
		r := c.Rule(group[0].lhs)
		bodies := make([]grammar.Body, r.Len())
		for i, b := range r.Bodies() {
			bodies[i] = b.Copy()
			if b.Equal(group[0].body) {
				for _, loc := range group {
					bodies[i][loc.pos] = grammar.N(nt)
				}
			}
		}
		r.SetBodies(bodies)
	}
	c.Replace(full, grammar.Syms(grammar.N(nt)))
	someOnRHS := c.References()[some] > 0
	for _, r := range c.Rules() {
		r.Dedup()
	}
	merged := grammar.NewRule(nt, c.Rule(full).Bodies()...)
	for _, b := range c.Rule(some).Bodies() {
		merged.AddBody(b)
	}
	c.RemoveRule(full)
	c.AddRule(merged)
	if !someOnRHS {
		c.RemoveRule(some)
	}
	return c
}

// partialRelabelTrees applies the partial merge to copies of trees. Rule
// applications are identified by their labels before the merge.
func partialRelabelTrees(trees []*ptree.Node, locs []location, full, nt string) []*ptree.Node {
	positions := make(map[string][]int)
	for _, loc := range locs {
		k := loc.ruleKey()
		positions[k] = append(positions[k], loc.pos)
	}
	out := make([]*ptree.Node, len(trees))
	for i, t := range trees {
		c := t.Copy()
		type fix struct {
			node *ptree.Node
			pos  []int
		}
		var fixes []fix
		var renames []*ptree.Node
		c.Walk(func(n *ptree.Node) {
			if n.Terminal {
				return
			}
			if pos, ok := positions[ruleKey(n.Payload, n.ChildPayloads())]; ok {
				fixes = append(fixes, fix{n, pos})
			}
			if n.Payload == full {
				renames = append(renames, n)
			}
		})
		for _, f := range fixes {
			for _, p := range f.pos {
				f.node.Children[p].Payload = nt
			}
		}
		for _, n := range renames {
			n.Payload = nt
		}
		out[i] = c
	}
	return out
}
