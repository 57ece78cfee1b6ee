package search

import (
	"math"
	"math/rand"

	"github.com/npillmayer/grinfer/digraph"
	"github.com/npillmayer/grinfer/grammar"
)

// Categories are the scoring categories of a CategoryScorer.
var Categories = []string{"pos", "neg", "size", "ratio", "variance", "compilation", "recur_cc", "finite"}

// Champion is the best grammar found so far for a scoring category.
type Champion struct {
	Score     float64
	Grammar   *grammar.Grammar
	Generator *GrammarGenerator
}

// CategoryScorer keeps a champion for each scoring category. Each category
// measures a different property of a grammar, so the champions form a
// diverse pool to seed new generations from.
type CategoryScorer struct {
	Config    GeneratorConfig
	Positives []string
	Negatives []string
	champions map[string]Champion
}

// NewCategoryScorer creates a scorer with g as the initial (zero scored)
// champion of every category.
func NewCategoryScorer(config GeneratorConfig, positives, negatives []string,
	g *grammar.Grammar, gen *GrammarGenerator) *CategoryScorer {
	//
	cs := &CategoryScorer{
		Config:    config,
		Positives: positives,
		Negatives: negatives,
		champions: make(map[string]Champion, len(Categories)),
	}
	for _, c := range Categories {
		cs.champions[c] = Champion{Grammar: g, Generator: gen}
	}
	return cs
}

// Champion returns the champion of a category.
func (cs *CategoryScorer) Champion(category string) Champion {
	return cs.champions[category]
}

// Score scores g in every category and replaces each champion that g
// outscores.
func (cs *CategoryScorer) Score(g *grammar.Grammar, gen *GrammarGenerator) {
	scores := cs.Scores(g, gen)
	for _, c := range Categories {
		if s := scores[c]; s > cs.champions[c].Score {
			tracer().Debugf("new champion for %s with score %.4f", c, s)
			cs.champions[c] = Champion{Score: s, Grammar: g, Generator: gen}
		}
	}
}

// Scores computes the score of g for every category.
func (cs *CategoryScorer) Scores(g *grammar.Grammar, gen *GrammarGenerator) map[string]float64 {
	scores := make(map[string]float64, len(Categories))
	if p, err := g.Parser(); err == nil {
		scores["compilation"] = 1
		scores["pos"] = rate(p.Parse, cs.Positives)
		if len(cs.Negatives) > 0 {
			scores["neg"] = 1 - rate(p.Parse, cs.Negatives)
		}
	}
	if n := g.SymbolCount(); n > 0 {
		scores["size"] = 4 / float64(n)
	}
	t, n, dt, dn := gen.counts()
	if t+n > 0 {
		scores["ratio"] = 1 - 2*math.Abs(float64(n)/float64(t+n)-0.5)
	}
	if len(cs.Config.Terminals) > 0 && len(cs.Config.Nonterminals) > 0 {
		scores["variance"] = float64(dt) / float64(len(cs.Config.Terminals)) *
			float64(dn) / float64(len(cs.Config.Nonterminals))
	}
	if cs.recursiveAndConnected(g) {
		scores["recur_cc"] = 1
	}
	if cs.finite(g) {
		scores["finite"] = 1
	}
	return scores
}

func rate(accepts func(string) bool, examples []string) float64 {
	if len(examples) == 0 {
		return 0
	}
	n := 0
	for _, ex := range examples {
		if accepts(ex) {
			n++
		}
	}
	return float64(n) / float64(len(examples))
}

// recursiveAndConnected checks the graph of references between the start
// symbol and the configured non-terminals.
func (cs *CategoryScorer) recursiveAndConnected(g *grammar.Grammar) bool {
	vertices := append([]string{g.Start()}, cs.Config.Nonterminals...)
	graph := digraph.New(vertices)
	for _, r := range g.Rules() {
		for _, b := range r.Bodies() {
			for _, s := range b {
				if s.IsNonterminal() && s.Text != g.Start() && graph.Has(s.Text) {
					if err := graph.AddEdge(r.Name(), s.Text); err != nil {
						tracer().Debugf("recur_cc: %v", err)
					}
				}
			}
		}
	}
	return graph.IsConnected() && graph.HasCycle()
}

// finite is true if the start symbol and every configured non-terminal
// derive a finite string.
func (cs *CategoryScorer) finite(g *grammar.Grammar) bool {
	prod := g.Productive()
	if !prod[g.Start()] {
		return false
	}
	for _, nt := range cs.Config.Nonterminals {
		if !prod[nt] {
			return false
		}
	}
	return true
}

// SampleChampion picks one of the champions at random. With probability
// 1/(#categories+1) it creates a fresh random generator instead.
func (cs *CategoryScorer) SampleChampion(rnd *rand.Rand) (*grammar.Grammar, *GrammarGenerator) {
	i := rnd.Intn(len(Categories) + 1)
	if i < len(Categories) {
		c := cs.champions[Categories[i]]
		return c.Grammar, c.Generator
	}
	gen := NewGenerator(cs.Config, rnd)
	return gen.Generate(), gen
}

// Evolve runs a number of generations. Each generation samples a champion,
// mutates a copy of its generator and scores the generated grammar.
func (cs *CategoryScorer) Evolve(rnd *rand.Rand, generations int) {
	for i := 0; i < generations; i++ {
		_, gen := cs.SampleChampion(rnd)
		if gen == nil {
			gen = NewGenerator(cs.Config, rnd)
		}
		mutant := gen.Copy()
		mutant.Mutate(rnd)
		cs.Score(mutant.Generate(), mutant)
	}
	tracer().Infof("evolved %d generations", generations)
}
