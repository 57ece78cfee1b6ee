package search

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/grammar"
	"github.com/npillmayer/grinfer/minimize"
)

// DefaultPopulationSize is the default capacity of a search population.
const DefaultPopulationSize = 20

// DefaultMaxIterations bounds a search if no other budget is given.
const DefaultMaxIterations = 10000

// mutationCounts are the possible numbers of mutations per iteration.
var mutationCounts = []int{1, 2, 4, 8, 16}

// State is the state of a Searcher.
type State int

// States of a search.
const (
	Initializing State = iota
	Mutating
	Scoring
	Saving
	Done
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "Initializing"
	case Mutating:
		return "Mutating"
	case Scoring:
		return "Scoring"
	case Saving:
		return "Saving"
	case Done:
		return "Done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// member is an element of the population.
type member struct {
	g     *grammar.Grammar
	id    int
	score float64
	fp    string
}

// byScore orders members ascending by score; on ties older members come
// first, so they are evicted first.
func byScore(a, b interface{}) int {
	m1, m2 := a.(*member), b.(*member)
	switch {
	case m1.score < m2.score:
		return -1
	case m1.score > m2.score:
		return 1
	case m1.id < m2.id:
		return -1
	case m1.id > m2.id:
		return 1
	}
	return 0
}

// Searcher runs a mutation-based search over a bounded population of
// grammars.
type Searcher struct {
	Session        *grinfer.Session
	Scorer         Scorer
	PopulationSize int
	MaxIterations  int
	Dump           *Dump      // optional; receives the best grammar after every admission
	Mutations      []Mutation // defaults to the package-level Mutations

	state      State
	population *treeset.Set
	seen       map[string]bool
	nextID     int
	iterations int
	rejected   int
}

// NewSearcher creates a searcher with default population size and budget.
func NewSearcher(sess *grinfer.Session, scorer Scorer) *Searcher {
	return &Searcher{
		Session:        sess,
		Scorer:         scorer,
		PopulationSize: DefaultPopulationSize,
		MaxIterations:  DefaultMaxIterations,
	}
}

// State returns the current state of the search.
func (s *Searcher) State() State {
	return s.state
}

// Iterations returns the number of iterations run so far.
func (s *Searcher) Iterations() int {
	return s.iterations
}

// Run searches for a grammar matching the scorer's examples, starting from
// the naive grammar for guides. It returns the best grammar found and its
// score. Run stops early when a grammar with a good score is found.
func (s *Searcher) Run(guides []string) (*grammar.Grammar, float64, error) {
	if len(guides) == 0 {
		return nil, 0, errors.New("search needs at least one guide example")
	}
	return s.RunFrom(InitGrammar(s.Session, guides))
}

// RunFrom searches starting from base, e.g. a grammar loaded from a dump.
// base is minimized first; if it has unproductive non-terminals, the search
// fails with an *grinfer.UnproductiveGrammarError. Mutants with unproductive
// non-terminals are rejected and the search continues.
func (s *Searcher) RunFrom(base *grammar.Grammar) (*grammar.Grammar, float64, error) {
	s.state = Initializing
	s.population = treeset.NewWith(byScore)
	s.seen = make(map[string]bool)
	s.iterations, s.rejected = 0, 0
	s.reserveNames(base)
	initial, err := minimize.Aggressive(base)
	if err != nil {
		return nil, 0, err
	}
	s.admit(initial, s.Scorer.Score(initial))
	tracer().Infof("search: initial grammar scores %.4f", s.minimum())
	if err := s.save(); err != nil {
		return nil, 0, err
	}
	for s.iterations < s.MaxIterations {
		_, best := s.Best()
		if Good(best) {
			break
		}
		s.iterations++
		s.state = Mutating
		mutant := s.mutate(s.chooseParent())
		m, err := minimize.Aggressive(mutant)
		if err != nil {
			s.rejected++
			tracer().Infof("search: iteration %d: mutant rejected: %v", s.iterations, err)
			continue
		}
		s.state = Scoring
		if s.seen[m.Fingerprint()] {
			continue
		}
		score := s.Scorer.Score(m)
		if score <= s.minimum() {
			continue
		}
		s.admit(m, score)
		tracer().Debugf("search: iteration %d admitted grammar with score %.4f", s.iterations, score)
		s.state = Saving
		if err := s.save(); err != nil {
			return nil, 0, err
		}
	}
	s.state = Done
	g, score := s.Best()
	tracer().Infof("search: done after %d iterations, best score %.4f", s.iterations, score)
	return g, score, nil
}

// Rejected returns the number of mutants which could not be minimized.
func (s *Searcher) Rejected() int {
	return s.rejected
}

// reserveNames keeps fresh non-terminals clear of generated names t<n>
// already used by g.
func (s *Searcher) reserveNames(g *grammar.Grammar) {
	for _, nt := range g.Names() {
		if !strings.HasPrefix(nt, "t") {
			continue
		}
		if n, err := strconv.Atoi(nt[1:]); err == nil {
			s.Session.Reserve(n)
		}
	}
}

// Best returns the best grammar of the population and its score.
func (s *Searcher) Best() (*grammar.Grammar, float64) {
	if s.population == nil || s.population.Empty() {
		return nil, 0
	}
	it := s.population.Iterator()
	it.Last()
	m := it.Value().(*member)
	return m.g, m.score
}

// Population returns the grammars of the population, best first.
func (s *Searcher) Population() []*grammar.Grammar {
	if s.population == nil {
		return nil
	}
	gs := make([]*grammar.Grammar, 0, s.population.Size())
	it := s.population.Iterator()
	for it.End(); it.Prev(); {
		gs = append(gs, it.Value().(*member).g)
	}
	return gs
}

func (s *Searcher) minimum() float64 {
	it := s.population.Iterator()
	if !it.First() {
		return 0
	}
	return it.Value().(*member).score
}

func (s *Searcher) admit(g *grammar.Grammar, score float64) {
	m := &member{g: g, id: s.nextID, score: score, fp: g.Fingerprint()}
	s.nextID++
	s.population.Add(m)
	s.seen[m.fp] = true
	for s.population.Size() > s.PopulationSize {
		it := s.population.Iterator()
		it.First()
		s.population.Remove(it.Value())
	}
}

// chooseParent picks a member uniformly at random.
func (s *Searcher) chooseParent() *grammar.Grammar {
	k := s.Session.Rand().Intn(s.population.Size())
	it := s.population.Iterator()
	for i := 0; i <= k; i++ {
		it.Next()
	}
	return it.Value().(*member).g
}

func (s *Searcher) mutate(parent *grammar.Grammar) *grammar.Grammar {
	rnd := s.Session.Rand()
	n := mutationCounts[rnd.Intn(len(mutationCounts))]
	mutations := s.Mutations
	if len(mutations) == 0 {
		mutations = Mutations
	}
	mutant := parent
	for i := 0; i < n; i++ {
		mutant = mutations[rnd.Intn(len(mutations))](mutant, s.Session)
	}
	if mutant == parent {
		mutant = parent.Copy()
	}
	return mutant
}

func (s *Searcher) save() error {
	if s.Dump == nil {
		return nil
	}
	g, score := s.Best()
	return s.Dump.Write(g, score, s.iterations)
}

// InitGrammar creates the naive grammar for a set of guide examples: one
// non-terminal per distinct character, and a start rule with one body per
// guide spelling it out.
func InitGrammar(sess *grinfer.Session, guides []string) *grammar.Grammar {
	chars := make(map[rune]bool)
	for _, guide := range guides {
		for _, c := range guide {
			chars[c] = true
		}
	}
	sorted := make([]rune, 0, len(chars))
	for c := range chars {
		sorted = append(sorted, c)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	g := grammar.New()
	class := make(map[rune]string, len(sorted))
	for _, c := range sorted {
		class[c] = sess.FreshNT()
	}
	for _, guide := range guides {
		var body grammar.Body
		for _, c := range guide {
			body = append(body, grammar.N(class[c]))
		}
		g.AddBody(grammar.StartName, body)
	}
	for _, c := range sorted {
		g.AddBody(class[c], grammar.Syms(grammar.T(string(c))))
	}
	return g
}
