package learn

import (
	"math/rand"
	"sort"

	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/bubble"
	"github.com/npillmayer/grinfer/grammar"
	"github.com/npillmayer/grinfer/minimize"
	"github.com/npillmayer/grinfer/ptree"
	"github.com/npillmayer/grinfer/tokenexp"
)

// Default settings.
const (
	DefaultMaxGroupLen = 10 // bubbles hold fewer elements than this
	DefaultMaxSamples  = 50 // strings shown to the oracle per replacement check
)

// maxRoundsPerSize stops a bubbling phase which keeps on finding merges.
const maxRoundsPerSize = 1000

// Learner holds the settings of a learning run.
type Learner struct {
	Oracle      grinfer.Oracle
	Session     *grinfer.Session
	MaxGroupLen int
	MaxSamples  int
	// Require merges to actually grow the language of the grammar induced
	// by the trees, not only to be valid.
	MustExpandInCoalesce bool
	MustExpandInPartial  bool
	// Widen terminal tokens to character classes before minimization.
	ExpandTokens bool
	TokenSamples int
}

// New creates a learner with default settings.
func New(oracle grinfer.Oracle, sess *grinfer.Session) *Learner {
	return &Learner{
		Oracle:       oracle,
		Session:      sess,
		MaxGroupLen:  DefaultMaxGroupLen,
		MaxSamples:   DefaultMaxSamples,
		TokenSamples: tokenexp.DefaultSamples,
	}
}

// Learn tokenizes the examples character by character and runs
// BuildStartGrammar.
func (l *Learner) Learn(examples []string) (*grammar.Grammar, error) {
	leaves := make([][]*ptree.Node, len(examples))
	for i, ex := range examples {
		leaves[i] = ptree.Tokenize(ex)
	}
	return l.BuildStartGrammar(leaves)
}

// BuildStartGrammar returns a grammar which generalizes the examples given
// as leaf sequences as far as the oracle permits.
func (l *Learner) BuildStartGrammar(leaves [][]*ptree.Node) (*grammar.Grammar, error) {
	tracer().Infof("building the starting trees")
	trees, err := l.BuildTrees(leaves)
	if err != nil {
		return nil, err
	}
	g := ptree.BuildGrammar(trees)
	tracer().Infof("coalescing non-terminals")
	if g, trees, _, err = l.Coalesce(trees, g, nil); err != nil {
		return nil, err
	}
	if g, trees, _, err = l.CoalescePartial(trees, g, nil); err != nil {
		return nil, err
	}
	if l.ExpandTokens {
		tracer().Infof("expanding tokens")
		x := tokenexp.New(l.Oracle, l.Session)
		x.Samples = l.TokenSamples
		if g, err = x.ExpandTokens(g, trees); err != nil {
			return nil, err
		}
	}
	tracer().Infof("minimizing initial grammar")
	return minimize.Simple(g), nil
}

// NaiveTrees puts every example under the start symbol, with each leaf
// wrapped into a non-terminal for its character.
func (l *Learner) NaiveTrees(leaves [][]*ptree.Node) []*ptree.Node {
	set := make(map[string]bool)
	for _, lst := range leaves {
		for _, leaf := range lst {
			set[leaf.Payload] = true
		}
	}
	terminals := make([]string, 0, len(set))
	for t := range set {
		terminals = append(terminals, t)
	}
	sort.Strings(terminals)
	class := make(map[string]string, len(terminals))
	for _, t := range terminals {
		class[t] = l.Session.FreshNT()
	}
	trees := make([]*ptree.Node, len(leaves))
	for i, lst := range leaves {
		children := make([]*ptree.Node, len(lst))
		for k, leaf := range lst {
			children[k] = ptree.Inner(class[leaf.Payload], leaf.Copy())
		}
		trees[i] = ptree.Inner(grammar.StartName, children...)
	}
	return trees
}

// BuildTrees builds parse trees for the examples by greedily applying
// bubbles which enable a merge of non-terminals.
func (l *Learner) BuildTrees(leaves [][]*ptree.Node) ([]*ptree.Node, error) {
	trees := l.NaiveTrees(leaves)
	g := ptree.BuildGrammar(trees)
	var err error
	if g, trees, _, err = l.Coalesce(trees, g, nil); err != nil {
		return nil, err
	}
	if _, trees, _, err = l.CoalescePartial(trees, g, nil); err != nil {
		return nil, err
	}
	maxExample := 0
	for _, lst := range leaves {
		if len(lst) > maxExample {
			maxExample = len(lst)
		}
	}
	for size := 3; size < l.MaxGroupLen; size++ {
		for round := 1; round <= maxRoundsPerSize; round++ {
			candidates := bubble.Group(l.Session, trees, size)
			updated := false
			for i, c := range candidates {
				tracer().Debugf("[group len %d] bubbling round %d (%d/%d)", size, round, i+1, len(candidates))
				next := bubble.Apply(c.First, trees)
				if c.IsPair() {
					next = bubble.Apply(c.Second, next)
				}
				ok, merged, err := l.score(next, c)
				if err != nil {
					return nil, err
				}
				if ok {
					tracer().Infof("successful grouping %v", c)
					trees, updated = merged, true
					break
				}
			}
			if !updated {
				break
			}
			if round == maxRoundsPerSize {
				tracer().Errorf("giving up on group length %d after %d rounds", size, round)
			}
		}
		if size > maxExample {
			break
		}
	}
	return trees, nil
}

// score checks whether the bubbled trees allow a merge involving the new
// non-terminals. It returns the merged trees if they do.
func (l *Learner) score(trees []*ptree.Node, c bubble.Candidate) (bool, []*ptree.Node, error) {
	g := ptree.BuildGrammar(trees)
	_, merged, caused, err := l.Coalesce(trees, g, &c)
	if err != nil {
		return false, nil, err
	}
	if !caused && !c.IsPair() {
		if _, merged, caused, err = l.CoalescePartial(trees, g, &c); err != nil {
			return false, nil, err
		}
		if caused {
			tracer().Debugf("partial merge for %v", c)
		}
	}
	if !caused {
		return false, trees, nil
	}
	return true, merged, nil
}

// sample reduces strs to at most MaxSamples strings, in random order.
func (l *Learner) sample(strs []string) []string {
	idx := l.Session.Sample(len(strs), l.MaxSamples)
	s := make([]string, len(idx))
	for i, k := range idx {
		s[i] = strs[k]
	}
	return s
}

// represented is true if g accepts every string of strs.
func represented(g *grammar.Grammar, strs []string) bool {
	ok, err := grinfer.AcceptsAll(g, strs)
	return err == nil && ok
}

// CheckRecall samples strings from g and checks that the oracle accepts all
// of them.
func CheckRecall(oracle grinfer.Oracle, g *grammar.Grammar, rnd *rand.Rand) (bool, error) {
	return grinfer.AcceptsAll(oracle, g.SamplePositives(rnd, 10, 10))
}
