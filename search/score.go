package search

import (
	"github.com/npillmayer/grinfer/grammar"
)

// Scorer scores grammars by the examples they accept.
type Scorer struct {
	Positives []string
	Negatives []string
}

// Score is the product of the fraction of positives accepted and the
// fraction of negatives rejected. Both factors are floored at 0.5/n for n
// examples, so that progress on one side is visible even if the other side
// is hopeless. Grammars which do not compile score 0.
func (s Scorer) Score(g *grammar.Grammar) float64 {
	p, err := g.Parser()
	if err != nil {
		tracer().Debugf("candidate does not compile: %v", err)
		return 0
	}
	pos := 1.0
	if n := len(s.Positives); n > 0 {
		matched := 0
		for _, ex := range s.Positives {
			if p.Parse(ex) {
				matched++
			}
		}
		pos = floor(float64(matched)/float64(n), n)
	}
	neg := 1.0
	if n := len(s.Negatives); n > 0 {
		matched := 0
		for _, ex := range s.Negatives {
			if p.Parse(ex) {
				matched++
			}
		}
		neg = floor(1-float64(matched)/float64(n), n)
	}
	return pos * neg
}

func floor(rate float64, n int) float64 {
	if min := 0.5 / float64(n); rate < min {
		return min
	}
	return rate
}

// Good is true for a score which ends the search.
func Good(score float64) bool {
	return score >= 1
}
