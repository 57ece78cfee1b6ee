package search

import (
	"math/rand"

	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/grammar"
)

// PrecisionDepth is the maximum derivation depth of precision samples.
const PrecisionDepth = 5

// Evaluation is the result of comparing a learned grammar to an oracle.
type Evaluation struct {
	RecallTotal, RecallParsed       int
	PrecisionTotal, PrecisionParsed int
	Failures                        []string // recall examples rejected by the grammar, precision samples rejected by the oracle
}

// Recall is the fraction of held-out examples accepted by the grammar, or 0
// if there were none.
func (e Evaluation) Recall() float64 {
	return fraction(e.RecallParsed, e.RecallTotal)
}

// Precision is the fraction of grammar samples accepted by the oracle, or 0
// if there were none.
func (e Evaluation) Precision() float64 {
	return fraction(e.PrecisionParsed, e.PrecisionTotal)
}

func fraction(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

// Evaluate measures recall of g on a set of held-out examples and precision
// of g on precisionSize strings sampled from g. An oracle invocation failure
// aborts the evaluation.
func Evaluate(o grinfer.Oracle, g *grammar.Grammar, recall []string, precisionSize int,
	rnd *rand.Rand) (Evaluation, error) {
	//
	var eval Evaluation
	p, err := g.Parser()
	if err != nil {
		return eval, err
	}
	for _, ex := range recall {
		eval.RecallTotal++
		if p.Parse(ex) {
			eval.RecallParsed++
		} else {
			eval.Failures = append(eval.Failures, ex)
		}
	}
	for _, ex := range g.SamplePositives(rnd, precisionSize, PrecisionDepth) {
		eval.PrecisionTotal++
		ok, err := o.Accepts(ex)
		if err != nil {
			return eval, err
		}
		if ok {
			eval.PrecisionParsed++
		} else {
			eval.Failures = append(eval.Failures, ex)
		}
	}
	tracer().Infof("recall %.3f, precision %.3f", eval.Recall(), eval.Precision())
	return eval, nil
}
