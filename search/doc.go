/*
Package search finds grammars by stochastic search.

Searcher runs a mutation-based search over a bounded population of
grammars. It starts from a naive grammar for a set of guide examples. In
every iteration a parent is picked at random from the population and
mutated by 1 to 16 structural mutations (bubbling a subsequence of a body
into a new non-terminal, coalescing two non-terminals, adding an
alternative, introducing a repetition). The mutant is minimized and scored
against positive and negative examples; it enters the population only if it
scores higher than the weakest member. After every admission the best
grammar is dumped to a side file. The search ends when a grammar accepts all
positives and rejects all negatives, or when the iteration budget is used up.

The generational variant generates grammars from a tree of random choices
(GrammarGenerator), which can be mutated and replayed. A CategoryScorer keeps
a champion for each of several scoring categories, and new generations are
seeded from these champions.

Evaluate measures recall and precision of a learned grammar against an
oracle.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package search

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grinfer.search'.
func tracer() tracing.Trace {
	return tracing.Select("grinfer.search")
}
