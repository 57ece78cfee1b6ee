/*
Package bubble implements the bubbling engine of grammar inference.

A bubble is a candidate contiguous span of sibling nodes, found somewhere in
a forest of parse trees, which may be promoted ("bubbled up") into a fresh
non-terminal. Group collects every span up to a maximum length at every depth
of every tree, together with the k=4 contexts it occurs in. Bubbles are then
paired and scored: two bubbles occurring in similar contexts are likely to be
interchangeable, i.e. to stand for the same non-terminal. Bubbles which
overlap may have to be applied in a particular order, or not at all;
ApplicationBreaksOther decides this from the contexts seen.

The best-scoring candidates are handed to the learner in shuffled order, which
tries to apply them and checks the result against an oracle.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bubble

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grinfer.bubble'.
func tracer() tracing.Trace {
	return tracing.Select("grinfer.bubble")
}
