/*
Package treebuild builds parse trees bottom up from flat token sequences.

First, terminals are partitioned into classes: two terminals are in the same
class if each may replace the other in every example, as judged by an
oracle. Every leaf is wrapped into a node for its class. Then, repeatedly,
the most frequent maximal repeated subsequence of the trees' top layers is
collapsed into a new node, until no subsequence repeats. Finally every top
layer is put under a start node.

Every grouping step removes at least one node from the top layers, so the
process terminates. The surface string of every tree equals its example.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package treebuild

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grinfer.treebuild'.
func tracer() tracing.Trace {
	return tracing.Select("grinfer.treebuild")
}
