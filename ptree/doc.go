/*
Package ptree implements parse trees as they are built and rewritten during
grammar inference.

A parse tree node carries a payload (terminal text or non-terminal name), a
terminal flag and an ordered list of children. Every parent exclusively owns
its children. Operations which rewrite trees work on deep copies, so trees
handed out to different candidates of a search never share structure.

Besides the tree model, the package offers the replacement-string utilities
used for substitution checks against an oracle: given a tree and a
non-terminal, which strings result if some of the non-terminal's occurrences
are replaced by other strings?

All traversals are iterative.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ptree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grinfer.ptree'.
func tracer() tracing.Trace {
	return tracing.Select("grinfer.ptree")
}
