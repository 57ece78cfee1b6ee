/*
Package learn infers a context-free grammar from positive examples and a
membership oracle.

Learning starts with naive parse trees: every distinct character gets a
non-terminal of its own, and every example is a flat sequence of these
under the start symbol. From there, two operations alternate:

Bubbling wraps a contiguous sequence of siblings into a new non-terminal
(see package bubble). Coalescing merges two non-terminals into one class, if
the strings derived by each of them may replace every occurrence of the
other without leaving the oracle's language. A partial coalesce merges a
non-terminal into a single-character non-terminal at only those positions
where the oracle agrees.

A bubbling is kept only if it enables a merge. The loop runs for growing
maximum bubble lengths until no bubbling succeeds, and the grammar induced
by the final trees is minimized.

All replacement checks are sampled: at most MaxSamples strings are shown to
the oracle per check.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package learn

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grinfer.learn'.
func tracer() tracing.Trace {
	return tracing.Select("grinfer.learn")
}
