/*
Package minimize simplifies grammars without changing their language.

Aggressive runs five rewriting passes until the number of bodies no longer
changes:

  1. inline singletons: a non-terminal with a single body of at most one
     symbol is replaced by that symbol (or removed, for epsilon)
  2. merge equivalent non-terminals: non-terminals with identical body sets,
     with self references treated as equal, are merged
  3. drop duplicate bodies
  4. drop unit bodies x ➞ x
  5. inline non-terminals which have a single body and are referenced
     exactly once

The start symbol is never removed. A non-terminal which can only derive
itself is a construction error and reported as
*grinfer.UnproductiveGrammarError. Setting the configuration flag
'panic-on-unproductive' turns this error into a panic, for post-mortem
debugging.

Simple is the lighter minimization applied to freshly learned grammars: it
removes duplicate bodies, chains of single-terminal non-terminals, and
non-terminals with a single body which are used only once.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package minimize

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grinfer.minimize'.
func tracer() tracing.Trace {
	return tracing.Select("grinfer.minimize")
}
