/*
Package oracle provides membership oracles for grammar inference.

An oracle answers whether a string is in a target language. External runs
a program on a temporary file holding the input, where exit code 0 means
acceptance. Grammar uses an in-process Earley parser for a known grammar,
which is useful for experiments and tests. Caching wraps any oracle,
memoizing verdicts and counting calls.

An oracle that cannot be asked at all returns an error, which is never to
be confused with a rejection.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package oracle

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grinfer.oracle'.
func tracer() tracing.Trace {
	return tracing.Select("grinfer.oracle")
}
