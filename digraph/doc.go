/*
Package digraph implements a directed graph over a fixed set of named
vertices, with reachability, connectivity and cycle detection.

All traversals are iterative depth-first searches on an explicit stack, so
deep graphs cannot exhaust the goroutine stack. The graph is used to judge
structural properties of grammars, e.g. whether the non-terminal reference
graph is connected and recursive.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package digraph

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grinfer.digraph'.
func tracer() tracing.Trace {
	return tracing.Select("grinfer.digraph")
}
