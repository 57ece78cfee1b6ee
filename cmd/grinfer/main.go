/*
Command grinfer infers context-free grammars from examples and a membership
oracle.

Usage:

	grinfer learn <oracle command> <examples dir>    learn a grammar from examples
	grinfer search <target grammar>                  mutation-based search
	grinfer eval <oracle command> <test dir> <grammar file>
	grinfer minimize <grammar file>
	grinfer repl <grammar file>                      try inputs interactively

An oracle command is invoked with the name of a file holding the input; it
accepts by exiting with code 0.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"os"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grinfer.cli'.
func tracer() tracing.Trace {
	return tracing.Select("grinfer.cli")
}

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
