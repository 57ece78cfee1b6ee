/*
Package config holds the configuration of a learning or search run.

A configuration is read from a TOML file. Keys not present in the file keep
their default values:

	TERMINALS = ["a", "b"]
	NONTERMINALS = ["T0", "T1", "T2"]
	GUIDE = ["ab", "aab"]
	POS_EXAMPLES = 50
	NEG_EXAMPLES = 50
	SEED = 42

A Config is passed by value and treated as immutable for the duration of a
run.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grinfer.config'.
func tracer() tracing.Trace {
	return tracing.Select("grinfer.config")
}
