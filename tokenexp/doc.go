/*
Package tokenexp widens terminal tokens of a learned grammar to character
classes.

A learned grammar only knows the characters seen in the examples. For every
rule with single-terminal bodies, these bodies are classified as digits,
upper-case letters, lower-case letters, mixed letters or whitespace. For
each class, progressively bolder generalizations are tried: a single
character of the class, a run of such characters, and for digits integers
without leading zeros. A generalization is accepted only if the oracle
accepts every example tree with the rule's occurrences replaced by random
samples of the class. The broadest surviving generalization replaces the
terminal bodies by a reference to a helper non-terminal (tdigit, tdigits,
tinteger, tlower, tlowers, tupper, tuppers, tletter, tletters, twhitespace,
twhitespaces), whose rules are added to the grammar. If both digits and
letters of a rule widen, an alphanumeric class (talnum, talnums) is tried
as well.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tokenexp

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grinfer.tokenexp'.
func tracer() tracing.Trace {
	return tracing.Select("grinfer.tokenexp")
}
