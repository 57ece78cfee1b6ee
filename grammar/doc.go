/*
Package grammar implements the context-free grammar model used throughout
grammar inference.

A Grammar maps non-terminal names to Rules; a Rule holds an ordered,
duplicate-free list of bodies; a body is a sequence of Symbols. Symbols are
a tagged union: either a terminal literal or a reference to a non-terminal.
The empty body denotes epsilon and prints as 'ε'.

Building a Grammar

Grammars may be constructed programmatically with a builder:

    b := grammar.NewGrammarBuilder("start")
    b.LHS("start").N("expr").End()              // start ➞ expr
    b.LHS("expr").N("expr").T("+").N("n").End() // expr  ➞ expr "+" n
    b.LHS("expr").N("n").End()                  // expr  ➞ n
    b.LHS("n").T("1").End()                     // n     ➞ "1"
    b.LHS("opt").Epsilon()                      // opt   ➞ ε
    g, err := b.Grammar()

or read from their canonical text form with Parse. The text form has one
non-terminal per line; the first body follows the colon, further bodies are
placed on continuation lines starting with '|':

    start: expr
    expr: expr "+" n
        | n
    n: "1"

Caches

A grammar caches its text form and its compiled Earley parser. Every
mutating operation on a grammar or on one of its rules bumps the grammar's
version; caches are valid only for the version they were computed for.
Bodies returned from accessors must therefore never be modified in place.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grinfer.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("grinfer.grammar")
}
