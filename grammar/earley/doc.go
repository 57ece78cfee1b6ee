/*
Package earley implements a scannerless Earley recognizer for context-free
grammars whose terminals are literal strings.

The parser works directly on the bytes of an input string: a terminal
matches if the remaining input starts with its literal text. There is no
separate tokenizer, which makes it suitable as the "compile grammar text to a
parser" collaborator of grammar inference, where terminals are single
characters or short literals.

Epsilon-productions are supported. Nullable non-terminals are handled
following Aycock and Horspool ("Practical Earley Parsing", 2002): when a
nullable non-terminal is predicted, the predicting item is advanced
immediately.

Usage:

    g, err := earley.NewGrammar("S", []earley.Rule{
        {LHS: "S", RHS: []earley.Symbol{earley.NT("S"), earley.Lit("+"), earley.NT("N")}},
        {LHS: "S", RHS: []earley.Symbol{earley.NT("N")}},
        {LHS: "N", RHS: []earley.Symbol{earley.Lit("1")}},
    })
    p := earley.NewParser(g)
    accept := p.Parse("1+1")
    tree := p.Tree()   // one derivation for the accepted input

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package earley

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'grinfer.earley'.
func tracer() tracing.Trace {
	return tracing.Select("grinfer.earley")
}
