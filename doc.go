/*
Package grinfer infers context-free grammars from a handful of example
strings and a membership oracle.

The oracle is an opaque decision procedure ("is this string part of the
target language?"), usually an external parser program. Grinfer builds
parse trees bottom-up from the examples, promotes frequent spans of
siblings into fresh nonterminals ("bubbling"), merges nonterminals which
the oracle tells us are interchangeable, widens terminal classes and
finally minimizes the resulting grammar. Every generalization is checked
against the oracle before it is accepted.

Package structure is as follows:

■ grammar: the CFG model (symbols, rules, grammars), its canonical text form
and an Earley recognizer (sub-package earley) compiled from it.

■ ptree: parse trees and the string derivations computed from them.

■ treebuild, bubble, learn: construction of parse trees and the bubbling and
coalescing engines.

■ minimize, tokenexp: grammar minimization and token class generalization.

■ search: mutation-based search over populations of grammars.

■ oracle: oracles backed by external commands or by grammars.

The base package contains types used throughout all the other packages:
the Oracle contract, the error taxonomy and the Session, which owns the
fresh-identifier counter and the single pseudo-random stream of a run.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grinfer
