package grinfer

import (
	"errors"
	"fmt"
	"strings"
)

// --- Oracles ---------------------------------------------------------------

// Oracle is a decision procedure for membership in a target language.
//
// Accepts returns (true, nil) if input is in the language and (false, nil) if
// it is not. A non-nil error means the oracle could not be asked at all; it
// must never be interpreted as a rejection.
//
// Oracles are required to be deterministic: the same input always yields the
// same verdict.
type Oracle interface {
	Accepts(input string) (bool, error)
}

// OracleFunc is an adapter to use ordinary functions as oracles.
type OracleFunc func(string) (bool, error)

// Accepts calls f(input).
func (f OracleFunc) Accepts(input string) (bool, error) {
	return f(input)
}

// AcceptsAll asks the oracle for every input. It stops at the first rejection
// and returns false. An invocation error is returned immediately.
func AcceptsAll(o Oracle, inputs []string) (bool, error) {
	for _, input := range inputs {
		ok, err := o.Accepts(input)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// --- Errors ----------------------------------------------------------------

// ErrParseRejected signals that an input is not in a language. It is ordinary
// control flow and may be wrapped by parsers to give more detail.
var ErrParseRejected = errors.New("input rejected")

// GrammarCompileError is returned if a grammar's serialized form cannot be
// compiled into a parser, e.g. because it references an undefined
// non-terminal.
type GrammarCompileError struct {
	Grammar string // serialized grammar
	Err     error  // underlying cause
}

func (e *GrammarCompileError) Error() string {
	return fmt.Sprintf("grammar does not compile: %v", e.Err)
}

func (e *GrammarCompileError) Unwrap() error {
	return e.Err
}

// OracleInvocationError is returned if an oracle could not be invoked at all,
// for example because an external command could not be started.
type OracleInvocationError struct {
	Command string
	Err     error
}

func (e *OracleInvocationError) Error() string {
	return fmt.Sprintf("cannot invoke oracle %q: %v", e.Command, e.Err)
}

func (e *OracleInvocationError) Unwrap() error {
	return e.Err
}

// UnproductiveGrammarError is returned if a grammar contains non-terminals
// which can never derive a finite terminal string.
type UnproductiveGrammarError struct {
	Nonterminals []string
}

func (e *UnproductiveGrammarError) Error() string {
	return fmt.Sprintf("unproductive non-terminals: %s", strings.Join(e.Nonterminals, ", "))
}

// IsFatal returns true for errors which must terminate a learning or search
// run, i.e. everything except a parse rejection or a compile error on a
// generated candidate.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var oie *OracleInvocationError
	var uge *UnproductiveGrammarError
	return errors.As(err, &oie) || errors.As(err, &uge)
}
