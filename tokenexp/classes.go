package tokenexp

import (
	"strings"

	"github.com/npillmayer/grinfer/grammar"
)

// Class is a character class of terminal tokens.
type Class int

// Character classes. Tokens matching none of them are left alone.
const (
	NoClass Class = iota
	Digit
	Upper
	Lower
	Letter // mixed case
	Whitespace
)

const (
	digits     = "0123456789"
	lowers     = "abcdefghijklmnopqrstuvwxyz"
	uppers     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	letters    = lowers + uppers
	whitespace = " \t\n\r\v\f"
)

func (c Class) String() string {
	switch c {
	case Digit:
		return "digit"
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	case Letter:
		return "letter"
	case Whitespace:
		return "whitespace"
	}
	return "none"
}

// alphabet returns the characters of class c.
func (c Class) alphabet() string {
	switch c {
	case Digit:
		return digits
	case Upper:
		return uppers
	case Lower:
		return lowers
	case Letter:
		return letters
	case Whitespace:
		return whitespace
	}
	return ""
}

// helpers are the names of the single-character and the run helper
// non-terminals of a class.
func (c Class) helpers() (single, run string) {
	switch c {
	case Digit:
		return "tdigit", "tdigits"
	case Upper:
		return "tupper", "tuppers"
	case Lower:
		return "tlower", "tlowers"
	case Letter:
		return "tletter", "tletters"
	case Whitespace:
		return "twhitespace", "twhitespaces"
	}
	return "", ""
}

// Classify returns the class of a terminal token.
func Classify(token string) Class {
	switch {
	case token == "":
		return NoClass
	case only(token, digits):
		return Digit
	case only(token, whitespace):
		return Whitespace
	case only(token, uppers):
		return Upper
	case only(token, lowers):
		return Lower
	case only(token, letters):
		return Letter
	}
	return NoClass
}

func only(s, alphabet string) bool {
	for _, r := range s {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}

// --- Helper rules ----------------------------------------------------------

// HelperRules returns the rules defining helper non-terminal name and the
// helpers it depends on.
func HelperRules(name string) []*grammar.Rule {
	n, t := grammar.N, grammar.T
	syms := grammar.Syms
	chars := func(alphabet string) *grammar.Rule {
		r := grammar.NewRule(name)
		for _, c := range alphabet {
			r.AddBody(syms(t(string(c))))
		}
		return r
	}
	run := func(single string) []*grammar.Rule {
		r := grammar.NewRule(name, syms(n(single)), syms(n(single), n(name)))
		return append([]*grammar.Rule{r}, HelperRules(single)...)
	}
	switch name {
	case "tdigit":
		return []*grammar.Rule{chars(digits)}
	case "tnzdigit":
		return []*grammar.Rule{chars(digits[1:])}
	case "tupper":
		return []*grammar.Rule{chars(uppers)}
	case "tlower":
		return []*grammar.Rule{chars(lowers)}
	case "tletter":
		return []*grammar.Rule{chars(letters)}
	case "twhitespace":
		return []*grammar.Rule{chars(whitespace)}
	case "tdigits":
		return run("tdigit")
	case "tuppers":
		return run("tupper")
	case "tlowers":
		return run("tlower")
	case "tletters":
		return run("tletter")
	case "twhitespaces":
		return run("twhitespace")
	case "tinteger":
		r := grammar.NewRule(name, syms(n("tdigit")), syms(n("tnzdigit"), n("tdigits")))
		rules := []*grammar.Rule{r}
		rules = append(rules, HelperRules("tnzdigit")...)
		return append(rules, HelperRules("tdigits")...)
	case "talnum":
		r := grammar.NewRule(name, syms(n("tdigit")), syms(n("tletter")))
		rules := []*grammar.Rule{r}
		rules = append(rules, HelperRules("tdigit")...)
		return append(rules, HelperRules("tletter")...)
	case "talnums":
		return run("talnum")
	}
	return nil
}
