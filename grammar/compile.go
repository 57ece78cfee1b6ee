package grammar

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/grammar/earley"
	"golang.org/x/exp/ebnf"
)

// Parser returns an Earley parser for g. The parser is compiled lazily and
// cached until the next change to g. Compile failures are cached as well and
// returned as *grinfer.GrammarCompileError.
func (g *Grammar) Parser() (*earley.Parser, error) {
	if g.compiled.valid && g.compiled.version == g.version {
		return g.compiled.parser, g.compiled.err
	}
	g.compiled.parser, g.compiled.err = g.compile()
	g.compiled.version = g.version
	g.compiled.valid = true
	return g.compiled.parser, g.compiled.err
}

func (g *Grammar) compile() (*earley.Parser, error) {
	if err := g.Verify(); err != nil {
		return nil, err
	}
	rules := make([]earley.Rule, 0, g.Size())
	for _, r := range g.Rules() {
		for _, b := range r.bodies {
			rhs := make([]earley.Symbol, len(b))
			for i, s := range b {
				if s.IsTerminal() {
					rhs[i] = earley.Lit(s.Text)
				} else {
					rhs[i] = earley.NT(s.Text)
				}
			}
			rules = append(rules, earley.Rule{LHS: r.name, RHS: rhs})
		}
	}
	eg, err := earley.NewGrammar(g.start, rules)
	if err != nil {
		return nil, &grinfer.GrammarCompileError{Grammar: g.String(), Err: err}
	}
	tracer().Debugf("compiled grammar version %d", g.version)
	return earley.NewParser(eg), nil
}

// Accepts parses input with g's parser. It returns a compile error if g does
// not compile. This makes every grammar usable as a grinfer.Oracle.
func (g *Grammar) Accepts(input string) (bool, error) {
	p, err := g.Parser()
	if err != nil {
		return false, err
	}
	return p.Parse(input), nil
}

var _ grinfer.Oracle = &Grammar{}

// Verify checks that g is a well-formed grammar: the start symbol is defined
// and every non-terminal reachable from it is defined. The check is done by
// translating the reachable part of g to EBNF and verifying that with
// golang.org/x/exp/ebnf. Failures are reported as *grinfer.GrammarCompileError.
func (g *Grammar) Verify() error {
	if !g.Has(g.start) {
		return &grinfer.GrammarCompileError{
			Grammar: g.String(),
			Err:     fmt.Errorf("start symbol %s is undefined", g.start),
		}
	}
	src, names := g.ebnf(true)
	eg, err := ebnf.Parse(g.start, strings.NewReader(src))
	if err == nil {
		err = ebnf.Verify(eg, names[g.start])
	}
	if err != nil {
		return &grinfer.GrammarCompileError{Grammar: g.String(), Err: unmangle(err, names)}
	}
	return nil
}

// EBNF returns g in the EBNF notation of golang.org/x/exp/ebnf. Non-terminal
// names are kept if they are valid production names and mangled otherwise.
func (g *Grammar) EBNF() string {
	src, _ := g.ebnf(false)
	return src
}

// ebnf translates g. Production names are made unique, non-lexical Go
// identifiers. If reachableOnly is set, only productions reachable from the
// start symbol are emitted (ebnf.Verify rejects unused productions), but
// references to undefined non-terminals are kept, so that Verify reports them.
func (g *Grammar) ebnf(reachableOnly bool) (string, map[string]string) {
	names := make(map[string]string)
	mangle := func(nt string) string {
		if m, ok := names[nt]; ok {
			return m
		}
		m := productionName(nt, len(names))
		names[nt] = m
		return m
	}
	var rules []*Rule
	if reachableOnly {
		for _, n := range g.Reachable() {
			rules = append(rules, g.rules[n])
		}
	} else {
		rules = g.Rules()
	}
	var b bytes.Buffer
	for _, r := range rules {
		b.WriteString(mangle(r.name))
		b.WriteString(" = ")
		var alts []string
		hasEpsilon := false
		for _, body := range r.bodies {
			if body.IsEpsilon() {
				hasEpsilon = true
				continue
			}
			syms := make([]string, len(body))
			for i, s := range body {
				if s.IsTerminal() {
					syms[i] = strconv.Quote(s.Text)
				} else {
					syms[i] = mangle(s.Text)
				}
			}
			alts = append(alts, strings.Join(syms, " "))
		}
		expr := strings.Join(alts, " | ")
		if hasEpsilon && expr != "" {
			expr = "[ " + expr + " ]"
		}
		b.WriteString(expr)
		b.WriteString(" .\n")
	}
	return b.String(), names
}

// productionName makes nt a non-lexical (upper-case initial) identifier.
func productionName(nt string, serial int) string {
	ok := nt != ""
	for _, r := range nt {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			ok = false
			break
		}
	}
	if ok {
		return "N_" + nt
	}
	return fmt.Sprintf("N__%d", serial)
}

// unmangle replaces production names in error messages by the original
// non-terminal names.
func unmangle(err error, names map[string]string) error {
	msg := err.Error()
	mangled := make([]string, 0, len(names))
	back := make(map[string]string, len(names))
	for nt, m := range names {
		mangled = append(mangled, m)
		back[m] = nt
	}
	sort.Slice(mangled, func(i, j int) bool { return len(mangled[i]) > len(mangled[j]) })
	for _, m := range mangled {
		msg = strings.ReplaceAll(msg, m, back[m])
	}
	return errors.New(msg)
}
