package grammar

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// exprGrammar is
//
//     start: expr
//     expr:  expr "+" n | n
//     n:     "1" | "2"
//
func exprGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("start")
	b.LHS("start").N("expr").End()
	b.LHS("expr").N("expr").T("+").N("n").End()
	b.LHS("expr").N("n").End()
	b.LHS("n").T("1").End()
	b.LHS("n").T("2").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.grammar")
	defer teardown()
	//
	g := exprGrammar(t)
	if g.Size() != 5 {
		t.Errorf("Expected grammar to have 5 bodies, is %d", g.Size())
	}
	if g.SymbolCount() != 5+1+3+1+1+1 {
		t.Errorf("Expected symbol count of 12, is %d", g.SymbolCount())
	}
	if names := g.Names(); names[0] != "start" || len(names) != 3 {
		t.Errorf("Expected names [start expr n], is %v", names)
	}
	b := NewGrammarBuilder("S")
	b.LHS("A").T("x").End()
	if _, err := b.Grammar(); err == nil {
		t.Errorf("Expected missing start rule to be reported")
	}
}

func TestAddBodyIsDuplicateFree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.grammar")
	defer teardown()
	//
	g := exprGrammar(t)
	v := g.Version()
	g.AddRule(NewRule("n", Syms(T("1")), Syms(T("3"))))
	if g.Rule("n").Len() != 3 {
		t.Errorf("Expected n to have 3 bodies after merge, is %d", g.Rule("n").Len())
	}
	if g.Version() == v {
		t.Errorf("Expected version to change after adding a body")
	}
	v = g.Version()
	g.AddBody("n", Syms(T("3")))
	if g.Version() != v {
		t.Errorf("Expected version to stay at %d for duplicate body, is %d", v, g.Version())
	}
}

func TestString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.grammar")
	defer teardown()
	//
	g := exprGrammar(t)
	g.AddBody("opt", nil)
	g.AddBody("opt", Syms(T("x")))
	expected := `start: expr
expr: expr "+" n
    | n
n: "1"
    | "2"
opt: ε
    | "x"`
	if g.String() != expected {
		t.Errorf("Expected\n%s\nis\n%s", expected, g.String())
	}
	g.Rule("n").AddBody(Syms(T("3")))
	if !strings.Contains(g.String(), `| "3"`) {
		t.Errorf("Expected text cache to be invalidated by rule change, is\n%s", g.String())
	}
}

func TestParseRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.grammar")
	defer teardown()
	//
	g := exprGrammar(t)
	g.AddBody("n", Syms(T(`"q"`), T("a b")))
	g.AddBody("opt", nil)
	h, err := Parse(g.String())
	if err != nil {
		t.Fatal(err)
	}
	if !h.Equal(g) {
		t.Errorf("Expected round trip to yield\n%s\nis\n%s", g, h)
	}
	if h.Start() != "start" {
		t.Errorf("Expected start symbol 'start', is %s", h.Start())
	}
	if _, err := Parse(`start "x"`); err == nil {
		t.Errorf("Expected error for body without rule")
	}
}

func TestParser(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.grammar")
	defer teardown()
	//
	g := exprGrammar(t)
	for _, s := range []string{"1", "2+1", "1+1+2"} {
		if ok, err := g.Accepts(s); !ok || err != nil {
			t.Errorf("Expected %q to be accepted, is %v (%v)", s, ok, err)
		}
	}
	for _, s := range []string{"", "+", "1+", "12"} {
		if ok, _ := g.Accepts(s); ok {
			t.Errorf("Expected %q to be rejected", s)
		}
	}
	p1, _ := g.Parser()
	p2, _ := g.Parser()
	if p1 != p2 {
		t.Errorf("Expected parser to be cached")
	}
	g.AddBody("n", Syms(T("3")))
	if ok, _ := g.Accepts("3+1"); !ok {
		t.Errorf("Expected parser cache to be invalidated after adding n ➞ 3")
	}
}

func TestCompileError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.grammar")
	defer teardown()
	//
	g := exprGrammar(t)
	g.AddBody("n", Syms(N("undefined")))
	_, err := g.Parser()
	var cerr *grinfer.GrammarCompileError
	if !errors.As(err, &cerr) {
		t.Fatalf("Expected GrammarCompileError, is %v", err)
	}
	if !strings.Contains(cerr.Error(), "undefined") {
		t.Errorf("Expected error to name the undefined non-terminal, is %v", cerr)
	}
	g.RemoveRule("start")
	if err := g.Verify(); err == nil {
		t.Errorf("Expected missing start rule to be an error")
	}
}

func TestEBNF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.grammar")
	defer teardown()
	//
	g := exprGrammar(t)
	g.AddBody("unused", Syms(T("u")))
	if err := g.Verify(); err != nil {
		t.Errorf("Expected unused rule to be tolerated, is %v", err)
	}
	src := g.EBNF()
	if !strings.Contains(src, `N_n = "1" | "2" .`) {
		t.Errorf("Expected EBNF production for n, is\n%s", src)
	}
}

func TestReplaceAndRename(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.grammar")
	defer teardown()
	//
	g := exprGrammar(t)
	if c := g.Replace("n", Syms(T("1"))); c != 2 {
		t.Errorf("Expected 2 replacements, is %d", c)
	}
	if g.References()["n"] != 0 {
		t.Errorf("Expected no references to n after replace")
	}
	g = exprGrammar(t)
	g.Rename("expr", "e")
	if g.Has("expr") || !g.Rule("e").HasBody(Syms(N("e"), T("+"), N("n"))) {
		t.Errorf("Expected expr to be renamed to e, is\n%s", g)
	}
}

func TestCopyIsDeep(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.grammar")
	defer teardown()
	//
	g := exprGrammar(t)
	c := g.Copy()
	c.AddBody("n", Syms(T("7")))
	c.Replace("expr", Syms(T("e")))
	if g.Rule("n").Len() != 2 || g.References()["expr"] != 2 {
		t.Errorf("Expected original grammar to be unaffected by changes to copy, is\n%s", g)
	}
	if g.Fingerprint() == c.Fingerprint() {
		t.Errorf("Expected different fingerprints")
	}
	if g.Fingerprint() != g.Copy().Fingerprint() {
		t.Errorf("Expected equal fingerprints for copies")
	}
}

func TestProductive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.grammar")
	defer teardown()
	//
	g := exprGrammar(t)
	g.AddBody("loop", Syms(N("loop"), T("x")))
	u := g.Unproductive()
	if len(u) != 1 || u[0] != "loop" {
		t.Errorf("Expected [loop] to be unproductive, is %v", u)
	}
	r := g.Reachable()
	if len(r) != 3 {
		t.Errorf("Expected 3 reachable non-terminals, is %v", r)
	}
}

func TestSamplePositives(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.grammar")
	defer teardown()
	//
	g := exprGrammar(t)
	rnd := rand.New(rand.NewSource(1))
	samples := g.SamplePositives(rnd, 10, 5)
	if len(samples) == 0 {
		t.Fatalf("Expected samples, have none")
	}
	seen := map[string]bool{}
	for _, s := range samples {
		if seen[s] {
			t.Errorf("Expected unique samples, %q is duplicate", s)
		}
		seen[s] = true
		if ok, _ := g.Accepts(s); !ok {
			t.Errorf("Expected sample %q to be accepted", s)
		}
	}
	// a finite language yields fewer samples than requested
	b := NewGrammarBuilder("start")
	b.LHS("start").T("a").End()
	b.LHS("start").T("b").End()
	fin, _ := b.Grammar()
	if s := fin.SamplePositives(rnd, 10, 3); len(s) != 2 {
		t.Errorf("Expected 2 samples of finite language, is %v", s)
	}
}

func TestSampleNegatives(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.grammar")
	defer teardown()
	//
	g := exprGrammar(t)
	rnd := rand.New(rand.NewSource(2))
	negs, err := g.SampleNegatives(rnd, 10, []string{"1", "2", "+"}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(negs) == 0 {
		t.Fatalf("Expected negative samples, have none")
	}
	for _, s := range negs {
		if ok, _ := g.Accepts(s); ok {
			t.Errorf("Expected negative sample %q to be rejected", s)
		}
	}
}
