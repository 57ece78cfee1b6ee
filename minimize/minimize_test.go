package minimize

import (
	"errors"
	"reflect"
	"testing"

	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func parse(t *testing.T, text string) *grammar.Grammar {
	g, err := grammar.Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestInlineChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.minimize")
	defer teardown()
	//
	g := parse(t, `start: a
	a: b
	b: "x"`)
	m, err := Aggressive(g)
	if err != nil {
		t.Fatal(err)
	}
	if m.String() != `start: "x"` {
		t.Errorf("Expected start: \"x\", is\n%s", m)
	}
	if g.Size() != 3 {
		t.Errorf("Expected input grammar to be left alone, is\n%s", g)
	}
}

func TestMergeEquivalent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.minimize")
	defer teardown()
	//
	g := parse(t, `start: a b
	a: "x" | "y"
	b: "y" | "x"`)
	m, err := Aggressive(g)
	if err != nil {
		t.Fatal(err)
	}
	expected := "start: a a\na: \"x\"\n    | \"y\""
	if m.String() != expected {
		t.Errorf("Expected\n%s\nis\n%s", expected, m)
	}
}

func TestMergeRecursiveEquivalent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.minimize")
	defer teardown()
	//
	g := parse(t, `start: a b
	a: "x" a | "x"
	b: "x" b | "x"`)
	m, err := Aggressive(g)
	if err != nil {
		t.Fatal(err)
	}
	if m.Has("b") || !m.Has("a") {
		t.Errorf("Expected b to be merged into a, is\n%s", m)
	}
}

func TestIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.minimize")
	defer teardown()
	//
	g := parse(t, `start: expr
	expr: expr "+" n | n | expr
	n: "1" | "2" | "1"
	unused: n n`)
	m1, err := Aggressive(g)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := Aggressive(m1)
	if err != nil {
		t.Fatal(err)
	}
	if m1.String() != m2.String() {
		t.Errorf("Expected minimization to be idempotent, is\n%s\nvs\n%s", m1, m2)
	}
	if m1.Rule("n").Len() != 2 {
		t.Errorf("Expected duplicate body of n to be removed, is\n%s", m1)
	}
	for _, b := range m1.Rule("expr").Bodies() {
		if b.Equal(grammar.Syms(grammar.N("expr"))) {
			t.Errorf("Expected unit body expr ➞ expr to be stripped, is\n%s", m1)
		}
	}
	for _, input := range []string{"1", "1+2", "2+2+1"} {
		if ok, err := m1.Accepts(input); err != nil || !ok {
			t.Errorf("Expected minimized grammar to accept %q, is %v (%v)", input, ok, err)
		}
	}
}

func TestUnproductive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.minimize")
	defer teardown()
	//
	for _, text := range []string{
		"start: a \"y\"\na: a",
		"start: a\na: a \"x\" | a",
	} {
		_, err := Aggressive(parse(t, text))
		var uge *grinfer.UnproductiveGrammarError
		if !errors.As(err, &uge) {
			t.Errorf("Expected unproductive grammar error for\n%s\nis %v", text, err)
		} else if !grinfer.IsFatal(err) {
			t.Errorf("Expected unproductive grammar error to be fatal")
		}
	}
}

func TestSimple(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.minimize")
	defer teardown()
	//
	g := parse(t, `start: a b
	a: c
	b: "y" d
	c: "x"
	d: "z" | "w"`)
	m := Simple(g)
	expected := "start: \"x\" \"y\" d\nd: \"z\"\n    | \"w\""
	if m.String() != expected {
		t.Errorf("Expected\n%s\nis\n%s", expected, m)
	}
}

func TestRuleMap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.minimize")
	defer teardown()
	//
	rules := map[string][][]string{
		"start": {{"a", "a"}},
		"a":     {{"DIGIT"}},
		"DIGIT": {{"1"}, {"2"}},
	}
	m, err := RuleMap(rules)
	if err != nil {
		t.Fatal(err)
	}
	expected := map[string][][]string{
		"start": {{"DIGIT", "DIGIT"}},
		"DIGIT": {{"1"}, {"2"}},
	}
	if !reflect.DeepEqual(m, expected) {
		t.Errorf("Expected %v, is %v", expected, m)
	}
	if _, err := RuleMap(map[string][][]string{"a": {{"x"}}}); err == nil {
		t.Errorf("Expected rule map without start rule to be rejected")
	}
}
