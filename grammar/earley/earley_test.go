package earley

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// We use a small unambiguous expression grammar for testing.
//
//     Sum     = Sum     '+' Product
//             | Product
//     Product = Product '*' Factor
//             | Factor
//     Factor  = '(' Sum ')'
//             | Digit
//     Digit   = '1' | '2' | '3'
//
func makeGrammar(t *testing.T) *Grammar {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelError)
	defer tracer().SetTraceLevel(level)
	g, err := NewGrammar("Sum", []Rule{
		{LHS: "Sum", RHS: []Symbol{NT("Sum"), Lit("+"), NT("Product")}},
		{LHS: "Sum", RHS: []Symbol{NT("Product")}},
		{LHS: "Product", RHS: []Symbol{NT("Product"), Lit("*"), NT("Factor")}},
		{LHS: "Product", RHS: []Symbol{NT("Factor")}},
		{LHS: "Factor", RHS: []Symbol{Lit("("), NT("Sum"), Lit(")")}},
		{LHS: "Factor", RHS: []Symbol{NT("Digit")}},
		{LHS: "Digit", RHS: []Symbol{Lit("1")}},
		{LHS: "Digit", RHS: []Symbol{Lit("2")}},
		{LHS: "Digit", RHS: []Symbol{Lit("3")}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

var inputStrings = []string{
	"1", "1+2", "1*2", "1+2*3", "1*(2+3)", "1+2+3+1", "1*2+3*1",
}

// --- the Tests -------------------------------------------------------------

func TestParser1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.earley")
	defer teardown()
	//
	p := NewParser(makeGrammar(t))
	for n, input := range inputStrings {
		if !p.Parse(input) {
			t.Errorf("Valid input string #%d not accepted: '%s'", n+1, input)
		}
	}
	for _, input := range []string{"", "+", "1+", "(1", "12", "1**2", "4"} {
		if p.Parse(input) {
			t.Errorf("Invalid input string accepted: '%s'", input)
		}
	}
}

func TestUndefinedNonterminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.earley")
	defer teardown()
	//
	_, err := NewGrammar("S", []Rule{
		{LHS: "S", RHS: []Symbol{NT("A")}},
	})
	if err == nil {
		t.Errorf("Expected grammar with undefined non-terminal to fail")
	}
	_, err = NewGrammar("X", []Rule{
		{LHS: "S", RHS: []Symbol{Lit("a")}},
	})
	if err == nil {
		t.Errorf("Expected grammar with undefined start symbol to fail")
	}
}

func TestEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.earley")
	defer teardown()
	//
	// S ➞ A B 'c' ; A ➞ 'a' | ε ; B ➞ A | 'b'
	g, err := NewGrammar("S", []Rule{
		{LHS: "S", RHS: []Symbol{NT("A"), NT("B"), Lit("c")}},
		{LHS: "A", RHS: []Symbol{Lit("a")}},
		{LHS: "A", RHS: []Symbol{}},
		{LHS: "B", RHS: []Symbol{NT("A")}},
		{LHS: "B", RHS: []Symbol{Lit("b")}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !g.Nullable("A") || !g.Nullable("B") || g.Nullable("S") {
		t.Errorf("Expected A and B to be nullable, S not")
	}
	p := NewParser(g)
	for _, input := range []string{"c", "ac", "aac", "bc", "abc"} {
		if !p.Parse(input) {
			t.Errorf("Valid input string not accepted: '%s'", input)
		}
	}
	for _, input := range []string{"", "aaac", "bac", "cc"} {
		if p.Parse(input) {
			t.Errorf("Invalid input string accepted: '%s'", input)
		}
	}
}

func TestMultiCharLiterals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.earley")
	defer teardown()
	//
	g, err := NewGrammar("S", []Rule{
		{LHS: "S", RHS: []Symbol{Lit("if"), Lit(" "), NT("S")}},
		{LHS: "S", RHS: []Symbol{Lit("x")}},
	})
	if err != nil {
		t.Fatal(err)
	}
	p := NewParser(g)
	if !p.Parse("if if x") {
		t.Errorf("Expected 'if if x' to be accepted")
	}
	if p.Parse("i x") {
		t.Errorf("Expected 'i x' to be rejected")
	}
}

func TestTree1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.earley")
	defer teardown()
	//
	input := "1+2*3"
	p := NewParser(makeGrammar(t))
	if !p.Parse(input) {
		t.Fatalf("Valid input string not accepted: '%s'", input)
	}
	root := p.Tree()
	if root == nil {
		t.Fatalf("Expected derivation tree, is nil")
	}
	if root.Symbol.Value != "Sum" || root.Span != [2]int{0, 5} {
		t.Errorf("Expected root to be Sum over (0…5), is %s %v", root.Symbol, root.Span)
	}
	if len(root.Children) != 3 || root.Children[1].Symbol != Lit("+") {
		t.Errorf("Expected top-level reduction Sum ➞ Sum + Product, is %s", root)
	}
	text := ""
	for _, leaf := range Leaves(root) {
		text += leaf.Text(input)
	}
	if text != input {
		t.Errorf("Expected leaves to spell %q, is %q", input, text)
	}
}

func TestTreeUnitCycle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.earley")
	defer teardown()
	//
	// A ➞ B | 'a' ; B ➞ A
	g, err := NewGrammar("A", []Rule{
		{LHS: "A", RHS: []Symbol{NT("B")}},
		{LHS: "A", RHS: []Symbol{Lit("a")}},
		{LHS: "B", RHS: []Symbol{NT("A")}},
	})
	if err != nil {
		t.Fatal(err)
	}
	p := NewParser(g)
	if !p.Parse("a") {
		t.Fatalf("Expected 'a' to be accepted")
	}
	if root := p.Tree(); root == nil || len(Leaves(root)) != 1 {
		t.Errorf("Expected a derivation with one leaf, is %v", root)
	}
}
