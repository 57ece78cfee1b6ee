package treebuild

import (
	"strings"
	"testing"

	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/grammar"
	"github.com/npillmayer/grinfer/ptree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// exprOracle accepts int (+|*) int, possibly parenthesized once.
func exprOracle(t *testing.T) *grammar.Grammar {
	b := grammar.NewGrammarBuilder("start")
	b.LHS("start").N("e").End()
	b.LHS("start").T("(").N("e").T(")").End()
	b.LHS("e").N("int").N("op").N("int").End()
	b.LHS("op").T("+").End()
	b.LHS("op").T("*").End()
	b.LHS("int").N("digit").End()
	b.LHS("int").N("int").N("digit").End()
	for _, d := range strings.Split("0123456789", "") {
		b.LHS("digit").T(d).End()
	}
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func tokens(ex ...string) [][]*ptree.Node {
	leaves := make([][]*ptree.Node, len(ex))
	for i, e := range ex {
		for _, tok := range strings.Split(e, " ") {
			leaves[i] = append(leaves[i], ptree.Leaf(tok))
		}
	}
	return leaves
}

func TestCandidates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.treebuild")
	defer teardown()
	//
	var layers [][]*ptree.Node
	for _, ex := range tokens("x = ( int ) ;", "( int ) + y") {
		layers = append(layers, ex)
	}
	groups := Candidates(layers)
	if len(groups) != 1 {
		t.Fatalf("Expected exactly one candidate, is %v", groups)
	}
	if strings.Join(groups[0].Symbols, " ") != "( int )" || groups[0].Count != 2 {
		t.Errorf("Expected candidate [( int )] with count 2, is %v", groups[0])
	}
}

func TestCollapse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.treebuild")
	defer teardown()
	//
	layer := tokens("a a a b")[0]
	out := collapse(layer, []string{"a", "a"}, "t1")
	if len(out) != 3 || out[0].Payload != "t1" || out[1].Payload != "a" {
		t.Errorf("Expected [t1 a b], is %v", out)
	}
}

func TestBuildRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.treebuild")
	defer teardown()
	//
	examples := []string{"3+4", "3*4", "(3+4)", "12+7"}
	var leaves [][]*ptree.Node
	for _, ex := range examples {
		leaves = append(leaves, ptree.Tokenize(ex))
	}
	b := New(exprOracle(t), grinfer.NewSession(1))
	trees, err := b.Build(leaves)
	if err != nil {
		t.Fatal(err)
	}
	for i, tree := range trees {
		if tree.DerivedString() != examples[i] {
			t.Errorf("Expected tree %d to derive %q, is %q", i, examples[i], tree.DerivedString())
		}
		if tree.Payload != grammar.StartName {
			t.Errorf("Expected root labeled start, is %s", tree.Payload)
		}
	}
}

func TestClassDerivation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.treebuild")
	defer teardown()
	//
	leaves := [][]*ptree.Node{ptree.Tokenize("3+4"), ptree.Tokenize("3*4"), ptree.Tokenize("(3+4)")}
	b := New(exprOracle(t), grinfer.NewSession(1))
	layers, err := b.ClassLayers(leaves)
	if err != nil {
		t.Fatal(err)
	}
	three, plus, four := layers[0][0].Payload, layers[0][1].Payload, layers[0][2].Payload
	if three != four {
		t.Errorf("Expected 3 and 4 to share a class, are %s and %s", three, four)
	}
	if plus == three {
		t.Errorf("Expected + to be in a class different from digits")
	}
	if layers[1][1].Payload != plus {
		t.Errorf("Expected + and * to share the operator class")
	}
	if layers[2][0].Payload == layers[2][4].Payload {
		t.Errorf("Expected ( and ) to be in different classes")
	}
	trees, err := b.Build(leaves)
	if err != nil {
		t.Fatal(err)
	}
	g := ptree.BuildGrammar(trees)
	if ok, _ := g.Accepts("4*3"); !ok {
		t.Errorf("Expected grammar of built trees to generalize to 4*3, is\n%s", g)
	}
}

func TestOracleFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.treebuild")
	defer teardown()
	//
	failing := grinfer.OracleFunc(func(string) (bool, error) {
		return false, &grinfer.OracleInvocationError{Command: "none"}
	})
	b := New(failing, grinfer.NewSession(1))
	if _, err := b.Build([][]*ptree.Node{ptree.Tokenize("ab")}); !grinfer.IsFatal(err) {
		t.Errorf("Expected fatal invocation error, is %v", err)
	}
}
