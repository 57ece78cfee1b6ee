package learn

import (
	"testing"

	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/grammar"
	"github.com/npillmayer/grinfer/ptree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func oracleFor(t *testing.T, text string) grinfer.Oracle {
	g, err := grammar.Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// arithmetic accepts int (+|*) int, possibly parenthesized once.
const arithmetic = `start: n op n | "(" n op n ")"
	n: "3" | "4"
	op: "+" | "*"`

func leavesOf(examples ...string) [][]*ptree.Node {
	leaves := make([][]*ptree.Node, len(examples))
	for i, ex := range examples {
		leaves[i] = ptree.Tokenize(ex)
	}
	return leaves
}

// classOf returns the label of the parent of leaf text.
func classOf(trees []*ptree.Node, text string) string {
	class := ""
	for _, tree := range trees {
		tree.Walk(func(n *ptree.Node) {
			for _, c := range n.Children {
				if c.Terminal && c.Payload == text {
					class = n.Payload
				}
			}
		})
	}
	return class
}

func TestNaiveTrees(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.learn")
	defer teardown()
	//
	l := New(oracleFor(t, arithmetic), grinfer.NewSession(1))
	trees := l.NaiveTrees(leavesOf("3+4", "(3+4)"))
	if len(trees) != 2 || trees[0].DerivedString() != "3+4" || trees[1].DerivedString() != "(3+4)" {
		t.Fatalf("Expected naive trees to derive the examples, is %v", trees)
	}
	if classOf(trees, "3") == classOf(trees, "4") {
		t.Errorf("Expected every character to get a class of its own")
	}
	g := ptree.BuildGrammar(trees)
	if g.Size() != 2+5 {
		t.Errorf("Expected 7 bodies in naive grammar, is\n%s", g)
	}
}

func TestCoalesce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.learn")
	defer teardown()
	//
	l := New(oracleFor(t, arithmetic), grinfer.NewSession(1))
	trees := l.NaiveTrees(leavesOf("3+4", "3*4", "(3+4)"))
	g := ptree.BuildGrammar(trees)
	g, trees, caused, err := l.Coalesce(trees, g, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !caused {
		t.Fatalf("Expected merges to happen")
	}
	if classOf(trees, "3") != classOf(trees, "4") {
		t.Errorf("Expected 3 and 4 to be merged, is\n%s", g)
	}
	if classOf(trees, "+") != classOf(trees, "*") {
		t.Errorf("Expected + and * to be merged, is\n%s", g)
	}
	if classOf(trees, "(") == classOf(trees, ")") {
		t.Errorf("Expected ( and ) to stay apart, is\n%s", g)
	}
	if ok, _ := g.Accepts("(4*3)"); !ok {
		t.Errorf("Expected coalesced grammar to accept (4*3), is\n%s", g)
	}
	for i, tree := range trees {
		if tree.Payload != grammar.StartName {
			t.Errorf("Expected tree %d to be rooted at start, is %v", i, tree)
		}
	}
}

func TestCoalescePartial(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.learn")
	defer teardown()
	//
	l := New(oracleFor(t, `start: "x" "y" | "y" "y"`), grinfer.NewSession(1))
	trees := l.NaiveTrees(leavesOf("xy", "yy"))
	g := ptree.BuildGrammar(trees)
	g, trees, happened, err := l.CoalescePartial(trees, g, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !happened {
		t.Fatalf("Expected a partial merge")
	}
	expected := "start: t3 t2\nt2: \"y\"\nt3: \"x\"\n    | \"y\""
	if g.String() != expected {
		t.Errorf("Expected\n%s\nis\n%s", expected, g)
	}
	for _, s := range []string{"xy", "yy"} {
		if ok, _ := g.Accepts(s); !ok {
			t.Errorf("Expected %q to be accepted", s)
		}
	}
	for _, s := range []string{"yx", "xx"} {
		if ok, _ := g.Accepts(s); ok {
			t.Errorf("Expected %q to be rejected", s)
		}
	}
	if trees[1].String() != ptree.Inner("start",
		ptree.Inner("t3", ptree.Leaf("y")), ptree.Inner("t2", ptree.Leaf("y"))).String() {
		t.Errorf("Expected first y of yy to be relabeled, is %v", trees[1])
	}
}

func TestLearnArithmetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.learn")
	defer teardown()
	//
	oracle := oracleFor(t, arithmetic)
	sess := grinfer.NewSession(7)
	l := New(oracle, sess)
	examples := []string{"3+4", "3*4", "(3+4)"}
	g, err := l.Learn(examples)
	if err != nil {
		t.Fatal(err)
	}
	for _, ex := range append(examples, "4*3", "(4+4)") {
		if ok, err := g.Accepts(ex); !ok || err != nil {
			t.Errorf("Expected learned grammar to accept %q, is %v (%v)\n%s", ex, ok, err, g)
		}
	}
	ok, err := CheckRecall(oracle, g, sess.Rand())
	if err != nil || !ok {
		t.Errorf("Expected strings sampled from learned grammar to be valid, is %v (%v)\n%s", ok, err, g)
	}
}

func TestOracleFailureIsFatal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.learn")
	defer teardown()
	//
	failing := grinfer.OracleFunc(func(string) (bool, error) {
		return false, &grinfer.OracleInvocationError{Command: "none"}
	})
	l := New(failing, grinfer.NewSession(1))
	_, err := l.Learn([]string{"ab", "ba"})
	if !grinfer.IsFatal(err) {
		t.Errorf("Expected fatal oracle error, is %v", err)
	}
}
