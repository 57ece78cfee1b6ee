package bubble

import (
	"math"
	"strings"
	"testing"

	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/ptree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// mk creates a bubble from a string of one-letter symbols.
func mk(nt, symbols string) *Bubble {
	var elems []*ptree.Node
	for _, s := range strings.Split(symbols, "") {
		elems = append(elems, ptree.Inner(s))
	}
	return New(nt, elems)
}

func syms(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, " ")
}

func ctx(b *Bubble, lhs, rhs string) {
	b.AddContext(syms(lhs), syms(rhs))
}

func checkBreaks(t *testing.T, b, other *Bubble, self, oth bool) {
	t.Helper()
	s, o := b.ApplicationBreaksOther(other)
	if s != self || o != oth {
		t.Errorf("Expected %v.ApplicationBreaksOther(%v) = (%v, %v), is (%v, %v)",
			b.Symbols(), other.Symbols(), self, oth, s, o)
	}
}

const S, E = StartMarker, EndMarker

func TestContextSimilarity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.bubble")
	defer teardown()
	//
	contexts := []Context{
		NewContext([]string{S}, []string{E}),
		NewContext([]string{S, "a", "b"}, []string{"c", E}),
		NewContext([]string{DummyMarker, "a", "b"}, []string{"c", "d", "e", "f", "g"}),
		NewContext([]string{"x", "y", "z", "a", "b"}, []string{DummyMarker}),
		NewContext([]string{S, "b"}, []string{"c", E}),
	}
	for _, c1 := range contexts {
		if s := c1.Similarity(c1); s != 1 {
			t.Errorf("Expected self-similarity 1 for %v, is %v", c1, s)
		}
		for _, c2 := range contexts {
			s12, s21 := c1.Similarity(c2), c2.Similarity(c1)
			if math.Abs(s12-s21) > 1e-12 {
				t.Errorf("Expected symmetric similarity for %v and %v, is %v vs %v", c1, c2, s12, s21)
			}
			if s12 < 0 || s12 > 1 {
				t.Errorf("Expected similarity in [0,1], is %v", s12)
			}
		}
	}
	if len(contexts[3].LHS) != K || len(contexts[2].RHS) != K {
		t.Errorf("Expected context sides to be truncated to %d", K)
	}
	// right sides equal (1/2); left sides b,a,S vs b,S: 1/4 for b, then stop
	if s := contexts[1].Similarity(contexts[4]); s != 0.75 {
		t.Errorf("Expected similarity 0.75, is %v", s)
	}
}

func TestBreaksDisjointAndContained(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.bubble")
	defer teardown()
	//
	core := mk("t1", "core")
	checkBreaks(t, core, mk("t0", "cor"), false, false)
	checkBreaks(t, core, mk("t0", "tt"), false, false)
	checkBreaks(t, core, mk("t0", "orc"), false, false)
	checkBreaks(t, mk("t0", "ab"), mk("t1", "cd"), false, false)
}

func TestBreaksOverlapping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.bubble")
	defer teardown()
	//
	core := mk("t1", "core")
	ctx(core, S, "c t "+E) // ^corect$
	rect := mk("t2", "rect")
	ctx(rect, "c o", E) // ^corect$
	checkBreaks(t, core, rect, true, true)
	checkBreaks(t, rect, core, true, true)
	ctx(core, "e n", E) // ^encore$
	checkBreaks(t, core, rect, true, false)
	checkBreaks(t, rect, core, false, true)
	ctx(rect, S, "e n "+E) // ^recten$
	checkBreaks(t, core, rect, false, false)
	core = mk("t1", "core")
	ctx(core, S, "c t "+E)
	checkBreaks(t, core, rect, false, true)
	checkBreaks(t, rect, core, true, false)
}

func TestBreaksShortOverlaps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.bubble")
	defer teardown()
	//
	co := mk("t1", "co") // cottc
	ctx(co, S, "t t c "+E)
	ottc := mk("t2", "ottc")
	ctx(ottc, S+" c", E)
	checkBreaks(t, ottc, co, true, true)
	co = mk("t1", "co") // ottco
	ctx(co, S+" o t t", E)
	ottc = mk("t2", "ottc")
	ctx(ottc, S, "o "+E)
	checkBreaks(t, ottc, co, true, true)
	// cottco: only the occurrences overlapping each other exist, but the
	// check looks at the directly adjacent symbols only
	co = mk("t1", "co")
	ctx(co, S, "t t c o "+E)
	ctx(co, S+" c o t t", E)
	ottc = mk("t2", "ottc")
	ctx(ottc, S+" c", "o "+E)
	checkBreaks(t, ottc, co, false, true)
}

func TestCollect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.bubble")
	defer teardown()
	//
	sess := grinfer.NewSession(1)
	mkTree := func(s string) *ptree.Node {
		var children []*ptree.Node
		for _, c := range strings.Split(s, "") {
			children = append(children, ptree.Inner("t"+c, ptree.Leaf(c)))
		}
		return ptree.Inner("start", children...)
	}
	trees := []*ptree.Node{mkTree("ab"), mkTree("aab")}
	bubbles := Collect(sess, trees, 3)
	byKey := map[string]*Bubble{}
	for _, b := range bubbles {
		byKey[strings.Join(b.Symbols(), " ")] = b
	}
	// "ta tb" is the full child list of tree 1, but occurs in tree 2 as well
	if b := byKey["ta tb"]; b == nil || b.OccCount != 2 {
		t.Errorf("Expected bubble [ta tb] with 2 occurrences, is %v", b)
	}
	// "ta ta tb" only occurs as the full child list of tree 2
	if b := byKey["ta ta tb"]; b != nil {
		t.Errorf("Expected full-only bubble [ta ta tb] to be dropped, is %v", b)
	}
	// "ta" occurs 3 times at top level, the "a" leaves are terminals
	if b := byKey["ta"]; b == nil || b.OccCount != 3 {
		t.Errorf("Expected bubble [ta] with 3 occurrences, is %v", b)
	}
	// single terminal children are full child lists of their t-nodes
	if b := byKey["a"]; b != nil {
		t.Errorf("Expected bubble [a] to be dropped, is %v", b)
	}
	b := byKey["ta tb"]
	found := false
	for _, c := range b.Contexts() {
		if len(c.LHS) == 2 && c.LHS[1] == "ta" && c.RHS[0] == E {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected context [<START> ta][...][<END>] for [ta tb], is %v", b.Contexts())
	}
}

func TestScoreAndSort(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.bubble")
	defer teardown()
	//
	sess := grinfer.NewSession(1)
	x := mk("t1", "x")
	ctx(x, S, E)
	y := mk("t2", "y")
	ctx(y, S, E)
	ab := mk("t3", "ab")
	ctx(ab, S, E)
	ctx(ab, S+" q", E)
	cd := mk("t4", "cd")
	ctx(cd, S, E)
	cands := ScoreAndSort(sess, []*Bubble{x, y, ab, cd})
	// pairs: (ab,cd), (ab,x), (ab,y), (cd,x), (cd,y); x-y skipped
	// → single ab, single cd, pair (ab, cd)
	if len(cands) != 3 {
		t.Fatalf("Expected 3 candidates, is %v", cands)
	}
	pairs := 0
	for _, c := range cands {
		if c.IsPair() {
			pairs++
			if c.First != ab || c.Second != cd {
				t.Errorf("Expected pair (ab, cd), is %v", c)
			}
			if c.Score.Similarity != 1 || c.Score.Commonness != 1.5 {
				t.Errorf("Expected score {1 1.5}, is %v", c.Score)
			}
		} else if c.First.Len() == 1 {
			t.Errorf("Expected no single-element candidate, is %v", c)
		}
	}
	if pairs != 1 {
		t.Errorf("Expected 1 pair, is %d", pairs)
	}
}

func TestApply(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.bubble")
	defer teardown()
	//
	leaf := func(c string) *ptree.Node { return ptree.Inner("t"+c, ptree.Leaf(c)) }
	tree := ptree.Inner("start", leaf("a"), leaf("b"), leaf("a"), leaf("b"), leaf("c"))
	b := New("t9", []*ptree.Node{leaf("a"), leaf("b")})
	out := Apply(b, []*ptree.Node{tree})
	expected := `(start (t9 (ta "a") (tb "b")) (t9 (ta "a") (tb "b")) (tc "c"))`
	if out[0].String() != expected {
		t.Errorf("Expected %s, is %s", expected, out[0])
	}
	if out[0].DerivedString() != "ababc" {
		t.Errorf("Expected derived string to be unchanged, is %s", out[0].DerivedString())
	}
	if len(tree.Children) != 5 {
		t.Errorf("Expected input tree to be unchanged, is %v", tree)
	}
}
