package main

import (
	"testing"

	"github.com/npillmayer/grinfer/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLeveledTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.cli")
	defer teardown()
	//
	g, err := grammar.Parse(`start: a "+" a
	a: "1" | "2"`)
	if err != nil {
		t.Fatal(err)
	}
	p, err := g.Parser()
	if err != nil {
		t.Fatal(err)
	}
	if !p.Parse("1+2") {
		t.Fatalf("Expected 1+2 to be accepted")
	}
	ll := leveled(p.Tree())
	expected := []struct {
		level int
		text  string
	}{{0, "start"}, {1, "a"}, {2, `"1"`}, {1, `"+"`}, {1, "a"}, {2, `"2"`}}
	if len(ll) != len(expected) {
		t.Fatalf("Expected %d tree items, is %v", len(expected), ll)
	}
	for i, e := range expected {
		if ll[i].Level != e.level || ll[i].Text != e.text {
			t.Errorf("Expected item %d to be %q at level %d, is %q at %d", i, e.text, e.level, ll[i].Text, ll[i].Level)
		}
	}
}

func TestUnescape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.cli")
	defer teardown()
	//
	if s := unescape(`a\nb\\n`); s != "a\nb\\n" {
		t.Errorf("Expected escapes to be interpreted, is %q", s)
	}
}
