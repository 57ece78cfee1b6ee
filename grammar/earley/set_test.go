package earley

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSet1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.earley")
	defer teardown()
	//
	var set ruleset
	if set.contains(spanrule{}) {
		t.Errorf("nil set contains a span-rule, no set should")
	}
	set = set.add(spanrule{rule: 1, from: 0, to: 5})
	if !set.contains(spanrule{rule: 1, from: 0, to: 5}) {
		t.Errorf("Expected rule[1] over (0…5) to be contained in set, isn't")
	}
	if set.contains(spanrule{rule: 1, from: 0, to: 4}) {
		t.Errorf("Expected rule[1] over (0…4) not to be contained in set, yet is")
	}
	set.delete(spanrule{rule: 1, from: 0, to: 5})
	if len(set) != 0 {
		t.Errorf("Expected set to be empty after delete, has %d entries", len(set))
	}
}

func TestStateDedup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.earley")
	defer teardown()
	//
	S := newState()
	if !S.add(item{rule: 1, dot: 0, origin: 0}) {
		t.Errorf("Expected first add to succeed")
	}
	if S.add(item{rule: 1, dot: 0, origin: 0}) {
		t.Errorf("Expected duplicate add to be rejected")
	}
	if len(S.items) != 1 {
		t.Errorf("Expected 1 item in state, have %d", len(S.items))
	}
}
