package earley

// spanrule identifies the reduction of a rule over an input span.
type spanrule struct {
	rule     int
	from, to int
}

// ruleset guards the derivation walk against cycles of unit- or
// epsilon-rules: a reduction which is currently being expanded further up in
// the walk must not be tried again.
type ruleset map[spanrule]struct{}

var exists = struct{}{}

func (set ruleset) add(r spanrule) ruleset {
	if set == nil {
		set = ruleset{}
	}
	set[r] = exists
	return set
}

func (set ruleset) contains(r spanrule) bool {
	if set == nil {
		return false
	}
	_, ok := set[r]
	return ok
}

func (set ruleset) delete(r spanrule) {
	if set != nil {
		delete(set, r)
	}
}
