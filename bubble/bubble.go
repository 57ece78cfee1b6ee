package bubble

import (
	"fmt"
	"strings"

	"github.com/npillmayer/grinfer/ptree"
)

// Bubble is a candidate promotion of a sequence of sibling nodes into a
// fresh non-terminal.
type Bubble struct {
	NewNT    string        // the non-terminal the span is bubbled up into
	Elems    []*ptree.Node // the span, as first seen
	OccCount int           // number of occurrences
	contexts []Context     // in order of first occurrence
	counts   map[string]int
}

// New creates a bubble with one occurrence and no contexts. The elements are
// copied.
func New(nt string, elems []*ptree.Node) *Bubble {
	b := &Bubble{
		NewNT:    nt,
		Elems:    make([]*ptree.Node, len(elems)),
		OccCount: 1,
		counts:   make(map[string]int),
	}
	for i, e := range elems {
		b.Elems[i] = e.Copy()
	}
	return b
}

// Len is the number of elements.
func (b *Bubble) Len() int {
	return len(b.Elems)
}

// Symbols returns the payloads of the elements.
func (b *Bubble) Symbols() []string {
	s := make([]string, len(b.Elems))
	for i, e := range b.Elems {
		s[i] = e.Payload
	}
	return s
}

// Key identifies the bubble's symbol sequence.
func (b *Bubble) Key() string {
	return spanKey(b.Elems)
}

func spanKey(span []*ptree.Node) string {
	var sb strings.Builder
	for i, n := range span {
		if i > 0 {
			sb.WriteByte(0x1f)
		}
		sb.WriteString(n.Payload)
	}
	return sb.String()
}

// AddOccurrence counts another occurrence.
func (b *Bubble) AddOccurrence() {
	b.OccCount++
}

// AddContext records an occurrence context, given by the symbols to the left
// and to the right of the span.
func (b *Bubble) AddContext(lhs, rhs []string) {
	c := NewContext(lhs, rhs)
	k := c.key()
	if _, ok := b.counts[k]; !ok {
		b.contexts = append(b.contexts, c)
	}
	b.counts[k]++
}

// Contexts returns the distinct contexts seen, in order of first occurrence.
func (b *Bubble) Contexts() []Context {
	return b.contexts
}

// ContextCount returns how often context c has been seen.
func (b *Bubble) ContextCount(c Context) int {
	return b.counts[c.key()]
}

// Weight is the total number of context observations.
func (b *Bubble) Weight() int {
	w := 0
	for _, n := range b.counts {
		w += n
	}
	return w
}

// ContextSimilarity is the maximum similarity between any context of b and
// any context of other.
func (b *Bubble) ContextSimilarity(other *Bubble) float64 {
	max := 0.0
	for _, c := range b.contexts {
		for _, o := range other.contexts {
			if s := c.Similarity(o); s > max {
				max = s
			}
		}
	}
	return max
}

// Contains is true if other's symbol sequence is a contiguous part of b's.
func (b *Bubble) Contains(other *Bubble) bool {
	s, o := b.Symbols(), other.Symbols()
	for i := 0; i+len(o) <= len(s); i++ {
		if equalSides(s[i:i+len(o)], o) {
			return true
		}
	}
	return false
}

// ApplicationBreaksOther tells whether b and other overlap such that the
// order of application matters. The first result is true if applying b
// first destroys the occurrences other needs, the second result is true if
// applying other first destroys the occurrences b needs.
//
// For every proper boundary overlap, only the symbol directly bordering the
// overlap is compared against the directly adjacent symbols of the other
// bubble's contexts. The test is thus a heuristic, and not always
// symmetric for bubbles which share only overlapping occurrences: for o t t c
// in context (^ c, o $) versus c o in contexts (^, t t c o $) and (^ c o t t, $)
// it reports (false, true).
func (b *Bubble) ApplicationBreaksOther(other *Bubble) (bool, bool) {
	self, oth := b.Symbols(), other.Symbols()
	if !intersect(self, oth) || b.Contains(other) {
		return false, false
	}
	overlaps := ptree.Overlaps(self, oth)
	if len(overlaps) == 0 {
		return false, false
	}
	selfBreaksOther, otherBreaksSelf := false, false
	for _, r := range overlaps {
		first, last := r[0], r[len(r)-1]
		if first[0] == 0 {
			// self's prefix overlaps other's suffix
			if sameSingleton(lastOfLHS(b), oth[first[1]-1]) {
				otherBreaksSelf = true
			}
			if sameSingleton(firstOfRHS(other), self[last[0]+1]) {
				selfBreaksOther = true
			}
		} else {
			// self's suffix overlaps other's prefix
			if sameSingleton(firstOfRHS(b), oth[last[1]+1]) {
				otherBreaksSelf = true
			}
			if sameSingleton(lastOfLHS(other), self[first[0]-1]) {
				selfBreaksOther = true
			}
		}
	}
	return selfBreaksOther, otherBreaksSelf
}

// lastOfLHS collects the symbols directly to the left of b's occurrences.
func lastOfLHS(b *Bubble) map[string]bool {
	set := make(map[string]bool)
	for _, c := range b.contexts {
		if len(c.LHS) > 0 {
			set[c.LHS[len(c.LHS)-1]] = true
		}
	}
	return set
}

// firstOfRHS collects the symbols directly to the right of b's occurrences.
func firstOfRHS(b *Bubble) map[string]bool {
	set := make(map[string]bool)
	for _, c := range b.contexts {
		if len(c.RHS) > 0 {
			set[c.RHS[0]] = true
		}
	}
	return set
}

func sameSingleton(set map[string]bool, s string) bool {
	return len(set) == 1 && set[s]
}

func intersect(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, s := range a {
		set[s] = true
	}
	for _, s := range b {
		if set[s] {
			return true
		}
	}
	return false
}

func (b *Bubble) String() string {
	ctx := make([]string, len(b.contexts))
	for i, c := range b.contexts {
		ctx[i] = fmt.Sprintf("%s:%d", c, b.counts[c.key()])
	}
	return fmt.Sprintf("Bubble(%s ➞ %v, occs=%d, contexts={%s})",
		b.NewNT, b.Symbols(), b.OccCount, strings.Join(ctx, ", "))
}
