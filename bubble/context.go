package bubble

import (
	"fmt"
	"strings"
)

// K is the number of symbols kept on either side of a context.
const K = 4

// Markers used in contexts. They cannot clash with payloads: terminals in
// trees are single characters and non-terminals are identifiers.
const (
	StartMarker = "<START>"
	EndMarker   = "<END>"
	DummyMarker = "<DUMMY>" // wildcard: never matches, never mismatches
)

// Context is the k-context of a bubble occurrence: up to K symbols to the
// left (in order, nearest last) and to the right (nearest first).
type Context struct {
	LHS []string
	RHS []string
}

// NewContext truncates lhs to its last K and rhs to its first K symbols.
func NewContext(lhs, rhs []string) Context {
	if len(lhs) > K {
		lhs = lhs[len(lhs)-K:]
	}
	if len(rhs) > K {
		rhs = rhs[:K]
	}
	return Context{
		LHS: append([]string(nil), lhs...),
		RHS: append([]string(nil), rhs...),
	}
}

func (c Context) key() string {
	return strings.Join(c.LHS, "\x1f") + "\x1e" + strings.Join(c.RHS, "\x1f")
}

// Equal compares the truncated sides.
func (c Context) Equal(other Context) bool {
	return c.key() == other.key()
}

func (c Context) String() string {
	return fmt.Sprintf("%v[...]%v", c.LHS, c.RHS)
}

// Similarity of two contexts is 1 for equal contexts, else the sum of the
// similarities of the left sides (read from the bubble outwards) and of the
// right sides. The result lies in [0,1] and is symmetric.
func (c Context) Similarity(other Context) float64 {
	if c.Equal(other) {
		return 1
	}
	return sideSimilarity(reversed(c.LHS), reversed(other.LHS)) +
		sideSimilarity(c.RHS, other.RHS)
}

// sideSimilarity compares two context sides, nearest symbol first. Identical
// sides score 1/2. Otherwise position i contributes 1/2^(i+2) if both sides
// have equal symbols there, or if both sides have ended at equal lengths.
// A dummy symbol at position i contributes nothing. Comparison stops where
// exactly one side has ended.
func sideSimilarity(side, other []string) float64 {
	if equalSides(side, other) {
		return 0.5
	}
	score := 0.0
	for i := 0; i < K; i++ {
		weight := 1.0 / float64(int(1)<<(i+2))
		if i < len(side) && i < len(other) {
			if side[i] == DummyMarker || other[i] == DummyMarker {
				continue
			}
			if side[i] == other[i] {
				score += weight
			}
		} else if len(side) == len(other) {
			score += weight
		} else {
			break
		}
	}
	return score
}

func equalSides(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func reversed(s []string) []string {
	r := make([]string, len(s))
	for i, x := range s {
		r[len(s)-1-i] = x
	}
	return r
}
