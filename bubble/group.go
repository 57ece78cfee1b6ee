package bubble

import (
	"fmt"
	"sort"

	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/ptree"
)

// MaxCandidates is the number of best-scoring candidates returned by Group.
const MaxCandidates = 100

// Score ranks a candidate: first by context similarity, then by commonness.
type Score struct {
	Similarity float64
	Commonness float64
}

// Less orders scores ascending.
func (s Score) Less(other Score) bool {
	if s.Similarity != other.Similarity {
		return s.Similarity < other.Similarity
	}
	return s.Commonness < other.Commonness
}

// Candidate is either a single bubble (Second == nil), expected to coalesce
// with an existing non-terminal, or an ordered pair of bubbles, expected to
// coalesce with each other. Pairs are applied First, then Second.
type Candidate struct {
	First  *Bubble
	Second *Bubble
	Score  Score
}

// IsPair is true for two-bubble candidates.
func (c Candidate) IsPair() bool {
	return c.Second != nil
}

func (c Candidate) String() string {
	if c.IsPair() {
		return fmt.Sprintf("(%v, %v) %v", c.First.Symbols(), c.Second.Symbols(), c.Score)
	}
	return fmt.Sprintf("%v %v", c.First.Symbols(), c.Score)
}

// Collect returns all bubbles of up to maxLen elements found in trees, in
// order of first occurrence. Spans which only ever occur as the complete
// child list of a node are dropped.
func Collect(sess *grinfer.Session, trees []*ptree.Node, maxLen int) []*Bubble {
	type task struct {
		node        *ptree.Node
		left, right string
	}
	bubbles := make(map[string]*Bubble)
	var order []string
	full := make(map[string]int)
	for _, tree := range trees {
		stack := []task{{tree, StartMarker, EndMarker}}
		for len(stack) > 0 {
			t := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			children := t.node.Children
			payloads := t.node.ChildPayloads()
			for i := 0; i < len(children); i++ {
				for j := i + 1; j <= len(children) && j <= i+maxLen; j++ {
					span := children[i:j]
					key := spanKey(span)
					if i == 0 && j == len(children) {
						full[key]++
					}
					lhs := append([]string{t.left}, payloads[:i]...)
					rhs := append(append([]string(nil), payloads[j:]...), t.right)
					b, ok := bubbles[key]
					if !ok {
						b = New(sess.FreshNT(), span)
						bubbles[key] = b
						order = append(order, key)
					} else {
						b.AddOccurrence()
					}
					b.AddContext(lhs, rhs)
				}
			}
			// descend; only the leftmost child inherits the left context
			for i := len(children) - 1; i >= 0; i-- {
				if children[i].Terminal {
					continue
				}
				left := DummyMarker
				if i == 0 {
					left = t.left
				}
				stack = append(stack, task{children[i], left, DummyMarker})
			}
		}
	}
	result := make([]*Bubble, 0, len(order))
	for _, key := range order {
		if n, ok := full[key]; ok && bubbles[key].OccCount == n {
			continue
		}
		result = append(result, bubbles[key])
	}
	tracer().Debugf("collected %d bubbles of length ≤ %d", len(result), maxLen)
	return result
}

// Group collects the bubbles of trees and returns the best candidates, in
// random order.
func Group(sess *grinfer.Session, trees []*ptree.Node, maxLen int) []Candidate {
	return ScoreAndSort(sess, Collect(sess, trees, maxLen))
}

// ScoreAndSort pairs bubbles and scores the pairs. Pairs of single-element
// bubbles and pairs which break each other are skipped. A pair with a
// single-element member is reduced to the other bubble. The best
// MaxCandidates are returned, shuffled.
func ScoreAndSort(sess *grinfer.Session, bubbles []*Bubble) []Candidate {
	lst := append([]*Bubble(nil), bubbles...)
	sort.SliceStable(lst, func(i, j int) bool { return lst[i].Len() > lst[j].Len() })
	var pairs []Candidate
	for i := 0; i < len(lst); i++ {
		for j := i + 1; j < len(lst); j++ {
			first, second := lst[i], lst[j]
			if first.Len() == 1 && second.Len() == 1 {
				continue
			}
			firstBreaks, secondBreaks := first.ApplicationBreaksOther(second)
			if firstBreaks && secondBreaks {
				continue
			}
			var score Score
			score.Similarity = first.ContextSimilarity(second)
			switch {
			case first.Len() == 1:
				score.Commonness = float64(second.Weight()) / 2
			case second.Len() == 1:
				score.Commonness = float64(first.Weight())
			default:
				score.Commonness = float64(first.Weight())/2 + float64(second.Weight())/2
			}
			if firstBreaks {
				pairs = append(pairs, Candidate{First: second, Second: first, Score: score})
			} else {
				pairs = append(pairs, Candidate{First: first, Second: second, Score: score})
			}
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[j].Score.Less(pairs[i].Score) })
	type pairKey struct{ a, b *Bubble }
	seen := make(map[pairKey]bool)
	var candidates []Candidate
	for _, p := range pairs {
		var c Candidate
		switch {
		case p.First.Len() == 1:
			c = Candidate{First: p.Second, Score: p.Score}
		case p.Second.Len() == 1:
			c = Candidate{First: p.First, Score: p.Score}
		default:
			c = p
		}
		k := pairKey{c.First, c.Second}
		if seen[k] {
			continue
		}
		seen[k] = true
		candidates = append(candidates, c)
	}
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}
	sess.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	tracer().Debugf("%d candidates from %d bubbles", len(candidates), len(bubbles))
	return candidates
}

// Apply bubbles up b in copies of trees: in every node, bottom up, the
// leftmost span of children matching b's symbols is replaced by a new node
// labeled b.NewNT, as long as matches are found.
func Apply(b *Bubble, trees []*ptree.Node) []*ptree.Node {
	symbols := b.Symbols()
	result := make([]*ptree.Node, len(trees))
	for i, tree := range trees {
		result[i] = applySingle(tree.Copy(), b.NewNT, symbols)
	}
	return result
}

// applySingle rewrites tree in place.
func applySingle(tree *ptree.Node, nt string, symbols []string) *ptree.Node {
	var preorder []*ptree.Node
	stack := []*ptree.Node{tree}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		preorder = append(preorder, n)
		for _, c := range n.Children {
			stack = append(stack, c)
		}
	}
	for k := len(preorder) - 1; k >= 0; k-- { // descendants before ancestors
		n := preorder[k]
		if n.Terminal || len(symbols) == 0 {
			continue
		}
		for at := match(symbols, n.Children); at >= 0; at = match(symbols, n.Children) {
			span := append([]*ptree.Node(nil), n.Children[at:at+len(symbols)]...)
			children := make([]*ptree.Node, 0, len(n.Children)-len(symbols)+1)
			children = append(children, n.Children[:at]...)
			children = append(children, ptree.Inner(nt, span...))
			children = append(children, n.Children[at+len(symbols):]...)
			n.Children = children
		}
	}
	return tree
}

// match returns the index of the leftmost occurrence of symbols in layer,
// or -1.
func match(symbols []string, layer []*ptree.Node) int {
	for i := 0; i+len(symbols) <= len(layer); i++ {
		ok := true
		for k, s := range symbols {
			if layer[i+k].Payload != s {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}
