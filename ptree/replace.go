package ptree

import (
	"sort"
	"strconv"
	"strings"
)

// HoleMarker is the printed form of a hole in a template.
const HoleMarker = "[[:REPLACEME]]"

// maxTemplates bounds the number of templates computed for a single node.
// Trees with many occurrences of a non-terminal have exponentially many
// templates.
const maxTemplates = 1 << 14

// Template is a derived string with holes. Parts holds the text between
// holes, so a template with k holes has k+1 parts.
type Template struct {
	Parts []string
}

// Holes is the number of holes in t.
func (t Template) Holes() int {
	return len(t.Parts) - 1
}

// Fill replaces every hole of t by s.
func (t Template) Fill(s string) string {
	return strings.Join(t.Parts, s)
}

func (t Template) String() string {
	return t.Fill(HoleMarker)
}

func (t Template) key() string {
	var b strings.Builder
	for _, p := range t.Parts {
		b.WriteString(strconv.Quote(p))
	}
	return b.String()
}

var hole = Template{Parts: []string{"", ""}}

// concat appends b to a.
func concat(a, b Template) Template {
	parts := make([]string, 0, len(a.Parts)+len(b.Parts)-1)
	parts = append(parts, a.Parts[:len(a.Parts)-1]...)
	parts = append(parts, a.Parts[len(a.Parts)-1]+b.Parts[0])
	parts = append(parts, b.Parts[1:]...)
	return Template{Parts: parts}
}

// holePredicate decides whether a node may be cut out as a hole. parent is
// nil for the root, index is the node's position among parent's children.
type holePredicate func(node, parent *Node, index int) bool

// templates computes, bottom up, the set of templates derivable from root
// where every node satisfying canHole may either be replaced by a hole or
// expanded.
func templates(root *Node, canHole holePredicate) []Template {
	if root == nil {
		return nil
	}
	// post-order via explicit stack
	type frame struct {
		node   *Node
		parent *Node
		index  int
		done   bool
	}
	results := make(map[*Node][]Template)
	stack := []frame{{node: root, index: -1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.node.Terminal {
			stack = stack[:len(stack)-1]
			results[top.node] = []Template{{Parts: []string{top.node.Payload}}}
			continue
		}
		if !top.done {
			stack[len(stack)-1].done = true
			for i := len(top.node.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{node: top.node.Children[i], parent: top.node, index: i})
			}
			continue
		}
		stack = stack[:len(stack)-1]
		acc := []Template{{Parts: []string{""}}}
		for i, c := range top.node.Children {
			alts := results[c]
			if canHole(c, top.node, i) {
				alts = append(append([]Template(nil), alts...), hole)
			}
			acc = product(acc, alts)
			delete(results, c)
		}
		results[top.node] = acc
	}
	ts := results[root]
	if canHole(root, nil, -1) {
		ts = dedup(append(ts, hole))
	}
	return ts
}

func product(prefixes, suffixes []Template) []Template {
	seen := make(map[string]bool)
	out := make([]Template, 0, len(prefixes)*len(suffixes))
	for _, p := range prefixes {
		for _, s := range suffixes {
			t := concat(p, s)
			k := t.key()
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, t)
			if len(out) >= maxTemplates {
				tracer().Infof("template limit of %d reached", maxTemplates)
				return out
			}
		}
	}
	return out
}

func dedup(ts []Template) []Template {
	seen := make(map[string]bool)
	out := ts[:0:0]
	for _, t := range ts {
		if k := t.key(); !seen[k] {
			seen[k] = true
			out = append(out, t)
		}
	}
	return out
}

// ReplacementTemplates returns every string derivable from tree where any
// subset of the occurrences of non-terminal nt is cut out as a hole. Nested
// occurrences are subsumed by the hole of the enclosing one.
func ReplacementTemplates(tree *Node, nt string) []Template {
	return templates(tree, func(node, _ *Node, _ int) bool {
		return !node.Terminal && node.Payload == nt
	})
}

// ReplacementStrings is ReplacementTemplates in printed form, sorted.
func ReplacementStrings(tree *Node, nt string) []string {
	ts := ReplacementTemplates(tree, nt)
	s := make([]string, len(ts))
	for i, t := range ts {
		s[i] = t.String()
	}
	sort.Strings(s)
	return s
}

// fill expands every template with at least one hole with every replacement.
func fill(ts []Template, replacements []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range ts {
		if t.Holes() == 0 {
			continue
		}
		for _, r := range replacements {
			s := t.Fill(r)
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// StringsWithReplacement returns the strings resulting from replacing a
// non-empty subset of the occurrences of nt in tree by one of replacements.
// Within a single resulting string, all replaced occurrences get the same
// replacement.
func StringsWithReplacement(tree *Node, nt string, replacements []string) []string {
	return fill(ReplacementTemplates(tree, nt), replacements)
}

// StringsWithReplacementInRule is like StringsWithReplacement, but only
// replaces children at position pos of nodes which apply rule lhs ➞ body.
func StringsWithReplacementInRule(tree *Node, lhs string, body []string, pos int, replacements []string) []string {
	ts := templates(tree, func(node, parent *Node, index int) bool {
		if parent == nil || index != pos || parent.Payload != lhs {
			return false
		}
		return equalStrings(parent.ChildPayloads(), body)
	})
	return fill(ts, replacements)
}

func equalStrings(a, b []string) bool {
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

// LevelNDerivable returns the strings derived by the occurrences of nt in
// trees. For level 0 these are the derived strings of the nt nodes. For
// level 1 the children of each nt node are recombined: every child
// contributes any of the level 0 strings of its own payload. The result is
// sorted.
func LevelNDerivable(trees []*Node, nt string, level int) []string {
	set := make(map[string]bool)
	if level <= 0 {
		for _, t := range trees {
			t.Walk(func(n *Node) {
				if !n.Terminal && n.Payload == nt {
					set[n.DerivedString()] = true
				}
			})
		}
		return sortedKeys(set)
	}
	memo := make(map[string][]string)
	derivable := func(c *Node) []string {
		if c.Terminal {
			return []string{c.Payload}
		}
		if s, ok := memo[c.Payload]; ok {
			return s
		}
		s := LevelNDerivable(trees, c.Payload, 0)
		memo[c.Payload] = s
		return s
	}
	for _, t := range trees {
		t.Walk(func(n *Node) {
			if n.Terminal || n.Payload != nt {
				return
			}
			acc := []string{""}
			for _, c := range n.Children {
				var next []string
				for _, p := range acc {
					for _, s := range derivable(c) {
						next = append(next, p+s)
						if len(next) >= maxTemplates {
							break
						}
					}
				}
				acc = next
			}
			for _, s := range acc {
				set[s] = true
			}
		})
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Overlaps returns the proper boundary overlaps of two symbol sequences.
// Each overlap is a list of index pairs (i, j) with a[i] == b[j]:
// a prefix of a matching a suffix of b, or a suffix of a matching a prefix
// of b. Overlap lengths range from 1 to min(|a|,|b|)-1.
func Overlaps(a, b []string) [][][2]int {
	var overlaps [][][2]int
	min := len(a)
	if len(b) < min {
		min = len(b)
	}
	for l := 1; l < min; l++ {
		// prefix of a == suffix of b
		if equalStrings(a[:l], b[len(b)-l:]) {
			r := make([][2]int, l)
			for i := 0; i < l; i++ {
				r[i] = [2]int{i, len(b) - l + i}
			}
			overlaps = append(overlaps, r)
		}
		// suffix of a == prefix of b
		if equalStrings(a[len(a)-l:], b[:l]) {
			r := make([][2]int, l)
			for i := 0; i < l; i++ {
				r[i] = [2]int{len(a) - l + i, i}
			}
			overlaps = append(overlaps, r)
		}
	}
	return overlaps
}
