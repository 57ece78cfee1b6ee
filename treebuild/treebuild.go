package treebuild

import (
	"sort"
	"strings"

	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/grammar"
	"github.com/npillmayer/grinfer/ptree"
	"github.com/npillmayer/grinfer/unionfind"
)

// Builder builds trees for a fixed oracle within a session.
type Builder struct {
	Oracle  grinfer.Oracle
	Session *grinfer.Session
	Start   string // label of the tree roots
}

// New creates a tree builder with root label grammar.StartName.
func New(oracle grinfer.Oracle, sess *grinfer.Session) *Builder {
	return &Builder{Oracle: oracle, Session: sess, Start: grammar.StartName}
}

// Build turns one leaf sequence per example into a parse tree. It fails only
// if the oracle cannot be invoked.
func (b *Builder) Build(leaves [][]*ptree.Node) ([]*ptree.Node, error) {
	layers, err := b.ClassLayers(leaves)
	if err != nil {
		return nil, err
	}
	for round := 1; ; round++ {
		groups := Candidates(layers)
		if len(groups) == 0 {
			break
		}
		best := groups[0]
		nt := b.Session.FreshNT()
		tracer().Debugf("round %d: grouping %v (%d×) into %s", round, best.Symbols, best.Count, nt)
		for i := range layers {
			layers[i] = collapse(layers[i], best.Symbols, nt)
		}
	}
	trees := make([]*ptree.Node, len(layers))
	for i, layer := range layers {
		trees[i] = ptree.Inner(b.Start, layer...)
	}
	return trees, nil
}

// --- Class derivation ------------------------------------------------------

// ClassLayers derives terminal classes and returns, per example, the leaves
// wrapped into nodes labeled with their class non-terminal.
func (b *Builder) ClassLayers(leaves [][]*ptree.Node) ([][]*ptree.Node, error) {
	examples := make([][]string, len(leaves))
	termset := make(map[string]bool)
	for i, lst := range leaves {
		examples[i] = make([]string, len(lst))
		for k, leaf := range lst {
			examples[i][k] = leaf.Payload
			termset[leaf.Payload] = true
		}
	}
	terminals := make([]string, 0, len(termset))
	for t := range termset {
		terminals = append(terminals, t)
	}
	sort.Strings(terminals)
	uf := unionfind.New(terminals)
	for i := 0; i < len(terminals); i++ {
		for j := i + 1; j < len(terminals); j++ {
			a, c := terminals[i], terminals[j]
			if uf.IsConnected(a, c) {
				continue
			}
			ok, err := b.substitutable(examples, a, c)
			if err != nil {
				return nil, err
			}
			if ok {
				ok, err = b.substitutable(examples, c, a)
				if err != nil {
					return nil, err
				}
			}
			if ok {
				tracer().Debugf("terminals %q and %q are in the same class", a, c)
				uf.Connect(a, c)
			}
		}
	}
	class := make(map[string]string)
	for _, members := range uf.Classes() {
		nt := b.Session.FreshNT()
		for _, m := range members {
			class[m] = nt
		}
	}
	layers := make([][]*ptree.Node, len(leaves))
	for i, lst := range leaves {
		layers[i] = make([]*ptree.Node, len(lst))
		for k, leaf := range lst {
			layers[i][k] = ptree.Inner(class[leaf.Payload], leaf.Copy())
		}
	}
	return layers, nil
}

// substitutable checks whether every example containing terminal a stays in
// the language if all occurrences of a are replaced by c.
func (b *Builder) substitutable(examples [][]string, a, c string) (bool, error) {
	for _, ex := range examples {
		var sb strings.Builder
		found := false
		for _, t := range ex {
			if t == a {
				sb.WriteString(c)
				found = true
			} else {
				sb.WriteString(t)
			}
		}
		if !found {
			continue
		}
		ok, err := b.Oracle.Accepts(sb.String())
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// --- Grouping --------------------------------------------------------------

// Group is a repeated subsequence of top-layer symbols.
type Group struct {
	Symbols []string
	Count   int
}

// Candidates computes the subsequences of length ≥ 2 of the layers' payloads
// which occur more than once and are not part of another such subsequence,
// sorted by count, then by length, both descending.
func Candidates(layers [][]*ptree.Node) []Group {
	counts := make(map[string]int)
	seqs := make(map[string][]string)
	var order []string
	for _, layer := range layers {
		payloads := make([]string, len(layer))
		for i, n := range layer {
			payloads[i] = n.Payload
		}
		for i := 0; i < len(payloads); i++ {
			for j := i + 2; j <= len(payloads); j++ {
				k := key(payloads[i:j])
				if _, ok := counts[k]; !ok {
					seqs[k] = payloads[i:j]
					order = append(order, k)
				}
				counts[k]++
			}
		}
	}
	var repeated []Group
	for _, k := range order {
		if counts[k] > 1 {
			repeated = append(repeated, Group{Symbols: seqs[k], Count: counts[k]})
		}
	}
	var groups []Group
	for i, g := range repeated {
		sub := false
		for j, h := range repeated {
			if i != j && len(h.Symbols) > len(g.Symbols) && contains(h.Symbols, g.Symbols) {
				sub = true
				break
			}
		}
		if !sub {
			groups = append(groups, g)
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return len(groups[i].Symbols) > len(groups[j].Symbols)
	})
	return groups
}

func key(s []string) string {
	return strings.Join(s, "\x1f")
}

func contains(s, sub []string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for k := range sub {
			if s[i+k] != sub[k] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// collapse replaces non-overlapping occurrences of symbols in layer, leftmost
// first, by new nodes labeled nt.
func collapse(layer []*ptree.Node, symbols []string, nt string) []*ptree.Node {
	out := make([]*ptree.Node, 0, len(layer))
	for i := 0; i < len(layer); {
		if i+len(symbols) <= len(layer) && matchAt(layer, i, symbols) {
			span := append([]*ptree.Node(nil), layer[i:i+len(symbols)]...)
			out = append(out, ptree.Inner(nt, span...))
			i += len(symbols)
			continue
		}
		out = append(out, layer[i])
		i++
	}
	return out
}

func matchAt(layer []*ptree.Node, at int, symbols []string) bool {
	for k, s := range symbols {
		if layer[at+k].Payload != s {
			return false
		}
	}
	return true
}
