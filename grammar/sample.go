package grammar

import (
	"math/rand"
	"strings"
)

// maxExpansionSteps bounds the work for a single sampled string.
const maxExpansionSteps = 100000

type pending struct {
	sym   Symbol
	depth int
}

// SamplePositives generates up to n unique strings of the language of g by
// random top-down expansion from the start symbol. Below maxDepth, bodies are
// picked uniformly; beyond it, a body of minimal derivation height is picked,
// which steers away from recursion. At most 10n attempts are made, so the
// result may be shorter than n.
func (g *Grammar) SamplePositives(rnd *rand.Rand, n, maxDepth int) []string {
	h := g.heights()
	if _, ok := h[g.start]; !ok {
		tracer().Infof("start symbol %s is unproductive, cannot sample", g.start)
		return nil
	}
	seen := make(map[string]bool)
	var samples []string
	for attempt := 0; attempt < 10*n && len(samples) < n; attempt++ {
		s, ok := g.expand(rnd, maxDepth, h)
		if !ok || seen[s] {
			continue
		}
		seen[s] = true
		samples = append(samples, s)
	}
	return samples
}

func (g *Grammar) expand(rnd *rand.Rand, maxDepth int, h map[string]int) (string, bool) {
	var out strings.Builder
	stack := []pending{{sym: N(g.start)}}
	for steps := 0; len(stack) > 0; steps++ {
		if steps > maxExpansionSteps {
			return "", false
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.sym.IsTerminal() {
			out.WriteString(top.sym.Text)
			continue
		}
		body, ok := g.pickBody(rnd, top.sym.Text, top.depth >= maxDepth, h)
		if !ok {
			return "", false
		}
		for i := len(body) - 1; i >= 0; i-- {
			stack = append(stack, pending{sym: body[i], depth: top.depth + 1})
		}
	}
	return out.String(), true
}

// pickBody selects a productive body of nt, either uniformly or, if shallow
// is set, among the bodies of minimal height.
func (g *Grammar) pickBody(rnd *rand.Rand, nt string, shallow bool, h map[string]int) (Body, bool) {
	r := g.rules[nt]
	if r == nil {
		return nil, false
	}
	var candidates []Body
	min := -1
	for _, b := range r.bodies {
		bh, ok := g.bodyHeight(b, h)
		if !ok {
			continue
		}
		if shallow {
			if min < 0 || bh < min {
				min = bh
				candidates = candidates[:0]
			}
			if bh > min {
				continue
			}
		}
		candidates = append(candidates, b)
	}
	if len(candidates) == 0 {
		return nil, false
	}
	return candidates[rnd.Intn(len(candidates))], true
}

// SampleNegatives generates up to n unique strings over terminals, each a
// concatenation of 1…maxSize randomly chosen terminals, which g does not
// accept. At most 10n attempts are made. An error is returned if g does not
// compile.
func (g *Grammar) SampleNegatives(rnd *rand.Rand, n int, terminals []string, maxSize int) ([]string, error) {
	if len(terminals) == 0 || maxSize < 1 {
		return nil, nil
	}
	p, err := g.Parser()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var samples []string
	for attempt := 0; attempt < 10*n && len(samples) < n; attempt++ {
		var sb strings.Builder
		size := 1 + rnd.Intn(maxSize)
		for i := 0; i < size; i++ {
			sb.WriteString(terminals[rnd.Intn(len(terminals))])
		}
		s := sb.String()
		if seen[s] {
			continue
		}
		seen[s] = true
		if p.Parse(s) {
			continue
		}
		samples = append(samples, s)
	}
	return samples, nil
}
