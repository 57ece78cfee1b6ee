package search

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/npillmayer/grinfer/grammar"
)

// GeneratorConfig restricts the grammars a GrammarGenerator creates.
// A terminal "" denotes epsilon.
type GeneratorConfig struct {
	Terminals    []string
	Nonterminals []string
	NumRules     int
	MaxRHSLen    int
}

// GrammarGenerator records the random choices made while creating a
// grammar. The choices may be replayed (Generate) or perturbed (Mutate) to
// create a similar grammar.
type GrammarGenerator struct {
	Config GeneratorConfig
	Root   *GrammarNode
}

// NewGenerator creates a generator with random choices.
// config must contain at least one non-terminal and one terminal, and
// NumRules and MaxRHSLen must be positive.
func NewGenerator(config GeneratorConfig, rnd *rand.Rand) *GrammarGenerator {
	root := &GrammarNode{config: config}
	root.mutateStart(rnd)
	root.mutateSize(rnd)
	return &GrammarGenerator{Config: config, Root: root}
}

// Copy returns a deep copy of gen.
func (gen *GrammarGenerator) Copy() *GrammarGenerator {
	return &GrammarGenerator{Config: gen.Config, Root: gen.Root.copy()}
}

// Mutate changes one random choice in gen.
func (gen *GrammarGenerator) Mutate(rnd *rand.Rand) {
	gen.Root.mutate(rnd)
}

// Generate replays the choices to create a grammar. Its start rule derives
// the chosen start non-terminal.
func (gen *GrammarGenerator) Generate() *grammar.Grammar {
	g := grammar.FromStartSymbol(gen.Root.Start)
	for _, r := range gen.Root.Rules {
		var body grammar.Body
		for _, s := range r.Symbols {
			switch {
			case !s.Terminal:
				body = append(body, grammar.N(s.Choice))
			case s.Choice != "":
				body = append(body, grammar.T(s.Choice))
			}
		}
		g.AddBody(r.LHS, body)
	}
	return g
}

// counts returns the number of terminal and non-terminal choices, and the
// number of distinct terminals and non-terminals chosen.
func (gen *GrammarGenerator) counts() (t, n, dt, dn int) {
	ts, ns := make(map[string]bool), make(map[string]bool)
	for _, r := range gen.Root.Rules {
		for _, s := range r.Symbols {
			if s.Terminal {
				t++
				ts[s.Choice] = true
			} else {
				n++
				ns[s.Choice] = true
			}
		}
	}
	return t, n, len(ts), len(ns)
}

func (gen *GrammarGenerator) String() string {
	return gen.Root.String()
}

// GrammarNode is the root of the choice tree: the start non-terminal and
// the rules.
type GrammarNode struct {
	Start  string
	Rules  []*RuleNode
	config GeneratorConfig
}

func (node *GrammarNode) copy() *GrammarNode {
	c := &GrammarNode{Start: node.Start, config: node.config, Rules: make([]*RuleNode, len(node.Rules))}
	for i, r := range node.Rules {
		c.Rules[i] = r.copy()
	}
	return c
}

func (node *GrammarNode) mutate(rnd *rand.Rand) {
	switch rnd.Intn(3) {
	case 0:
		node.mutateStart(rnd)
	case 1:
		node.mutateSize(rnd)
	default:
		node.Rules[rnd.Intn(len(node.Rules))].mutate(rnd)
	}
}

func (node *GrammarNode) mutateStart(rnd *rand.Rand) {
	node.Start = pickOther(rnd, node.config.Nonterminals, node.Start)
}

func (node *GrammarNode) mutateSize(rnd *rand.Rand) {
	size := resize(rnd, len(node.Rules), node.config.NumRules)
	for len(node.Rules) > size {
		i := rnd.Intn(len(node.Rules))
		node.Rules = append(node.Rules[:i], node.Rules[i+1:]...)
	}
	for len(node.Rules) < size {
		r := &RuleNode{config: node.config}
		r.mutateLHS(rnd)
		r.mutateSize(rnd)
		i := rnd.Intn(len(node.Rules) + 1)
		node.Rules = append(node.Rules, nil)
		copy(node.Rules[i+1:], node.Rules[i:])
		node.Rules[i] = r
	}
}

func (node *GrammarNode) String() string {
	var b strings.Builder
	b.WriteString("start: " + node.Start)
	for _, r := range node.Rules {
		b.WriteString("\n" + r.String())
	}
	return b.String()
}

// RuleNode holds the choices for one rule.
type RuleNode struct {
	LHS     string
	Symbols []*SymbolNode
	config  GeneratorConfig
}

func (node *RuleNode) copy() *RuleNode {
	c := &RuleNode{LHS: node.LHS, config: node.config, Symbols: make([]*SymbolNode, len(node.Symbols))}
	for i, s := range node.Symbols {
		c.Symbols[i] = s.copy()
	}
	return c
}

func (node *RuleNode) mutate(rnd *rand.Rand) {
	switch rnd.Intn(3) {
	case 0:
		node.mutateLHS(rnd)
	case 1:
		node.mutateSize(rnd)
	default:
		node.Symbols[rnd.Intn(len(node.Symbols))].mutate(rnd)
	}
}

func (node *RuleNode) mutateLHS(rnd *rand.Rand) {
	node.LHS = pickOther(rnd, node.config.Nonterminals, node.LHS)
}

func (node *RuleNode) mutateSize(rnd *rand.Rand) {
	size := resize(rnd, len(node.Symbols), node.config.MaxRHSLen)
	for len(node.Symbols) > size {
		i := rnd.Intn(len(node.Symbols))
		node.Symbols = append(node.Symbols[:i], node.Symbols[i+1:]...)
	}
	for len(node.Symbols) < size {
		s := &SymbolNode{config: node.config}
		s.mutate(rnd)
		i := rnd.Intn(len(node.Symbols) + 1)
		node.Symbols = append(node.Symbols, nil)
		copy(node.Symbols[i+1:], node.Symbols[i:])
		node.Symbols[i] = s
	}
}

func (node *RuleNode) String() string {
	var b strings.Builder
	b.WriteString(node.LHS + ":")
	for _, s := range node.Symbols {
		b.WriteString(" " + s.String())
	}
	return b.String()
}

// SymbolNode is the choice of a single symbol.
type SymbolNode struct {
	Choice   string
	Terminal bool
	config   GeneratorConfig
}

func (node *SymbolNode) copy() *SymbolNode {
	c := *node
	return &c
}

// mutate either picks another symbol of the same kind or flips the kind and
// picks any symbol of the new kind.
func (node *SymbolNode) mutate(rnd *rand.Rand) {
	if rnd.Intn(2) == 0 {
		node.Choice = pickOther(rnd, node.choices(), node.Choice)
		return
	}
	node.Terminal = !node.Terminal
	if choices := node.choices(); len(choices) > 0 {
		node.Choice = choices[rnd.Intn(len(choices))]
	} else {
		node.Terminal = !node.Terminal
	}
}

func (node *SymbolNode) choices() []string {
	if node.Terminal {
		return node.config.Terminals
	}
	return node.config.Nonterminals
}

func (node *SymbolNode) String() string {
	switch {
	case !node.Terminal:
		return node.Choice
	case node.Choice == "":
		return grammar.EpsilonGlyph
	}
	return fmt.Sprintf("%q", node.Choice)
}

// pickOther picks a random element of choices different from current, if
// there is one.
func pickOther(rnd *rand.Rand, choices []string, current string) string {
	if len(choices) == 0 {
		return current
	}
	if len(choices) == 1 {
		return choices[0]
	}
	c := choices[rnd.Intn(len(choices))]
	for attempt := 0; c == current && attempt < 64; attempt++ {
		c = choices[rnd.Intn(len(choices))]
	}
	return c
}

// resize picks a size in [1…max] different from current, if possible.
func resize(rnd *rand.Rand, current, max int) int {
	if max <= 1 {
		return 1
	}
	for {
		if n := 1 + rnd.Intn(max); n != current {
			return n
		}
	}
}
