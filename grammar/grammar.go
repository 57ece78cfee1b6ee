package grammar

import (
	"sort"
	"strings"

	"github.com/npillmayer/grinfer/grammar/earley"
)

// StartName is the default name of the designated start non-terminal.
const StartName = "start"

// --- Rules -----------------------------------------------------------------

// Rule is a non-terminal together with its bodies.
type Rule struct {
	name   string
	bodies []Body
	owner  *Grammar
}

// NewRule creates a rule without bodies.
func NewRule(name string, bodies ...Body) *Rule {
	r := &Rule{name: name}
	for _, b := range bodies {
		r.AddBody(b)
	}
	return r
}

// Name returns the non-terminal a rule defines.
func (r *Rule) Name() string {
	return r.name
}

// Bodies returns the rule's bodies. Clients must not modify them.
func (r *Rule) Bodies() []Body {
	return r.bodies
}

// Body returns body number i.
func (r *Rule) Body(i int) Body {
	return r.bodies[i]
}

// Len returns the number of bodies.
func (r *Rule) Len() int {
	return len(r.bodies)
}

// HasBody is true if r contains body b.
func (r *Rule) HasBody(b Body) bool {
	return r.indexOf(normalize(b)) >= 0
}

func (r *Rule) indexOf(b Body) int {
	for i, body := range r.bodies {
		if body.Equal(b) {
			return i
		}
	}
	return -1
}

// AddBody appends a copy of b, if r does not already contain it.
// It returns r to allow chaining.
func (r *Rule) AddBody(b Body) *Rule {
	b = normalize(b)
	if r.indexOf(b) >= 0 {
		return r
	}
	r.bodies = append(r.bodies, b)
	r.touch()
	return r
}

// RemoveBody deletes body number i.
func (r *Rule) RemoveBody(i int) {
	r.bodies = append(r.bodies[:i:i], r.bodies[i+1:]...)
	r.touch()
}

// SetBodies replaces all bodies of r by copies of bodies. Duplicates are
// retained; see Dedup.
func (r *Rule) SetBodies(bodies []Body) {
	r.bodies = make([]Body, len(bodies))
	for i, b := range bodies {
		r.bodies[i] = normalize(b)
	}
	r.touch()
}

// Dedup removes duplicate bodies, keeping the first occurrence of each.
// It returns the number of bodies removed.
func (r *Rule) Dedup() int {
	seen := make(map[string]bool, len(r.bodies))
	unique := r.bodies[:0:0]
	for _, b := range r.bodies {
		k := b.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, b)
	}
	removed := len(r.bodies) - len(unique)
	if removed > 0 {
		r.bodies = unique
		r.touch()
	}
	return removed
}

func (r *Rule) touch() {
	if r.owner != nil {
		r.owner.touch()
	}
}

// Copy returns a deep copy of r, not attached to any grammar.
func (r *Rule) Copy() *Rule {
	c := &Rule{name: r.name, bodies: make([]Body, len(r.bodies))}
	for i, b := range r.bodies {
		c.bodies[i] = b.Copy()
	}
	return c
}

// String returns the rule in canonical text form.
func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(r.name)
	b.WriteString(": ")
	if len(r.bodies) == 0 {
		return b.String()
	}
	b.WriteString(r.bodies[0].String())
	for _, body := range r.bodies[1:] {
		b.WriteString("\n    | ")
		b.WriteString(body.String())
	}
	return b.String()
}

// --- Grammars --------------------------------------------------------------

// Grammar is a context-free grammar with a designated start non-terminal.
type Grammar struct {
	start   string
	rules   map[string]*Rule
	order   []string // insertion order of rules
	version uint64
	text    struct {
		version uint64
		valid   bool
		s       string
	}
	compiled struct {
		version uint64
		valid   bool
		parser  *earley.Parser
		err     error
	}
}

// New creates an empty grammar with start symbol "start".
func New() *Grammar {
	return NewWithStart(StartName)
}

// NewWithStart creates an empty grammar with the given start symbol.
func NewWithStart(start string) *Grammar {
	return &Grammar{
		start: start,
		rules: make(map[string]*Rule),
	}
}

// FromStartSymbol creates a grammar consisting of the rule start ➞ nt.
func FromStartSymbol(nt string) *Grammar {
	g := New()
	g.AddBody(StartName, Syms(N(nt)))
	return g
}

func (g *Grammar) touch() {
	g.version++
}

// Version is incremented with every change to the grammar.
func (g *Grammar) Version() uint64 {
	return g.version
}

// Start returns the start non-terminal.
func (g *Grammar) Start() string {
	return g.start
}

// Rule returns the rule for non-terminal name, or nil.
func (g *Grammar) Rule(name string) *Rule {
	return g.rules[name]
}

// Has is true if name is a defined non-terminal.
func (g *Grammar) Has(name string) bool {
	_, ok := g.rules[name]
	return ok
}

// Names returns the defined non-terminals in canonical order: the start
// symbol first, then in insertion order.
func (g *Grammar) Names() []string {
	names := make([]string, 0, len(g.order))
	if g.Has(g.start) {
		names = append(names, g.start)
	}
	for _, n := range g.order {
		if n != g.start {
			names = append(names, n)
		}
	}
	return names
}

// Rules returns the rules in canonical order.
func (g *Grammar) Rules() []*Rule {
	rules := make([]*Rule, 0, len(g.order))
	for _, n := range g.Names() {
		rules = append(rules, g.rules[n])
	}
	return rules
}

// AddRule merges r into g: if g already has a rule of the same name, r's
// bodies are appended (skipping duplicates), otherwise a copy of r is
// inserted.
func (g *Grammar) AddRule(r *Rule) {
	existing, ok := g.rules[r.name]
	if !ok {
		c := r.Copy()
		c.owner = g
		g.rules[r.name] = c
		g.order = append(g.order, r.name)
		g.touch()
		return
	}
	for _, b := range r.bodies {
		existing.AddBody(b.Copy())
	}
}

// AddBody adds a body to the rule for name, creating the rule if necessary.
func (g *Grammar) AddBody(name string, b Body) {
	r, ok := g.rules[name]
	if !ok {
		r = &Rule{name: name, owner: g}
		g.rules[name] = r
		g.order = append(g.order, name)
		g.touch()
	}
	r.AddBody(b.Copy())
}

// RemoveRule deletes the rule for name. References to name are left alone.
func (g *Grammar) RemoveRule(name string) {
	if _, ok := g.rules[name]; !ok {
		return
	}
	delete(g.rules, name)
	for i, n := range g.order {
		if n == name {
			g.order = append(g.order[:i:i], g.order[i+1:]...)
			break
		}
	}
	g.touch()
}

// Replace substitutes every reference to non-terminal nt in every body by the
// symbols of repl. An empty repl removes the references.
// It returns the number of references replaced.
func (g *Grammar) Replace(nt string, repl Body) int {
	count := 0
	for _, r := range g.rules {
		changed := false
		for i, b := range r.bodies {
			if !b.Contains(nt) {
				continue
			}
			nb := make(Body, 0, len(b)+len(repl))
			for _, s := range b {
				if s.IsNonterminal() && s.Text == nt {
					nb = append(nb, repl...)
					count++
				} else {
					nb = append(nb, s)
				}
			}
			r.bodies[i] = nb
			changed = true
		}
		if changed {
			r.touch()
		}
	}
	return count
}

// Rename renames non-terminal from to to, including all references. If to is
// already defined, the bodies of from are merged into it.
func (g *Grammar) Rename(from, to string) {
	if from == to {
		return
	}
	g.Replace(from, Syms(N(to)))
	r, ok := g.rules[from]
	if !ok {
		return
	}
	g.RemoveRule(from)
	for _, b := range r.bodies {
		g.AddBody(to, b)
	}
	if from == g.start {
		g.start = to
		g.touch()
	}
}

// Size returns the total number of bodies.
func (g *Grammar) Size() int {
	n := 0
	for _, r := range g.rules {
		n += len(r.bodies)
	}
	return n
}

// SymbolCount returns Σ(1 + |body|) over all bodies.
func (g *Grammar) SymbolCount() int {
	n := 0
	for _, r := range g.rules {
		for _, b := range r.bodies {
			n += 1 + len(b)
		}
	}
	return n
}

// References counts the occurrences of each non-terminal in all bodies.
func (g *Grammar) References() map[string]int {
	refs := make(map[string]int)
	for _, r := range g.rules {
		for _, b := range r.bodies {
			for _, s := range b {
				if s.IsNonterminal() {
					refs[s.Text]++
				}
			}
		}
	}
	return refs
}

// Terminals returns the set of terminal literals used in g, sorted.
func (g *Grammar) Terminals() []string {
	set := make(map[string]bool)
	for _, r := range g.rules {
		for _, b := range r.bodies {
			for _, s := range b {
				if s.IsTerminal() {
					set[s.Text] = true
				}
			}
		}
	}
	terms := make([]string, 0, len(set))
	for t := range set {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// Copy returns a deep copy of g. Caches are not copied.
func (g *Grammar) Copy() *Grammar {
	c := NewWithStart(g.start)
	for _, n := range g.order {
		r := g.rules[n].Copy()
		r.owner = c
		c.rules[n] = r
	}
	c.order = append([]string(nil), g.order...)
	return c
}

// String returns the canonical text form of g: one rule per line, start rule
// first.
func (g *Grammar) String() string {
	if g.text.valid && g.text.version == g.version {
		return g.text.s
	}
	lines := make([]string, 0, len(g.rules))
	for _, r := range g.Rules() {
		lines = append(lines, r.String())
	}
	g.text.s = strings.Join(lines, "\n")
	g.text.version = g.version
	g.text.valid = true
	return g.text.s
}

// Equal is true if g and other have the same start symbol and the same
// rules with the same bodies (in order).
func (g *Grammar) Equal(other *Grammar) bool {
	if g.start != other.start || len(g.rules) != len(other.rules) {
		return false
	}
	for n, r := range g.rules {
		o, ok := other.rules[n]
		if !ok || len(o.bodies) != len(r.bodies) {
			return false
		}
		for i := range r.bodies {
			if !r.bodies[i].Equal(o.bodies[i]) {
				return false
			}
		}
	}
	return true
}
