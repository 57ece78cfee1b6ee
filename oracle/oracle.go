package oracle

import (
	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/grammar"
)

// Grammar is an in-process oracle for the language of a grammar.
type Grammar struct {
	g *grammar.Grammar
}

// FromGrammar creates an oracle for the language of a copy of g. It fails
// if g does not compile.
func FromGrammar(g *grammar.Grammar) (*Grammar, error) {
	c := g.Copy()
	if _, err := c.Parser(); err != nil {
		return nil, err
	}
	return &Grammar{g: c}, nil
}

// Accepts parses input.
func (o *Grammar) Accepts(input string) (bool, error) {
	return o.g.Accepts(input)
}

// Caching memoizes the verdicts of an oracle. Invocation errors are not
// memoized.
type Caching struct {
	oracle grinfer.Oracle
	cache  map[string]bool
	calls  int
	hits   int
}

var _ grinfer.Oracle = &Caching{}

// NewCaching wraps o.
func NewCaching(o grinfer.Oracle) *Caching {
	return &Caching{oracle: o, cache: make(map[string]bool)}
}

// Accepts returns the memoized verdict for input, asking the wrapped oracle
// on first use.
func (c *Caching) Accepts(input string) (bool, error) {
	c.calls++
	if ok, found := c.cache[input]; found {
		c.hits++
		return ok, nil
	}
	ok, err := c.oracle.Accepts(input)
	if err != nil {
		return false, err
	}
	c.cache[input] = ok
	if c.calls%1000 == 0 {
		tracer().Debugf("oracle: %d calls, %d cache hits", c.calls, c.hits)
	}
	return ok, nil
}

// Calls is the number of queries so far.
func (c *Caching) Calls() int {
	return c.calls
}

// Hits is the number of queries answered from the cache.
func (c *Caching) Hits() int {
	return c.hits
}

// Size is the number of memoized verdicts.
func (c *Caching) Size() int {
	return len(c.cache)
}
