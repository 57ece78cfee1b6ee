package search

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/grammar"
)

// Dump is a side file holding the best grammar of a running search. Every
// write replaces the previous content.
type Dump struct {
	Path string
}

// NewDump creates a dump in directory dir, named after the session.
func NewDump(dir string, sess *grinfer.Session) *Dump {
	return &Dump{Path: filepath.Join(dir, fmt.Sprintf("grinfer-%s.grammar", sess.ID))}
}

// Write replaces the dump's content by g, preceded by a comment header
// carrying score and iteration.
func (d *Dump) Write(g *grammar.Grammar, score float64, iteration int) error {
	content := fmt.Sprintf("# iteration %d, score %.6f\n%s\n", iteration, score, g)
	if err := os.WriteFile(d.Path, []byte(content), 0644); err != nil {
		return fmt.Errorf("cannot write search state: %w", err)
	}
	tracer().Debugf("dumped grammar with score %.4f to %s", score, d.Path)
	return nil
}

// LoadDump reads back a grammar written by Dump.Write.
func LoadDump(path string) (*grammar.Grammar, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := grammar.Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
