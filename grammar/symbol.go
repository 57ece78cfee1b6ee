package grammar

import (
	"strconv"
	"strings"
)

// EpsilonGlyph is the printed form of the empty body.
const EpsilonGlyph = "ε"

// SymbolKind tells terminals from non-terminals.
type SymbolKind uint8

// Kinds of symbols.
const (
	TerminalKind SymbolKind = iota
	NonterminalKind
)

// Symbol is either a terminal literal or a non-terminal reference.
type Symbol struct {
	Kind SymbolKind
	Text string // literal text for terminals, name for non-terminals
}

// T creates a terminal symbol.
func T(text string) Symbol {
	return Symbol{Kind: TerminalKind, Text: text}
}

// N creates a non-terminal symbol.
func N(name string) Symbol {
	return Symbol{Kind: NonterminalKind, Text: name}
}

// IsTerminal is true for terminal literals.
func (s Symbol) IsTerminal() bool {
	return s.Kind == TerminalKind
}

// IsNonterminal is true for non-terminal references.
func (s Symbol) IsNonterminal() bool {
	return s.Kind == NonterminalKind
}

// String returns terminals double-quoted (with Go escapes) and non-terminals
// by name.
func (s Symbol) String() string {
	if s.IsTerminal() {
		return strconv.Quote(s.Text)
	}
	return s.Text
}

// Body is a sequence of symbols. The empty body is epsilon.
type Body []Symbol

// Syms is a shortcut to create a body.
func Syms(symbols ...Symbol) Body {
	return Body(symbols)
}

// IsEpsilon is true for the empty body.
func (b Body) IsEpsilon() bool {
	return len(b) == 0
}

// Equal compares two bodies symbol by symbol.
func (b Body) Equal(other Body) bool {
	if len(b) != len(other) {
		return false
	}
	for i := range b {
		if b[i] != other[i] {
			return false
		}
	}
	return true
}

// Copy returns an unaliased copy of b.
func (b Body) Copy() Body {
	c := make(Body, len(b))
	copy(c, b)
	return c
}

// Contains is true if b references non-terminal nt.
func (b Body) Contains(nt string) bool {
	for _, s := range b {
		if s.IsNonterminal() && s.Text == nt {
			return true
		}
	}
	return false
}

// Key returns a string usable as a map key, unique for each body.
func (b Body) Key() string {
	var sb strings.Builder
	for _, s := range b {
		sb.WriteByte(byte('0' + s.Kind))
		sb.WriteString(s.Text)
		sb.WriteByte(0)
	}
	return sb.String()
}

// String joins the symbols with blanks, or returns 'ε' for the empty body.
func (b Body) String() string {
	if len(b) == 0 {
		return EpsilonGlyph
	}
	parts := make([]string, len(b))
	for i, s := range b {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

// normalize removes empty terminals, which are an alternative notation for
// epsilon.
func normalize(b Body) Body {
	n := make(Body, 0, len(b))
	for _, s := range b {
		if s.IsTerminal() && s.Text == "" {
			continue
		}
		n = append(n, s)
	}
	return n
}
