package grammar

import (
	"fmt"
	"strconv"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// --- Reading the text form -------------------------------------------------

// Token types of the grammar text form.
const (
	tokName int = iota
	tokString
	tokColon
	tokBar
	tokEpsilon
)

var tokenNames = []string{"NAME", "STRING", ":", "|", EpsilonGlyph}

var textLexer *lexmachine.Lexer

func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func lexer() (*lexmachine.Lexer, error) {
	if textLexer != nil {
		return textLexer, nil
	}
	lx := lexmachine.NewLexer()
	lx.Add([]byte(`#[^\n]*`), skip)
	lx.Add([]byte(`\"([^"\\]|\\.)*\"`), makeToken(tokString))
	lx.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_|-|\.)*`), makeToken(tokName))
	lx.Add([]byte(`:`), makeToken(tokColon))
	lx.Add([]byte(`\|`), makeToken(tokBar))
	lx.Add([]byte(EpsilonGlyph), makeToken(tokEpsilon))
	lx.Add([]byte(`( |\t|\n|\r)+`), skip)
	if err := lx.Compile(); err != nil {
		tracer().Errorf("error compiling DFA: %v", err)
		return nil, err
	}
	textLexer = lx
	return lx, nil
}

func tokenize(text string) ([]*lexmachine.Token, error) {
	lx, err := lexer()
	if err != nil {
		return nil, err
	}
	scanner, err := lx.Scanner([]byte(text))
	if err != nil {
		return nil, err
	}
	var toks []*lexmachine.Token
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				return nil, fmt.Errorf("line %d, column %d: unexpected input", ui.FailLine, ui.FailColumn)
			}
			return nil, err
		}
		toks = append(toks, tok.(*lexmachine.Token))
	}
	return toks, nil
}

// Parse reads a grammar in canonical text form, as produced by
// Grammar.String. The first rule's non-terminal becomes the start symbol.
// Lines starting with '#' are comments.
func Parse(text string) (*Grammar, error) {
	toks, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	var g *Grammar
	var lhs string
	var body Body
	inBody := false
	flush := func() {
		if inBody {
			g.AddBody(lhs, body)
		}
		body, inBody = nil, false
	}
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch tok.Type {
		case tokName:
			if i+1 < len(toks) && toks[i+1].Type == tokColon { // new rule
				flush()
				lhs = string(tok.Lexeme)
				if g == nil {
					g = NewWithStart(lhs)
				}
				i++
				inBody = true
				continue
			}
			if !inBody {
				return nil, unexpected(tok)
			}
			body = append(body, N(string(tok.Lexeme)))
		case tokString:
			if !inBody {
				return nil, unexpected(tok)
			}
			s, err := strconv.Unquote(string(tok.Lexeme))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", tok.StartLine, err)
			}
			if s != "" {
				body = append(body, T(s))
			}
		case tokEpsilon:
			if !inBody {
				return nil, unexpected(tok)
			}
		case tokBar:
			if lhs == "" {
				return nil, unexpected(tok)
			}
			flush()
			inBody = true
		default:
			return nil, unexpected(tok)
		}
	}
	flush()
	if g == nil {
		return nil, fmt.Errorf("grammar text contains no rules")
	}
	tracer().Debugf("read grammar with %d rules", len(g.rules))
	return g, nil
}

func unexpected(tok *lexmachine.Token) error {
	return fmt.Errorf("line %d, column %d: unexpected %s %q",
		tok.StartLine, tok.StartColumn, tokenNames[tok.Type], string(tok.Lexeme))
}
