package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/grinfer/grammar/earley"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl <grammar file>",
		Short: "Check inputs against a grammar interactively",
		Long: `repl reads lines and tells whether the grammar accepts them. For accepted
lines a derivation tree is shown. Escapes like \n and \t are interpreted.
Quit with <ctrl>D.`,
		Args: cobra.ExactArgs(1),
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	p, err := g.Parser()
	if err != nil {
		return err
	}
	repl, err := readline.New("grinfer> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	pterm.Info.Printf("grammar with %d rules loaded, quit with <ctrl>D\n", len(g.Names()))
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		check(p, unescape(line))
	}
	println("Good bye!")
	return nil
}

var escapes = strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\r`, "\r", `\\`, `\`)

func unescape(line string) string {
	return escapes.Replace(line)
}

func check(p *earley.Parser, input string) {
	if !p.Parse(input) {
		pterm.Error.Printf("rejected: %q\n", input)
		return
	}
	pterm.Success.Printf("accepted: %q\n", input)
	tree := p.Tree()
	if tree == nil {
		return
	}
	root := pterm.NewTreeFromLeveledList(leveled(tree))
	pterm.DefaultTree.WithRoot(root).Render()
}

// leveled flattens a derivation tree into a pterm leveled list, pre-order.
func leveled(root *earley.Node) pterm.LeveledList {
	type entry struct {
		node  *earley.Node
		level int
	}
	var ll pterm.LeveledList
	stack := []entry{{root, 0}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ll = append(ll, pterm.LeveledListItem{Level: e.level, Text: e.node.Symbol.String()})
		for i := len(e.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, entry{e.node.Children[i], e.level + 1})
		}
	}
	return ll
}
