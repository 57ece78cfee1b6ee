package main

import (
	"github.com/npillmayer/grinfer/grammar"
	"github.com/npillmayer/grinfer/minimize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var minimizeFlags = struct {
	simple *bool
	out    *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "minimize <grammar file>",
		Short: "Minimize a grammar",
		Args:  cobra.ExactArgs(1),
		RunE:  runMinimize,
	}
	minimizeFlags.simple = cmd.Flags().Bool("simple", false, "only inline trivial rules")
	minimizeFlags.out = cmd.Flags().StringP("out", "o", "", "file to write the minimized grammar to (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runMinimize(cmd *cobra.Command, args []string) error {
	g, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	var m *grammar.Grammar
	if *minimizeFlags.simple {
		m = minimize.Simple(g)
	} else if m, err = minimize.Aggressive(g); err != nil {
		return err
	}
	pterm.Info.Printf("%d → %d bodies\n", g.Size(), m.Size())
	return writeGrammar(m, *minimizeFlags.out)
}
