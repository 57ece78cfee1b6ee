package main

import (
	"fmt"
	"time"

	"github.com/npillmayer/grinfer/learn"
	"github.com/npillmayer/grinfer/oracle"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var learnFlags = struct {
	out    *string
	tokens *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "learn <oracle command> <examples dir>",
		Short:   "Learn a grammar from example inputs",
		Example: `  grinfer learn "./parse_json" examples/json -o json.grammar`,
		Args:    cobra.ExactArgs(2),
		RunE:    runLearn,
	}
	learnFlags.out = cmd.Flags().StringP("out", "o", "", "file to write the learned grammar to (default stdout)")
	learnFlags.tokens = cmd.Flags().Bool("expand-tokens", false, "widen tokens to character classes (overrides EXPAND_TOKENS)")
	rootCmd.AddCommand(cmd)
}

// externalOracle creates a caching oracle for command, honouring the
// configured timeout.
func externalOracle(command string) (*oracle.Caching, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	ext := oracle.NewExternal(command)
	ext.Timeout = timeout
	return oracle.NewCaching(ext), nil
}

func runLearn(cmd *cobra.Command, args []string) error {
	examples, err := readExamples(args[1])
	if err != nil {
		return err
	}
	o, err := externalOracle(args[0])
	if err != nil {
		return err
	}
	for i, ex := range examples {
		ok, err := o.Accepts(ex)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("example %d is rejected by the oracle", i+1)
		}
	}
	l := learn.New(o, newSession())
	l.MaxGroupLen = cfg.MaxGroupLen
	l.MaxSamples = cfg.MaxSamplesPerCoalesce
	l.MustExpandInCoalesce = cfg.MustExpandInCoalesce
	l.MustExpandInPartial = cfg.MustExpandInPartial
	l.ExpandTokens = cfg.ExpandTokens || *learnFlags.tokens
	l.TokenSamples = cfg.TokenSamples
	pterm.Info.Printf("learning from %d examples\n", len(examples))
	start := time.Now()
	g, err := l.Learn(examples)
	if err != nil {
		return err
	}
	pterm.Success.Printf("learned grammar with %d rules in %v (%d oracle calls, %d cached)\n",
		len(g.Names()), time.Since(start).Round(time.Millisecond), o.Calls(), o.Hits())
	if ok, err := learn.CheckRecall(o, g, l.Session.Rand()); err != nil {
		return err
	} else if !ok {
		pterm.Warning.Println("some strings sampled from the learned grammar are rejected by the oracle")
	}
	return writeGrammar(g, *learnFlags.out)
}
