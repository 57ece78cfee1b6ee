package main

import (
	"fmt"

	"github.com/npillmayer/grinfer/search"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var evalFlags = struct {
	precision *int
	verbose   *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "eval <oracle command> <test dir> <grammar file>",
		Short: "Measure recall and precision of a learned grammar",
		Args:  cobra.ExactArgs(3),
		RunE:  runEval,
	}
	evalFlags.precision = cmd.Flags().IntP("precision-set-size", "n", 1000, "number of strings to sample from the grammar")
	evalFlags.verbose = cmd.Flags().BoolP("verbose", "v", false, "list failing inputs")
	rootCmd.AddCommand(cmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	recall, err := readExamples(args[1])
	if err != nil {
		return err
	}
	g, err := readGrammar(args[2])
	if err != nil {
		return err
	}
	o, err := externalOracle(args[0])
	if err != nil {
		return err
	}
	eval, err := search.Evaluate(o, g, recall, *evalFlags.precision, newSession().Rand())
	if err != nil {
		return err
	}
	pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"", "parsed", "total", "rate"},
		{"recall", fmt.Sprint(eval.RecallParsed), fmt.Sprint(eval.RecallTotal), fmt.Sprintf("%.3f", eval.Recall())},
		{"precision", fmt.Sprint(eval.PrecisionParsed), fmt.Sprint(eval.PrecisionTotal), fmt.Sprintf("%.3f", eval.Precision())},
	}).Render()
	if *evalFlags.verbose {
		for _, f := range eval.Failures {
			pterm.Warning.Printf("failed: %q\n", f)
		}
	}
	return nil
}
