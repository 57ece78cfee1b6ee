package main

import (
	"fmt"

	"github.com/npillmayer/grinfer/grammar"
	"github.com/npillmayer/grinfer/search"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var searchFlags = struct {
	out          *string
	dump         *string
	resume       *string
	generational *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "search <target grammar>",
		Short: "Search for a grammar matching examples sampled from a target grammar",
		Long: `search samples POS_EXAMPLES positive and NEG_EXAMPLES negative examples from
a target grammar and searches for a grammar which separates them. The search
starts from the GUIDE examples of the configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}
	searchFlags.out = cmd.Flags().StringP("out", "o", "", "file to write the best grammar to (default stdout)")
	searchFlags.dump = cmd.Flags().String("dump", "", "directory to dump the search state to")
	searchFlags.resume = cmd.Flags().String("resume", "", "dumped grammar to continue the search from")
	searchFlags.generational = cmd.Flags().Bool("generational", false, "run the generational variant")
	rootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	target, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	sess := newSession()
	positives := target.SamplePositives(sess.Rand(), cfg.PosExamples, cfg.MaxTreeDepth)
	terminals := cfg.Terminals
	if len(terminals) == 0 {
		terminals = target.Terminals()
	}
	negatives, err := target.SampleNegatives(sess.Rand(), cfg.NegExamples, terminals, cfg.MaxNegExampleSize)
	if err != nil {
		return err
	}
	pterm.Info.Printf("%d positive and %d negative examples\n", len(positives), len(negatives))
	if *searchFlags.generational {
		return runGenerational(positives, negatives)
	}
	if len(cfg.Guide) == 0 && *searchFlags.resume == "" {
		return fmt.Errorf("search needs GUIDE examples or a dump to resume")
	}
	s := search.NewSearcher(sess, search.Scorer{Positives: positives, Negatives: negatives})
	s.PopulationSize = cfg.PopulationSize
	s.MaxIterations = cfg.MaxIterations
	if *searchFlags.dump != "" {
		s.Dump = search.NewDump(*searchFlags.dump, sess)
		pterm.Info.Printf("dumping search state to %s\n", s.Dump.Path)
	}
	var g *grammar.Grammar
	var score float64
	if *searchFlags.resume != "" {
		var base *grammar.Grammar
		if base, err = search.LoadDump(*searchFlags.resume); err != nil {
			return err
		}
		g, score, err = s.RunFrom(base)
	} else {
		g, score, err = s.Run(cfg.Guide)
	}
	if err != nil {
		return err
	}
	pterm.Success.Printf("best score %.4f after %d iterations\n", score, s.Iterations())
	return writeGrammar(g, *searchFlags.out)
}

func runGenerational(positives, negatives []string) error {
	gc, err := cfg.Generator()
	if err != nil {
		return err
	}
	rnd := newSession().Rand()
	gen := search.NewGenerator(gc, rnd)
	cs := search.NewCategoryScorer(gc, positives, negatives, gen.Generate(), gen)
	cs.Evolve(rnd, cfg.MaxIterations)
	data := pterm.TableData{{"category", "score", "rules"}}
	for _, c := range search.Categories {
		champ := cs.Champion(c)
		data = append(data, []string{c, fmt.Sprintf("%.4f", champ.Score), fmt.Sprintf("%d", len(champ.Grammar.Names()))})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return writeGrammar(cs.Champion("pos").Grammar, *searchFlags.out)
}
