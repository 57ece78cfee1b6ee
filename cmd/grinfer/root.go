package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/config"
	"github.com/npillmayer/grinfer/grammar"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// traceKeys are the tracing keys of all packages.
var traceKeys = []string{
	"grinfer.cli", "grinfer.config", "grinfer.grammar", "grinfer.earley",
	"grinfer.ptree", "grinfer.treebuild", "grinfer.bubble", "grinfer.learn",
	"grinfer.minimize", "grinfer.tokenexp", "grinfer.search", "grinfer.oracle",
}

var rootFlags = struct {
	trace  *string
	config *string
	seed   *int64
}{}

// cfg is the configuration of the current run, set before any subcommand
// runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "grinfer",
	Short: "Infer a context-free grammar from examples and an oracle",
	Long: `grinfer learns context-free grammars from a set of example inputs
and an oracle which decides membership of arbitrary inputs.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "Info", "trace level [Debug|Info|Error]")
	rootFlags.config = rootCmd.PersistentFlags().StringP("config", "c", "", "configuration file (TOML)")
	rootFlags.seed = rootCmd.PersistentFlags().Int64("seed", 0, "seed for the random stream (overrides SEED)")
}

// Execute runs the command line.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

func setup(cmd *cobra.Command, args []string) error {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	level := tracing.TraceLevelFromString(*rootFlags.trace)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Debugf("trace level is %s", *rootFlags.trace)
	cfg = config.Default()
	if *rootFlags.config != "" {
		c, err := config.Load(*rootFlags.config)
		if err != nil {
			return err
		}
		cfg = c
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = *rootFlags.seed
	}
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func newSession() *grinfer.Session {
	sess := grinfer.NewSession(cfg.Seed)
	tracer().Infof("session %s, seed %d", sess.ID, sess.Seed)
	return sess
}

// readExamples reads every regular file in dir as one example, in name
// order.
func readExamples(dir string) ([]string, error) {
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	var examples []string
	for _, e := range entries {
		if !e.Mode().IsRegular() {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		examples = append(examples, string(b))
	}
	if len(examples) == 0 {
		return nil, fmt.Errorf("no examples found in %s", dir)
	}
	return examples, nil
}

func readGrammar(path string) (*grammar.Grammar, error) {
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

// writeGrammar writes g to path, or prints it if path is empty.
func writeGrammar(g *grammar.Grammar, path string) error {
	if path == "" {
		pterm.Println(g.String())
		return nil
	}
	if err := os.WriteFile(path, []byte(g.String()+"\n"), 0644); err != nil {
		return err
	}
	pterm.Success.Printf("grammar written to %s\n", path)
	return nil
}
