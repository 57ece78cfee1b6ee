package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/grinfer/search"
)

// Config is the configuration of a run.
type Config struct {
	Terminals         []string `toml:"TERMINALS"`
	Nonterminals      []string `toml:"NONTERMINALS"`
	PosExamples       int      `toml:"POS_EXAMPLES"`
	NegExamples       int      `toml:"NEG_EXAMPLES"`
	MaxNegExampleSize int      `toml:"MAX_NEG_EXAMPLE_SIZE"`
	MaxTreeDepth      int      `toml:"MAX_TREE_DEPTH"`
	Guide             []string `toml:"GUIDE"`
	NumRules          int      `toml:"NUM_RULES"`
	MaxRHSLen         int      `toml:"MAX_RHS_LEN"`

	// engine knobs
	MaxGroupLen           int    `toml:"MAX_GROUP_LEN"`
	MaxSamplesPerCoalesce int    `toml:"MAX_SAMPLES_PER_COALESCE"`
	MustExpandInCoalesce  bool   `toml:"MUST_EXPAND_IN_COALESCE"`
	MustExpandInPartial   bool   `toml:"MUST_EXPAND_IN_PARTIAL"`
	ExpandTokens          bool   `toml:"EXPAND_TOKENS"`
	TokenSamples          int    `toml:"TOKEN_SAMPLES"`
	PopulationSize        int    `toml:"POPULATION_SIZE"`
	MaxIterations         int    `toml:"MAX_ITERATIONS"`
	Seed                  int64  `toml:"SEED"`
	OracleTimeout         string `toml:"ORACLE_TIMEOUT"` // e.g. "10s"; empty for none
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		PosExamples:           50,
		NegExamples:           50,
		MaxNegExampleSize:     10,
		MaxTreeDepth:          10,
		NumRules:              8,
		MaxRHSLen:             3,
		MaxGroupLen:           10,
		MaxSamplesPerCoalesce: 50,
		TokenSamples:          10,
		PopulationSize:        search.DefaultPopulationSize,
		MaxIterations:         search.DefaultMaxIterations,
		Seed:                  1,
	}
}

// Load reads a configuration file. Values missing from the file are taken
// from Default. The result is validated.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Decode(data)
}

// Decode reads a configuration from TOML data, see Load.
func Decode(data []byte) (Config, error) {
	c := Default()
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	tracer().Debugf("configuration: %d terminals, %d non-terminals, %d guides",
		len(c.Terminals), len(c.Nonterminals), len(c.Guide))
	return c, nil
}

// Validate rejects configurations which cannot drive a run.
func (c Config) Validate() error {
	var errs []string
	positive := func(name string, v int) {
		if v < 1 {
			errs = append(errs, fmt.Sprintf("%s must be positive, is %d", name, v))
		}
	}
	positive("MAX_TREE_DEPTH", c.MaxTreeDepth)
	positive("NUM_RULES", c.NumRules)
	positive("MAX_RHS_LEN", c.MaxRHSLen)
	positive("MAX_SAMPLES_PER_COALESCE", c.MaxSamplesPerCoalesce)
	positive("TOKEN_SAMPLES", c.TokenSamples)
	positive("POPULATION_SIZE", c.PopulationSize)
	if c.MaxGroupLen < 3 {
		errs = append(errs, fmt.Sprintf("MAX_GROUP_LEN must be at least 3, is %d", c.MaxGroupLen))
	}
	if c.PosExamples < 0 || c.NegExamples < 0 || c.MaxNegExampleSize < 0 || c.MaxIterations < 0 {
		errs = append(errs, "example counts and budgets must not be negative")
	}
	for _, nt := range c.Nonterminals {
		if nt == "" || nt[0] == '"' {
			errs = append(errs, fmt.Sprintf("illegal non-terminal name %q", nt))
		}
	}
	if _, err := c.Timeout(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return errors.New("invalid configuration: " + strings.Join(errs, "; "))
	}
	return nil
}

// Timeout returns the oracle timeout, or 0 for none.
func (c Config) Timeout() (time.Duration, error) {
	if c.OracleTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.OracleTimeout)
	if err != nil {
		return 0, fmt.Errorf("ORACLE_TIMEOUT: %w", err)
	}
	return d, nil
}

// Generator returns the configuration for random grammar generation, which
// needs at least one terminal and one non-terminal.
func (c Config) Generator() (search.GeneratorConfig, error) {
	if len(c.Terminals) == 0 || len(c.Nonterminals) == 0 {
		return search.GeneratorConfig{}, errors.New("grammar generation needs TERMINALS and NONTERMINALS")
	}
	return search.GeneratorConfig{
		Terminals:    c.Terminals,
		Nonterminals: c.Nonterminals,
		NumRules:     c.NumRules,
		MaxRHSLen:    c.MaxRHSLen,
	}, nil
}
