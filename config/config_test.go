package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestDefaultIsValid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.config")
	defer teardown()
	//
	c := Default()
	if err := c.Validate(); err != nil {
		t.Errorf("Expected default configuration to be valid, is %v", err)
	}
	if c.MaxGroupLen != 10 || c.MaxSamplesPerCoalesce != 50 || c.PopulationSize != 20 {
		t.Errorf("Expected engine defaults 10/50/20, is %d/%d/%d",
			c.MaxGroupLen, c.MaxSamplesPerCoalesce, c.PopulationSize)
	}
	if _, err := c.Generator(); err == nil {
		t.Errorf("Expected generator to need terminals and non-terminals")
	}
}

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.config")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "run.toml")
	data := `
TERMINALS = ["a", "b", ""]
NONTERMINALS = ["T0", "T1"]
GUIDE = ["ab", "aab"]
POS_EXAMPLES = 20
MAX_RHS_LEN = 4
MUST_EXPAND_IN_COALESCE = true
SEED = 42
ORACLE_TIMEOUT = "2s"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Terminals) != 3 || c.Terminals[2] != "" || len(c.Guide) != 2 {
		t.Errorf("Expected lists to be read, is %v / %v", c.Terminals, c.Guide)
	}
	if c.PosExamples != 20 || c.NegExamples != 50 {
		t.Errorf("Expected POS_EXAMPLES=20 and default NEG_EXAMPLES=50, is %d/%d", c.PosExamples, c.NegExamples)
	}
	if !c.MustExpandInCoalesce || c.Seed != 42 {
		t.Errorf("Expected engine knobs to be read, is %+v", c)
	}
	if d, _ := c.Timeout(); d != 2*time.Second {
		t.Errorf("Expected timeout 2s, is %v", d)
	}
	gen, err := c.Generator()
	if err != nil || gen.MaxRHSLen != 4 || gen.NumRules != 8 {
		t.Errorf("Expected generator configuration, is %+v (%v)", gen, err)
	}
}

func TestInvalid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.config")
	defer teardown()
	//
	for _, data := range []string{
		`MAX_GROUP_LEN = 2`,
		`NUM_RULES = 0`,
		`NONTERMINALS = ["\"x"]`,
		`ORACLE_TIMEOUT = "soon"`,
		`POS_EXAMPLES = "many"`,
	} {
		if _, err := Decode([]byte(data)); err == nil {
			t.Errorf("Expected %s to be rejected", data)
		} else if !strings.Contains(err.Error(), "configuration") {
			t.Errorf("Expected configuration error, is %v", err)
		}
	}
}
