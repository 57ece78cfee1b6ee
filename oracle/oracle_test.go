package oracle

import (
	"errors"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/npillmayer/grinfer"
	"github.com/npillmayer/grinfer/grammar"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func needUnix(t *testing.T, progs ...string) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a unix environment")
	}
	for _, p := range progs {
		if _, err := exec.LookPath(p); err != nil {
			t.Skipf("program %s not available", p)
		}
	}
}

func TestExternal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.oracle")
	defer teardown()
	//
	needUnix(t, "grep")
	o := NewExternal("grep -q abc")
	if ok, err := o.Accepts("xxabcxx"); err != nil || !ok {
		t.Errorf("Expected input containing abc to be accepted, is %v (%v)", ok, err)
	}
	if ok, err := o.Accepts("xxx"); err != nil || ok {
		t.Errorf("Expected input without abc to be rejected, is %v (%v)", ok, err)
	}
}

func TestExternalSpawnFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.oracle")
	defer teardown()
	//
	o := NewExternal("/does/not/exist/oracle")
	_, err := o.Accepts("x")
	var oie *grinfer.OracleInvocationError
	if !errors.As(err, &oie) {
		t.Errorf("Expected invocation error, is %v", err)
	}
	if _, err = NewExternal("  ").Accepts("x"); !grinfer.IsFatal(err) {
		t.Errorf("Expected empty command to be fatal, is %v", err)
	}
}

func TestExternalTimeout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.oracle")
	defer teardown()
	//
	needUnix(t, "sleep")
	o := External{Command: "sleep 5", Timeout: 50 * time.Millisecond}
	start := time.Now()
	ok, err := o.Accepts("x")
	if err != nil || !ok {
		t.Errorf("Expected timeout to count as acceptance, is %v (%v)", ok, err)
	}
	if time.Since(start) > 4*time.Second {
		t.Errorf("Expected program to be killed after timeout")
	}
}

func TestGrammarOracle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.oracle")
	defer teardown()
	//
	g, err := grammar.Parse(`start: "a" start "b" | ε`)
	if err != nil {
		t.Fatal(err)
	}
	o, err := FromGrammar(g)
	if err != nil {
		t.Fatal(err)
	}
	for input, expected := range map[string]bool{"": true, "ab": true, "aabb": true, "aab": false} {
		if ok, err := o.Accepts(input); err != nil || ok != expected {
			t.Errorf("Expected %q → %v, is %v (%v)", input, expected, ok, err)
		}
	}
	broken, _ := grammar.Parse(`start: undefined`)
	_, err = FromGrammar(broken)
	var gce *grinfer.GrammarCompileError
	if !errors.As(err, &gce) {
		t.Errorf("Expected compile error for undefined non-terminal, is %v", err)
	}
}

func TestCaching(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "grinfer.oracle")
	defer teardown()
	//
	asked := 0
	fail := false
	inner := grinfer.OracleFunc(func(s string) (bool, error) {
		asked++
		if fail {
			return false, &grinfer.OracleInvocationError{Command: "test"}
		}
		return len(s)%2 == 0, nil
	})
	c := NewCaching(inner)
	for _, s := range []string{"ab", "a", "ab", "ab", "a"} {
		c.Accepts(s)
	}
	if asked != 2 || c.Calls() != 5 || c.Hits() != 3 || c.Size() != 2 {
		t.Errorf("Expected 2 real queries, 5 calls, 3 hits; is %d, %d, %d", asked, c.Calls(), c.Hits())
	}
	if ok, _ := c.Accepts("a"); ok {
		t.Errorf("Expected memoized rejection of odd-length input")
	}
	fail = true
	if _, err := c.Accepts("abc"); err == nil {
		t.Errorf("Expected invocation error to be passed through")
	}
	fail = false
	if ok, err := c.Accepts("abcd"); err != nil || !ok {
		t.Errorf("Expected errors not to be memoized, is %v (%v)", ok, err)
	}
}
