package oracle

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/npillmayer/grinfer"
)

// External is an oracle backed by a program. The program is called with the
// name of a file containing the input as its last argument; exit code 0
// accepts the input, any other exit code rejects it.
//
// If Timeout is positive, a program running longer is killed and the input
// counts as accepted.
type External struct {
	Command string // program, optionally followed by arguments
	Timeout time.Duration
}

var _ grinfer.Oracle = External{}

// NewExternal creates an external oracle without timeout.
func NewExternal(command string) External {
	return External{Command: command}
}

// Accepts runs the program on input.
func (o External) Accepts(input string) (bool, error) {
	return o.AcceptsContext(context.Background(), input)
}

// AcceptsContext runs the program on input. Cancellation of ctx is reported
// as an invocation error.
func (o External) AcceptsContext(ctx context.Context, input string) (bool, error) {
	args := strings.Fields(o.Command)
	if len(args) == 0 {
		return false, o.invocationError(errors.New("empty command"))
	}
	f, err := os.CreateTemp("", "grinfer-oracle-*")
	if err != nil {
		return false, o.invocationError(err)
	}
	defer os.Remove(f.Name())
	if _, err = f.WriteString(input); err != nil {
		f.Close()
		return false, o.invocationError(err)
	}
	if err = f.Close(); err != nil {
		return false, o.invocationError(err)
	}
	runctx := ctx
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		runctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(runctx, args[0], append(args[1:], f.Name())...)
	err = cmd.Run()
	if err == nil {
		return true, nil
	}
	if ctx.Err() != nil {
		return false, o.invocationError(ctx.Err())
	}
	if runctx.Err() == context.DeadlineExceeded {
		tracer().Infof("oracle timed out on %q, accepting", input)
		return true, nil
	}
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return false, nil
	}
	return false, o.invocationError(err)
}

func (o External) invocationError(err error) error {
	return &grinfer.OracleInvocationError{Command: o.Command, Err: err}
}
