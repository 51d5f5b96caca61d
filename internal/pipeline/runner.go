package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes one external tool invocation and returns its stdout.
// The production implementation shells out; tests substitute a scripted
// fake so pipelines run without a cross-toolchain installed.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ToolError is a failed external tool invocation. The tool's own
// diagnostic text is carried verbatim; cross-compilation failures are
// deterministic, so there is no retry path.
type ToolError struct {
	Tool   string
	Args   []string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Tool, strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += "\n" + strings.TrimRight(e.Stderr, "\n")
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// ExecRunner runs tools as host processes.
type ExecRunner struct{}

// Run executes the tool, returning captured stdout. On nonzero exit the
// returned ToolError includes the tool's stderr.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &ToolError{Tool: name, Args: args, Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}
