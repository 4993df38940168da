// Package adapter runs the external test adapter executable and parses the
// outcome it emits for a single test document.
package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/erbsland-dev/elcl-conformance/internal/outcome"
	"github.com/erbsland-dev/elcl-conformance/internal/types"
)

// DefaultTimeout bounds a single adapter invocation unless configured
// otherwise.
const DefaultTimeout = 10 * time.Second

// Execution captures the observable result of one subprocess run.
type Execution struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner is an interface for running external commands.
// This allows for mocking in tests.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (Execution, error)
}

// ExecCommandRunner uses os/exec to run commands.
type ExecCommandRunner struct{}

// Run executes the command and captures stdout and stderr separately.
// A non-zero exit is reported through Execution.ExitCode, not as an error;
// the returned error covers spawn failures and context cancellation only.
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) (Execution, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	execution := Execution{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		if ctx.Err() != nil {
			return execution, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			execution.ExitCode = exitErr.ExitCode()
			return execution, nil
		}
		return execution, err
	}
	return execution, nil
}

// InvocationError describes a failed adapter invocation: a crash, timeout,
// unexpected exit code, or malformed outcome output. Invocation errors make
// the affected test case fail; they never abort the run.
type InvocationError struct {
	Reason   string
	ExitCode int
	Stderr   string
	Timeout  bool
}

func (e *InvocationError) Error() string {
	return e.Reason
}

// Options configures a Runner.
type Options struct {
	Timeout     time.Duration // per-invocation timeout; DefaultTimeout if zero
	LangVersion string        // passed to the adapter; DefaultLangVersion if empty
	ExtraArgs   []string      // additional arguments before the document path
	Command     CommandRunner // subprocess implementation; ExecCommandRunner if nil
}

// Runner invokes the test adapter executable once per test case.
type Runner struct {
	path        string
	timeout     time.Duration
	langVersion string
	extraArgs   []string
	cmd         CommandRunner
}

// New creates a Runner for the adapter executable at path.
// The path must point to an existing regular file.
func New(path string, opts Options) (*Runner, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absPath)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("couldn't find the test adapter executable at this path: %s", absPath)
	}

	r := &Runner{
		path:        absPath,
		timeout:     opts.Timeout,
		langVersion: opts.LangVersion,
		extraArgs:   opts.ExtraArgs,
		cmd:         opts.Command,
	}
	if r.timeout <= 0 {
		r.timeout = DefaultTimeout
	}
	if r.langVersion == "" {
		r.langVersion = types.DefaultLangVersion
	}
	if r.cmd == nil {
		r.cmd = &ExecCommandRunner{}
	}
	return r, nil
}

// Path returns the absolute path of the adapter executable.
func (r *Runner) Path() string {
	return r.path
}

// Run invokes the adapter on the given test document and parses its outcome.
// Exit code 0 yields a PASS document parsed from stdout; exit code 1 yields
// a FAIL document that must report exactly one error class. Anything else is
// an InvocationError.
func (r *Runner) Run(ctx context.Context, casePath string) (*outcome.Document, error) {
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := []string{"--version", r.langVersion}
	args = append(args, r.extraArgs...)
	args = append(args, casePath)

	execution, err := r.cmd.Run(runCtx, r.path, args...)
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, &InvocationError{
				Reason:  fmt.Sprintf("test adapter timed out after %s", r.timeout),
				Stderr:  execution.Stderr,
				Timeout: true,
			}
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &InvocationError{
			Reason: fmt.Sprintf("failed to start the test adapter: %v", err),
			Stderr: execution.Stderr,
		}
	}

	switch execution.ExitCode {
	case 0:
		doc, err := outcome.ParsePass(execution.Stdout)
		if err != nil {
			return nil, &InvocationError{
				Reason: fmt.Sprintf("invalid adapter output: %v", err),
				Stderr: execution.Stderr,
			}
		}
		return doc, nil
	case 1:
		doc, err := outcome.ParseFail(execution.Stdout)
		if err != nil {
			return nil, &InvocationError{
				Reason:   fmt.Sprintf("invalid adapter output: %v", err),
				ExitCode: 1,
				Stderr:   execution.Stderr,
			}
		}
		if len(doc.ErrorClasses) != 1 {
			return nil, &InvocationError{
				Reason:   fmt.Sprintf("test adapter returned %d error classes, instead of one", len(doc.ErrorClasses)),
				ExitCode: 1,
				Stderr:   execution.Stderr,
			}
		}
		return doc, nil
	default:
		return nil, &InvocationError{
			Reason:   fmt.Sprintf("test adapter returned unexpected exit code: %d", execution.ExitCode),
			ExitCode: execution.ExitCode,
			Stderr:   execution.Stderr,
		}
	}
}

// SelfTest verifies the adapter works by running it on a minimal document
// that every conforming parser must accept.
func (r *Runner) SelfTest(ctx context.Context) error {
	file, err := os.CreateTemp("", "elcl-selftest-*.elcl")
	if err != nil {
		return fmt.Errorf("failed to create self-test document: %w", err)
	}
	defer func() { _ = os.Remove(file.Name()) }()

	if _, err := file.WriteString("[main]\nvalue: 123\n"); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write self-test document: %w", err)
	}
	if err := file.Close(); err != nil {
		return err
	}

	doc, err := r.Run(ctx, file.Name())
	if err != nil {
		return fmt.Errorf("test adapter failed the sanity test: %w", err)
	}
	if doc.Outcome != types.OutcomePass {
		return fmt.Errorf("test adapter failed the sanity test: returned FAIL on a valid test file")
	}
	return nil
}
