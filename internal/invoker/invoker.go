// Package invoker runs the external image-generation tool as a child process.
// Every failure mode is reported as an Outcome value; Invoke never returns a
// Go error so callers cannot forget to handle a failure class.
package invoker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/twalderman/zimage-studio/internal/logging"
)

// DefaultTimeout is the hard wall-clock bound on a single invocation.
const DefaultTimeout = 600 * time.Second

// Kind classifies a failed invocation.
type Kind int

const (
	KindNone     Kind = iota // Success
	KindNotFound             // Tool binary missing: a configuration failure
	KindTimeout              // Wall-clock bound exceeded
	KindExit                 // Tool ran and exited non-zero
)

// Outcome is the structured result of one invocation.
type Outcome struct {
	Success bool
	Stdout  string
	Stderr  string
	Reason  string // Human-readable failure description, empty on success
	Kind    Kind
}

// Invoker executes a fixed tool binary with caller-supplied arguments.
type Invoker struct {
	binary  string
	timeout time.Duration
}

// New creates an Invoker for the given binary. A non-positive timeout falls
// back to DefaultTimeout.
func New(binary string, timeout time.Duration) *Invoker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Invoker{binary: binary, timeout: timeout}
}

// Invoke runs the tool with the given argument vector, capturing both output
// streams. The child is killed when the timeout expires.
func (iv *Invoker) Invoke(ctx context.Context, args []string) Outcome {
	timer := logging.StartTimer(logging.CategoryInvoker, "invoke")
	defer timer.StopWithThreshold(iv.timeout / 2)

	logging.InvokerDebug("invoking %s with %d args", iv.binary, len(args))

	execCtx, cancel := context.WithTimeout(ctx, iv.timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, iv.binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if err == nil {
		logging.InvokerDebug("tool exited cleanly, stderr=%d bytes", stderr.Len())
		return Outcome{
			Success: true,
			Stdout:  stdout.String(),
			Stderr:  stderr.String(),
		}
	}

	if execCtx.Err() == context.DeadlineExceeded {
		reason := fmt.Sprintf("generation timed out after %v", iv.timeout)
		logging.Get(logging.CategoryInvoker).Warn("%s", reason)
		return Outcome{
			Stdout: stdout.String(),
			Stderr: stderr.String(),
			Reason: reason,
			Kind:   KindTimeout,
		}
	}

	if errors.Is(err, exec.ErrNotFound) {
		reason := fmt.Sprintf("%s not found. Please ensure it's installed.", iv.binary)
		logging.Get(logging.CategoryInvoker).Error("%s", reason)
		return Outcome{
			Reason: reason,
			Kind:   KindNotFound,
		}
	}

	logging.InvokerDebug("tool failed: %v", err)
	return Outcome{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
		Reason: err.Error(),
		Kind:   KindExit,
	}
}
