package invoker

import (
	"context"
	"runtime"
	"strings"
	"testing"
	"time"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test relies on sh")
	}
}

func TestInvokeSuccess(t *testing.T) {
	skipOnWindows(t)

	iv := New("sh", 10*time.Second)
	out := iv.Invoke(context.Background(), []string{"-c", "echo primary; echo 'Using seed: 42' 1>&2"})

	if !out.Success {
		t.Fatalf("expected success, got reason %q", out.Reason)
	}
	if !strings.Contains(out.Stdout, "primary") {
		t.Errorf("stdout not captured: %q", out.Stdout)
	}
	if !strings.Contains(out.Stderr, "Using seed: 42") {
		t.Errorf("stderr not captured: %q", out.Stderr)
	}
	if out.Kind != KindNone {
		t.Errorf("expected KindNone, got %v", out.Kind)
	}
}

func TestInvokeNonZeroExit(t *testing.T) {
	skipOnWindows(t)

	iv := New("sh", 10*time.Second)
	out := iv.Invoke(context.Background(), []string{"-c", "echo boom 1>&2; exit 3"})

	if out.Success {
		t.Fatal("expected failure")
	}
	if out.Kind != KindExit {
		t.Errorf("expected KindExit, got %v", out.Kind)
	}
	if !strings.Contains(out.Stderr, "boom") {
		t.Errorf("stderr should carry diagnostics: %q", out.Stderr)
	}
	if out.Reason == "" {
		t.Error("failure reason should be set")
	}
}

func TestInvokeBinaryNotFound(t *testing.T) {
	iv := New("definitely-not-a-real-binary-zimage", time.Second)
	out := iv.Invoke(context.Background(), nil)

	if out.Success {
		t.Fatal("expected failure")
	}
	if out.Kind != KindNotFound {
		t.Errorf("expected KindNotFound, got %v", out.Kind)
	}
	if !strings.Contains(out.Reason, "not found") {
		t.Errorf("reason should mention not found: %q", out.Reason)
	}
}

func TestInvokeTimeout(t *testing.T) {
	skipOnWindows(t)

	iv := New("sh", 100*time.Millisecond)
	start := time.Now()
	out := iv.Invoke(context.Background(), []string{"-c", "sleep 5"})
	elapsed := time.Since(start)

	if out.Success {
		t.Fatal("expected timeout failure")
	}
	if out.Kind != KindTimeout {
		t.Errorf("expected KindTimeout, got %v", out.Kind)
	}
	if !strings.Contains(out.Reason, "timed out") {
		t.Errorf("reason should mention timeout: %q", out.Reason)
	}
	if elapsed > 3*time.Second {
		t.Errorf("child not killed promptly, took %v", elapsed)
	}
}

func TestNewDefaultsTimeout(t *testing.T) {
	iv := New("x", 0)
	if iv.timeout != DefaultTimeout {
		t.Errorf("expected default timeout, got %v", iv.timeout)
	}
}
