package lora

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func writeLora(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("weights"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewRegistryScans(t *testing.T) {
	dir := t.TempDir()
	writeLora(t, dir, "anime.safetensors")
	writeLora(t, dir, "sketch.safetensors")
	writeLora(t, dir, "readme.txt") // Ignored

	r, err := NewRegistry(dir)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	files := r.List()
	if len(files) != 2 {
		t.Fatalf("expected 2 loras, got %d", len(files))
	}
	if files[0].Filename != "anime.safetensors" || files[1].Filename != "sketch.safetensors" {
		t.Errorf("unexpected ordering: %+v", files)
	}
	if files[0].ID != "anime" {
		t.Errorf("unexpected id: %q", files[0].ID)
	}

	if _, ok := r.Get("sketch"); !ok {
		t.Error("Get missed known lora")
	}
	if _, ok := r.Get("nope"); ok {
		t.Error("Get found unknown lora")
	}
}

func TestRegistryCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "loras")
	r, err := NewRegistry(dir)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	if len(r.List()) != 0 {
		t.Error("expected empty registry")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}

func TestRefreshPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRegistry(dir)
	if err != nil {
		t.Fatal(err)
	}

	writeLora(t, dir, "late.safetensors")
	if err := r.Refresh(); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Get("late"); !ok {
		t.Error("refresh missed new file")
	}
}

func TestWatcherRefreshesOnCreate(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	r, err := NewRegistry(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer r.Stop()

	writeLora(t, dir, "watched.safetensors")

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := r.Get("watched"); ok {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("watcher never picked up new lora file")
}
