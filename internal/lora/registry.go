// Package lora tracks the LoRA adapter files available to the external tool.
// The registry mirrors the loras directory and refreshes itself when files
// appear or disappear.
package lora

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/twalderman/zimage-studio/internal/logging"
)

// Extension for adapter files. Anything else in the directory is ignored.
const Extension = ".safetensors"

// File is one available adapter.
type File struct {
	ID       string  `json:"id"`
	Filename string  `json:"filename"`
	Path     string  `json:"path"`
	SizeMB   float64 `json:"size_mb"`
}

// Registry caches the adapter files under one directory.
type Registry struct {
	mu      sync.RWMutex
	dir     string
	files   map[string]File
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewRegistry scans dir and returns a populated registry. The directory is
// created if missing.
func NewRegistry(dir string) (*Registry, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	r := &Registry{
		dir:    dir,
		files:  make(map[string]File),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	if err := r.Refresh(); err != nil {
		return nil, err
	}
	return r, nil
}

// Refresh rescans the directory.
func (r *Registry) Refresh() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return err
	}

	files := make(map[string]File)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		id := strings.TrimSuffix(e.Name(), Extension)
		files[id] = File{
			ID:       id,
			Filename: e.Name(),
			Path:     filepath.Join(r.dir, e.Name()),
			SizeMB:   float64(info.Size()) / (1024 * 1024),
		}
	}

	r.mu.Lock()
	r.files = files
	r.mu.Unlock()

	logging.Library("lora registry refreshed, %d files", len(files))
	return nil
}

// List returns the known adapters sorted by filename.
func (r *Registry) List() []File {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]File, 0, len(r.files))
	for _, f := range r.files {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out
}

// Get looks up an adapter by id (filename without extension).
func (r *Registry) Get(id string) (File, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.files[id]
	return f, ok
}

// Dir returns the watched directory.
func (r *Registry) Dir() string {
	return r.dir
}

// Start begins watching the directory and refreshing on changes.
// Non-blocking; Stop shuts the watcher down.
func (r *Registry) Start() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		r.mu.Unlock()
		return err
	}
	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		r.mu.Unlock()
		return err
	}
	r.watcher = watcher
	r.running = true
	r.mu.Unlock()

	go r.loop()
	return nil
}

func (r *Registry) loop() {
	defer close(r.doneCh)
	for {
		select {
		case <-r.stopCh:
			return
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, Extension) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				if err := r.Refresh(); err != nil {
					logging.Get(logging.CategoryLibrary).Warn("lora refresh failed: %v", err)
				}
			}
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryLibrary).Warn("lora watcher error: %v", err)
		}
	}
}

// Stop shuts down the watcher. Safe to call once after Start.
func (r *Registry) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	r.watcher.Close()
	<-r.doneCh
}
