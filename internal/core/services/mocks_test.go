package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/custodia-labs/invoicename/internal/core/domain"
)

// mockSource lists a fixed set of paths.
type mockSource struct {
	paths []string
	err   error
}

func (m *mockSource) List(_ context.Context, _ string) ([]string, error) {
	return m.paths, m.err
}

// mockExtractor returns canned text per path.
type mockExtractor struct {
	mu    sync.Mutex
	texts map[string]string
	errs  map[string]error
	calls int
}

func (m *mockExtractor) Name() string { return "mock" }

func (m *mockExtractor) Extract(_ context.Context, path string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if err, ok := m.errs[path]; ok {
		return "", err
	}
	return m.texts[path], nil
}

// mockFS is an in-memory FileSystem keyed by path.
type mockFS struct {
	mu      sync.Mutex
	files   map[string]string
	renames [][2]string
	copies  [][2]string
	failOn  map[string]error
}

func newMockFS(paths ...string) *mockFS {
	fs := &mockFS{files: make(map[string]string), failOn: make(map[string]error)}
	for _, p := range paths {
		fs.files[p] = filepath.Base(p)
	}
	return fs
}

func (m *mockFS) Occupied(src, dst string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[dst]
	return ok && src != dst, nil
}

func (m *mockFS) Rename(src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failOn[src]; ok {
		return err
	}
	if _, ok := m.files[dst]; ok {
		return fmt.Errorf("%w: %s", domain.ErrDestinationOccupied, dst)
	}
	m.files[dst] = m.files[src]
	delete(m.files, src)
	m.renames = append(m.renames, [2]string{src, dst})
	return nil
}

func (m *mockFS) Copy(src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[dst]; ok {
		return fmt.Errorf("%w: %s", domain.ErrDestinationOccupied, dst)
	}
	m.files[dst] = m.files[src]
	m.copies = append(m.copies, [2]string{src, dst})
	return nil
}

func (m *mockFS) paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
