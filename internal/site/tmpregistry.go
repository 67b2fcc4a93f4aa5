package site

import (
	"os"
	"sync"
)

// tmpRegistry tracks temp files that Write has created but not yet renamed
// into place, so an interrupted run can remove them.
type tmpRegistry struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

var pending = &tmpRegistry{}

func (r *tmpRegistry) add(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.paths == nil {
		r.paths = make(map[string]struct{})
	}
	r.paths[path] = struct{}{}
}

func (r *tmpRegistry) remove(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.paths, path)
}

func (r *tmpRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.paths)
}

// CleanupTmpFiles removes every temp file left by an in-flight Write.
// The CLI calls it when interrupted.
func CleanupTmpFiles() {
	pending.mu.Lock()
	paths := make([]string, 0, len(pending.paths))
	for p := range pending.paths {
		paths = append(paths, p)
	}
	pending.paths = nil
	pending.mu.Unlock()

	for _, p := range paths {
		_ = os.Remove(p)
	}
}
