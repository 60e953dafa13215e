// Package diag collects the source types a generator run could not map so they
// can be reported once the run is over.
package diag

import (
	"sort"
	"sync"
)

type Tracker struct {
	mu    sync.Mutex
	names map[string]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{names: make(map[string]struct{})}
}

// Record adds name if it has not been seen yet.
func (t *Tracker) Record(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.names == nil {
		t.names = make(map[string]struct{})
	}
	t.names[name] = struct{}{}
}

// Report returns the recorded names sorted.
func (t *Tracker) Report() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.names))
	for name := range t.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.names)
}
