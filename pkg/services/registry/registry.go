package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/reportato/pkg/handlers/csvview"
)

// Registry keeps the reports served by name.
type Registry interface {
	// Register adds a new report view
	Register(name string, view *csvview.View) error
	// Get returns the view registered under name
	Get(name string) (*csvview.View, bool)
	// List returns the registered names, sorted
	List() []string
}

type registry struct {
	mu    sync.RWMutex
	views map[string]*csvview.View
}

func New() Registry {
	return &registry{
		views: make(map[string]*csvview.View),
	}
}

func (r *registry) Register(name string, view *csvview.View) error {
	if name == "" {
		return fmt.Errorf("report name cannot be empty")
	}
	if view == nil {
		return fmt.Errorf("view cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.views[name]; exists {
		return fmt.Errorf("report %q is already registered", name)
	}

	r.views[name] = view
	return nil
}

func (r *registry) Get(name string) (*csvview.View, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	view, ok := r.views[name]
	return view, ok
}

func (r *registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.views))
	for name := range r.views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
