package scene

import (
	"slices"

	"github.com/dshills/cellpanel/internal/widget"
)

// Registry indexes the named widgets of a scene.
type Registry struct {
	panels     map[string]*widget.Panel
	labels     map[string]*widget.Label
	progresses map[string]*widget.Progress
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		panels:     make(map[string]*widget.Panel),
		labels:     make(map[string]*widget.Label),
		progresses: make(map[string]*widget.Progress),
	}
}

func (r *Registry) has(name string) bool {
	_, p := r.panels[name]
	_, l := r.labels[name]
	_, g := r.progresses[name]
	return p || l || g
}

// Panel returns the panel registered as name.
func (r *Registry) Panel(name string) (*widget.Panel, bool) {
	p, ok := r.panels[name]
	return p, ok
}

// Label returns the label registered as name.
func (r *Registry) Label(name string) (*widget.Label, bool) {
	l, ok := r.labels[name]
	return l, ok
}

// Progress returns the progress bar registered as name.
func (r *Registry) Progress(name string) (*widget.Progress, bool) {
	p, ok := r.progresses[name]
	return p, ok
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.panels)+len(r.labels)+len(r.progresses))
	for n := range r.panels {
		names = append(names, n)
	}
	for n := range r.labels {
		names = append(names, n)
	}
	for n := range r.progresses {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of named widgets.
func (r *Registry) Len() int {
	return len(r.panels) + len(r.labels) + len(r.progresses)
}
