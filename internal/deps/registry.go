// Package deps implements dependency-aware test ordering: a registry of
// declared dependencies and priorities, a deterministic order calculator,
// and a runtime gate that skips or fails tests whose prerequisites did not
// pass. The execution host (CLI, runner) stays outside this package.
package deps

import (
	"fmt"
	"sort"
)

// DefaultPriority is assigned to every test without an explicit priority.
// It is also the threshold separating the low and high independent tiers
// in the final execution order.
const DefaultPriority = 50

// Registration declares the dependencies and priority of a single test.
// After lists tests that must have run (and passed) first; Before lists
// tests this one must be scheduled ahead of, without forcing their
// inclusion in a run. A nil Priority keeps the stored value.
type Registration struct {
	After    []string
	Before   []string
	Priority *int
}

// Registry stores declared test dependencies for one process. It is
// populated during setup and treated as read-only once a run starts.
type Registry struct {
	hard       map[string]map[string]struct{} // dependent -> prerequisites
	soft       map[string]map[string]struct{} // dependent -> prerequisites
	priorities map[string]int
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		hard:       make(map[string]map[string]struct{}),
		soft:       make(map[string]map[string]struct{}),
		priorities: make(map[string]int),
	}
}

// Register records the dependencies and priority declared for name.
// A registration that declares nothing is rejected: it signals an author
// mistake, not a harmless no-op.
func (r *Registry) Register(name string, reg Registration) error {
	if name == "" {
		return ErrInvalidTarget
	}
	if len(reg.After) == 0 && len(reg.Before) == 0 && reg.Priority == nil {
		return fmt.Errorf("register %q: %w", name, ErrEmptyRegistration)
	}

	for _, dep := range reg.After {
		if err := validateEdge(name, dep); err != nil {
			return err
		}
	}
	for _, dep := range reg.Before {
		if err := validateEdge(name, dep); err != nil {
			return err
		}
	}

	for _, dep := range reg.After {
		addEdge(r.hard, name, dep)
	}
	// "B before A" is stored as a soft prerequisite of A, so ordering sees
	// one combined dependent -> prerequisites graph.
	for _, dep := range reg.Before {
		addEdge(r.soft, dep, name)
	}

	if reg.Priority != nil {
		r.priorities[name] = *reg.Priority
	}
	return nil
}

func validateEdge(name, dep string) error {
	if dep == "" {
		return fmt.Errorf("register %q: empty dependency name: %w", name, ErrInvalidTarget)
	}
	if dep == name {
		return fmt.Errorf("test %q: %w", name, ErrSelfDependency)
	}
	return nil
}

func addEdge(edges map[string]map[string]struct{}, dependent, prerequisite string) {
	if edges[dependent] == nil {
		edges[dependent] = make(map[string]struct{})
	}
	edges[dependent][prerequisite] = struct{}{}
}

// Priority returns the declared priority for name, or DefaultPriority.
func (r *Registry) Priority(name string) int {
	if p, ok := r.priorities[name]; ok {
		return p
	}
	return DefaultPriority
}

// Dependencies returns every prerequisite of name, hard and soft, sorted.
func (r *Registry) Dependencies(name string) []string {
	seen := make(map[string]struct{}, len(r.hard[name])+len(r.soft[name]))
	for dep := range r.hard[name] {
		seen[dep] = struct{}{}
	}
	for dep := range r.soft[name] {
		seen[dep] = struct{}{}
	}
	return sortedKeys(seen)
}

// HardDependencies returns the hard prerequisites of name, sorted. Only
// these carry the "must have run" obligation at gate time.
func (r *Registry) HardDependencies(name string) []string {
	return sortedKeys(r.hard[name])
}

// Graph returns a fresh copy of the combined dependency graph, keyed by
// dependent name. Derived per ordering request so callers can consume it.
func (r *Registry) Graph() map[string]map[string]struct{} {
	graph := make(map[string]map[string]struct{}, len(r.hard)+len(r.soft))
	for dependent, prereqs := range r.hard {
		for dep := range prereqs {
			addEdge(graph, dependent, dep)
		}
	}
	for dependent, prereqs := range r.soft {
		for dep := range prereqs {
			addEdge(graph, dependent, dep)
		}
	}
	return graph
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
