package deps

import (
	"fmt"
	"sort"
	"strings"
)

// DependencyOrder flattens the combined dependency graph into a single
// deterministic sequence containing every test that appears in any edge.
// The graph is sorted into layers by repeatedly extracting nodes whose
// prerequisites are all in earlier layers; within a layer ties are broken
// by (priority, name) ascending. A layer that makes no progress means the
// remaining nodes form a cycle, which is a fatal configuration error.
func (r *Registry) DependencyOrder() ([]string, error) {
	graph := r.Graph()

	nodes := make(map[string]struct{}, len(graph))
	for dependent, prereqs := range graph {
		nodes[dependent] = struct{}{}
		for dep := range prereqs {
			nodes[dep] = struct{}{}
		}
	}

	order := make([]string, 0, len(nodes))
	placed := make(map[string]struct{}, len(nodes))
	for len(placed) < len(nodes) {
		var layer []string
		for name := range nodes {
			if _, done := placed[name]; done {
				continue
			}
			ready := true
			for dep := range graph[name] {
				if _, done := placed[dep]; !done {
					ready = false
					break
				}
			}
			if ready {
				layer = append(layer, name)
			}
		}

		if len(layer) == 0 {
			var stuck []string
			for name := range nodes {
				if _, done := placed[name]; !done {
					stuck = append(stuck, name)
				}
			}
			sort.Strings(stuck)
			return nil, fmt.Errorf("%w: involving %s", ErrCyclicDependency, strings.Join(stuck, ", "))
		}

		r.sortByPriority(layer)
		for _, name := range layer {
			placed[name] = struct{}{}
		}
		order = append(order, layer...)
	}

	return order, nil
}

// OrderTests merges the dependency order with the set of tests selected for
// this run. Dependency-linked tests form one contiguous block, flanked by
// independent tests split at DefaultPriority:
//
//  1. independent tests with priority <= DefaultPriority, by (priority, name)
//  2. selected tests from the dependency order, keeping its relative order
//  3. independent tests with priority > DefaultPriority, by (priority, name)
//
// The output is always a permutation of selected; prerequisites missing from
// the selection are not added here (see ExpandHard).
func (r *Registry) OrderTests(selected []string) ([]string, error) {
	order, err := r.DependencyOrder()
	if err != nil {
		return nil, err
	}

	inChain := make(map[string]struct{}, len(order))
	for _, name := range order {
		inChain[name] = struct{}{}
	}
	selectedSet := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		selectedSet[name] = struct{}{}
	}

	byPriority := append([]string(nil), selected...)
	r.sortByPriority(byPriority)

	var low, high []string
	for _, name := range byPriority {
		if _, chained := inChain[name]; chained {
			continue
		}
		if r.Priority(name) <= DefaultPriority {
			low = append(low, name)
		} else {
			high = append(high, name)
		}
	}

	result := make([]string, 0, len(selected))
	result = append(result, low...)
	for _, name := range order {
		if _, ok := selectedSet[name]; ok {
			result = append(result, name)
		}
	}
	result = append(result, high...)
	return result, nil
}

// ExpandHard returns selected plus every hard prerequisite transitively
// required by it. Soft prerequisites are never pulled in. Additions are
// appended after the original selection; OrderTests positions them.
func (r *Registry) ExpandHard(selected []string) []string {
	result := append([]string(nil), selected...)
	seen := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		seen[name] = struct{}{}
	}

	queue := append([]string(nil), selected...)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		for _, dep := range r.HardDependencies(name) {
			if _, ok := seen[dep]; ok {
				continue
			}
			seen[dep] = struct{}{}
			result = append(result, dep)
			queue = append(queue, dep)
		}
	}
	return result
}

func (r *Registry) sortByPriority(names []string) {
	sort.Slice(names, func(i, j int) bool {
		pi, pj := r.Priority(names[i]), r.Priority(names[j])
		if pi != pj {
			return pi < pj
		}
		return names[i] < names[j]
	})
}
