package deps

import (
	"fmt"
	"strings"
)

// Action is the gate's verdict for a test about to execute
type Action int

const (
	// ActionRun executes the test normally
	ActionRun Action = iota
	// ActionSkip records the test as skipped without executing it
	ActionSkip
	// ActionFail records the test as failed without executing it
	ActionFail
)

func (a Action) String() string {
	switch a {
	case ActionRun:
		return "run"
	case ActionSkip:
		return "skip"
	case ActionFail:
		return "fail"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Decision is the gate's verdict plus a human-readable reason for any
// verdict other than run.
type Decision struct {
	Action Action
	Reason string
}

// Gate decides, immediately before a test would execute, whether it may
// run based on the recorded outcomes of its prerequisites.
type Gate struct {
	registry *Registry
	outcomes *Outcomes
}

// NewGate creates a Gate over the given registry and outcome tracker
func NewGate(registry *Registry, outcomes *Outcomes) *Gate {
	return &Gate{registry: registry, outcomes: outcomes}
}

// Check returns the gate decision for name. First match wins:
//
//  1. any prerequisite (hard or soft) with a recorded non-passing outcome
//     skips the test;
//  2. any hard prerequisite with no recorded outcome fails the test; a
//     required test that never ran is a defect in the run configuration;
//  3. otherwise the test runs.
//
// Soft prerequisites that never ran do not trigger rule 2; only their
// observed failure gates the dependent. Prerequisites are checked in
// sorted name order so the reported reason is deterministic.
func (g *Gate) Check(name string) Decision {
	for _, dep := range g.registry.Dependencies(name) {
		if outcome, ok := g.outcomes.Lookup(dep); ok && !outcome.Passed() {
			return Decision{
				Action: ActionSkip,
				Reason: fmt.Sprintf("Required test '%s' %s", dep, strings.ToUpper(string(outcome))),
			}
		}
	}
	for _, dep := range g.registry.HardDependencies(name) {
		if _, ok := g.outcomes.Lookup(dep); !ok {
			return Decision{
				Action: ActionFail,
				Reason: fmt.Sprintf("Required test '%s' did not run (does it exist?)", dep),
			}
		}
	}
	return Decision{Action: ActionRun}
}
