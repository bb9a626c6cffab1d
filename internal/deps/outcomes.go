package deps

import "dtp/internal/domain"

// Outcomes records the final outcome of each test for the current run.
// It starts empty at run start; the host records each result as it becomes
// known. Recording the same name twice overwrites (last write wins).
type Outcomes struct {
	results map[string]domain.Outcome
}

// NewOutcomes creates an empty outcome tracker
func NewOutcomes() *Outcomes {
	return &Outcomes{results: make(map[string]domain.Outcome)}
}

// Record stores the final outcome for name.
func (o *Outcomes) Record(name string, outcome domain.Outcome) {
	o.results[name] = outcome
}

// Lookup returns the recorded outcome for name, if any.
func (o *Outcomes) Lookup(name string) (domain.Outcome, bool) {
	outcome, ok := o.results[name]
	return outcome, ok
}
