package deps

import "errors"

// Configuration errors raised while registering dependencies or computing
// the execution order. All of them abort setup; none are retried.
var (
	ErrEmptyRegistration = errors.New("registration needs at least one of after, before or priority")
	ErrSelfDependency    = errors.New("test cannot depend on itself")
	ErrInvalidTarget     = errors.New("registration target is not a known test")
	ErrCyclicDependency  = errors.New("dependency graph contains a cycle")
)
