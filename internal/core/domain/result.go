package domain

import "fmt"

// ResourceError records a per-resource failure inside an action batch. The
// batch keeps going; failures are accumulated instead of raised.
type ResourceError struct {
	ResourceID string
	Err        error
}

func (e ResourceError) Error() string {
	return fmt.Sprintf("resource %s: %v", e.ResourceID, e.Err)
}

func (e ResourceError) Unwrap() error {
	return e.Err
}

// ActionResult summarizes one action invocation over a resource batch.
type ActionResult struct {
	Action    string
	Processed int
	Failures  []ResourceError
}

// RunResult is the outcome of one policy run. A run with per-resource action
// failures is still a completed run; callers distinguish "ran" from "ran
// perfectly" by inspecting Failures.
type RunResult struct {
	Policy     string
	Kind       ResourceKind
	Enumerated int
	Matched    int
	MatchedIDs []string
	Actions    []ActionResult
}

func (r *RunResult) FailureCount() int {
	n := 0
	for _, a := range r.Actions {
		n += len(a.Failures)
	}
	return n
}
