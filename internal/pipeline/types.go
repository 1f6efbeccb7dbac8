// Package pipeline sequences the daily update steps. Each step is isolated:
// a failure is caught, logged with context and never prevents subsequent
// independent steps from running. Success is "most steps completed",
// determined by inspecting the run report.
package pipeline

// StepResult records the outcome of one update step.
type StepResult struct {
	Name string
	Err  error
}

// Ok reports whether the step completed.
func (r StepResult) Ok() bool {
	return r.Err == nil
}

// Report collects the per-step outcomes of one run.
type Report []StepResult

// Succeeded counts completed steps.
func (r Report) Succeeded() int {
	n := 0
	for _, s := range r {
		if s.Ok() {
			n++
		}
	}
	return n
}

// Failed counts failed steps.
func (r Report) Failed() int {
	return len(r) - r.Succeeded()
}

// AllFailed reports whether not a single step completed.
func (r Report) AllFailed() bool {
	return len(r) > 0 && r.Succeeded() == 0
}
