package runner

import "time"

// WithEnviron replaces the process environment seen by the runner.
func (r *Runner) WithEnviron(environ []string) *Runner {
	r.environ = func() []string { return environ }
	return r
}

// WithClock replaces the clock used for run records.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}
