// Package demo implements six end-to-end scenarios as runnable functions
// over the fiber package, each returning a small
// result value that cmd/uthreadctl prints and that the package's tests
// assert against directly.
package demo

// Result is the common shape every scenario returns: a one-line summary
// plus whatever scenario-specific counters back it up, so a caller can
// print a human summary or inspect the counters programmatically.
type Result struct {
	Scenario string
	Summary  string
	Details  map[string]int
}
