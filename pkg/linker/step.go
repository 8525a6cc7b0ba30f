package linker

import (
	"fmt"
)

// Step names, in execution order
const (
	StepPreflight = "preflight"
	StepCopy      = "copy"
	StepRemove    = "remove"
	StepSymlink   = "symlink"
	StepManifest  = "manifest"
)

// Step is one checked operation in linking an asset
type Step struct {
	Name string
	// Description is shown in logs and dry runs
	Description string
	// Reversible is false when a later failure cannot undo this step
	Reversible bool
	Run        func() error
}

// StepError reports which step of which asset failed. Steps before it
// completed and were not undone.
type StepError struct {
	Step  string
	Asset string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("linking %s failed at %s: %v", e.Asset, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
