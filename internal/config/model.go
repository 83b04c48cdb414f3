package config

import "fmt"

// Model is the unified, format-agnostic representation of a scenario: the
// initial heap and the ordered host actions to replay against it.
type Model struct {
	Objects []*Object
	Steps   []*Step
}

// Object is the format-agnostic representation of an `object` block.
type Object struct {
	Name string
	// Children are the names of the objects this one points to, in order.
	// Duplicates are allowed and produce duplicate edges.
	Children []string
	// Register is false for objects the host allocates but never hands to
	// the collector.
	Register bool
}

// StepKind names a host action.
type StepKind string

const (
	// StepCollect runs a collection with the step's Roots.
	StepCollect StepKind = "collect"
	// StepCount reads the registry size.
	StepCount StepKind = "count"
	// StepLink adds an edge from Parent to Target.
	StepLink StepKind = "link"
	// StepDisconnect removes every edge from Parent to Target.
	StepDisconnect StepKind = "disconnect"
	// StepRelease drops the host's ownership of Objects.
	StepRelease StepKind = "release"
	// StepAllocate creates and registers Objects.
	StepAllocate StepKind = "allocate"
)

// ParseStepKind validates a step kind label.
func ParseStepKind(s string) (StepKind, error) {
	switch k := StepKind(s); k {
	case StepCollect, StepCount, StepLink, StepDisconnect, StepRelease, StepAllocate:
		return k, nil
	default:
		return "", fmt.Errorf("unknown step kind %q", s)
	}
}

// Step is the format-agnostic representation of a `step` block. Which fields
// are meaningful depends on Kind.
type Step struct {
	Kind StepKind
	Name string

	Roots   []string // collect
	Parent  string   // link, disconnect
	Target  string   // link, disconnect
	Objects []string // release, allocate

	// Expect, when set, is the registry size the step must leave behind.
	Expect *int
}
