package collector

import (
	"fmt"
	"strings"
)

// Strategy selects how the mark phase records visited objects.
type Strategy int

const (
	// MarkSet keeps visited identities in a set rebuilt on every collection.
	MarkSet Strategy = iota
	// MarkBits uses the per-object mark bit, reset at the end of sweep.
	MarkBits
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	switch s {
	case MarkSet:
		return "markset"
	case MarkBits:
		return "markbits"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a configuration name into a Strategy. The empty
// string selects MarkSet.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "markset":
		return MarkSet, nil
	case "markbits":
		return MarkBits, nil
	default:
		return 0, fmt.Errorf("unknown mark strategy %q: must be 'markset' or 'markbits'", name)
	}
}
