package testutil

import (
	"testing"

	"github.com/specialistvlad/gcsim/internal/collector"
	"github.com/specialistvlad/gcsim/internal/heap"
	"github.com/stretchr/testify/require"
)

// NewNode allocates an object in arena and registers it with c, the way a
// host program creates heap objects.
func NewNode(a *heap.Arena, c *collector.Collector, name string) *heap.Handle {
	h := a.New(name)
	c.Register(h)
	return h
}

// Disconnect drops every edge from parent to target, simulating the host
// removing a reference before the next collection.
func Disconnect(parent, target *heap.Handle) {
	parent.RemoveChild(target)
}

// AssertCount fails the test if the collector's registry size differs from
// expected. The label names the scenario in the failure message.
func AssertCount(t *testing.T, c *collector.Collector, expected int, label string) {
	t.Helper()
	actual := c.CountObjects()
	require.Equal(t, expected, actual,
		"[%s]: registered object count mismatch (expected: %d, actual: %d)", label, expected, actual)
}

// SampleGraph is the chain A -> B -> C.
type SampleGraph struct {
	A, B, C *heap.Handle
}

// BuildSampleGraph registers A, B and C and links A -> B -> C.
func BuildSampleGraph(a *heap.Arena, c *collector.Collector) SampleGraph {
	g := SampleGraph{
		A: NewNode(a, c, "A"),
		B: NewNode(a, c, "B"),
		C: NewNode(a, c, "C"),
	}
	g.A.AddChild(g.B)
	g.B.AddChild(g.C)
	return g
}

// DemoGraph is the four object graph A -> B, A -> C, B -> D.
type DemoGraph struct {
	A, B, C, D *heap.Handle
}

// BuildDemoGraph registers A, B, C and D and links A -> B, A -> C, B -> D.
func BuildDemoGraph(a *heap.Arena, c *collector.Collector) DemoGraph {
	g := DemoGraph{
		A: NewNode(a, c, "A"),
		B: NewNode(a, c, "B"),
		C: NewNode(a, c, "C"),
		D: NewNode(a, c, "D"),
	}
	g.A.AddChild(g.B)
	g.A.AddChild(g.C)
	g.B.AddChild(g.D)
	return g
}

// Strategies lists every mark strategy so tests can run against each one.
var Strategies = []collector.Strategy{collector.MarkSet, collector.MarkBits}
