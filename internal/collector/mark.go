package collector

import (
	"github.com/specialistvlad/gcsim/internal/heap"
)

// markState is the outcome of one mark phase.
type markState struct {
	strategy Strategy
	arena    *heap.Arena
	set      map[heap.Ref]struct{}
	// trail lists every object marked this cycle, in visiting order.
	trail []heap.Ref
}

func newMarkState(arena *heap.Arena, strategy Strategy) *markState {
	st := &markState{strategy: strategy, arena: arena}
	if strategy == MarkSet {
		st.set = make(map[heap.Ref]struct{})
	}
	return st
}

// visit marks ref and reports whether this was its first visit. Absent
// objects are never marked.
func (st *markState) visit(ref heap.Ref) bool {
	switch st.strategy {
	case MarkBits:
		if !st.arena.TrySetMark(ref) {
			return false
		}
	default:
		if _, seen := st.set[ref]; seen {
			return false
		}
		if !st.arena.Resolve(ref) {
			return false
		}
		st.set[ref] = struct{}{}
	}
	st.trail = append(st.trail, ref)
	return true
}

func (st *markState) marked(ref heap.Ref) bool {
	if st.strategy == MarkBits {
		return st.arena.IsMarked(ref)
	}
	_, ok := st.set[ref]
	return ok
}

// reset clears every mark bit set during this cycle.
func (st *markState) reset() {
	if st.strategy != MarkBits {
		return
	}
	for _, ref := range st.trail {
		st.arena.ClearMark(ref)
	}
}

// mark traverses the object graph from all roots at once using an explicit
// stack, so deep graphs never grow the goroutine stack.
func (c *Collector) mark(roots []*heap.Handle) *markState {
	st := newMarkState(c.arena, c.strategy)

	stack := make([]heap.Ref, 0, len(roots))
	for _, root := range roots {
		if root != nil {
			stack = append(stack, root.Ref())
		}
	}

	for len(stack) > 0 {
		ref := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !st.visit(ref) {
			continue
		}

		children, ok := c.arena.Children(ref)
		if !ok {
			continue
		}
		for _, child := range children {
			if c.arena.Resolve(child) {
				stack = append(stack, child)
			}
		}
	}

	return st
}
