package heap

import "sync"

// Object is a single simulated heap object.
type Object struct {
	// Name is a diagnostic label with no semantic meaning.
	Name string
	// children are non-owning edges in insertion order.
	children []Ref
	// marked is the transient mark bit used by the mark-bit collector strategy.
	marked bool
}

type slot struct {
	gen    uint32
	obj    *Object // nil while the slot is free
	owners int
}

// Arena owns the storage for every object. All methods are safe for
// concurrent use; each call is atomic with respect to the others.
type Arena struct {
	mu    sync.RWMutex
	slots []slot
	free  []uint32
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// New allocates an object with an empty child list and returns the first
// owning handle to it.
func (a *Arena) New(name string) *Handle {
	a.mu.Lock()
	defer a.mu.Unlock()

	obj := &Object{Name: name}
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}

	s := &a.slots[idx]
	s.gen++
	s.obj = obj
	s.owners = 1

	return &Handle{arena: a, ref: Ref{index: idx, gen: s.gen}}
}

// lookup returns the object a ref points to. Callers must hold a.mu.
func (a *Arena) lookup(r Ref) *Object {
	if r.IsZero() || int(r.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[r.index]
	if s.gen != r.gen {
		return nil
	}
	return s.obj
}

// Resolve reports whether r still points to a live object.
func (a *Arena) Resolve(r Ref) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lookup(r) != nil
}

// Name returns the name of the object r points to.
func (a *Arena) Name(r Ref) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	obj := a.lookup(r)
	if obj == nil {
		return "", false
	}
	return obj.Name, true
}

// Children returns a copy of the child edges of the object r points to,
// including edges whose targets are already gone.
func (a *Arena) Children(r Ref) ([]Ref, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	obj := a.lookup(r)
	if obj == nil {
		return nil, false
	}
	out := make([]Ref, len(obj.children))
	copy(out, obj.children)
	return out, true
}

// Live returns the number of objects that still have an owner.
func (a *Arena) Live() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.slots) - len(a.free)
}

// TrySetMark sets the mark bit of the object r points to. It returns true
// only if the object is live and was not already marked.
func (a *Arena) TrySetMark(r Ref) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	obj := a.lookup(r)
	if obj == nil || obj.marked {
		return false
	}
	obj.marked = true
	return true
}

// IsMarked reports the mark bit of the object r points to. Absent objects are
// never marked.
func (a *Arena) IsMarked(r Ref) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	obj := a.lookup(r)
	return obj != nil && obj.marked
}

// ClearMark resets the mark bit of the object r points to, if it is live.
func (a *Arena) ClearMark(r Ref) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if obj := a.lookup(r); obj != nil {
		obj.marked = false
	}
}

func (a *Arena) addChild(parent, child Ref) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := a.lookup(parent)
	if p == nil || a.lookup(child) == nil {
		return false
	}
	p.children = append(p.children, child)
	return true
}

// removeChild drops every edge of parent that still resolves to target.
// Dead edges are kept as they are.
func (a *Arena) removeChild(parent, target Ref) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := a.lookup(parent)
	if p == nil || a.lookup(target) == nil {
		return 0
	}
	kept := p.children[:0]
	removed := 0
	for _, c := range p.children {
		if c == target {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	clear(p.children[len(kept):])
	p.children = kept
	return removed
}

func (a *Arena) retain(r Ref) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.lookup(r) == nil {
		return false
	}
	a.slots[r.index].owners++
	return true
}

// release drops one owner and frees the slot when none remain.
func (a *Arena) release(r Ref) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.lookup(r) == nil {
		return
	}
	s := &a.slots[r.index]
	s.owners--
	if s.owners > 0 {
		return
	}
	s.obj = nil
	s.owners = 0
	a.free = append(a.free, r.index)
}
