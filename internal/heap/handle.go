package heap

import "sync/atomic"

// Handle is an owning reference to an object. Copying the pointer does not
// add an owner; use Clone for that.
type Handle struct {
	arena    *Arena
	ref      Ref
	released atomic.Bool
}

// Ref returns the non-owning reference (the identity) of the object. It stays
// valid as an identity after release, but no longer resolves once the object
// has no owners left.
func (h *Handle) Ref() Ref {
	if h == nil {
		return Ref{}
	}
	return h.ref
}

// Name returns the object's name, or "" if the object is gone.
func (h *Handle) Name() string {
	if h == nil {
		return ""
	}
	name, _ := h.arena.Name(h.ref)
	return name
}

// Alive reports whether this handle still owns its object.
func (h *Handle) Alive() bool {
	return h != nil && !h.released.Load() && h.arena.Resolve(h.ref)
}

// Clone returns an additional owning handle to the same object. Cloning a
// released handle returns nil.
func (h *Handle) Clone() *Handle {
	if !h.Alive() || !h.arena.retain(h.ref) {
		return nil
	}
	return &Handle{arena: h.arena, ref: h.ref}
}

// Release gives up this handle's ownership. Releasing twice is a no-op.
func (h *Handle) Release() {
	if h == nil || !h.released.CompareAndSwap(false, true) {
		return
	}
	h.arena.release(h.ref)
}

// AddChild appends a non-owning edge from h to child. Duplicate edges and
// cycles are allowed. It does nothing if either object is gone. Only the
// objects matter here, not whether these particular handles were released.
func (h *Handle) AddChild(child *Handle) {
	if h == nil || child == nil || h.arena != child.arena {
		return
	}
	h.arena.addChild(h.ref, child.ref)
}

// RemoveChild removes every edge from h that currently resolves to target and
// returns how many were removed. Edges to objects that are already gone are
// left in place.
func (h *Handle) RemoveChild(target *Handle) int {
	if h == nil || target == nil || h.arena != target.arena {
		return 0
	}
	return h.arena.removeChild(h.ref, target.ref)
}
