// Package heap models the simulated heap: an arena of object slots, owning
// handles held by the host program, and non-owning references used for
// parent to child edges and for the collector's registry.
//
// # Ownership
//
// An object lives for exactly as long as at least one owning Handle to it
// has not been released. Edges between objects and collector registry
// entries are Refs, which only observe an object:
//
//	host ──Handle──▶ ┌────────┐ ──Ref──▶ ┌────────┐
//	                 │ object │          │ object │
//	collector ──Ref─▶└────────┘          └────────┘
//
// Once the last Handle is released the slot is freed and every Ref to it
// resolves to absent. Freed slots are recycled with a bumped generation, so a
// stale Ref never observes the object that later reuses its slot.
//
// # Identity
//
// A Ref is the identity of an object. Two objects created with the same name
// have distinct Refs; names are diagnostic labels only.
package heap
