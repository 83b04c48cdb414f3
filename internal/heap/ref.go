package heap

import "fmt"

// Ref is a non-owning reference to an object in an Arena. The zero Ref never
// resolves.
type Ref struct {
	index uint32
	gen   uint32
}

// IsZero reports whether r is the zero Ref.
func (r Ref) IsZero() bool {
	return r.gen == 0
}

// String returns a compact "index@generation" form for logs.
func (r Ref) String() string {
	if r.IsZero() {
		return "<nil>"
	}
	return fmt.Sprintf("%d@%d", r.index, r.gen)
}
