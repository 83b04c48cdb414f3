package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_NewObject(t *testing.T) {
	a := NewArena()

	h := a.New("A")
	require.NotNil(t, h)
	assert.True(t, h.Alive())
	assert.Equal(t, "A", h.Name())
	assert.Equal(t, 1, a.Live())

	children, ok := a.Children(h.Ref())
	require.True(t, ok)
	assert.Empty(t, children)
}

func TestArena_SameNameDistinctIdentity(t *testing.T) {
	a := NewArena()

	first := a.New("dup")
	second := a.New("dup")

	assert.NotEqual(t, first.Ref(), second.Ref())
	assert.Equal(t, first.Name(), second.Name())
}

func TestRef_ZeroNeverResolves(t *testing.T) {
	a := NewArena()
	a.New("A")

	var zero Ref
	assert.True(t, zero.IsZero())
	assert.False(t, a.Resolve(zero))
	assert.Equal(t, "<nil>", zero.String())
}

func TestHandle_ReleaseMakesRefsAbsent(t *testing.T) {
	a := NewArena()

	parent := a.New("parent")
	child := a.New("child")
	parent.AddChild(child)
	ref := child.Ref()

	child.Release()

	assert.False(t, child.Alive())
	assert.False(t, a.Resolve(ref))
	assert.Equal(t, "", child.Name())
	assert.Equal(t, 1, a.Live())

	// The dead edge is still stored; it simply no longer resolves.
	children, ok := a.Children(parent.Ref())
	require.True(t, ok)
	require.Len(t, children, 1)
	assert.False(t, a.Resolve(children[0]))
}

func TestHandle_ReleaseTwiceIsNoop(t *testing.T) {
	a := NewArena()

	h := a.New("A")
	clone := h.Clone()
	require.NotNil(t, clone)

	h.Release()
	h.Release()

	assert.True(t, clone.Alive(), "second release of the same handle must not drop the clone's ownership")
	assert.True(t, a.Resolve(h.Ref()))

	clone.Release()
	assert.False(t, a.Resolve(h.Ref()))
}

func TestHandle_CloneOfReleasedHandle(t *testing.T) {
	a := NewArena()

	h := a.New("A")
	h.Release()

	assert.Nil(t, h.Clone())
}

func TestArena_SlotReuseDoesNotAlias(t *testing.T) {
	a := NewArena()

	old := a.New("old")
	stale := old.Ref()
	old.Release()

	fresh := a.New("fresh")

	assert.Equal(t, stale.index, fresh.Ref().index, "freed slot should be recycled")
	assert.NotEqual(t, stale, fresh.Ref())
	assert.False(t, a.Resolve(stale))
	_, ok := a.Name(stale)
	assert.False(t, ok)
}

func TestHandle_AddChildAllowsDuplicatesAndCycles(t *testing.T) {
	a := NewArena()

	x := a.New("X")
	y := a.New("Y")
	x.AddChild(y)
	x.AddChild(y)
	y.AddChild(x)
	x.AddChild(x)

	children, ok := a.Children(x.Ref())
	require.True(t, ok)
	assert.Equal(t, []Ref{y.Ref(), y.Ref(), x.Ref()}, children)

	children, ok = a.Children(y.Ref())
	require.True(t, ok)
	assert.Equal(t, []Ref{x.Ref()}, children)
}

func TestHandle_AddChildIgnoresForeignArena(t *testing.T) {
	a := NewArena()
	b := NewArena()

	x := a.New("X")
	y := b.New("Y")
	x.AddChild(y)

	children, _ := a.Children(x.Ref())
	assert.Empty(t, children)
}

func TestHandle_RemoveChild(t *testing.T) {
	testCases := []struct {
		name            string
		build           func(a *Arena) (parent, target *Handle)
		expectedRemoved int
		expectedLeft    int
	}{
		{
			name: "single edge",
			build: func(a *Arena) (*Handle, *Handle) {
				p, c := a.New("P"), a.New("C")
				p.AddChild(c)
				return p, c
			},
			expectedRemoved: 1,
			expectedLeft:    0,
		},
		{
			name: "duplicate edges are all removed",
			build: func(a *Arena) (*Handle, *Handle) {
				p, c, other := a.New("P"), a.New("C"), a.New("O")
				p.AddChild(c)
				p.AddChild(other)
				p.AddChild(c)
				return p, c
			},
			expectedRemoved: 2,
			expectedLeft:    1,
		},
		{
			name: "no matching edge",
			build: func(a *Arena) (*Handle, *Handle) {
				p, c, other := a.New("P"), a.New("C"), a.New("O")
				p.AddChild(other)
				return p, c
			},
			expectedRemoved: 0,
			expectedLeft:    1,
		},
		{
			name: "dead edges are left untouched",
			build: func(a *Arena) (*Handle, *Handle) {
				p, c, gone := a.New("P"), a.New("C"), a.New("G")
				p.AddChild(gone)
				p.AddChild(c)
				gone.Release()
				return p, c
			},
			expectedRemoved: 1,
			expectedLeft:    1,
		},
		{
			name: "same name but different identity is kept",
			build: func(a *Arena) (*Handle, *Handle) {
				p, c, twin := a.New("P"), a.New("C"), a.New("C")
				p.AddChild(twin)
				return p, c
			},
			expectedRemoved: 0,
			expectedLeft:    1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewArena()
			parent, target := tc.build(a)

			removed := parent.RemoveChild(target)

			assert.Equal(t, tc.expectedRemoved, removed)
			children, ok := a.Children(parent.Ref())
			require.True(t, ok)
			assert.Len(t, children, tc.expectedLeft)
		})
	}
}

func TestArena_MarkBits(t *testing.T) {
	a := NewArena()
	h := a.New("A")

	assert.False(t, a.IsMarked(h.Ref()))
	assert.True(t, a.TrySetMark(h.Ref()))
	assert.False(t, a.TrySetMark(h.Ref()), "second mark should report already marked")
	assert.True(t, a.IsMarked(h.Ref()))

	a.ClearMark(h.Ref())
	assert.False(t, a.IsMarked(h.Ref()))

	h.Release()
	assert.False(t, a.TrySetMark(h.Ref()), "absent objects cannot be marked")
}
