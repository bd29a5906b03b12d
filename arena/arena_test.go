package arena

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocAndAccess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodemap")
	defer teardown()
	//
	a := New[string]()
	r1 := a.Alloc("one")
	r2 := a.Alloc("two")
	require.True(t, a.Live(r1))
	require.True(t, a.Live(r2))
	v, err := a.At(r2)
	require.NoError(t, err)
	assert.Equal(t, "two", *v)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 2, a.Cap())
}

func TestZeroRefIsNeverLive(t *testing.T) {
	a := New[int]()
	a.Alloc(1)
	var r Ref
	if !r.IsZero() {
		t.Fatalf("expected zero ref to report IsZero")
	}
	if a.Live(r) {
		t.Fatalf("zero ref must not address a live slot")
	}
}

func TestStaleRefDetectedAfterReuse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodemap")
	defer teardown()
	//
	a := New[int]()
	old := a.Alloc(10)
	require.NoError(t, a.Free(old))
	reused := a.Alloc(20)
	if reused.slot != old.slot {
		t.Fatalf("expected slot %d to be re-used, got %d", old.slot, reused.slot)
	}
	if _, err := a.At(old); !errors.Is(err, ErrStaleRef) {
		t.Fatalf("expected stale reference error, got %v", err)
	}
	v, err := a.At(reused)
	require.NoError(t, err)
	assert.Equal(t, 20, *v)
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, a.Cap())
}

func TestSlotRetiredBeforeGenerationWraps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodemap")
	defer teardown()
	//
	a := New[int]()
	r := a.Alloc(1)
	a.slots[r.slot].gen = retired - 1
	r.gen = retired - 1
	require.True(t, a.Live(r))
	require.NoError(t, a.Free(r))
	next := a.Alloc(2)
	if next.slot == r.slot {
		t.Fatalf("expected slot %d to be retired, got it re-used", r.slot)
	}
	assert.False(t, a.Live(r))
	assert.False(t, next.IsZero())
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, a.Cap())
	//
	a.Reset()
	for i := 0; i < 2; i++ {
		if a.Alloc(i).slot == r.slot {
			t.Fatalf("expected retired slot to stay retired after Reset")
		}
	}
	assert.Equal(t, 3, a.Cap())
}

func TestDoubleFree(t *testing.T) {
	a := New[int]()
	r := a.Alloc(1)
	require.NoError(t, a.Free(r))
	err := a.Free(r)
	assert.ErrorIs(t, err, ErrStaleRef)
	assert.Equal(t, 0, a.Len())
}

func TestForeignRef(t *testing.T) {
	a, b := New[int](), New[int]()
	b.Alloc(1)
	r := b.Alloc(2)
	assert.False(t, a.Live(r))
	_, err := a.At(r)
	assert.ErrorIs(t, err, ErrStaleRef)
}

func TestEachSkipsFreeSlots(t *testing.T) {
	a := New[int]()
	refs := []Ref{a.Alloc(1), a.Alloc(2), a.Alloc(3)}
	require.NoError(t, a.Free(refs[1]))
	var seen []int
	a.Each(func(_ Ref, v *int) bool {
		seen = append(seen, *v)
		return true
	})
	assert.Equal(t, []int{1, 3}, seen)
}

func TestReset(t *testing.T) {
	a := New[int]()
	r1, r2 := a.Alloc(1), a.Alloc(2)
	a.Reset()
	assert.Equal(t, 0, a.Len())
	assert.False(t, a.Live(r1))
	assert.False(t, a.Live(r2))
	r3 := a.Alloc(3)
	assert.True(t, a.Live(r3))
	assert.Equal(t, 2, a.Cap())
}

func TestLink(t *testing.T) {
	a := New[int]()
	r := a.Alloc(5)
	none := None()
	if _, ok := none.Get(); ok {
		t.Errorf("None link reports a reference")
	}
	assert.True(t, none.IsNone())
	assert.Equal(t, "none", none.String())
	some := Some(r)
	got, ok := some.Get()
	require.True(t, ok)
	assert.Equal(t, r, got)
	assert.True(t, some.Is(r))
	assert.False(t, none.Is(r))
	var zero Link
	assert.Equal(t, none, zero)
}
