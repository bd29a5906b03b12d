package arena

import (
	"errors"
	"fmt"
	"math"
)

// ErrStaleRef signals access through a Ref whose slot has been freed (and
// possibly re-used) since the Ref was handed out, or through a Ref which has
// never been allocated by this arena.
var ErrStaleRef = errors.New("arena: stale reference")

// Ref addresses a slot of an Arena. The zero Ref is never valid, as live
// generations start at 1.
type Ref struct {
	slot uint32
	gen  uint32
}

// IsZero reports whether r is the zero Ref.
func (r Ref) IsZero() bool {
	return r.gen == 0
}

func (r Ref) String() string {
	return fmt.Sprintf("#%d.%d", r.slot, r.gen)
}

// retired is the generation of a freed slot which is never handed out again,
// as its next free would wrap the generation counter to the zero Ref.
const retired = math.MaxUint32 - 1

type slot[T any] struct {
	value T
	gen   uint32 // odd generations are live, even ones are free
}

// Arena holds values of type T in slots. The zero value is an empty arena
// ready to use.
//
// An Arena is not safe for concurrent use.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32 // stack of free slot indices
	live  int
}

// New creates an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Alloc stores v in a free slot and returns a reference to it.
func (a *Arena[T]) Alloc(v T) Ref {
	var i uint32
	if n := len(a.free); n > 0 {
		i = a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[i].gen++ // free -> live
		a.slots[i].value = v
	} else {
		i = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{value: v, gen: 1})
	}
	a.live++
	return Ref{slot: i, gen: a.slots[i].gen}
}

// Free releases the slot addressed by r. Any later use of r, or of copies of
// r, is reported as ErrStaleRef.
func (a *Arena[T]) Free(r Ref) error {
	if !a.Live(r) {
		return fmt.Errorf("%w: free of %s", ErrStaleRef, r)
	}
	s := &a.slots[r.slot]
	var zero T
	s.value = zero // drop references held by the value
	s.gen++        // live -> free
	if s.gen == retired {
		tracer().Infof("arena: slot %d retired", r.slot)
	} else {
		a.free = append(a.free, r.slot)
	}
	a.live--
	tracer().Debugf("arena: freed slot %s, %d live", r, a.live)
	return nil
}

// Live reports whether r addresses a live slot of this arena.
func (a *Arena[T]) Live(r Ref) bool {
	if r.gen == 0 || int(r.slot) >= len(a.slots) {
		return false
	}
	return a.slots[r.slot].gen == r.gen
}

// At returns a pointer to the value addressed by r. The pointer is valid
// until the next call to Alloc, which may grow the slot storage.
func (a *Arena[T]) At(r Ref) (*T, error) {
	if !a.Live(r) {
		return nil, fmt.Errorf("%w: access of %s", ErrStaleRef, r)
	}
	return &a.slots[r.slot].value, nil
}

// Len returns the number of live slots.
func (a *Arena[T]) Len() int {
	return a.live
}

// Cap returns the number of slots ever allocated, live or free.
func (a *Arena[T]) Cap() int {
	return len(a.slots)
}

// Each calls fn for every live slot, in slot order, until fn returns false.
func (a *Arena[T]) Each(fn func(r Ref, v *T) bool) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.gen%2 == 0 {
			continue
		}
		if !fn(Ref{slot: uint32(i), gen: s.gen}, &s.value) {
			return
		}
	}
}

// Reset frees every slot at once. All previously issued Refs become stale.
func (a *Arena[T]) Reset() {
	var zero T
	a.free = a.free[:0]
	for i := len(a.slots) - 1; i >= 0; i-- {
		s := &a.slots[i]
		if s.gen%2 == 1 {
			s.gen++
		}
		s.value = zero
		if s.gen != retired {
			a.free = append(a.free, uint32(i))
		}
	}
	a.live = 0
}
