package circle

import (
	"fmt"
	"slices"
	"strings"

	"github.com/npillmayer/nodemap/arena"
)

type ring[T comparable] struct {
	val T
	cw  arena.Ref
	ccw arena.Ref
}

// Circle is a circular doubly-linked list. The zero value is an empty circle
// without savepoints.
//
// A Circle is not safe for concurrent use.
type Circle[T comparable] struct {
	root       arena.Link
	elems      arena.Arena[ring[T]]
	savepoints map[string]arena.Ref // nil if savepoints are disabled
}

// New creates an empty circle. If withSavepoints is false, savepoint
// operations fail until ResetSavepoints is called.
func New[T comparable](withSavepoints bool) *Circle[T] {
	c := &Circle[T]{}
	if withSavepoints {
		c.savepoints = make(map[string]arena.Ref)
	}
	return c
}

func (c *Circle[T]) elem(r arena.Ref) *ring[T] {
	e, err := c.elems.At(r)
	if err != nil {
		panic(fmt.Sprintf("circle: broken link: %v", err))
	}
	return e
}

// Root returns the value at the root, if any.
func (c *Circle[T]) Root() (T, bool) {
	r, ok := c.root.Get()
	if !ok {
		var zero T
		return zero, false
	}
	return c.elem(r).val, true
}

// Size returns the number of elements, i.e. the circumference of the circle.
func (c *Circle[T]) Size() int {
	return c.elems.Len()
}

// Add inserts val clockwise of the root. The first element of a circle
// becomes its root.
func (c *Circle[T]) Add(val T) {
	root, ok := c.root.Get()
	if !ok {
		r := c.elems.Alloc(ring[T]{val: val})
		e := c.elem(r)
		e.cw, e.ccw = r, r
		c.root = arena.Some(r)
		return
	}
	next := c.elem(root).cw
	r := c.elems.Alloc(ring[T]{val: val, cw: next, ccw: root})
	c.elem(root).cw = r
	c.elem(next).ccw = r
}

// Pop removes the root and returns its value. The clockwise neighbour of the
// root becomes the new root. Savepoints referring to the popped element are
// dropped.
func (c *Circle[T]) Pop() (T, error) {
	root, ok := c.root.Get()
	if !ok {
		var zero T
		return zero, ErrEmptyCircle
	}
	e := c.elem(root)
	val, cw, ccw := e.val, e.cw, e.ccw
	if cw == root {
		c.root = arena.None()
	} else {
		c.elem(ccw).cw = cw
		c.elem(cw).ccw = ccw
		c.root = arena.Some(cw)
	}
	for name, r := range c.savepoints {
		if r == root {
			tracer().Debugf("circle: dropping savepoint %q", name)
			delete(c.savepoints, name)
		}
	}
	if err := c.elems.Free(root); err != nil {
		panic(err)
	}
	return val, nil
}

// walk returns the element offset steps away from the root, clockwise for
// positive offsets, counterclockwise for negative ones.
func (c *Circle[T]) walk(offset int) (arena.Ref, error) {
	r, ok := c.root.Get()
	if !ok {
		return r, ErrEmptyCircle
	}
	for ; offset > 0; offset-- {
		r = c.elem(r).cw
	}
	for ; offset < 0; offset++ {
		r = c.elem(r).ccw
	}
	return r, nil
}

// Get returns the value offset steps away from the root. Negative offsets
// move counterclockwise.
func (c *Circle[T]) Get(offset int) (T, error) {
	r, err := c.walk(offset)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.elem(r).val, nil
}

// Shift moves the root offset steps and returns the value at the new root.
// Negative offsets move counterclockwise.
func (c *Circle[T]) Shift(offset int) (T, error) {
	r, err := c.walk(offset)
	if err != nil {
		var zero T
		return zero, err
	}
	c.root = arena.Some(r)
	return c.elem(r).val, nil
}

// Find searches for val from the root in both directions at once. It returns
// the offset of the nearest match, positive if it is reached clockwise and
// negative if it is reached counterclockwise.
func (c *Circle[T]) Find(val T) (int, bool) {
	root, ok := c.root.Get()
	if !ok {
		return 0, false
	}
	cw, ccw := root, root
	for k := 0; 2*k <= c.Size(); k++ {
		if c.elem(cw).val == val {
			return k, true
		}
		if c.elem(ccw).val == val {
			return -k, true
		}
		cw, ccw = c.elem(cw).cw, c.elem(ccw).ccw
	}
	return 0, false
}

// --- Savepoints ------------------------------------------------------------

// Save records the current root under name, replacing an earlier savepoint of
// the same name.
func (c *Circle[T]) Save(name string) error {
	if c.savepoints == nil {
		return ErrNoSavepoints
	}
	root, ok := c.root.Get()
	if !ok {
		return fmt.Errorf("%w: no root to save", ErrEmptyCircle)
	}
	c.savepoints[name] = root
	return nil
}

// ShiftTo moves the root to the savepoint recorded under name and returns the
// value at the new root.
func (c *Circle[T]) ShiftTo(name string) (T, error) {
	var zero T
	if c.savepoints == nil {
		return zero, ErrNoSavepoints
	}
	r, ok := c.savepoints[name]
	if !ok || !c.elems.Live(r) {
		return zero, fmt.Errorf("%w: %q", ErrUnknownSavepoint, name)
	}
	c.root = arena.Some(r)
	return c.elem(r).val, nil
}

// ResetSavepoints clears all savepoints. It enables savepoints for a circle
// created without them.
func (c *Circle[T]) ResetSavepoints() {
	c.savepoints = make(map[string]arena.Ref)
}

// Savepoints returns the names of all savepoints in sorted order.
func (c *Circle[T]) Savepoints() []string {
	names := make([]string, 0, len(c.savepoints))
	for name := range c.savepoints {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// SavepointValue returns the value of the element recorded under name.
func (c *Circle[T]) SavepointValue(name string) (T, bool) {
	r, ok := c.savepoints[name]
	if !ok || !c.elems.Live(r) {
		var zero T
		return zero, false
	}
	return c.elem(r).val, true
}

// --- Printing --------------------------------------------------------------

// each calls fn for every element, clockwise starting at the root.
func (c *Circle[T]) each(fn func(e *ring[T])) {
	root, ok := c.root.Get()
	if !ok {
		return
	}
	r := root
	for {
		e := c.elem(r)
		fn(e)
		if r = e.cw; r == root {
			return
		}
	}
}

// Values returns the values clockwise, starting at the root.
func (c *Circle[T]) Values() []T {
	values := make([]T, 0, c.Size())
	c.each(func(e *ring[T]) { values = append(values, e.val) })
	return values
}

// String renders the circle clockwise from the root:
//
//	^ > >   1
//	^       4
//	^ < <   END
func (c *Circle[T]) String() string {
	var sb strings.Builder
	prefix := "^ > >   "
	c.each(func(e *ring[T]) {
		fmt.Fprintf(&sb, "%s%v\n", prefix, e.val)
		prefix = "^       "
	})
	sb.WriteString("^ < <   END")
	return sb.String()
}

// DeepPrint lists every element together with its neighbours, one line per
// element in the form "counterclockwise -> value -> clockwise".
func (c *Circle[T]) DeepPrint() string {
	var sb strings.Builder
	c.each(func(e *ring[T]) {
		fmt.Fprintf(&sb, "%v -> %v -> %v\n", c.elem(e.ccw).val, e.val, c.elem(e.cw).val)
	})
	return sb.String()
}
