package nodemap

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/nodemap/arena"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// model is a plain slice-of-rows reference implementation of the grid's
// value semantics.
type model [][]int

func (m model) rowOK(r int) bool { return r >= 0 && r < len(m) }

func (m *model) push(v int) { *m = append(*m, []int{v}) }

func (m *model) pop() ([]int, error) {
	if len(*m) == 0 {
		return nil, ErrEmptyContainer
	}
	last := (*m)[len(*m)-1]
	*m = (*m)[:len(*m)-1]
	return last, nil
}

func (m *model) add(r, v int) error {
	if r == 0 && len(*m) == 0 {
		m.push(v)
		return nil
	}
	if !m.rowOK(r) {
		return ErrOutOfBounds
	}
	(*m)[r] = append((*m)[r], v)
	return nil
}

func (m *model) remove(r int) (int, error) {
	if len(*m) == 0 {
		return 0, ErrEmptyContainer
	}
	if !m.rowOK(r) {
		return 0, ErrOutOfBounds
	}
	row := (*m)[r]
	if len(row) == 1 {
		return 0, ErrInvariantViolation
	}
	(*m)[r] = row[:len(row)-1]
	return row[len(row)-1], nil
}

func (m *model) insert(r, c, v int) error {
	if len(*m) == 0 {
		if r == 0 && c == 0 {
			m.push(v)
			return nil
		}
		return ErrOutOfBounds
	}
	if !m.rowOK(r) || c < 0 || c > len((*m)[r]) {
		return ErrOutOfBounds
	}
	if r > 0 && c > len((*m)[r-1]) {
		return ErrOutOfBounds
	}
	row := append([]int{}, (*m)[r][:c]...)
	row = append(row, v)
	(*m)[r] = append(row, (*m)[r][c:]...)
	return nil
}

func (m *model) delete(r, c int) (int, error) {
	if len(*m) == 0 {
		return 0, ErrEmptyContainer
	}
	if !m.rowOK(r) || c < 0 || c >= len((*m)[r]) {
		return 0, ErrOutOfBounds
	}
	row := (*m)[r]
	if len(row) == 1 {
		if len(*m) > 1 {
			return 0, ErrInvariantViolation
		}
		*m = nil
		return row[0], nil
	}
	v := row[c]
	(*m)[r] = append(append([]int{}, row[:c]...), row[c+1:]...)
	return v, nil
}

func sameError(t *testing.T, step int, op string, want, got error) {
	t.Helper()
	if want == nil && got != nil {
		t.Fatalf("step %d %s: unexpected error %v", step, op, got)
	}
	if want != nil && !errors.Is(got, want) {
		t.Fatalf("step %d %s: expected %v, got %v", step, op, want, got)
	}
}

func TestRandomEditsAgainstModel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "nodemap")
	defer teardown()
	//
	rnd := rand.New(rand.NewPCG(7, 11))
	g := New[int]()
	var m model
	for step := 0; step < 3000; step++ {
		h := len(m)
		r := rnd.IntN(h+2) - 1 // occasionally out of range
		c := 0
		if m.rowOK(r) {
			c = rnd.IntN(len(m[r])+2) - 1
		}
		v := step
		var op string
		var want, got error
		switch k := rnd.IntN(10); {
		case k == 0:
			op = "push"
			g.Push(v)
			m.push(v)
		case k == 1:
			op = "pop"
			wv, we := m.pop()
			gv, ge := g.Pop()
			want, got = we, ge
			if we == nil && !cmp.Equal(wv, gv) {
				t.Fatalf("step %d pop: expected %v, got %v", step, wv, gv)
			}
		case k <= 3:
			op = "add"
			want, got = m.add(r, v), func() error { _, err := g.Add(r, v); return err }()
		case k == 4:
			op = "remove"
			wv, we := m.remove(r)
			gv, ge := g.Remove(r)
			want, got = we, ge
			if we == nil && wv != gv {
				t.Fatalf("step %d remove: expected %d, got %d", step, wv, gv)
			}
		case k <= 7:
			op = "insert"
			want, got = m.insert(r, c, v), func() error { _, err := g.Insert(r, c, v); return err }()
		default:
			op = "delete"
			wv, we := m.delete(r, c)
			gv, ge := g.Delete(r, c)
			want, got = we, ge
			if we == nil && wv != gv {
				t.Fatalf("step %d delete(%d,%d): expected %d, got %d", step, r, c, wv, gv)
			}
		}
		sameError(t, step, op, want, got)
		if err := g.Check(); err != nil {
			t.Fatalf("step %d %s(%d,%d): %v\n%s", step, op, r, c, err, g.DeepPrint())
		}
		if diff := cmp.Diff([][]int(m), g.Values(), cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("step %d %s(%d,%d): grid differs from model (-want +got):\n%s", step, op, r, c, diff)
		}
	}
}

// links captures the right/down targets of every node.
func links[T comparable](g *Grid[T]) map[arena.Ref][2]arena.Link {
	m := make(map[arena.Ref][2]arena.Link)
	_ = g.each(func(r arena.Ref, c *cell[T], _, _ int) {
		m[r] = [2]arena.Link{c.right, c.down}
	})
	return m
}

func randomGrid(rnd *rand.Rand, rows int) *Grid[int] {
	g := New[int]()
	v := 0
	for r := 0; r < rows; r++ {
		g.Push(v)
		v++
		for n := rnd.IntN(6); n > 0; n-- {
			_, _ = g.Add(r, v)
			v++
		}
	}
	return g
}

func TestInsertDeleteRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	opts := cmp.AllowUnexported(arena.Ref{}, arena.Link{})
	for i := 0; i < 200; i++ {
		g := randomGrid(rnd, 1+rnd.IntN(5))
		r := rnd.IntN(g.Height())
		rowlen, _ := g.RowLen(r)
		limit := rowlen
		if r > 0 {
			above, _ := g.RowLen(r - 1)
			limit = min(limit, above)
		}
		c := rnd.IntN(limit + 1)
		before, size, height := links(g), g.Size(), g.Height()
		if _, err := g.Insert(r, c, -1); err != nil {
			t.Fatalf("insert (%d,%d): %v", r, c, err)
		}
		if v, err := g.Delete(r, c); err != nil || v != -1 {
			t.Fatalf("delete (%d,%d): %d, %v", r, c, v, err)
		}
		if g.Size() != size || g.Height() != height {
			t.Fatalf("round trip changed size/height")
		}
		if diff := cmp.Diff(before, links(g), opts); diff != "" {
			t.Fatalf("round trip at (%d,%d) changed links (-before +after):\n%s", r, c, diff)
		}
	}
}

func TestAddEqualsInsertAtRowEnd(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 200; i++ {
		seed := rnd.Uint64()
		g1 := randomGrid(rand.New(rand.NewPCG(seed, seed)), 4)
		g2 := randomGrid(rand.New(rand.NewPCG(seed, seed)), 4)
		r := rnd.IntN(4)
		rowlen, _ := g1.RowLen(r)
		if r > 0 {
			if above, _ := g1.RowLen(r - 1); rowlen > above {
				continue // Insert rejects columns beyond the row above
			}
		}
		if _, err := g1.Add(r, 99); err != nil {
			t.Fatal(err)
		}
		if _, err := g2.Insert(r, rowlen, 99); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(g1.DeepPrint(), g2.DeepPrint()); diff != "" {
			t.Fatalf("Add and Insert at row end differ:\n%s", diff)
		}
	}
}

func TestPushPopMonotonicity(t *testing.T) {
	rnd := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 100; i++ {
		g := New[int]()
		if rnd.IntN(4) > 0 {
			g = randomGrid(rnd, 1+rnd.IntN(4))
		}
		h, s := g.Height(), g.Size()
		g.Push(42)
		if g.Height() != h+1 || g.Size() != s+1 {
			t.Fatalf("push: expected height %d size %d, have %d %d", h+1, s+1, g.Height(), g.Size())
		}
		values, err := g.Pop()
		if err != nil || len(values) != 1 || values[0] != 42 {
			t.Fatalf("pop: %v, %v", values, err)
		}
		if g.Height() != h || g.Size() != s {
			t.Fatalf("pop: expected height %d size %d, have %d %d", h, s, g.Height(), g.Size())
		}
		if err := g.Check(); err != nil {
			t.Fatal(err)
		}
	}
}
