package vector

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValue(t *testing.T) {
	var v Vector[int]
	if v.Size() != 0 || v.Cap() != 0 || !v.Empty() {
		t.Fatalf("zero Vector size=%d cap=%d, want empty", v.Size(), v.Cap())
	}
	require.NoError(t, v.PushBack(4))
	assert.Equal(t, 4, v.Get(0))
	v.Release()
	assert.True(t, v.Empty())
}

func TestNewSized(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"empty", 0},
		{"one", 1},
		{"several", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &tracker{}
			before := liveBytes()

			v, err := NewSized(tt.n, WithOps(tr.ops(true)))
			require.NoError(t, err)
			if v.Size() != tt.n || v.Cap() != tt.n {
				t.Errorf("NewSized(%d) size=%d cap=%d", tt.n, v.Size(), v.Cap())
			}
			for i := 0; i < tt.n; i++ {
				if got := v.Get(i).val; got != i {
					t.Errorf("element %d = %d, want %d", i, got, i)
				}
			}
			assert.Equal(t, tt.n, tr.constructs)

			v.Release()
			assert.Zero(t, tr.live())
			assert.Equal(t, before, liveBytes())
		})
	}
}

func TestNewSizedRollback(t *testing.T) {
	const n = 5
	for k := 0; k < n; k++ {
		tr := &tracker{failConstruct: k + 1}
		before := liveBytes()

		v, err := NewSized(n, WithOps(tr.ops(true)))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errInjected))
		assert.Nil(t, v)
		assert.Equal(t, k, tr.constructs, "construction %d should have failed", k)
		assert.Zero(t, tr.live(), "failure at %d leaked elements", k)
		assert.Equal(t, before, liveBytes(), "failure at %d leaked storage", k)
	}
}

func TestClone(t *testing.T) {
	tr := &tracker{}
	v := New(WithOps(tr.ops(true)))
	fill(t, v, 1, 2, 3)
	require.Equal(t, 4, v.Cap())

	c, err := v.Clone()
	require.NoError(t, err)
	requireSeq(t, []item{{1}, {2}, {3}}, c)
	assert.Equal(t, 3, c.Cap(), "clone is sized to the element count")

	c.At(0).val = 100
	assert.Equal(t, 1, v.Get(0).val, "clone must not share storage")

	empty, err := New[item]().Clone()
	require.NoError(t, err)
	assert.Zero(t, empty.Cap())

	c.Release()
	v.Release()
	assert.Zero(t, tr.live())
}

func TestCloneRollback(t *testing.T) {
	tr := &tracker{}
	v := New(WithOps(tr.ops(true)))
	fill(t, v, 1, 2, 3, 4)
	before := liveBytes()
	liveBefore := tr.live()

	tr.failCopy = 3
	c, err := v.Clone()
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Equal(t, liveBefore, tr.live())
	assert.Equal(t, before, liveBytes())
	requireSeq(t, []item{{1}, {2}, {3}, {4}}, v)

	v.Release()
}

func TestTake(t *testing.T) {
	tr := &tracker{}
	a := New(WithOps(tr.ops(true)))
	fill(t, a, 1, 2, 3)
	capBefore := a.Cap()
	tr.reset()

	b := a.Take()
	requireSeq(t, []item{{1}, {2}, {3}}, b)
	assert.Equal(t, capBefore, b.Cap())
	assert.Zero(t, tr.copies+tr.moves, "Take must not touch elements")

	assert.Zero(t, a.Size())
	assert.Zero(t, a.Cap())
	a.Release()
	assert.Equal(t, 3, tr.live(), "releasing the moved-from vector must not destroy anything")

	b.Release()
	assert.Zero(t, tr.live())
}

func TestAssign(t *testing.T) {
	t.Run("GrowsThroughCopy", func(t *testing.T) {
		tr := &tracker{}
		v := New(WithOps(tr.ops(true)))
		fill(t, v, 7)
		rhs := New(WithOps(tr.ops(true)))
		fill(t, rhs, 1, 2, 3, 4, 5)

		require.NoError(t, v.Assign(rhs))
		requireSeq(t, []item{{1}, {2}, {3}, {4}, {5}}, v)
		assert.Equal(t, 5, v.Cap())
		requireSeq(t, []item{{1}, {2}, {3}, {4}, {5}}, rhs)

		v.Release()
		rhs.Release()
		assert.Zero(t, tr.live())
	})

	t.Run("GrowFailureLeavesTarget", func(t *testing.T) {
		tr := &tracker{}
		v := New(WithOps(tr.ops(true)))
		fill(t, v, 7)
		rhs := New(WithOps(tr.ops(true)))
		fill(t, rhs, 1, 2, 3)
		before := liveBytes()
		liveBefore := tr.live()

		tr.failCopy = 2
		require.Error(t, v.Assign(rhs))
		requireSeq(t, []item{{7}}, v)
		assert.Equal(t, 1, v.Cap())
		assert.Equal(t, liveBefore, tr.live())
		assert.Equal(t, before, liveBytes())

		v.Release()
		rhs.Release()
		assert.Zero(t, tr.live())
	})

	t.Run("ShrinksInPlace", func(t *testing.T) {
		tr := &tracker{}
		v := New(WithOps(tr.ops(true)))
		fill(t, v, 1, 2, 3, 4)
		rhs := New(WithOps(tr.ops(true)))
		fill(t, rhs, 9, 8)

		require.NoError(t, v.Assign(rhs))
		requireSeq(t, []item{{9}, {8}}, v)
		assert.Equal(t, 4, v.Cap(), "storage is reused")
		assert.Equal(t, 4, tr.live())

		v.Release()
		rhs.Release()
		assert.Zero(t, tr.live())
	})

	t.Run("GrowsInPlace", func(t *testing.T) {
		tr := &tracker{}
		v := New(WithOps(tr.ops(true)))
		fill(t, v, 1)
		require.NoError(t, v.Reserve(4))
		rhs := New(WithOps(tr.ops(true)))
		fill(t, rhs, 5, 6, 7)

		require.NoError(t, v.Assign(rhs))
		requireSeq(t, []item{{5}, {6}, {7}}, v)
		assert.Equal(t, 4, v.Cap())

		v.Release()
		rhs.Release()
		assert.Zero(t, tr.live())
	})

	t.Run("SuffixFailureKeepsSize", func(t *testing.T) {
		tr := &tracker{}
		v := New(WithOps(tr.ops(true)))
		fill(t, v, 1)
		require.NoError(t, v.Reserve(4))
		rhs := New(WithOps(tr.ops(true)))
		fill(t, rhs, 5, 6, 7)

		// The prefix copy succeeds, the second suffix element fails.
		tr.failCopy = 3
		require.Error(t, v.Assign(rhs))
		requireSeq(t, []item{{5}}, v)

		v.Release()
		rhs.Release()
		assert.Zero(t, tr.live())
	})

	t.Run("KeepsOwnOps", func(t *testing.T) {
		own, other := &tracker{}, &tracker{}
		v := New(WithOps(own.ops(true)))
		fill(t, v, 7)
		rhs := New(WithOps(other.ops(true)))
		fill(t, rhs, 1, 2, 3)
		own.reset()
		other.reset()

		// rhs does not fit, so a full copy is built and swapped in.
		require.NoError(t, v.Assign(rhs))
		assert.Equal(t, 3, own.copies)
		assert.Equal(t, 1, own.destroys)
		assert.Zero(t, other.copies)

		small := New(WithOps(other.ops(true)))
		fill(t, small, 9)
		other.reset()
		require.NoError(t, v.Assign(small))
		assert.Equal(t, 4, own.copies, "in-place copy also uses v's ops")
		assert.Zero(t, other.copies)

		v.Release()
		rhs.Release()
		small.Release()
		assert.Zero(t, own.live())
		assert.Zero(t, other.live())
	})

	t.Run("Self", func(t *testing.T) {
		v := New[int]()
		require.NoError(t, v.PushBack(1))
		require.NoError(t, v.Assign(v))
		requireSeq(t, []int{1}, v)
		v.Release()
	})
}

func TestMoveAssign(t *testing.T) {
	a := New[int]()
	require.NoError(t, a.PushBack(1))
	require.NoError(t, a.PushBack(2))
	b := New[int]()
	require.NoError(t, b.PushBack(3))

	a.MoveAssign(b)
	requireSeq(t, []int{3}, a)
	requireSeq(t, []int{1, 2}, b)

	a.MoveAssign(a)
	requireSeq(t, []int{3}, a)

	a.Release()
	b.Release()
}

func TestSwap(t *testing.T) {
	ta, tb := &tracker{}, &tracker{}
	a := New(WithOps(ta.ops(true)))
	fill(t, a, 1, 2, 3)
	b := New(WithOps(tb.ops(true)))
	fill(t, b, 9)

	a.Swap(b)
	requireSeq(t, []item{{9}}, a)
	requireSeq(t, []item{{1}, {2}, {3}}, b)
	assert.Equal(t, 1, a.Cap())
	assert.Equal(t, 4, b.Cap())

	// Elements are destroyed by the callbacks they were built with.
	a.Release()
	b.Release()
	assert.Zero(t, ta.live())
	assert.Zero(t, tb.live())
}

func TestRelease(t *testing.T) {
	tr := &tracker{}
	before := liveBytes()
	v := New(WithOps(tr.ops(true)))
	fill(t, v, 1, 2, 3)

	v.Release()
	assert.Zero(t, v.Size())
	assert.Zero(t, v.Cap())
	assert.Zero(t, tr.live())
	assert.Equal(t, before, liveBytes())

	fill(t, v, 4)
	requireSeq(t, []item{{4}}, v)
	v.Release()
}

func TestAccessors(t *testing.T) {
	v := New[string]()
	defer v.Release()
	for _, s := range []string{"a", "b", "c"} {
		require.NoError(t, v.PushBack(s))
	}

	assert.Equal(t, "a", *v.Front())
	assert.Equal(t, "c", *v.Back())
	assert.Equal(t, 0, v.Begin())
	assert.Equal(t, 3, v.End())

	*v.At(1) = "B"
	assert.Equal(t, "B", v.Get(1))

	data := v.Data()
	assert.Len(t, data, 3)
	assert.Equal(t, 3, cap(data), "Data must not expose spare capacity")
}

func TestTraversal(t *testing.T) {
	v := New[int]()
	defer v.Release()
	for i := 0; i < 5; i++ {
		require.NoError(t, v.PushBack(i*10))
	}

	var fwd []int
	for i, x := range v.All() {
		assert.Equal(t, i*10, x)
		fwd = append(fwd, x)
	}
	assert.Equal(t, []int{0, 10, 20, 30, 40}, fwd)

	var bwd []int
	for i, x := range v.Backward() {
		assert.Equal(t, i*10, x)
		bwd = append(bwd, x)
	}
	assert.Equal(t, []int{40, 30, 20, 10, 0}, bwd)

	var head []int
	for x := range v.Values() {
		if x == 20 {
			break
		}
		head = append(head, x)
	}
	assert.Equal(t, []int{0, 10}, head)
}
