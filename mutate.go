package vector

import (
	"github.com/pavanmanishd/vector/internal/assert"
	"github.com/pavanmanishd/vector/rawmem"
)

// Emplace constructs a new element at position pos, in [0,Size], by calling
// construct on the slot it will occupy. Elements from pos onward shift one
// position right. It returns the position of the new element.
//
// When the vector is full, storage of twice the capacity (1 when empty) is
// allocated, the new element is constructed there first, and the existing
// elements are relocated around it. Any failure on that path releases the
// new storage and leaves v unchanged, except that a NoCopy type with a
// fallible Move keeps the moved-from state of elements already relocated.
//
// When there is spare capacity and pos is not the end, the element is
// built aside first and then the tail is shifted by move-assignment. A
// failure while shifting leaves v with every element valid but the tail
// only partially shifted.
func (v *Vector[T]) Emplace(pos int, construct func(dst *T) error) (int, error) {
	if assert.Enabled && (pos < 0 || pos > v.size) {
		assert.Failf("vector: position %d out of range [0,%d]", pos, v.size)
	}
	if v.size == v.Cap() {
		return pos, v.emplaceGrow(pos, construct)
	}

	if pos == v.size {
		slot := v.data.At(pos)
		if err := construct(slot); err != nil {
			abandon(slot)
			return pos, err
		}
		v.size++
		return pos, nil
	}

	var tmp T
	if err := construct(&tmp); err != nil {
		return pos, err
	}
	last := v.size - 1
	if err := v.ops.move(v.data.At(v.size), v.data.At(last)); err != nil {
		abandon(v.data.At(v.size))
		v.ops.destroy(&tmp)
		return pos, err
	}
	v.size++
	for i := last; i > pos; i-- {
		if err := v.ops.moveAssign(v.data.At(i), v.data.At(i-1)); err != nil {
			v.ops.destroy(&tmp)
			return pos, err
		}
	}
	if err := v.ops.moveAssign(v.data.At(pos), &tmp); err != nil {
		v.ops.destroy(&tmp)
		return pos, err
	}
	v.ops.destroy(&tmp)
	return pos, nil
}

// emplaceGrow is the reallocating path of Emplace.
func (v *Vector[T]) emplaceGrow(pos int, construct func(dst *T) error) error {
	newCap := 1
	if c := v.Cap(); c > 0 {
		newCap = c * 2
	}
	data, err := rawmem.New[T](newCap)
	if err != nil {
		return err
	}

	slot := data.At(pos)
	if err := construct(slot); err != nil {
		abandon(slot)
		data.Release()
		return err
	}
	if err := v.ops.relocateN(data.Slots(0, pos), v.data.Slots(0, pos)); err != nil {
		v.ops.destroy(slot)
		data.Release()
		return err
	}
	if err := v.ops.relocateN(data.Slots(pos+1, v.size+1), v.data.Slots(pos, v.size)); err != nil {
		v.ops.destroyN(data.Slots(0, pos+1))
		data.Release()
		return err
	}

	v.ops.destroyN(v.data.Slots(0, v.size))
	v.data.MoveFrom(data)
	v.size++
	return nil
}

// EmplaceBack constructs a new element at the end and returns a pointer to it.
func (v *Vector[T]) EmplaceBack(construct func(dst *T) error) (*T, error) {
	pos, err := v.Emplace(v.size, construct)
	if err != nil {
		return nil, err
	}
	return v.data.At(pos), nil
}

// Insert copy-constructs value at position pos and returns that position.
func (v *Vector[T]) Insert(pos int, value T) (int, error) {
	v.ops.requireCopyable()
	return v.Emplace(pos, func(dst *T) error {
		return v.ops.copy(dst, &value)
	})
}

// InsertMove move-constructs *src at position pos and returns that position.
// *src is left in its moved-from state.
func (v *Vector[T]) InsertMove(pos int, src *T) (int, error) {
	return v.Emplace(pos, func(dst *T) error {
		return v.ops.move(dst, src)
	})
}

// PushBack appends a copy of value.
func (v *Vector[T]) PushBack(value T) error {
	_, err := v.Insert(v.size, value)
	return err
}

// PushBackMove appends *src by moving it.
func (v *Vector[T]) PushBackMove(src *T) error {
	_, err := v.InsertMove(v.size, src)
	return err
}

// Erase removes the element at pos, in [0,Size), shifting the tail one
// position left by move-assignment. Capacity never changes. It returns pos,
// which now holds the element that followed the erased one.
//
// If a move-assignment fails, the error is returned with the tail partially
// shifted and Size unchanged.
func (v *Vector[T]) Erase(pos int) (int, error) {
	if assert.Enabled && (pos < 0 || pos >= v.size) {
		assert.Failf("vector: position %d out of range [0,%d)", pos, v.size)
	}
	for i := pos; i < v.size-1; i++ {
		if err := v.ops.moveAssign(v.data.At(i), v.data.At(i+1)); err != nil {
			return pos, err
		}
	}
	v.ops.destroy(v.data.At(v.size - 1))
	v.size--
	return pos, nil
}

// PopBack destroys the last element. The vector must not be empty.
func (v *Vector[T]) PopBack() {
	if assert.Enabled && v.size == 0 {
		assert.Failf("vector: PopBack on empty vector")
	}
	v.ops.destroy(v.data.At(v.size - 1))
	v.size--
}

// Reserve grows the capacity to exactly n if n exceeds it, relocating the
// elements into the new storage. A failure leaves v unchanged, with the
// same NoCopy exception as Emplace.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.Cap() {
		return nil
	}
	data, err := rawmem.New[T](n)
	if err != nil {
		return err
	}
	if err := v.ops.relocateN(data.Slots(0, v.size), v.data.Slots(0, v.size)); err != nil {
		data.Release()
		return err
	}
	v.ops.destroyN(v.data.Slots(0, v.size))
	v.data.MoveFrom(data)
	return nil
}

// Resize changes the number of elements to n. Shrinking destroys the excess
// tail. Growing reserves exactly n slots if needed, then value-constructs
// the new tail; if that fails the new elements are destroyed again and Size
// is unchanged, though the capacity may have grown.
func (v *Vector[T]) Resize(n int) error {
	if assert.Enabled && n < 0 {
		assert.Failf("vector: negative size %d", n)
	}
	switch {
	case n < v.size:
		v.ops.destroyN(v.data.Slots(n, v.size))
		v.size = n
	case n > v.size:
		if err := v.Reserve(n); err != nil {
			return err
		}
		if err := v.ops.constructN(v.data.Slots(v.size, n)); err != nil {
			return err
		}
		v.size = n
	}
	return nil
}
