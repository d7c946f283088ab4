package vector

// Ops describes how a Vector manages the lifetime of its elements. Every
// callback works on slot addresses: dst points at an uninitialized (zero)
// slot for Construct, Copy and Move, and at a live element for the assign
// callbacks. A non-nil error aborts the operation in progress and is
// returned to the caller unchanged.
//
// The zero Ops gives plain Go value semantics: elements start as the zero
// value, copying and moving are assignments that cannot fail, and Destroy
// only zeroes the slot.
type Ops[T any] struct {
	// Construct value-initializes *dst.
	Construct func(dst *T) error
	// Copy copy-constructs *dst from *src.
	Copy func(dst, src *T) error
	// Move move-constructs *dst from *src, leaving *src destroyable.
	Move func(dst, src *T) error
	// CopyAssign overwrites the live *dst with a copy of *src. When nil, a
	// copy is built aside and replaces *dst only once it succeeded.
	CopyAssign func(dst, src *T) error
	// MoveAssign overwrites the live *dst with *src, same fallback as CopyAssign.
	MoveAssign func(dst, src *T) error
	// Destroy ends the lifetime of *p. It must not fail. It is also called
	// on moved-from elements, which the default Move leaves zeroed.
	Destroy func(p *T)

	// MoveNoFail declares that Move never returns an error.
	MoveNoFail bool
	// NoCopy declares the element type non-copyable. Copy paths panic.
	NoCopy bool
}

// relocatesByMove reports whether elements are transferred to new storage by
// moving. Moving is used when it cannot fail, or when there is no copy to
// fall back on; otherwise a failed transfer could lose the element.
func (o *Ops[T]) relocatesByMove() bool {
	return o == nil || o.Move == nil || o.MoveNoFail || o.NoCopy
}

// requireCopyable panics for non-copyable element types. Copy paths call it
// before allocating so the panic leaves nothing half-built.
func (o *Ops[T]) requireCopyable() {
	if o != nil && o.NoCopy {
		panic("vector: copy of a non-copyable element type")
	}
}

func (o *Ops[T]) construct(dst *T) error {
	if o == nil || o.Construct == nil {
		var zero T
		*dst = zero
		return nil
	}
	return o.Construct(dst)
}

func (o *Ops[T]) copy(dst, src *T) error {
	o.requireCopyable()
	if o == nil || o.Copy == nil {
		*dst = *src
		return nil
	}
	return o.Copy(dst, src)
}

func (o *Ops[T]) move(dst, src *T) error {
	if o == nil || o.Move == nil {
		var zero T
		*dst = *src
		*src = zero
		return nil
	}
	return o.Move(dst, src)
}

func (o *Ops[T]) copyAssign(dst, src *T) error {
	o.requireCopyable()
	if o != nil && o.CopyAssign != nil {
		return o.CopyAssign(dst, src)
	}
	var tmp T
	if err := o.copy(&tmp, src); err != nil {
		return err
	}
	o.replace(dst, &tmp)
	return nil
}

func (o *Ops[T]) moveAssign(dst, src *T) error {
	if o != nil && o.MoveAssign != nil {
		return o.MoveAssign(dst, src)
	}
	var tmp T
	if err := o.move(&tmp, src); err != nil {
		return err
	}
	o.replace(dst, &tmp)
	return nil
}

// replace destroys the live *dst and relocates the live *tmp into it.
func (o *Ops[T]) replace(dst, tmp *T) {
	o.destroy(dst)
	*dst = *tmp
	var zero T
	*tmp = zero
}

// destroy ends the lifetime of *p and returns the slot to its
// uninitialized (zero) state.
func (o *Ops[T]) destroy(p *T) {
	if o != nil && o.Destroy != nil {
		o.Destroy(p)
	}
	var zero T
	*p = zero
}

// abandon resets a slot whose construction failed. The element never came
// to life, so Destroy is not called.
func abandon[T any](p *T) {
	var zero T
	*p = zero
}

// constructN value-constructs every slot of dst. If construction of slot k
// fails, slots [0,k) are destroyed again before the error is returned.
func (o *Ops[T]) constructN(dst []T) error {
	for i := range dst {
		if err := o.construct(&dst[i]); err != nil {
			abandon(&dst[i])
			o.destroyN(dst[:i])
			return err
		}
	}
	return nil
}

// copyN copy-constructs dst[i] from src[i], with the same rollback as
// constructN.
func (o *Ops[T]) copyN(dst, src []T) error {
	for i := range src {
		if err := o.copy(&dst[i], &src[i]); err != nil {
			abandon(&dst[i])
			o.destroyN(dst[:i])
			return err
		}
	}
	return nil
}

// moveN move-constructs dst[i] from src[i]. On failure the elements built in
// dst are destroyed; the moved-from sources stay live but hold whatever
// Move left behind.
func (o *Ops[T]) moveN(dst, src []T) error {
	for i := range src {
		if err := o.move(&dst[i], &src[i]); err != nil {
			abandon(&dst[i])
			o.destroyN(dst[:i])
			return err
		}
	}
	return nil
}

// relocateN transfers src into the uninitialized dst, moving or copying
// according to relocatesByMove.
func (o *Ops[T]) relocateN(dst, src []T) error {
	if o.relocatesByMove() {
		return o.moveN(dst, src)
	}
	return o.copyN(dst, src)
}

func (o *Ops[T]) destroyN(s []T) {
	for i := range s {
		o.destroy(&s[i])
	}
}
