// Package vector implements a generic dynamic array over raw element storage.
//
// # Overview
//
// Vector keeps its elements in a single contiguous block obtained from the
// rawmem allocator. The block and the elements in it have independent
// lifetimes: rawmem hands out slots that hold no live element, and Vector
// constructs and destroys elements in those slots explicitly. This is what
// lets the vector grow without rebuilding unrelated elements and roll back
// cleanly when an element operation fails.
//
// # Basic Usage
//
//	v := vector.New[int]()
//	defer v.Release()
//
//	_ = v.PushBack(1)
//	_ = v.PushBack(2)
//	_, _ = v.Insert(1, 99) // [1 99 2]
//	_, _ = v.Erase(0)      // [99 2]
//
//	for i, x := range v.All() {
//		fmt.Println(i, x)
//	}
//
// # Element Lifetimes
//
// By default elements behave like plain Go values. Types that own resources,
// count instances or can fail to copy describe themselves with Ops:
//
//	v := vector.New(vector.WithOps(vector.Ops[*Conn]{
//		Copy:    func(dst, src **Conn) error { c, err := (*src).Dup(); *dst = c; return err },
//		Destroy: func(p **Conn) {
//			if *p != nil {
//				(*p).Close()
//			}
//		},
//	}))
//
// An error returned by any callback aborts the operation and is returned
// unchanged. Destroy also runs on moved-from elements, which the default
// move leaves as the zero value, so it must accept them.
//
// # Growth and Failure Guarantees
//
// A full vector doubles its capacity (starting at 1) on insertion. The new
// element is constructed in the new storage first, then existing elements
// are relocated around it. Relocation moves elements when moving cannot
// fail (Ops.Move unset or Ops.MoveNoFail) or when the type cannot be copied
// (Ops.NoCopy), and copies them otherwise. If anything fails during growth,
// Reserve, NewSized or Clone, everything built so far is destroyed and the
// vector is left exactly as it was. The one exception is a NoCopy type whose
// Move can fail: a failed relocation leaves the elements already moved in
// their moved-from state, though Size and capacity are unchanged.
//
// Insertion into spare capacity and Erase shift elements in place by
// move-assignment. A failure in the middle of a shift leaves every element
// valid and Size consistent, but the shift is not undone.
//
// # Debug Builds
//
// Indexing and positions are unchecked by default. Build with the
// vectordebug tag to turn out-of-range access into panics:
//
//	go test -tags vectordebug ./...
//
// # Thread Safety
//
// A Vector has a single owner and no internal locking. The rawmem allocator
// it draws from is safe for concurrent use.
//
// # Metrics and Monitoring
//
//	m := v.Metrics()
//	fmt.Println(m) // size=2 cap=4 in_use=16 B storage=32 B utilization=50.0%
//
// Allocator-wide accounting is available from rawmem.Default.Stats and can
// be exported with rawmem.NewCollector.
package vector
