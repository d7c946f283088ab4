package rawmem

import (
	"math"
	"sync"
	"unsafe"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// LargeBlockBytes is the block size above which allocations are logged at
// debug level.
const LargeBlockBytes = 1 << 20

var (
	// ErrCapacityOverflow is returned when slots*sizeof(T) does not fit in an int.
	ErrCapacityOverflow = errors.New("rawmem: requested capacity overflows")
	// ErrOutOfMemory is returned when a block would exceed the allocator
	// limit, or the runtime refuses a block of the requested length.
	ErrOutOfMemory = errors.New("rawmem: out of memory")
)

// Default is the process-wide allocator every Storage draws from.
var Default = NewAllocator()

// Allocator hands out element blocks and keeps byte accounting for them.
// Blocks are ordinary Go memory; Deallocate zeroes them so nothing they
// referenced stays reachable, and the GC reclaims the block itself.
//
// The counters are atomic so one Allocator can back any number of
// containers owned by different goroutines.
type Allocator struct {
	limit      atomic.Int64
	liveBytes  atomic.Int64
	liveBlocks atomic.Int64
	allocs     atomic.Uint64
	frees      atomic.Uint64
	failures   atomic.Uint64

	mu     sync.RWMutex
	logger log.Logger
}

// NewAllocator creates an allocator with no limit and a no-op logger.
func NewAllocator() *Allocator {
	return &Allocator{logger: log.NewNopLogger()}
}

// SetLimit caps the number of live bytes. A limit <= 0 removes the cap.
// Blocks already handed out are not affected.
func (a *Allocator) SetLimit(bytes int64) {
	if bytes < 0 {
		bytes = 0
	}
	a.limit.Store(bytes)
}

// Limit returns the current live-byte cap, 0 meaning unlimited.
func (a *Allocator) Limit() int64 {
	return a.limit.Load()
}

// SetLogger replaces the allocator's logger. A nil logger disables logging.
func (a *Allocator) SetLogger(l log.Logger) {
	if l == nil {
		l = log.NewNopLogger()
	}
	a.mu.Lock()
	a.logger = l
	a.mu.Unlock()
}

// SetLogger replaces the logger of the Default allocator.
func SetLogger(l log.Logger) {
	Default.SetLogger(l)
}

func (a *Allocator) currentLogger() log.Logger {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.logger
}

// Allocate returns a block of exactly n uninitialized (zero) slots of T.
// n == 0 yields a nil block without touching the allocator.
// Panics if n < 0.
func Allocate[T any](a *Allocator, n int) ([]T, error) {
	if n < 0 {
		panic("rawmem: negative slot count")
	}
	if n == 0 {
		return nil, nil
	}

	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize > 0 && n > math.MaxInt/elemSize {
		return nil, a.fail(errors.Wrapf(ErrCapacityOverflow, "%d slots of %d bytes", n, elemSize), elemSize, n)
	}
	size := int64(elemSize * n)
	if !a.charge(size) {
		return nil, a.fail(errors.Wrapf(ErrOutOfMemory, "%d bytes over limit %d", size, a.Limit()), elemSize, n)
	}

	block, err := makeBlock[T](n)
	if err != nil {
		a.liveBytes.Sub(size)
		return nil, a.fail(err, elemSize, n)
	}

	a.liveBlocks.Inc()
	a.allocs.Inc()
	if size >= LargeBlockBytes {
		level.Debug(a.currentLogger()).Log("msg", "allocated large block", "elem_size", elemSize, "slots", n, "bytes", size)
	}
	return block, nil
}

// Deallocate returns a block obtained from Allocate. A nil block is a no-op.
// The caller must have destroyed every live element in it.
func Deallocate[T any](a *Allocator, block []T) {
	if block == nil {
		return
	}
	var zero T
	size := int64(int(unsafe.Sizeof(zero)) * len(block))
	clear(block)
	a.liveBytes.Sub(size)
	a.liveBlocks.Dec()
	a.frees.Inc()
}

// makeBlock converts the runtime's "len out of range" panic into ErrOutOfMemory.
func makeBlock[T any](n int) (block []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			block = nil
			err = errors.Wrapf(ErrOutOfMemory, "runtime refused %d slots: %v", n, r)
		}
	}()
	return make([]T, n), nil
}

// charge reserves size live bytes, honouring the limit.
func (a *Allocator) charge(size int64) bool {
	for {
		cur := a.liveBytes.Load()
		if limit := a.limit.Load(); limit > 0 && cur+size > limit {
			return false
		}
		if a.liveBytes.CompareAndSwap(cur, cur+size) {
			return true
		}
	}
}

func (a *Allocator) fail(err error, elemSize, n int) error {
	a.failures.Inc()
	level.Warn(a.currentLogger()).Log("msg", "block allocation failed", "elem_size", elemSize, "slots", n, "err", err)
	return err
}
