package region

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/objring/traceregion/regionutil"
)

// objectAlignment is the minimum byte alignment every allocation returned by
// pooledAllocator satisfies, the 4-byte floor the Allocator contract
// guarantees. Object class tags are kept in their own header field, not in
// pointer low bits, so nothing in this package depends on that alignment.
const objectAlignment = 4

// AllocatorExhaustedError is returned when the underlying Allocator cannot
// satisfy a request. It is the only recoverable failure the core surfaces;
// every other failure mode is a precondition violation, checked only in
// debug builds.
var AllocatorExhaustedError error = errors.New("region allocator exhausted")

// Allocator is the sole external resource the core depends on for backing
// storage. Implementations are typically thread-local; the core never
// caches an Allocator handle across calls, taking it fresh from the caller
// on every operation that may allocate.
type Allocator interface {
	// Alloc returns a byte slice of exactly the requested length, or an
	// error (normally wrapping AllocatorExhaustedError) if it cannot.
	Alloc(bytes int) ([]byte, error)
	// Free returns raw, previously returned by Alloc, to the allocator.
	Free(raw []byte)
}

// pooledAllocator is a default Allocator that reuses byte slices through a
// size-bucketed sync.Pool, the same intrusive block-reuse technique a
// suballocator's free list uses to avoid round-tripping through the runtime
// allocator on every request.
type pooledAllocator struct {
	pools sync.Map // int(size) -> *sync.Pool
}

// NewPooledAllocator returns an Allocator backed by per-size sync.Pools.
// It never reports exhaustion; Go's runtime allocator is the true backing
// store, and this type exists to give callers pooling behaviour for the
// GC's hot alloc/free path rather than to model a fixed-capacity arena.
func NewPooledAllocator() Allocator {
	return &pooledAllocator{}
}

func (a *pooledAllocator) Alloc(bytes int) ([]byte, error) {
	if bytes < 0 {
		return nil, errors.Newf("cannot allocate negative size %d", bytes)
	}
	regionutil.DebugCheckPow2(uint(objectAlignment), "objectAlignment")
	bucket := regionutil.AlignUp(bytes, objectAlignment)

	poolValue, _ := a.pools.LoadOrStore(bucket, &sync.Pool{
		New: func() any {
			buf := make([]byte, bucket)
			return &buf
		},
	})
	pool := poolValue.(*sync.Pool)
	bufPtr := pool.Get().(*[]byte)
	buf := *bufPtr
	for i := range buf {
		buf[i] = 0
	}
	return buf[:bytes], nil
}

func (a *pooledAllocator) Free(raw []byte) {
	bucket := regionutil.AlignUp(len(raw), objectAlignment)
	poolValue, ok := a.pools.Load(bucket)
	if !ok {
		return
	}
	pool := poolValue.(*sync.Pool)
	full := raw[:cap(raw)]
	pool.Put(&full)
}
