// internal/rx/buffer.go
package rx

// AppendResult reports the outcome of a bounded append.
type AppendResult int

const (
	// Appended means the value was stored.
	Appended AppendResult = iota
	// Overflowed means the buffer was full and the value was dropped.
	Overflowed
)

// String returns the result name for logging.
func (r AppendResult) String() string {
	if r == Overflowed {
		return "overflowed"
	}
	return "appended"
}

// SymbolBuffer accumulates the dot/dash symbols of the letter currently being
// received. Capacity is fixed at construction; appends beyond capacity are
// dropped and reported as Overflowed.
type SymbolBuffer struct {
	symbols  []byte
	capacity int
}

// NewSymbolBuffer creates a buffer holding at most capacity symbols.
func NewSymbolBuffer(capacity int) *SymbolBuffer {
	return &SymbolBuffer{
		symbols:  make([]byte, 0, capacity),
		capacity: capacity,
	}
}

// Append stores one symbol, or drops it when the buffer is full.
func (b *SymbolBuffer) Append(sym byte) AppendResult {
	if len(b.symbols) >= b.capacity {
		return Overflowed
	}
	b.symbols = append(b.symbols, sym)
	return Appended
}

// Len returns the number of buffered symbols.
func (b *SymbolBuffer) Len() int {
	return len(b.symbols)
}

// Pattern renders the buffered symbols as a dot/dash lookup key.
func (b *SymbolBuffer) Pattern() string {
	return string(b.symbols)
}

// Clear empties the buffer. Capacity is retained.
func (b *SymbolBuffer) Clear() {
	b.symbols = b.symbols[:0]
}
