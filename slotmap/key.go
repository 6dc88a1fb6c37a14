package slotmap

import (
	"errors"
	"fmt"
)

var (
	// ErrFull is returned when a SlotMap has no index left to issue.
	ErrFull = errors.New("slotmap: no free slot index")
	// ErrNullKey is returned when the zero Key is used for an insert.
	ErrNullKey = errors.New("slotmap: null key")
	// ErrStaleKey is returned when a key is older than the current occupant
	// of its slot.
	ErrStaleKey = errors.New("slotmap: stale key")
)

// Key identifies a value stored in a SlotMap.
//
// The zero Key is the null key: it is never issued and never found.
type Key struct {
	idx uint32
	gen uint32
}

// Index returns the slot index of the key.
func (k Key) Index() uint32 { return k.idx }

// Generation returns the generation of the slot when the key was issued.
func (k Key) Generation() uint32 { return k.gen }

// IsNull reports whether k is the null key.
func (k Key) IsNull() bool { return k.gen == 0 }

// String returns a compact "<index>v<generation>" form.
func (k Key) String() string {
	return fmt.Sprintf("%dv%d", k.idx, k.gen)
}

// olderThan reports whether k was issued before other for the same slot.
func (k Key) olderThan(other Key) bool {
	return k.gen < other.gen
}

// MarshalText implements encoding.TextMarshaler, so keys render as
// "<index>v<generation>" in structured logs and JSON.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
