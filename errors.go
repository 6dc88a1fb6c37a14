package slicemap

import (
	"errors"
	"fmt"

	"github.com/hupe1980/slicemap/buffer"
	"github.com/hupe1980/slicemap/slotmap"
)

var (
	// ErrCapacityExceeded is returned when an append would exceed a bounded
	// backend or the 32-bit range ceiling. Test with errors.Is.
	ErrCapacityExceeded = buffer.ErrCapacityExceeded

	// ErrKeyRequired is returned by AddItems on registries that only accept
	// externally issued keys. Use AddItemsAt instead.
	ErrKeyRequired = errors.New("registry requires an external key")

	// ErrKeysIssued is returned by AddItemsAt on registries that issue their
	// own keys. Use AddItems instead.
	ErrKeysIssued = errors.New("registry issues its own keys")

	// ErrKeyExists is returned by AddItemsAt when the key already holds a slice.
	ErrKeyExists = errors.New("key already holds a slice")

	// ErrStaleKey is returned by AddItemsAt when the key's slot is held by a
	// newer key.
	ErrStaleKey = slotmap.ErrStaleKey

	// ErrNullKey is returned by AddItemsAt for the zero slotmap.Key.
	ErrNullKey = slotmap.ErrNullKey
)

// CapacityError reports a failed append that ran out of room.
//
// errors.Is(err, ErrCapacityExceeded) holds for every CapacityError. The
// original backend error (if any) can be accessed via errors.Unwrap.
type CapacityError struct {
	// Resource is "items" or "slices".
	Resource string
	// Limit is the ceiling that was hit, or 0 when the backend reported the
	// failure without one.
	Limit int
	cause error
}

func (e *CapacityError) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("capacity exceeded: %s limit %d", e.Resource, e.Limit)
	}
	if e.cause != nil {
		return fmt.Sprintf("capacity exceeded: %s: %v", e.Resource, e.cause)
	}
	return fmt.Sprintf("capacity exceeded: %s", e.Resource)
}

func (e *CapacityError) Unwrap() error { return e.cause }

// Is makes every CapacityError match ErrCapacityExceeded.
func (e *CapacityError) Is(target error) bool { return target == ErrCapacityExceeded }

// InvariantError is the panic value raised when the registry is found to be
// corrupt: a range that straddles the removed range during compaction, a
// bound that would underflow, or a range outside the item buffer.
type InvariantError struct {
	Range Range
	// Removed is the range being compacted away, if any.
	Removed Range
	cause   error
}

func (e *InvariantError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("slicemap: invariant violated at %s (removed %s): %v", e.Range, e.Removed, e.cause)
	}
	return fmt.Sprintf("slicemap: invariant violated: %s overlaps removed %s", e.Range, e.Removed)
}

func (e *InvariantError) Unwrap() error { return e.cause }

var errOutOfBounds = errors.New("range outside item buffer")

// wrapCapacity turns a backend capacity failure into a CapacityError and
// passes any other error through.
func wrapCapacity(resource string, err error) error {
	if err == nil {
		return nil
	}
	var ce *CapacityError
	if errors.As(err, &ce) {
		return err
	}
	if errors.Is(err, ErrCapacityExceeded) || errors.Is(err, slotmap.ErrFull) {
		return &CapacityError{Resource: resource, cause: err}
	}
	return err
}
