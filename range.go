package slicemap

import (
	"fmt"

	"github.com/hupe1980/slicemap/internal/conv"
)

// Range is the half-open span [Start, End) of one slice in the item buffer.
//
// Bounds are 32-bit, which caps a container at MaxItems items.
type Range struct {
	Start uint32
	End   uint32
}

// Len returns the number of items covered by r.
func (r Range) Len() int {
	return int(r.End - r.Start)
}

// IsEmpty reports whether r covers no items.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// String returns r in "[start, end)" form.
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// rebase lowers r by the width of removed when r lies after it. It reports
// whether r moved.
//
// Panics with *InvariantError if r overlaps removed, since live ranges never
// overlap.
func (r *Range) rebase(removed Range) bool {
	if r.Start < removed.End {
		if r.End > removed.Start {
			panic(&InvariantError{Range: *r, Removed: removed})
		}
		return false
	}

	width := removed.End - removed.Start
	start, err := conv.SubUint32(r.Start, width)
	if err != nil {
		panic(&InvariantError{Range: *r, Removed: removed, cause: err})
	}
	end, err := conv.SubUint32(r.End, width)
	if err != nil {
		panic(&InvariantError{Range: *r, Removed: removed, cause: err})
	}
	r.Start, r.End = start, end
	return true
}
