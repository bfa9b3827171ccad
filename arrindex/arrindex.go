// Package arrindex resolves signed array offsets into bounded positions.
// Each array operation clamps differently; the functions here are pure so
// every rule is testable without a document tree.
package arrindex

import "errors"

var ErrOutOfBounds = errors.New("index out of bounds")

// Insert resolves i into a splice position for an array of length n.
// Negative i counts from the end. Valid positions are [0, n] inclusive;
// inserting at n appends.
func Insert(i, n int) (int, error) {
	if i < 0 {
		i = n + i
	}
	if i < 0 || i > n {
		return 0, ErrOutOfBounds
	}
	return i, nil
}

// Trim resolves the closed range [start, stop] into a half-open window
// [lo, hi) over an array of length n. Each bound is clamped
// independently; a raw start beyond n or a normalized start beyond the
// normalized stop yields the empty window, never an error.
func Trim(start, stop, n int) (lo, hi int) {
	if n == 0 {
		return 0, 0
	}
	ns := clamp(start, n)
	nstop := clamp(stop, n)
	if start > n || ns > nstop {
		return 0, 0
	}
	return ns, nstop + 1
}

// Pop resolves i into a removal position for an array of length n.
// Negative i counts from the end and clamps to 0; non-negative i clamps
// to the last element. ok is false when the array is empty.
func Pop(i, n int) (pos int, ok bool) {
	if n == 0 {
		return 0, false
	}
	return clamp(i, n), true
}

func clamp(i, n int) int {
	if i < 0 {
		return max(0, n+i)
	}
	return min(i, n-1)
}
