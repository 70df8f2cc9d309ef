// Package bvherr defines the sentinel errors for the three precondition
// violations a BVH can report, per the error handling design: an
// out-of-range primitive index passed to Optimize, a primitive whose AABB
// contains a non-finite value, and an internal invariant failure surfaced
// by a debug consistency check.
package bvherr

import "github.com/pkg/errors"

// ErrIndexOutOfRange is the sentinel for an Optimize call given a primitive
// index >= the tree's primitive count.
var ErrIndexOutOfRange = errors.New("bvh: primitive index out of range")

// ErrNonFiniteAABB is the sentinel for a primitive AABB containing NaN or
// +/-inf where a finite box was required.
var ErrNonFiniteAABB = errors.New("bvh: non-finite AABB")

// ErrInconsistentTree is the sentinel for an internal invariant failure
// detected by a debug consistency check.
var ErrInconsistentTree = errors.New("bvh: inconsistent tree")

// WrapIndexOutOfRange wraps ErrIndexOutOfRange with the offending index and
// the tree's primitive count, preserving errors.Is/errors.Cause recovery of
// the sentinel.
func WrapIndexOutOfRange(index, count int) error {
	return errors.Wrapf(ErrIndexOutOfRange, "index %d, primitive count %d", index, count)
}

// WrapNonFiniteAABB wraps ErrNonFiniteAABB with the offending primitive index.
func WrapNonFiniteAABB(index int) error {
	return errors.Wrapf(ErrNonFiniteAABB, "primitive index %d", index)
}

// WrapInconsistentTree wraps ErrInconsistentTree with a human-readable
// description of which invariant failed.
func WrapInconsistentTree(reason string) error {
	return errors.Wrapf(ErrInconsistentTree, "%s", reason)
}
