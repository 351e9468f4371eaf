// Package kernelerr defines the kernel's error taxonomy: sentinel errors
// wrapped with %w chains carrying context as they propagate up through the
// evaluator. The boolean engine adds the operation name; the evaluator
// passes a child's error up without recording which child failed.
package kernelerr

import (
	"errors"
	"fmt"
)

// Sentinel errors identifying the taxonomy from spec §6/§7. Use errors.Is
// against these to classify a failure returned by the kernel.
var (
	// ErrEmptyOperand marks an operation that received an empty operand
	// where the caller demanded a non-empty result (e.g. intersection of
	// zero meshes when a non-empty solid was required).
	ErrEmptyOperand = errors.New("kernelerr: empty operand")

	// ErrBooleanFailure marks a boolean operation that failed on both the
	// BSP and winding paths.
	ErrBooleanFailure = errors.New("kernelerr: boolean operation failed")

	// ErrInvalidMeshInput marks malformed primitive parameters: negative
	// or non-finite dimensions, or a facet count below 3 after defaulting.
	ErrInvalidMeshInput = errors.New("kernelerr: invalid mesh input")

	// ErrNodeIDNotFound marks update_subtree called with an id absent
	// from the current dependency graph.
	ErrNodeIDNotFound = errors.New("kernelerr: node id not found")
)

// Wrap attaches a context message to cause, preserving errors.Is/As over
// the wrapped sentinel.
func Wrap(context string, cause error) error {
	return fmt.Errorf("%s: %w", context, cause)
}

// Wrapf is Wrap with a formatted context message.
func Wrapf(cause error, format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, cause)...)
}
