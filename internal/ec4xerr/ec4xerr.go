// Package ec4xerr defines sentinel errors used at the engine's
// boundaries (persistence, CLI, config loading). The engine core
// itself never returns a Go error from resolveTurn/validate/projectFor
// — rejections and poisoning are typed data, per spec.md section 7.
package ec4xerr

import "errors"

var (
	// ErrGameNotFound is returned by a persistence.Store when no
	// checkpoint exists for a requested game id.
	ErrGameNotFound = errors.New("ec4x: game not found")

	// ErrTurnMismatch is returned when a checkpoint is requested for a
	// turn that has not yet been appended, or when a write targets a
	// turn other than the store's next expected turn (append-only).
	ErrTurnMismatch = errors.New("ec4x: turn mismatch")

	// ErrChecksumMismatch is returned by replay verification when a
	// replayed state does not match the persisted snapshot bit-for-bit.
	ErrChecksumMismatch = errors.New("ec4x: replay checksum mismatch")

	// ErrInvalidConfig is returned by config.Load when an override file
	// fails validation.
	ErrInvalidConfig = errors.New("ec4x: invalid configuration")
)
