package codec

import "errors"

var (
	// ErrDecode marks malformed persisted bytes; loading the affected
	// document cannot proceed.
	ErrDecode = errors.New("decode error")

	// ErrShortRead marks truncated input. Distinct from ErrDecode so the
	// host can apply its partial-read retry policy.
	ErrShortRead = errors.New("short read")
)
