package assets

import (
	"errors"
	"fmt"
)

// Sentinel errors for the assets package.
var (
	// ErrNotFound is returned when a name does not resolve to a file under the root.
	// The decoder is never invoked for a missing asset.
	ErrNotFound = errors.New("assets: not found")

	// ErrDecode matches every *DecodeError.
	ErrDecode = errors.New("assets: decode failed")

	// ErrInvalidName is returned for empty names, absolute paths and paths
	// escaping the assets root.
	ErrInvalidName = errors.New("assets: invalid name")

	// ErrTypeMismatch matches every *TypeMismatchError.
	ErrTypeMismatch = errors.New("assets: type mismatch")

	// ErrKindRegistered is returned when a payload type or kind name is
	// registered twice on a Library.
	ErrKindRegistered = errors.New("assets: kind already registered")

	// ErrKindNotRegistered is returned when a Library has no cache for the
	// requested payload type.
	ErrKindNotRegistered = errors.New("assets: kind not registered")

	// ErrNoPayload is wrapped in a *DecodeError when a decoder reports success
	// without returning a payload.
	ErrNoPayload = errors.New("assets: decoder returned no payload")

	// ErrRefCountUnderflow is the panic value raised when a shared count is
	// decremented past zero. Handles own exactly one unit each and forget it
	// on Release, so this indicates memory corruption or unsafe copying.
	ErrRefCountUnderflow = errors.New("assets: reference count underflow")
)

// DecodeError is returned when an asset exists but could not be read or
// decoded into a payload.
type DecodeError struct {
	Identity Identity
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("assets: decode %s: %v", e.Identity, e.Err)
}

// Unwrap returns the decoder error.
func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// TypeMismatchError is returned by a Library when an identity is already
// cached under a different kind than the one requested.
type TypeMismatchError struct {
	Identity  Identity
	Cached    string
	Requested string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("assets: %s is cached as %s, requested as %s", e.Identity, e.Cached, e.Requested)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }
