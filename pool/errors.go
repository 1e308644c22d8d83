package pool

import (
	"errors"
	"fmt"
)

// ErrInvalidKey is returned by Acquire when the key is empty or does not
// start with one of the accepted URI schemes. This is a cheap syntactic
// gate, not a full URI validation; the driver performs the real parse.
var ErrInvalidKey = errors.New("pool: key is not a recognized connection URI")

// ErrClosed is returned by Acquire after Close.
var ErrClosed = errors.New("pool: closed")

// DialError reports a failed connection establishment. The failed
// placeholder has already been removed from the pool when this error is
// observed, so a later Acquire for the same key retries the dial.
//
// Fingerprint identifies the key without exposing the secret-bearing URI.
type DialError struct {
	Fingerprint string
	Err         error
}

func (e *DialError) Error() string {
	return fmt.Sprintf("pool: dial uri#%s: %v", e.Fingerprint, e.Err)
}

func (e *DialError) Unwrap() error { return e.Err }
