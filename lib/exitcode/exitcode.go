// Package exitcode maps the error taxonomy onto the legacy bitmask exit
// codes expected by the CLI contract.
package exitcode

import (
	"errors"

	"hamlookup/lib/fcc"
	"hamlookup/lib/qrz"
)

const (
	// NoResponse — no response from the remote service.
	NoResponse = 1 << iota
	// RemoteError — the remote service reported a structured error.
	RemoteError
	// NoSessionKey — no session key could be obtained.
	NoSessionKey
	// MissingInput — the callsign input list is missing.
	MissingInput
)

// FromError returns the bitmask for err. Multiple bits combine when err
// wraps several detected conditions. Errors outside the taxonomy map to
// NoResponse, the closest legacy meaning of "the exchange did not happen".
func FromError(err error) int {
	if err == nil {
		return 0
	}

	code := 0
	if errors.Is(err, qrz.ErrNoResponse) {
		code |= NoResponse
	}
	var transport *qrz.TransportError
	if errors.As(err, &transport) {
		code |= NoResponse
	}
	var remote *qrz.RemoteError
	if errors.As(err, &remote) {
		code |= RemoteError
	}
	var fccRemote *fcc.RemoteError
	if errors.As(err, &fccRemote) {
		code |= RemoteError
	}
	if errors.Is(err, qrz.ErrNoSessionKey) {
		code |= NoSessionKey
	}
	if errors.Is(err, qrz.ErrNoInputList) {
		code |= MissingInput
	}

	if code == 0 {
		code = NoResponse
	}
	return code
}
