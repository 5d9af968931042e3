package qrz

import (
	"errors"
	"fmt"
)

// ErrNoResponse indicates the transport delivered a payload but the
// QRZDatabase envelope is absent from it.
var ErrNoResponse = errors.New("qrz: no response envelope from server")

// ErrNoSessionKey indicates a login response carried no session key. The
// client cannot proceed without authentication.
var ErrNoSessionKey = errors.New("qrz: server issued no session key")

// ErrNoInputList indicates the callsign input list does not exist. The
// harvest cannot run without at least one target.
var ErrNoInputList = errors.New("qrz: callsign input list does not exist")

// TransportError wraps a failure to complete an HTTP exchange at all, either
// a connection failure or a non-2xx status.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("qrz: transport: %s", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError is a structured error payload reported by the server, e.g.
// "Not found: XX1XXX" or "Session Timeout".
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("qrz: server reported error: %s", e.Message)
}
