package qrz

import "strings"

// Outcome is the classifier's verdict on a raw server response.
type Outcome int

const (
	// Success carries session metadata and/or record fields.
	Success Outcome = iota
	// SuccessWithRemark is informational and non-fatal.
	SuccessWithRemark
	// ErrorReported means the server returned a structured error payload.
	// Fatal: the remaining work is aborted.
	ErrorReported
	// NoResponse means the transport delivered something, but the expected
	// QRZDatabase envelope is absent. Fatal.
	NoResponse
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case SuccessWithRemark:
		return "success with remark"
	case ErrorReported:
		return "error reported"
	case NoResponse:
		return "no response"
	}
	return "unknown"
}

// envelopeMarker opens every response from the server. The trailing space is
// deliberate: the element carries a version attribute.
const envelopeMarker = "<QRZDatabase "

// Classification is the result of inspecting one raw response. Markers are
// checked independently, so session metadata, a remark and an error can all
// co-occur in the same response.
type Classification struct {
	Outcome Outcome

	// session metadata
	Key       string
	Count     string
	SubExp    string
	Timestamp string

	Remark      string
	ServerError string
}

// Classify inspects raw response text by substring presence against the
// fixed set of known markers. Presence testing tolerates the partially
// malformed payloads the server is known to produce, where a strict XML
// parse would fail outright.
func Classify(raw string) Classification {
	var c Classification
	if !strings.Contains(raw, envelopeMarker) {
		c.Outcome = NoResponse
		return c
	}

	c.Key, _ = Lookup("Key>", raw)
	c.Count, _ = Lookup("Count>", raw)
	c.SubExp, _ = Lookup("SubExp>", raw)
	c.Timestamp, _ = Lookup("GMTime>", raw)

	if remark, ok := Lookup("Remark>", raw); ok {
		c.Remark = remark
		c.Outcome = SuccessWithRemark
	}
	if msg, ok := Lookup("Error>", raw); ok {
		c.ServerError = msg
		c.Outcome = ErrorReported
	}
	return c
}
