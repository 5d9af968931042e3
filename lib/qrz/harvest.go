package qrz

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"strings"
)

// Fetcher abstracts the per-callsign query so the harvest loop can be
// exercised without a live server.
type Fetcher interface {
	Lookup(ctx context.Context, key, callsign string) (string, error)
}

// Sink receives one row, in schema column order, for every record that
// resolved an email address.
type Sink interface {
	Append(row []string) error
}

// ReadCallsigns reads the newline-delimited callsign input list, in order,
// skipping blank lines. A missing list is a fatal precondition, reported as
// ErrNoInputList.
func ReadCallsigns(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, ErrNoInputList
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var callsigns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		callsigns = append(callsigns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return callsigns, nil
}

// Harvester drives the sequential per-callsign workflow: fetch, classify,
// track key rotation, assemble the record, and append it to the sink when
// an email address resolved.
type Harvester struct {
	Fetcher Fetcher
	Session *Session
	Sink    Sink
	// Observe, when set, receives every extracted field for display.
	Observe FieldObserver
}

// Result summarizes one harvest run.
type Result struct {
	Processed int
	Appended  int
}

// Run processes callsigns strictly in order, one request in flight at a
// time. A fatal classification (ErrorReported or NoResponse) aborts the
// remaining list immediately; rows already appended stay on disk.
func (h *Harvester) Run(ctx context.Context, callsigns []string) (Result, error) {
	ctx, span := tracer.Start(ctx, "harvester:Run")
	defer span.End()

	var res Result
	for _, callsign := range callsigns {
		raw, err := h.Fetcher.Lookup(ctx, h.Session.Key(), callsign)
		if err != nil {
			return res, err
		}

		cls := Classify(raw)
		switch cls.Outcome {
		case NoResponse:
			return res, ErrNoResponse
		case ErrorReported:
			return res, &RemoteError{Message: cls.ServerError}
		}
		if cls.Remark != "" {
			slog.InfoContext(ctx, "server remark", "callsign", callsign, "remark", cls.Remark)
		}

		key, rotated, err := h.Session.OnResponse(cls)
		if err != nil {
			return res, err
		}
		if rotated {
			slog.InfoContext(ctx, "session key rotated", "key", key)
		}

		rec := NewRecord()
		Assemble(raw, rec, h.Observe)
		res.Processed++

		if !rec.HasEmail() {
			continue
		}
		if err := h.Sink.Append(rec.Row()); err != nil {
			return res, err
		}
		res.Appended++
		slog.DebugContext(ctx, "record appended", "callsign", rec.Get("call"))
	}
	return res, nil
}
