package qrz

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"hamlookup/lib/csvtable"
	"hamlookup/lib/telemetry"

	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	responses map[string]string
	// keys records the session key used on each lookup, in order
	keys  []string
	calls []string
}

func (f *fakeFetcher) Lookup(_ context.Context, key, callsign string) (string, error) {
	f.keys = append(f.keys, key)
	f.calls = append(f.calls, callsign)
	res, ok := f.responses[callsign]
	if !ok {
		return "", fmt.Errorf("unexpected callsign %q", callsign)
	}
	return res, nil
}

func newHarvestEnv(t *testing.T, responses map[string]string) (*Harvester, *fakeFetcher, string) {
	dir := t.TempDir()

	session := NewSession(KeyCache{Path: filepath.Join(dir, "qrz.key")})
	require.NoError(t, session.Authenticate(Classification{Key: "k1"}))

	csvPath := filepath.Join(dir, "_emails.csv")
	sink := &csvtable.Writer{Path: csvPath, Header: HeaderRow()}
	require.NoError(t, sink.EnsureHeader())

	fetcher := &fakeFetcher{responses: responses}
	return &Harvester{
		Fetcher: fetcher,
		Session: session,
		Sink:    sink,
	}, fetcher, csvPath
}

func readRows(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestHarvestEndToEnd(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:qrz")
	defer cleanup()

	harvester, _, csvPath := newHarvestEnv(t, map[string]string{
		"W1AW":  `<QRZDatabase version="1.33"><call>W1AW</call><email>test@example.com</email></QRZDatabase>`,
		"K2ABC": `<QRZDatabase version="1.33"><call>K2ABC</call><state>NY</state></QRZDatabase>`,
	})

	result, err := harvester.Run(context.Background(), []string{"W1AW", "K2ABC"})
	require.NoError(t, err)
	require.Equal(t, 2, result.Processed)
	require.Equal(t, 1, result.Appended)

	rows := readRows(t, csvPath)
	require.Len(t, rows, 2) // header + W1AW
	require.Equal(t, HeaderRow(), rows[0])
	require.Equal(t, "W1AW", rows[1][0])
	require.Equal(t, "test@example.com", rows[1][fieldIndex(t, "email")])
}

func TestHarvestAbortsOnServerError(t *testing.T) {
	harvester, fetcher, csvPath := newHarvestEnv(t, map[string]string{
		"W1AW":   `<QRZDatabase version="1.33"><call>W1AW</call><email>a@example.com</email></QRZDatabase>`,
		"XX1XXX": `<QRZDatabase version="1.33"><Error>Not found: XX1XXX</Error></QRZDatabase>`,
		"K2ABC":  `<QRZDatabase version="1.33"><call>K2ABC</call><email>b@example.com</email></QRZDatabase>`,
	})

	result, err := harvester.Run(context.Background(), []string{"W1AW", "XX1XXX", "K2ABC"})

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	require.Equal(t, "Not found: XX1XXX", remote.Message)

	// the remaining callsign is never queried, rows already written stay
	require.Equal(t, []string{"W1AW", "XX1XXX"}, fetcher.calls)
	require.Equal(t, 1, result.Processed)
	rows := readRows(t, csvPath)
	require.Len(t, rows, 2)
	require.Equal(t, "W1AW", rows[1][0])
}

func TestHarvestAbortsOnMissingEnvelope(t *testing.T) {
	harvester, _, csvPath := newHarvestEnv(t, map[string]string{
		"W1AW": `<html>dead server</html>`,
	})

	_, err := harvester.Run(context.Background(), []string{"W1AW"})
	require.ErrorIs(t, err, ErrNoResponse)

	rows := readRows(t, csvPath)
	require.Len(t, rows, 1) // header only
}

func TestHarvestTracksKeyRotation(t *testing.T) {
	harvester, fetcher, _ := newHarvestEnv(t, map[string]string{
		"W1AW":  `<QRZDatabase version="1.33"><Key>k2</Key><call>W1AW</call></QRZDatabase>`,
		"K2ABC": `<QRZDatabase version="1.33"><Key>k2</Key><call>K2ABC</call></QRZDatabase>`,
	})

	_, err := harvester.Run(context.Background(), []string{"W1AW", "K2ABC"})
	require.NoError(t, err)

	// first lookup went out under the cached key, the second under the
	// rotated one
	require.Equal(t, []string{"k1", "k2"}, fetcher.keys)
	require.Equal(t, "k2", harvester.Session.Key())
}

func TestHarvestPreservesInputOrder(t *testing.T) {
	responses := map[string]string{}
	callsigns := []string{"W1AW", "K2ABC", "N3DEF", "W4GHI"}
	for _, c := range callsigns {
		responses[c] = fmt.Sprintf(`<QRZDatabase version="1.33"><call>%s</call><email>%s@example.com</email></QRZDatabase>`, c, c)
	}
	harvester, fetcher, csvPath := newHarvestEnv(t, responses)

	result, err := harvester.Run(context.Background(), callsigns)
	require.NoError(t, err)
	require.Equal(t, 4, result.Processed)
	require.Equal(t, 4, result.Appended)
	require.Equal(t, callsigns, fetcher.calls)

	rows := readRows(t, csvPath)
	require.Len(t, rows, 5)
	for i, c := range callsigns {
		require.Equal(t, c, rows[i+1][0])
	}
}

func TestReadCallsigns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "_callsigns.txt")
	require.NoError(t, os.WriteFile(path, []byte("W1AW\nK2ABC\n\nN3DEF\n"), 0o644))

	callsigns, err := ReadCallsigns(path)
	require.NoError(t, err)
	require.Equal(t, []string{"W1AW", "K2ABC", "N3DEF"}, callsigns)
}

func TestReadCallsignsMissingFile(t *testing.T) {
	_, err := ReadCallsigns(filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, ErrNoInputList)
}
