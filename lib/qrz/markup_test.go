package qrz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const loginFixture = `<?xml version="1.0" encoding="utf-8" ?>
<QRZDatabase version="1.24" xmlns="http://xmldata.qrz.com">
<Session>
<Key>bfebb4159a07f84b2e988ab59192e4d5</Key>
<Count>7</Count>
<SubExp>non-subscriber</SubExp>
<GMTime>Thu Jan 16 18:28:18 2020</GMTime>
<Remark>cpu: 0.023s</Remark>
</Session>
</QRZDatabase>`

func TestSpanExactValue(t *testing.T) {
	testCases := []struct {
		tag      string
		expected string
	}{
		{"Key>", "bfebb4159a07f84b2e988ab59192e4d5"},
		{"Count>", "7"},
		{"SubExp>", "non-subscriber"},
		{"GMTime>", "Thu Jan 16 18:28:18 2020"},
		{"Remark>", "cpu: 0.023s"},
	}

	for _, test := range testCases {
		start, end := Span(test.tag, loginFixture)
		require.Equal(t, test.expected, loginFixture[start:end])
	}
}

func TestSpanNoTrimming(t *testing.T) {
	raw := `<QRZDatabase version="1.33"><qslmgr> via N4XYZ </qslmgr></QRZDatabase>`
	start, end := Span("qslmgr>", raw)
	require.Equal(t, " via N4XYZ ", raw[start:end])
}

func TestSpanAbsentTagSentinel(t *testing.T) {
	start, end := Span("Key>", "no markers here")
	require.Equal(t, len("<Key>")-1, start)
	require.Equal(t, -1, end)
	require.Less(t, end, start)
}

func TestLookup(t *testing.T) {
	value, ok := Lookup("Key>", loginFixture)
	require.True(t, ok)
	require.Equal(t, "bfebb4159a07f84b2e988ab59192e4d5", value)

	_, ok = Lookup("Error>", loginFixture)
	require.False(t, ok)
}

func TestLookupDoesNotMatchSuffixTags(t *testing.T) {
	// <name> must not be found inside <fname>
	raw := `<QRZDatabase version="1.33"><fname>Carl</fname></QRZDatabase>`
	_, ok := Lookup("name>", raw)
	require.False(t, ok)

	value, ok := Lookup("fname>", raw)
	require.True(t, ok)
	require.Equal(t, "Carl", value)
}
