package qrz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifySuccess(t *testing.T) {
	raw := `<?xml version="1.0" ?>
<QRZDatabase version="1.33">
 <Session>
   <Key>2331uf894c4bd29f3923f3bacf02c532d7bd9</Key>
   <Count>123</Count>
   <SubExp>Wed Jan 1 12:34:03 2013</SubExp>
   <GMTime>Sun Aug 16 03:51:47 2012</GMTime>
 </Session>
</QRZDatabase>`

	cls := Classify(raw)
	require.Equal(t, Success, cls.Outcome)
	require.Equal(t, "2331uf894c4bd29f3923f3bacf02c532d7bd9", cls.Key)
	require.Equal(t, "123", cls.Count)
	require.Equal(t, "Wed Jan 1 12:34:03 2013", cls.SubExp)
	require.Equal(t, "Sun Aug 16 03:51:47 2012", cls.Timestamp)
	require.Empty(t, cls.Remark)
	require.Empty(t, cls.ServerError)
}

func TestClassifyRemarkCoOccursWithSession(t *testing.T) {
	cls := Classify(loginFixture)
	require.Equal(t, SuccessWithRemark, cls.Outcome)
	require.Equal(t, "cpu: 0.023s", cls.Remark)
	// remark is informational, session metadata is still extracted
	require.Equal(t, "bfebb4159a07f84b2e988ab59192e4d5", cls.Key)
}

func TestClassifyErrorReported(t *testing.T) {
	raw := `<QRZDatabase version="1.33"><Session><Error>Not found: XX1XXX</Error></Session></QRZDatabase>`

	cls := Classify(raw)
	require.Equal(t, ErrorReported, cls.Outcome)
	require.Equal(t, "Not found: XX1XXX", cls.ServerError)
}

func TestClassifyErrorWinsOverRemark(t *testing.T) {
	raw := `<QRZDatabase version="1.33"><Session><Remark>cpu: 0.1s</Remark><Error>Session Timeout</Error></Session></QRZDatabase>`

	cls := Classify(raw)
	require.Equal(t, ErrorReported, cls.Outcome)
	require.Equal(t, "Session Timeout", cls.ServerError)
	require.Equal(t, "cpu: 0.1s", cls.Remark)
}

func TestClassifyNoResponse(t *testing.T) {
	testCases := []string{
		"",
		"<html><body>502 Bad Gateway</body></html>",
		"<QRZDatabase>", // missing the version attribute space
	}
	for _, raw := range testCases {
		cls := Classify(raw)
		require.Equal(t, NoResponse, cls.Outcome, "raw: %q", raw)
	}
}
