// Package fcc looks up license records through the FCC license-view API and
// the ULS license detail pages.
package fcc

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"time"

	"hamlookup/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("lib/fcc")

// DefaultSearchURL is the license-view basicSearch endpoint.
const DefaultSearchURL = "http://data.fcc.gov/api/license-view/basicSearch/getLicenses"

// ErrNotFound indicates the search returned neither a license nor a
// structured error payload.
var ErrNotFound = errors.New("fcc: no license found")

// RemoteError is a structured error payload from the license-view API.
type RemoteError struct {
	Code string
	Msg  string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("fcc: api error %s: %s", e.Code, e.Msg)
}

// License is one entry of the basicSearch response.
type License struct {
	Name      string `xml:"licName"`
	FRN       string `xml:"frn"`
	Callsign  string `xml:"callsign"`
	Category  string `xml:"categoryDesc"`
	Service   string `xml:"serviceDesc"`
	Status    string `xml:"statusDesc"`
	Expires   string `xml:"expiredDate"`
	LicenseID string `xml:"licenseID"`
	DetailURL string `xml:"licDetailURL"`
}

type searchResponse struct {
	XMLName  xml.Name   `xml:"Response"`
	Status   string     `xml:"status,attr"`
	Licenses []License  `xml:"Licenses>License"`
	Errors   []apiError `xml:"Errors>Err"`
}

type apiError struct {
	Code string `xml:"code,attr"`
	Msg  string `xml:"msg,attr"`
}

type Client struct {
	http      *resty.Client
	searchURL string
}

type ClientOptions struct {
	// SearchURL defaults to DefaultSearchURL.
	SearchURL string
	Timeout   time.Duration
}

func NewClient(opts ClientOptions) *Client {
	if opts.SearchURL == "" {
		opts.SearchURL = DefaultSearchURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}

	client := resty.New()
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(opts.Timeout)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	telemetry.InstrumentResty(client, "lib/fcc/http")

	return &Client{
		http:      client,
		searchURL: opts.SearchURL,
	}
}

// Search queries the basicSearch API and returns the first matching
// license. The API answers well-formed XML, so unlike the QRZ side this is
// a real document decode.
func (c *Client) Search(ctx context.Context, value string) (License, error) {
	ctx, span := tracer.Start(ctx, "client:Search")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("format", "xml").
		SetQueryParam("searchValue", value).
		Get(c.searchURL)
	if err != nil {
		return License{}, fmt.Errorf("fcc: search: %w", err)
	}
	if res.IsError() {
		return License{}, fmt.Errorf("fcc: search: status %s", res.Status())
	}

	var parsed searchResponse
	if err := xml.Unmarshal(res.Body(), &parsed); err != nil {
		return License{}, fmt.Errorf("fcc: decode search response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return License{}, &RemoteError{
			Code: parsed.Errors[0].Code,
			Msg:  parsed.Errors[0].Msg,
		}
	}
	if len(parsed.Licenses) == 0 {
		return License{}, ErrNotFound
	}
	return parsed.Licenses[0], nil
}
