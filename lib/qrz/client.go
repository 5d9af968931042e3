package qrz

import (
	"context"
	"fmt"
	"time"

	"hamlookup/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("lib/qrz")

// DefaultBaseURL is the QRZ XML interface endpoint. The interface does not
// use cookies, Javascript or TLS; login credentials transit in cleartext.
const DefaultBaseURL = "http://xmldata.qrz.com/xml/"

type Client struct {
	http *resty.Client
	base string
}

type ClientOptions struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	Timeout time.Duration
}

func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	telemetry.InstrumentResty(client, "lib/qrz/http")

	return &Client{
		http: client,
		base: opts.BaseURL,
	}
}

func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	if res.IsError() {
		return "", &TransportError{Err: fmt.Errorf("status %s", res.Status())}
	}
	return res.String(), nil
}

// Login issues the authentication request and returns the raw response text
// for classification. The credentials are sent as cleartext query
// parameters; callers are expected to have warned the user beforehand.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	return c.fetch(ctx, fmt.Sprintf("%s?username=%s;password=%s", c.base, username, password))
}

// Lookup queries one callsign under the given session key and returns the
// raw response text.
func (c *Client) Lookup(ctx context.Context, key, callsign string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:Lookup")
	defer span.End()

	return c.fetch(ctx, fmt.Sprintf("%scurrent/?s=%s;callsign=%s", c.base, key, callsign))
}
