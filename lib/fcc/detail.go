package fcc

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"hamlookup/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// The ULS detail page is a deeply nested table layout with no usable ids or
// classes, hence the long nth-child selector chains. They were derived from
// the live page and will break if the FCC reworks the layout.
const (
	selNameAddr    = "body > table:nth-child(4) > tbody > tr > td:nth-child(2) > div > table:nth-child(2) > tbody > tr:nth-child(4) > td > table > tbody > tr:nth-child(3) > td:nth-child(1)"
	selLicenseType = "body > table:nth-child(4) > tbody > tr > td:nth-child(2) > div > table:nth-child(2) > tbody > tr:nth-child(4) > td > table > tbody > tr:nth-child(1) > td:nth-child(4)"
	selClass       = "body > table:nth-child(4) > tbody > tr > td:nth-child(2) > div > table:nth-child(2) > tbody > tr:nth-child(6) > td > table > tbody > tr:nth-child(1) > td:nth-child(2)"
	selPhoneEmail  = "body > table:nth-child(4) > tbody > tr > td:nth-child(2) > div > table:nth-child(2) > tbody > tr:nth-child(4) > td > table > tbody > tr:nth-child(3) > td:nth-child(2) > p"
)

var phoneRegex = regexp.MustCompile(`\(\d{3}\)\d{3}-\d{4}`)

// Detail holds the fields scraped from a ULS license detail page. Pieces
// missing from the page are left empty rather than failing the scrape.
type Detail struct {
	Address string
	City    string
	State   string
	Zip     string
	Attn    string
	Type    string
	Class   string
	Phone   string
	Fax     string
	Email   string
}

// Detail fetches and scrapes the license detail page referenced by a
// basicSearch result.
func (c *Client) Detail(ctx context.Context, link string) (Detail, error) {
	ctx, span := tracer.Start(ctx, "client:Detail")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return Detail{}, fmt.Errorf("fcc: detail: %w", err)
	}
	if res.IsError() {
		return Detail{}, fmt.Errorf("fcc: detail: status %s", res.Status())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return Detail{}, fmt.Errorf("fcc: parse detail page: %w", err)
	}
	return ParseDetail(doc), nil
}

// ParseDetail extracts the licensee address, license type, operator class
// and contact fields from a detail page document.
func ParseDetail(doc *goquery.Document) Detail {
	var d Detail

	if sel := doc.Find(selNameAddr).First(); len(sel.Nodes) > 0 {
		text := strings.TrimLeft(htmlutil.Text(sel.Nodes[0]), " \t\n")
		d.Address, d.City, d.State, d.Zip, d.Attn = parseAddressBlock(text)
	}
	if sel := doc.Find(selLicenseType).First(); len(sel.Nodes) > 0 {
		d.Type = strings.TrimSpace(htmlutil.Text(sel.Nodes[0]))
	}
	if sel := doc.Find(selClass).First(); len(sel.Nodes) > 0 {
		d.Class = strings.TrimSpace(htmlutil.Text(sel.Nodes[0]))
	}
	if sel := doc.Find(selPhoneEmail).First(); len(sel.Nodes) > 0 {
		text := strings.TrimSpace(htmlutil.Text(sel.Nodes[0]))
		d.Phone, d.Fax, d.Email = parseContactBlock(text)
	}
	return d
}

// parseAddressBlock splits the licensee name/address cell. Line 0 is the
// licensee name (the API record carries it already), line 1 the street
// address, line 2 "City, ST", line 3 the zip, and line 5 an optional
// attention line.
func parseAddressBlock(text string) (addr, city, state, zip, attn string) {
	lines := strings.Split(text, "\n")
	if len(lines) > 1 {
		addr = lines[1]
	}
	if len(lines) > 2 {
		cityState := strings.Split(lines[2], ", ")
		if len(cityState) == 2 {
			city = cityState[0]
			state = cityState[1]
		}
	}
	if len(lines) > 3 {
		zip = lines[3]
	}
	if len(lines) == 6 {
		attn = lines[5]
	}
	return addr, city, state, zip, attn
}

// parseContactBlock splits the "P:...:F:...:E:..." contact paragraph on
// colons: segment 1 carries the phone, segment 2 the fax, and with four
// segments the last one is the email address.
func parseContactBlock(text string) (phone, fax, email string) {
	parts := strings.Split(text, ":")
	if len(parts) > 1 {
		phone = phoneRegex.FindString(strings.TrimSpace(parts[1]))
	}
	if len(parts) > 2 {
		fax = phoneRegex.FindString(strings.TrimSpace(parts[2]))
	}
	if len(parts) == 4 {
		email = htmlutil.StripNonPrintable(strings.TrimSpace(parts[3]))
	}
	return phone, fax, email
}
