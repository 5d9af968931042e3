package qrz

// Field binds a QRZ XML tag to the human-readable label used for the CSV
// header row and console display.
type Field struct {
	Tag   string
	Label string
}

// Schema is the fixed, ordered list of callsign record fields. Its order
// defines the column order of the persisted CSV table, so entries must not
// be reordered.
var Schema = []Field{
	{"call", "Callsign"},
	{"xref", "Cross Reference"},
	{"aliases", "Aliases"},
	{"dxcc", "DXCC Entity ID"},
	{"fname", "First Name"},
	{"name", "Last Name"},
	{"addr1", "Address"},
	{"addr2", "City"},
	{"state", "State"},
	{"zip", "ZIP"},
	{"country", "Country"},
	{"ccode", "DXCC Entity Code"},
	{"lat", "Latitude"},
	{"lon", "Longitude"},
	{"grid", "Grid Square Locator"},
	{"county", "County"},
	{"fips", "FIPS County Identifier"},
	{"land", "DXCC Country Name"},
	{"efdate", "License Effective Date"},
	{"expdate", "License Expiration Date"},
	{"p_call", "Previous Callsign"},
	{"class", "License Class"},
	{"codes", "License Codes"},
	{"qslmgr", "QSL Manager"},
	{"email", "Email Address"},
	{"url", "QRZ webpage URL"},
	{"u_views", "QRZ webpage views"},
	{"bio", "Bio HTML Length (bytes)"},
	{"biodate", "Last Bio Update"},
	{"image", "Image URL"},
	{"imageinfo", "Image Specs (height:width:bytes"},
	{"serial", "QRZ serial #"},
	{"moddate", "QRZ Record Last Modified"},
	{"MSA", "Metro Service Area"},
	{"AreaCode", "Area Code"},
	{"TimeZone", "Time Zone"},
	{"GMTOffset", "GMT Offset"},
	{"DST", "Observes Daylight Savings Time"},
	{"eqsl", "Accepts eQSL"},
	{"mqsl", "Returns paper QSL"},
	{"cqzone", "CQ Zone Identifier"},
	{"ituzone", "ITU Zone Identifier"},
	{"born", "Operator's Year of Birth"},
	{"user", "QRZ Record Manager"},
	{"lotw", "Accepts LOTW"},
	{"iota", "IOTA Designator"},
	{"geoloc", "Source of Lat/Long data"},
}

// HeaderRow returns the schema labels in column order, suitable for the CSV
// header record.
func HeaderRow() []string {
	row := make([]string, len(Schema))
	for i, f := range Schema {
		row[i] = f.Label
	}
	return row
}

// Record holds the fields extracted from a single callsign response, keyed
// by tag. Fields absent from the response are simply missing from the map
// and read back as the empty string.
type Record map[string]string

func NewRecord() Record {
	return make(Record, len(Schema))
}

func (r Record) Get(tag string) string {
	return r[tag]
}

// Row returns the record's values in schema column order.
func (r Record) Row() []string {
	row := make([]string, len(Schema))
	for i, f := range Schema {
		row[i] = r[f.Tag]
	}
	return row
}

// HasEmail reports whether the record resolved an email address, the
// condition for it to be persisted.
func (r Record) HasEmail() bool {
	return r["email"] != ""
}

// FieldObserver receives each field as it is extracted, for console display.
type FieldObserver func(label, value string)

// Assemble populates rec from one raw response, checking every schema field
// independently. Markers absent from the response leave the field at its
// empty default. The order of field checks is immaterial.
func Assemble(raw string, rec Record, observe FieldObserver) {
	for _, f := range Schema {
		value, ok := Lookup(f.Tag+">", raw)
		if !ok {
			continue
		}
		rec[f.Tag] = value
		if observe != nil {
			observe(f.Label, value)
		}
	}
}
