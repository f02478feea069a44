package models

// Record is one extracted listing entry. Fields are flat strings; a cell that
// is missing on the page is kept as an empty string so every record carries
// the full schema.
type Record map[string]string

// FieldOrder is the fixed column schema shared by all output sinks. Sinks
// write every field for every record, in this order, so the schema never
// drifts between rows.
var FieldOrder = []string{
	"Name",
	"Desc",
	"Category",
	"Blockchain",
	"Device",
	"Status",
	"NFT",
	"F2P",
	"P2E",
	"Score",
	"Link",
}

// PageResult is the outcome of scraping a single listing page, tagged with
// the page number it originated from.
type PageResult struct {
	Page    int
	Records []Record
	Err     error
}
