// Package reporting implements the Reporting Engine component (spec.md
// §4.G): six reports computed purely from journal lines, emitted as a
// typed, format-agnostic row model. Export is a separate concern handled
// by the export package.
package reporting

// ColumnType names the data kind a report column carries, so an exporter
// can render it without re-deriving type information from values.
type ColumnType string

const (
	ColumnText     ColumnType = "text"
	ColumnDate     ColumnType = "date"
	ColumnCurrency ColumnType = "currency"
)

// Alignment is the display alignment hint for a column.
type Alignment string

const (
	AlignLeft  Alignment = "left"
	AlignRight Alignment = "right"
)

// Column describes one field of a report's row schema.
type Column struct {
	Header string
	Key    string
	Width  int
	Type   ColumnType
	Align  Alignment
}

// Row is one line of report output, keyed by column Key.
type Row map[string]interface{}

// Report is the producer-agnostic output of every reporting function:
// a title, a column schema, and an ordered list of rows.
type Report struct {
	Title   string
	Columns []Column
	Rows    []Row
}
