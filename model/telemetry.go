package model

// Row is one record of a telemetry table: an ordered sequence of text
// fields. Fields carry no implicit typing; consumers parse the columns
// they need.
type Row []string

// Field returns the i-th field and whether it exists.
func (r Row) Field(i int) (string, bool) {
	if i < 0 || i >= len(r) {
		return "", false
	}
	return r[i], true
}

// Table is an ordered sequence of rows. Insertion order matches file
// order (minus the discarded header) and is semantically significant:
// the table is a time series indexed by position.
type Table []Row

// Row returns the i-th row and whether it exists.
func (t Table) Row(i int) (Row, bool) {
	if i < 0 || i >= len(t) {
		return nil, false
	}
	return t[i], true
}

// Len returns the number of data rows.
func (t Table) Len() int { return len(t) }

// Position is a spacecraft position decoded from a trajectory row.
// Units are whatever the recorded telemetry used; the replay core never
// does arithmetic on them, it only hands them to presentation.
type Position struct {
	X float64
	Y float64
	Z float64
}
