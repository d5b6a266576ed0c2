package protocol

// Column describes one result-set column: its name and the type tag the
// server declared for it. The declared type selects coercion logic.
type Column struct {
	Name         string
	DeclaredType string
}

// Result is a decoded response. Exactly one of {row set, update metadata,
// bare success} is populated; a result never carries both rows and update
// metadata.
type Result struct {
	Header *Header

	// Columns and Rows are populated for table results. Rows preserve
	// server order; each row aligns positionally with Columns. Cell
	// values are typed per the column's declared type, nil for NULL.
	Columns []Column
	Rows    [][]interface{}

	// AffectedRows and LastInsertID are populated for update results.
	AffectedRows int64
	LastInsertID int64
}

// IsUpdate reports whether the result carries update metadata.
func (r *Result) IsUpdate() bool {
	return r.Header != nil && r.Header.Kind == KindUpdate
}

// IsTable reports whether the result carries tabular data.
func (r *Result) IsTable() bool {
	return r.Header != nil && r.Header.Kind == KindTable
}
