package pipeline

// Cell is one decoded cell of tabular input. Together with Row it encodes
// three states per column: absent (no map entry), present but blank
// (Null=true), and present with a value.
type Cell struct {
	Value string
	Null  bool // the cell existed in the file but was empty
}

// Row is one decoded line of tabular input, keyed by header column name.
// Rows are produced by ParseCSV and consumed immediately by NormalizeRow;
// they are not retained after ingestion.
type Row map[string]Cell

// Lookup returns the value for a column. ok is false when the column is
// absent from the row or its cell was blank; normalization treats both the
// same way.
func (r Row) Lookup(key string) (string, bool) {
	c, exists := r[key]
	if !exists || c.Null {
		return "", false
	}
	return c.Value, true
}
