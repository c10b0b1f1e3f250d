package domain

// Table is a synthetic dataset loaded from disk. Columns preserves the file's
// column order; Rows preserve natural row order.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}
