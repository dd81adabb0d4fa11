package signal

import "fmt"

// AlignedTable is an ordered mapping from column name to an
// equal-length sample series. Every column has exactly the row count
// fixed at construction; Set rejects anything else. Setting an
// existing name replaces its values in place (last write wins) while
// keeping the column's original position, so column order stays
// deterministic across merges.
type AlignedTable struct {
	n     int
	names []string
	cols  map[string][]float64
}

// NewTable creates an empty table with a fixed row count.
func NewTable(n int) *AlignedTable {
	return &AlignedTable{n: n, cols: make(map[string][]float64)}
}

// Len returns the table's row count.
func (t *AlignedTable) Len() int { return t.n }

// Columns returns the column names in insertion order.
func (t *AlignedTable) Columns() []string {
	cp := make([]string, len(t.names))
	copy(cp, t.names)
	return cp
}

// Column returns the series stored under name.
func (t *AlignedTable) Column(name string) ([]float64, bool) {
	col, ok := t.cols[name]
	return col, ok
}

// Set stores a column. The series length must equal the table's row
// count. The slice is stored as-is; callers hand over ownership.
func (t *AlignedTable) Set(name string, col []float64) error {
	if len(col) != t.n {
		return fmt.Errorf("column %q has %d samples, table has %d rows", name, len(col), t.n)
	}
	if _, exists := t.cols[name]; !exists {
		t.names = append(t.names, name)
	}
	t.cols[name] = col
	return nil
}

// Merge copies every column of other into t in other's column order.
// Row counts must match. Name collisions resolve last-write-wins:
// other's values replace existing ones.
func (t *AlignedTable) Merge(other *AlignedTable) error {
	if other.n != t.n {
		return fmt.Errorf("cannot merge table with %d rows into table with %d rows", other.n, t.n)
	}
	for _, name := range other.names {
		if err := t.Set(name, other.cols[name]); err != nil {
			return err
		}
	}
	return nil
}
