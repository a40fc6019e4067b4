package lightcurve

import (
	"fmt"
	"math"
)

// Value is a single table cell. Masked marks cells the source format
// flagged as unusable, independent of the stored float.
type Value struct {
	Float  float64 `json:"float"`
	Masked bool    `json:"masked,omitempty"`
}

// Num returns an unmasked cell holding f.
func Num(f float64) Value {
	return Value{Float: f}
}

// MaskedCell returns a cell flagged unusable by the source format.
func MaskedCell() Value {
	return Value{Masked: true}
}

// Valid reports whether the cell is usable: present and finite.
func (v Value) Valid() bool {
	return !v.Masked && !math.IsNaN(v.Float) && !math.IsInf(v.Float, 0)
}

// Column is a named array of cells, one per row.
type Column struct {
	Name  string  `json:"name"`
	Cells []Value `json:"cells"`
}

// Table is an ordered set of equal-length named columns.
type Table struct {
	cols  []Column
	index map[string]int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// AddColumn appends a column. Every column must have the same length as
// the first one added, and names must be unique.
func (t *Table) AddColumn(name string, cells []Value) error {
	if _, dup := t.index[name]; dup {
		return fmt.Errorf("duplicate column %q", name)
	}
	if len(t.cols) > 0 && len(cells) != len(t.cols[0].Cells) {
		return fmt.Errorf("column %q has %d rows, table has %d", name, len(cells), len(t.cols[0].Cells))
	}
	t.index[name] = len(t.cols)
	t.cols = append(t.cols, Column{Name: name, Cells: cells})
	return nil
}

// Col returns the named column, reporting whether it exists.
func (t *Table) Col(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return &t.cols[i], true
}

// Columns returns the columns in insertion order.
func (t *Table) Columns() []Column {
	return t.cols
}

// NumRows returns the row count shared by all columns.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Cells)
}

// Header is the read-only keyword lookup supplied by the container
// format. Lookup returns the numeric value of a keyword, reporting
// whether the keyword is present.
type Header interface {
	Lookup(keyword string) (float64, bool)
}

// HeaderMap is a Header backed by a plain map.
type HeaderMap map[string]float64

// Lookup implements Header.
func (h HeaderMap) Lookup(keyword string) (float64, bool) {
	v, ok := h[keyword]
	return v, ok
}

// Result is the ordered output of a conversion run: the output column
// names (input order plus the three derived columns appended), one
// record per surviving input row in original order, the count of rows
// dropped by the validity filter, and the zero point the run resolved.
type Result struct {
	Columns   []string
	Records   [][]Value
	Dropped   int
	ZeroPoint float64
}
