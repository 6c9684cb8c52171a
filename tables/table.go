/*
Package tables implements a small string-celled table with named columns,
enough to carry the student performance dataset between pipeline stages.
*/
package tables

import (
	"encoding/csv"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros"
)

/*
Table is an immutable set of rows with named columns
*/
type Table struct {
	names []string
	index map[string]int
	rows  [][]string
}

/*
Column is a view of one table column
*/
type Column struct {
	t *Table
	j int
}

/*
New creates table, every row must have the same width as names
*/
func New(names []string, rows [][]string) (*Table, error) {
	index := make(map[string]int, len(names))
	for j, n := range names {
		if _, ok := index[n]; ok {
			return nil, zorros.Errorf("duplicate column `%v`", n)
		}
		index[n] = j
	}
	for i, r := range rows {
		if len(r) != len(names) {
			return nil, zorros.Errorf("row %d has %d cells, expected %d", i, len(r), len(names))
		}
	}
	return &Table{names: names, index: index, rows: rows}, nil
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Names returns column names in table order
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// Has reports whether all the columns exist
func (t *Table) Has(names ...string) bool {
	for _, n := range names {
		if _, ok := t.index[n]; !ok {
			return false
		}
	}
	return true
}

// Missing returns names absent from the table
func (t *Table) Missing(names ...string) []string {
	var r []string
	for _, n := range names {
		if _, ok := t.index[n]; !ok {
			r = append(r, n)
		}
	}
	return r
}

/*
Col returns column by name, it panics if the column does not exist
*/
func (t *Table) Col(name string) Column {
	j, ok := t.index[name]
	if !ok {
		panic(zorros.Panic(zorros.Errorf("table does not have column `%v`", name)))
	}
	return Column{t, j}
}

// Row returns a copy of the i-th row
func (t *Table) Row(i int) []string {
	return append([]string(nil), t.rows[i]...)
}

/*
Except returns a new table without the named columns
*/
func (t *Table) Except(names ...string) *Table {
	drop := map[string]bool{}
	for _, n := range names {
		drop[n] = true
	}
	var keep []string
	for _, n := range t.names {
		if !drop[n] {
			keep = append(keep, n)
		}
	}
	q, _ := t.Only(keep...)
	return q
}

/*
Only returns a new table with the named columns in the given order
*/
func (t *Table) Only(names ...string) (*Table, error) {
	if m := t.Missing(names...); len(m) > 0 {
		return nil, zorros.Errorf("table does not have columns %v", m)
	}
	rows := make([][]string, len(t.rows))
	for i, r := range t.rows {
		q := make([]string, len(names))
		for k, n := range names {
			q[k] = r[t.index[n]]
		}
		rows[i] = q
	}
	return New(append([]string(nil), names...), rows)
}

/*
Subset returns a new table with the rows picked by index in the given order
*/
func (t *Table) Subset(idx []int) *Table {
	rows := make([][]string, len(idx))
	for i, k := range idx {
		rows[i] = t.rows[k]
	}
	return &Table{names: t.names, index: t.index, rows: rows}
}

/*
SplitIndex partitions n row indices into train and test parts.
The test part takes ceil(testSize*n) rows of a permutation seeded by seed.
*/
func SplitIndex(n int, testSize float64, seed int64) (train, test []int) {
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest > n {
		nTest = n
	}
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return perm[nTest:], perm[:nTest]
}

/*
Split partitions table rows into train and test tables, deterministic for a fixed seed
*/
func (t *Table) Split(testSize float64, seed int64) (train, test *Table) {
	a, b := SplitIndex(t.Len(), testSize, seed)
	return t.Subset(a), t.Subset(b)
}

func (c Column) Name() string {
	return c.t.names[c.j]
}

func (c Column) String(i int) string {
	return c.t.rows[i][c.j]
}

/*
Float returns numeric cell value, NaN if the cell is missing or not a number
*/
func (c Column) Float(i int) float64 {
	s := c.String(i)
	if IsMissing(s) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func (c Column) Strings() []string {
	r := make([]string, c.t.Len())
	for i := range r {
		r[i] = c.String(i)
	}
	return r
}

/*
Floats returns numeric column values, missing cells become NaN
and non-numeric cells are reported as an error
*/
func (c Column) Floats() ([]float64, error) {
	r := make([]float64, c.t.Len())
	for i := range r {
		s := c.String(i)
		if IsMissing(s) {
			r[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, zorros.Errorf("column `%v` row %d: `%v` is not a number", c.Name(), i, s)
		}
		r[i] = v
	}
	return r, nil
}

/*
IsMissing reports whether cell value means a missing value
*/
func IsMissing(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "NA") || strings.EqualFold(s, "NaN")
}

/*
Read reads CSV with a header row
*/
func Read(r io.Reader) (*Table, error) {
	rd := csv.NewReader(r)
	records, err := rd.ReadAll()
	if err != nil {
		return nil, zorros.Trace(err)
	}
	if len(records) == 0 {
		return nil, zorros.Errorf("csv does not have a header")
	}
	names := records[0]
	for j := range names {
		names[j] = strings.TrimSpace(names[j])
	}
	return New(names, records[1:])
}

/*
ReadFile reads CSV file with a header row
*/
func ReadFile(path string) (*Table, error) {
	rd, err := iokit.File(path).Open()
	if err != nil {
		return nil, zorros.Trace(err)
	}
	defer rd.Close()
	return Read(rd)
}

/*
Write writes table as CSV with a header row
*/
func (t *Table) Write(w io.Writer) error {
	wr := csv.NewWriter(w)
	if err := wr.Write(t.names); err != nil {
		return zorros.Trace(err)
	}
	if err := wr.WriteAll(t.rows); err != nil {
		return zorros.Trace(err)
	}
	return nil
}

/*
WriteFile writes table as CSV file replacing the previous one,
the directory is created if it does not exist
*/
func (t *Table) WriteFile(path string) (err error) {
	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return zorros.Trace(err)
	}
	wh, err := iokit.File(path).Create()
	if err != nil {
		return zorros.Trace(err)
	}
	defer wh.End()
	if err = t.Write(wh); err != nil {
		return
	}
	if err = wh.Commit(); err != nil {
		return zorros.Trace(err)
	}
	return nil
}
