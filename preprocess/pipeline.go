/*
Package preprocess implements the column-wise feature preprocessing:
imputation, one-hot encoding and scaling, fitted on train data and
applied unchanged to any later data.
*/
package preprocess

import (
	"strconv"
	"strings"

	"go-ml.dev/pkg/mathscore/fu"
	"go-ml.dev/pkg/mathscore/tables"
	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/gonum/mat"
)

/*
Branch is a sub-pipeline applied to a group of columns.
Numeric branches parse imputed cells as numbers, categorical branches one-hot encode them.
*/
type Branch struct {
	Name    string
	Columns []string
	Imputer Imputer
	Encoder *OneHot
	Scaler  Scaler
}

/*
Numeric creates a branch: median imputation then standard scaling
*/
func Numeric(name string, columns ...string) *Branch {
	return &Branch{
		Name:    name,
		Columns: columns,
		Imputer: Imputer{Strategy: Median},
		Scaler:  Scaler{WithMean: true},
	}
}

/*
Categorical creates a branch: most frequent imputation, one-hot encoding
then scaling without centering
*/
func Categorical(name string, columns ...string) *Branch {
	return &Branch{
		Name:    name,
		Columns: columns,
		Imputer: Imputer{Strategy: MostFrequent},
		Encoder: &OneHot{},
		Scaler:  Scaler{WithMean: false},
	}
}

func (b *Branch) columns(t *tables.Table) ([][]string, error) {
	if m := t.Missing(b.Columns...); len(m) > 0 {
		return nil, zorros.Errorf("%v: input does not have columns %v", b.Name, m)
	}
	cols := make([][]string, len(b.Columns))
	for j, n := range b.Columns {
		cols[j] = t.Col(n).Strings()
	}
	return cols, nil
}

func (b *Branch) prepare(t *tables.Table, fit bool) (rows [][]float64, err error) {
	cols, err := b.columns(t)
	if err != nil {
		return
	}
	if fit {
		if err = b.Imputer.Fit(cols); err != nil {
			return nil, zorros.Wrapf(err, "%v: %v", b.Name, err.Error())
		}
	}
	if cols, err = b.Imputer.Transform(cols); err != nil {
		return
	}
	if b.Encoder != nil {
		if fit {
			if err = b.Encoder.Fit(cols); err != nil {
				return
			}
		}
		rows = b.Encoder.Transform(cols)
	} else if rows, err = parse(b.Name, b.Columns, cols); err != nil {
		return
	}
	if fit {
		if err = b.Scaler.Fit(rows); err != nil {
			return nil, zorros.Wrapf(err, "%v: %v", b.Name, err.Error())
		}
	}
	return b.Scaler.Transform(rows)
}

func parse(branch string, names []string, cols [][]string) ([][]float64, error) {
	if len(cols) == 0 {
		return nil, nil
	}
	rows := make([][]float64, len(cols[0]))
	for i := range rows {
		rows[i] = make([]float64, len(cols))
	}
	for j, col := range cols {
		for i, s := range col {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, zorros.Errorf("%v: column `%v` row %d: `%v` is not a number", branch, names[j], i, s)
			}
			rows[i][j] = v
		}
	}
	return rows, nil
}

// Width is the count of output columns of the fitted branch
func (b *Branch) Width() int {
	if b.Encoder != nil {
		return b.Encoder.Width()
	}
	return len(b.Columns)
}

// Names returns output column names of the fitted branch
func (b *Branch) Names() []string {
	if b.Encoder != nil {
		return b.Encoder.Names(b.Columns)
	}
	return append([]string(nil), b.Columns...)
}

/*
Pipeline concatenates outputs of its branches column-wise in branch order
*/
type Pipeline struct {
	Branches []*Branch
	Fitted   bool
}

func New(branches ...*Branch) *Pipeline {
	return &Pipeline{Branches: branches}
}

// Columns returns input columns the pipeline consumes
func (p *Pipeline) Columns() []string {
	var r []string
	for _, b := range p.Branches {
		r = append(r, b.Columns...)
	}
	return r
}

func (p *Pipeline) Width() int {
	n := 0
	for _, b := range p.Branches {
		n += b.Width()
	}
	return n
}

func (p *Pipeline) Names() []string {
	var r []string
	for _, b := range p.Branches {
		r = append(r, b.Names()...)
	}
	return r
}

/*
Fit learns all transformation parameters from t
*/
func (p *Pipeline) Fit(t *tables.Table) error {
	_, err := p.FitTransform(t)
	return err
}

/*
FitTransform fits the pipeline on t and returns transformed t
*/
func (p *Pipeline) FitTransform(t *tables.Table) (*mat.Dense, error) {
	if t.Len() == 0 {
		return nil, zorros.Errorf("can't fit preprocessing pipeline on empty table")
	}
	p.Fitted = false
	m, err := p.apply(t, true)
	if err != nil {
		return nil, err
	}
	p.Fitted = true
	return m, nil
}

/*
Transform applies fitted parameters to t, nothing is learned from t
*/
func (p *Pipeline) Transform(t *tables.Table) (*mat.Dense, error) {
	if !p.Fitted {
		return nil, zorros.Errorf("preprocessing pipeline is not fitted")
	}
	if t.Len() == 0 {
		return nil, zorros.Errorf("can't transform empty table")
	}
	return p.apply(t, false)
}

func (p *Pipeline) apply(t *tables.Table, fit bool) (*mat.Dense, error) {
	parts := make([][][]float64, len(p.Branches))
	for k, b := range p.Branches {
		rows, err := b.prepare(t, fit)
		if err != nil {
			return nil, err
		}
		parts[k] = rows
	}
	rows := make([][]float64, t.Len())
	for i := range rows {
		r := make([]float64, 0, p.Width())
		for _, q := range parts {
			r = append(r, q[i]...)
		}
		rows[i] = r
	}
	return mat.NewDense(len(rows), p.Width(), fu.Flatnr(rows)), nil
}
