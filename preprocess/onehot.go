package preprocess

import (
	"sort"
)

/*
OneHot expands categorical columns into indicator columns.
Categories are sorted per column, values unseen on fit encode as all zeros.
*/
type OneHot struct {
	Categories [][]string
}

func (oh *OneHot) Fit(cols [][]string) error {
	oh.Categories = make([][]string, len(cols))
	for j, col := range cols {
		seen := map[string]bool{}
		var cats []string
		for _, s := range col {
			if !seen[s] {
				seen[s] = true
				cats = append(cats, s)
			}
		}
		sort.Strings(cats)
		oh.Categories[j] = cats
	}
	return nil
}

// Width is the count of output columns
func (oh *OneHot) Width() int {
	n := 0
	for _, c := range oh.Categories {
		n += len(c)
	}
	return n
}

/*
Transform encodes columns (columns x rows) into rows of indicators
*/
func (oh *OneHot) Transform(cols [][]string) [][]float64 {
	if len(cols) == 0 {
		return nil
	}
	rows := make([][]float64, len(cols[0]))
	w := oh.Width()
	for i := range rows {
		rows[i] = make([]float64, w)
	}
	offset := 0
	for j, col := range cols {
		cats := oh.Categories[j]
		for i, s := range col {
			if k := sort.SearchStrings(cats, s); k < len(cats) && cats[k] == s {
				rows[i][offset+k] = 1
			}
		}
		offset += len(cats)
	}
	return rows
}

// Names returns output column names as column=category
func (oh *OneHot) Names(columns []string) []string {
	var r []string
	for j, cats := range oh.Categories {
		for _, c := range cats {
			r = append(r, columns[j]+"="+c)
		}
	}
	return r
}
