package tables

import (
	"bytes"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"gotest.tools/assert"
)

const sample = `gender,race_ethnicity,parental_level_of_education,lunch,test_preparation_course,math_score,reading_score,writing_score
female,group B,bachelor's degree,standard,none,72,72,74
female,group C,some college,standard,completed,69,90,88
male,group A,associate's degree,free/reduced,none,47,57,NA
male,group C,some college,standard,none,76,78,75
`

func Test_ReadCsv(t *testing.T) {
	q, err := Read(strings.NewReader(sample))
	assert.NilError(t, err)
	assert.Assert(t, q.Len() == 4)
	assert.Assert(t, q.Has(FeatureNames...))
	assert.Assert(t, q.Has(MathScore))
	assert.Equal(t, q.Col(RaceEthnicity).String(1), "group C")
	assert.Assert(t, q.Col(MathScore).Float(2) == 47)
	assert.Assert(t, math.IsNaN(q.Col(WritingScore).Float(2)))

	w, err := q.Col(WritingScore).Floats()
	assert.NilError(t, err)
	assert.Assert(t, w[0] == 74 && math.IsNaN(w[2]))

	_, err = q.Col(Gender).Floats()
	assert.ErrorContains(t, err, "not a number")
}

func Test_Except(t *testing.T) {
	q, err := Read(strings.NewReader(sample))
	assert.NilError(t, err)
	x := q.Except(MathScore)
	assert.Assert(t, !x.Has(MathScore))
	assert.Assert(t, len(x.Names()) == 7)
	assert.Equal(t, x.Col(WritingScore).String(1), "88")

	_, err = q.Only(Gender, "absent")
	assert.ErrorContains(t, err, "absent")
	assert.DeepEqual(t, q.Missing(Gender, "absent", "other"), []string{"absent", "other"})
}

func Test_WriteReadFile(t *testing.T) {
	q, err := Read(strings.NewReader(sample))
	assert.NilError(t, err)
	path := filepath.Join(t.TempDir(), "nested", "raw.csv")
	assert.NilError(t, q.WriteFile(path))
	r, err := ReadFile(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, r.Names(), q.Names())
	assert.Assert(t, r.Len() == q.Len())
	for i := 0; i < q.Len(); i++ {
		assert.DeepEqual(t, r.Row(i), q.Row(i))
	}
}

func Test_SplitIndex(t *testing.T) {
	const n = 1000
	train, test := SplitIndex(n, 0.2, 42)
	assert.Assert(t, len(test) == 200)
	assert.Assert(t, len(train) == 800)

	all := append(append([]int(nil), train...), test...)
	sort.Ints(all)
	for i := 0; i < n; i++ {
		assert.Assert(t, all[i] == i, "row %d is lost or duplicated", i)
	}

	train2, test2 := SplitIndex(n, 0.2, 42)
	assert.DeepEqual(t, train, train2)
	assert.DeepEqual(t, test, test2)

	_, test3 := SplitIndex(n, 0.2, 7)
	assert.Assert(t, !equalInts(test, test3))

	_, odd := SplitIndex(7, 0.2, 42)
	assert.Assert(t, len(odd) == 2)
}

func Test_Split(t *testing.T) {
	q, err := Read(strings.NewReader(sample))
	assert.NilError(t, err)
	train, test := q.Split(0.25, 42)
	assert.Assert(t, train.Len() == 3 && test.Len() == 1)
	seen := map[string]int{}
	for _, p := range []*Table{train, test} {
		for i := 0; i < p.Len(); i++ {
			seen[strings.Join(p.Row(i), ",")]++
		}
	}
	for i := 0; i < q.Len(); i++ {
		assert.Assert(t, seen[strings.Join(q.Row(i), ",")] == 1)
	}
}

func Test_Record(t *testing.T) {
	r := Record{
		Gender:                   "female",
		RaceEthnicity:            "group B",
		ParentalLevelOfEducation: "bachelor's degree",
		Lunch:                    "standard",
		TestPreparationCourse:    "none",
		ReadingScore:             72,
		WritingScore:             74.5,
	}
	q := r.Table()
	assert.Assert(t, q.Len() == 1)
	assert.DeepEqual(t, q.Names(), FeatureNames)
	assert.Equal(t, q.Col(ParentalLevelOfEducation).String(0), "bachelor's degree")
	assert.Assert(t, q.Col(WritingScore).Float(0) == 74.5)

	var b bytes.Buffer
	assert.NilError(t, q.Write(&b))
	assert.Assert(t, strings.HasPrefix(b.String(), "gender,race_ethnicity,"))
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
