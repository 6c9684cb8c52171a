package tables

import (
	"strconv"
)

const (
	Gender                   = "gender"
	RaceEthnicity            = "race_ethnicity"
	ParentalLevelOfEducation = "parental_level_of_education"
	Lunch                    = "lunch"
	TestPreparationCourse    = "test_preparation_course"
	ReadingScore             = "reading_score"
	WritingScore             = "writing_score"
	MathScore                = "math_score"
)

// FeatureNames lists record fields in dataset order, the target excluded
var FeatureNames = []string{
	Gender,
	RaceEthnicity,
	ParentalLevelOfEducation,
	Lunch,
	TestPreparationCourse,
	ReadingScore,
	WritingScore,
}

/*
Record is a student features row used for prediction
*/
type Record struct {
	Gender                   string
	RaceEthnicity            string
	ParentalLevelOfEducation string
	Lunch                    string
	TestPreparationCourse    string
	ReadingScore             float64
	WritingScore             float64
}

/*
Table shapes the record into a single-row table the preprocessor accepts
*/
func (r Record) Table() *Table {
	row := []string{
		r.Gender,
		r.RaceEthnicity,
		r.ParentalLevelOfEducation,
		r.Lunch,
		r.TestPreparationCourse,
		strconv.FormatFloat(r.ReadingScore, 'g', -1, 64),
		strconv.FormatFloat(r.WritingScore, 'g', -1, 64),
	}
	t, _ := New(append([]string(nil), FeatureNames...), [][]string{row})
	return t
}
