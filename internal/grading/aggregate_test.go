package grading

import (
	"testing"

	"github.com/stemsi/gconvert/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSemesters() model.Transcript {
	return model.Transcript{
		"1": {"CS101": {Credits: 4, Grade: "AA"}},
		"2": {"CS201": {Credits: 3, Grade: "BB"}},
	}
}

func TestSemesterIndexSkipsExcludedCourses(t *testing.T) {
	transcript := model.Transcript{
		"1": {
			"CS101": {Credits: 4, Grade: "AA"},
			"HM101": {Credits: 2, Grade: "CC"},
		},
	}

	spi, err := SemesterIndex(transcript, "1",
		WithGradePoints(map[string]float64{"AA": 10}),
		WithExclusions("HM101"),
	)
	require.NoError(t, err)
	assert.Equal(t, 10.0, spi)
}

func TestSemesterIndexDefaultScale(t *testing.T) {
	transcript := model.Transcript{
		"3": {
			"CS301": {Credits: 4, Grade: "AB"},
			"CS302": {Credits: 2, Grade: "CD"},
			"PC301": {Credits: 2, Grade: "DD"},
		},
	}

	spi, err := SemesterIndex(transcript, "3")
	require.NoError(t, err)
	assert.InDelta(t, (4*9.0+2*5.0)/6.0, spi, 1e-12)
}

func TestSemesterIndexIsBoundedByItsGrades(t *testing.T) {
	scale := DefaultScale()
	transcript := model.Transcript{
		"1": {
			"A": {Credits: 1, Grade: "BC"},
			"B": {Credits: 5, Grade: "AA"},
			"C": {Credits: 3.5, Grade: "CD"},
			"D": {Credits: 0.5, Grade: "AB"},
		},
	}

	spi, err := SemesterIndex(transcript, "1", WithScale(scale))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, spi, scale.GradePoints["CD"])
	assert.LessOrEqual(t, spi, scale.GradePoints["AA"])
}

func TestSemesterIndexMissingSemester(t *testing.T) {
	_, err := SemesterIndex(twoSemesters(), "9")
	assert.ErrorIs(t, err, ErrMissingSemester)
}

func TestSemesterIndexMissingMapping(t *testing.T) {
	transcript := model.Transcript{"1": {"CS101": {Credits: 4, Grade: "FF"}}}

	_, err := SemesterIndex(transcript, "1")
	assert.ErrorIs(t, err, ErrMissingMapping)
	assert.Contains(t, err.Error(), "CS101")
}

func TestSemesterIndexOnlyExcludedCourses(t *testing.T) {
	transcript := model.Transcript{
		"1": {
			"HM101": {Credits: 2, Grade: "AA"},
			"PC301": {Credits: 1, Grade: "BB"},
		},
	}

	spi, err := SemesterIndex(transcript, "1")
	assert.ErrorIs(t, err, ErrZeroCredits)
	assert.Zero(t, spi)
}

func TestSemesterIndexZeroCreditCourses(t *testing.T) {
	transcript := model.Transcript{"1": {"LAB1": {Credits: 0, Grade: "AA"}}}

	_, err := SemesterIndex(transcript, "1")
	assert.ErrorIs(t, err, ErrZeroCredits)
}

func TestCumulativeIndexAcrossSemesters(t *testing.T) {
	cpi, err := CumulativeIndex(twoSemesters(),
		WithGradePoints(map[string]float64{"AA": 10, "BB": 8}),
	)
	require.NoError(t, err)
	assert.InDelta(t, 64.0/7.0, cpi, 1e-9)
}

func TestCumulativeIndexOfSingleSemesterEqualsSemesterIndex(t *testing.T) {
	transcript := model.Transcript{
		"5": {
			"CS501": {Credits: 4, Grade: "BC"},
			"CS502": {Credits: 3, Grade: "AA"},
			"HM401": {Credits: 2, Grade: "DD"},
		},
	}

	spi, err := SemesterIndex(transcript, "5")
	require.NoError(t, err)
	cpi, err := CumulativeIndex(transcript)
	require.NoError(t, err)
	assert.Equal(t, spi, cpi)
}

func TestCumulativeIndexEmptyTranscript(t *testing.T) {
	_, err := CumulativeIndex(model.Transcript{})
	assert.ErrorIs(t, err, ErrZeroCredits)
}

func TestCumulativeIndexMissingMapping(t *testing.T) {
	transcript := twoSemesters()
	transcript["3"] = model.SemesterRecord{"CS301": {Credits: 2, Grade: "XX"}}

	_, err := CumulativeIndex(transcript)
	assert.ErrorIs(t, err, ErrMissingMapping)
}

func TestConvertToScale(t *testing.T) {
	gpa, err := ConvertToScale(twoSemesters(),
		WithGradeLetters(map[string]string{"AA": "A", "BB": "A"}),
		WithLetterPoints(map[string]float64{"A": 4}),
	)
	require.NoError(t, err)
	assert.Equal(t, 4.0, gpa)
}

func TestConvertToScaleDependsOnlyOnLetters(t *testing.T) {
	// AA, AB and BB all map to A; BC and CC to B.
	high := model.Transcript{
		"1": {"X": {Credits: 4, Grade: "AA"}, "Y": {Credits: 2, Grade: "BC"}},
	}
	low := model.Transcript{
		"1": {"X": {Credits: 4, Grade: "BB"}, "Y": {Credits: 2, Grade: "CC"}},
	}

	a, err := ConvertToScale(high)
	require.NoError(t, err)
	b, err := ConvertToScale(low)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.InDelta(t, (4*4.0+2*3.0)/6.0, a, 1e-12)

	cpiHigh, _ := CumulativeIndex(high)
	cpiLow, _ := CumulativeIndex(low)
	assert.Greater(t, cpiHigh, cpiLow)
}

func TestConvertToScaleMissingLetter(t *testing.T) {
	_, err := ConvertToScale(twoSemesters(),
		WithGradeLetters(map[string]string{"AA": "A"}),
	)
	assert.ErrorIs(t, err, ErrMissingMapping)
}

func TestConvertToScaleMissingLetterPoints(t *testing.T) {
	_, err := ConvertToScale(twoSemesters(),
		WithLetterPoints(map[string]float64{"B": 3}),
	)
	assert.ErrorIs(t, err, ErrMissingMapping)
}

func TestCalculationsDoNotMutateInput(t *testing.T) {
	transcript := twoSemesters()
	before := twoSemesters()

	_, _ = SemesterIndex(transcript, "1")
	_, _ = CumulativeIndex(transcript)
	_, _ = ConvertToScale(transcript)
	assert.Equal(t, before, transcript)
}

func TestDefaultScaleReturnsFreshTables(t *testing.T) {
	s := DefaultScale()
	s.GradePoints["AA"] = 0
	s.Excluded[0] = "CS101"

	fresh := DefaultScale()
	assert.Equal(t, 10.0, fresh.GradePoints["AA"])
	assert.Contains(t, fresh.Excluded, "HM101")
	assert.NotContains(t, fresh.Excluded, "CS101")
}

func TestScaleMerge(t *testing.T) {
	merged := DefaultScale().Merge(Scale{LetterPoints: map[string]float64{"A": 5, "B": 4, "C": 3}})

	assert.Equal(t, 5.0, merged.LetterPoints["A"])
	assert.Equal(t, 10.0, merged.GradePoints["AA"])
	assert.Len(t, merged.Excluded, 4)
}
