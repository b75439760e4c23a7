package grading

import (
	"testing"

	"github.com/stemsi/gconvert/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport(t *testing.T) {
	transcript := model.Transcript{
		"1": {"CS101": {Credits: 4, Grade: "AA"}, "HM101": {Credits: 2, Grade: "CC"}},
		"2": {"CS201": {Credits: 3, Grade: "BB"}},
		"3": {"PC301": {Credits: 1, Grade: "AB"}},
	}

	report, err := BuildReport(transcript)
	require.NoError(t, err)

	require.Len(t, report.Semesters, 3)
	assert.Equal(t, "1", report.Semesters[0].SemesterID)
	require.NotNil(t, report.Semesters[0].Index)
	assert.Equal(t, 10.0, *report.Semesters[0].Index)
	assert.Equal(t, 4.0, report.Semesters[0].Credits)

	assert.Nil(t, report.Semesters[2].Index)
	assert.Equal(t, ErrZeroCredits.Error(), report.Semesters[2].Error)

	assert.Equal(t, 7.0, report.TotalCredits)
	assert.InDelta(t, 64.0/7.0, report.CumulativeIndex, 1e-9)
	assert.Equal(t, 4.0, report.ConvertedIndex)
}

func TestBuildReportMatchesIndividualCalculations(t *testing.T) {
	transcript := model.Transcript{
		"1": {"MA101": {Credits: 4, Grade: "BC"}, "CS101": {Credits: 3, Grade: "AB"}},
		"2": {"MA201": {Credits: 4, Grade: "DD"}, "CS201": {Credits: 4, Grade: "CC"}},
	}

	report, err := BuildReport(transcript)
	require.NoError(t, err)

	for _, sem := range report.Semesters {
		spi, err := SemesterIndex(transcript, sem.SemesterID)
		require.NoError(t, err)
		assert.InDelta(t, spi, *sem.Index, 1e-12)
	}
	cpi, _ := CumulativeIndex(transcript)
	gpa, _ := ConvertToScale(transcript)
	assert.InDelta(t, cpi, report.CumulativeIndex, 1e-12)
	assert.InDelta(t, gpa, report.ConvertedIndex, 1e-12)
}

func TestBuildReportFailsWithoutCountedCredits(t *testing.T) {
	transcript := model.Transcript{"1": {"HM101": {Credits: 2, Grade: "AA"}}}

	_, err := BuildReport(transcript)
	assert.ErrorIs(t, err, ErrZeroCredits)
}

func TestBuildReportMissingMapping(t *testing.T) {
	transcript := model.Transcript{"1": {"CS101": {Credits: 2, Grade: "ZZ"}}}

	_, err := BuildReport(transcript)
	assert.ErrorIs(t, err, ErrMissingMapping)
}
