package grading

import (
	"errors"
	"fmt"

	"github.com/stemsi/gconvert/internal/model"
)

// BuildReport computes every metric of a transcript in one pass over the
// semesters. A semester without counted credits is reported with its error
// instead of failing the whole report; the cumulative figures still must be
// defined.
func BuildReport(t model.Transcript, opts ...Option) (*model.Report, error) {
	cfg := applyOptions(opts)
	skip := exclusionSet(cfg.Scale.Excluded)
	point := cfg.Scale.GradePoint()

	report := &model.Report{Semesters: make([]model.SemesterSummary, 0, len(t))}

	var total accumulator
	for _, id := range t.SemesterIDs() {
		var acc accumulator
		if err := acc.addSemester(t[id], skip, point); err != nil {
			return nil, fmt.Errorf("semester %s: %w", id, err)
		}
		total.credits += acc.credits
		total.points += acc.points

		summary := model.SemesterSummary{SemesterID: id, Credits: acc.credits}
		idx, err := acc.index()
		switch {
		case err == nil:
			summary.Index = &idx
		case errors.Is(err, ErrZeroCredits):
			summary.Error = err.Error()
		default:
			return nil, fmt.Errorf("semester %s: %w", id, err)
		}
		report.Semesters = append(report.Semesters, summary)
	}

	cpi, err := total.index()
	if err != nil {
		return nil, err
	}
	gpa, err := WeightedIndex(t, cfg.Scale.Excluded, cfg.Scale.LetterPoint())
	if err != nil {
		return nil, err
	}

	report.TotalCredits = total.credits
	report.CumulativeIndex = cpi
	report.ConvertedIndex = gpa
	return report, nil
}
