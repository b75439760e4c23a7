package grading

import (
	"fmt"

	"github.com/stemsi/gconvert/internal/model"
)

// accumulator sums credits and credit-weighted points.
type accumulator struct {
	credits float64
	points  float64
}

func (a *accumulator) addSemester(rec model.SemesterRecord, excluded map[string]struct{}, point PointFunc) error {
	for _, code := range rec.Codes() {
		if _, skip := excluded[code]; skip {
			continue
		}
		entry := rec[code]
		p, err := point(entry.Grade)
		if err != nil {
			return fmt.Errorf("course %s: %w", code, err)
		}
		a.credits += entry.Credits
		a.points += entry.Credits * p
	}
	return nil
}

func (a *accumulator) index() (float64, error) {
	if a.credits == 0 {
		return 0, ErrZeroCredits
	}
	return a.points / a.credits, nil
}

// SemesterIndex returns the credit-weighted grade point average (S.P.I.) of
// one semester, ignoring excluded courses.
func SemesterIndex(t model.Transcript, semesterID string, opts ...Option) (float64, error) {
	cfg := applyOptions(opts)

	rec, ok := t.Semester(semesterID)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingSemester, semesterID)
	}

	var acc accumulator
	if err := acc.addSemester(rec, exclusionSet(cfg.Scale.Excluded), cfg.Scale.GradePoint()); err != nil {
		return 0, fmt.Errorf("semester %s: %w", semesterID, err)
	}
	idx, err := acc.index()
	if err != nil {
		return 0, fmt.Errorf("semester %s: %w", semesterID, err)
	}
	return idx, nil
}

// CumulativeIndex returns the credit-weighted grade point average (C.P.I.)
// across every semester of the transcript.
func CumulativeIndex(t model.Transcript, opts ...Option) (float64, error) {
	cfg := applyOptions(opts)
	return WeightedIndex(t, cfg.Scale.Excluded, cfg.Scale.GradePoint())
}

// ConvertToScale re-prices every grade through the letter tables and returns
// the cumulative average on that scale (the 4 point GPA by default).
func ConvertToScale(t model.Transcript, opts ...Option) (float64, error) {
	cfg := applyOptions(opts)
	return WeightedIndex(t, cfg.Scale.Excluded, cfg.Scale.LetterPoint())
}

// WeightedIndex is the cumulative algorithm for an arbitrary point function.
func WeightedIndex(t model.Transcript, excluded []string, point PointFunc) (float64, error) {
	skip := exclusionSet(excluded)

	var acc accumulator
	for _, id := range t.SemesterIDs() {
		if err := acc.addSemester(t[id], skip, point); err != nil {
			return 0, fmt.Errorf("semester %s: %w", id, err)
		}
	}
	return acc.index()
}
