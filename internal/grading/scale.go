package grading

import "fmt"

// Scale bundles the lookup tables a calculation runs against.
type Scale struct {
	GradePoints  map[string]float64 `json:"grade_points"`
	GradeLetters map[string]string  `json:"grade_letters"`
	LetterPoints map[string]float64 `json:"letter_points"`
	Excluded     []string           `json:"excluded_courses"`
}

// DefaultScale returns a fresh copy of the institutional scale: grades AA..DD
// on a 10 point scale, their WES letter equivalents on a 4 point scale, and
// the courses that carry no GPA weight.
func DefaultScale() Scale {
	return Scale{
		GradePoints: map[string]float64{
			"AA": 10,
			"AB": 9,
			"BB": 8,
			"BC": 7,
			"CC": 6,
			"CD": 5,
			"DD": 4,
		},
		GradeLetters: map[string]string{
			"AA": "A",
			"AB": "A",
			"BB": "A",
			"BC": "B",
			"CC": "B",
			"CD": "C",
			"DD": "C",
		},
		LetterPoints: map[string]float64{
			"A": 4,
			"B": 3,
			"C": 2,
		},
		Excluded: []string{"HM101", "PC301", "HM401", "PC303"},
	}
}

// Merge returns s with every non-nil table of o replacing its counterpart.
func (s Scale) Merge(o Scale) Scale {
	if o.GradePoints != nil {
		s.GradePoints = o.GradePoints
	}
	if o.GradeLetters != nil {
		s.GradeLetters = o.GradeLetters
	}
	if o.LetterPoints != nil {
		s.LetterPoints = o.LetterPoints
	}
	if o.Excluded != nil {
		s.Excluded = o.Excluded
	}
	return s
}

// PointFunc maps a grade to the points it is worth.
type PointFunc func(grade string) (float64, error)

// Points looks grades up in a grade point table.
func Points(table map[string]float64) PointFunc {
	return func(grade string) (float64, error) {
		p, ok := table[grade]
		if !ok {
			return 0, fmt.Errorf("%w for %q", ErrMissingMapping, grade)
		}
		return p, nil
	}
}

// Compose translates a grade to a letter through letters and then prices the
// letter with points. Grades sharing a letter are always worth the same.
func Compose(letters map[string]string, points map[string]float64) PointFunc {
	lookup := Points(points)
	return func(grade string) (float64, error) {
		letter, ok := letters[grade]
		if !ok {
			return 0, fmt.Errorf("%w for grade %q in the letter table", ErrMissingMapping, grade)
		}
		p, err := lookup(letter)
		if err != nil {
			return 0, fmt.Errorf("grade %q: %w", grade, err)
		}
		return p, nil
	}
}

// GradePoint is the point function of the fine grained scale.
func (s Scale) GradePoint() PointFunc {
	return Points(s.GradePoints)
}

// LetterPoint is the point function of the converted scale.
func (s Scale) LetterPoint() PointFunc {
	return Compose(s.GradeLetters, s.LetterPoints)
}

func exclusionSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set
}
