package grading

import "errors"

var (
	// ErrMissingSemester is returned when a requested semester is not in the transcript.
	ErrMissingSemester = errors.New("semester not found in transcript")
	// ErrMissingMapping is returned when a grade or letter has no entry in a lookup table.
	ErrMissingMapping = errors.New("no mapping")
	// ErrMissingCourse is returned when the metadata names a course the transcript lacks.
	ErrMissingCourse = errors.New("course not found in transcript")
	// ErrZeroCredits is returned when a weighted average would divide by zero credits.
	ErrZeroCredits = errors.New("no counted credits")
)
