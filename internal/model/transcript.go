package model

import (
	"sort"
	"strconv"
)

// CourseEntry is a single graded course inside a semester.
type CourseEntry struct {
	Credits float64 `json:"credits" binding:"gte=0"`
	Grade   string  `json:"grade" binding:"required,grade"`
}

// SemesterRecord maps a course code to its entry.
type SemesterRecord map[string]CourseEntry

// Transcript maps a semester identifier to the courses taken in it.
// Identifiers are kept as strings because they arrive as JSON object keys.
type Transcript map[string]SemesterRecord

// Semester returns the record for id and whether it exists.
func (t Transcript) Semester(id string) (SemesterRecord, bool) {
	rec, ok := t[id]
	return rec, ok
}

// SemesterIDs returns the semester identifiers in natural order:
// numeric ids ascending first, then the remaining ids lexically.
func (t Transcript) SemesterIDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	SortSemesterIDs(ids)
	return ids
}

// Codes returns the course codes of the record in lexical order.
func (r SemesterRecord) Codes() []string {
	codes := make([]string, 0, len(r))
	for code := range r {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// SemesterID formats a numeric semester number the way transcripts key it.
func SemesterID(n int) string {
	return strconv.Itoa(n)
}

// SortSemesterIDs sorts ids in place, numeric ids first.
func SortSemesterIDs(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, aErr := strconv.Atoi(ids[i])
		b, bErr := strconv.Atoi(ids[j])
		switch {
		case aErr == nil && bErr == nil:
			return a < b
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		default:
			return ids[i] < ids[j]
		}
	})
}
