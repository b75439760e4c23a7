package grading

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/stemsi/gconvert/internal/model"
)

// RenderTranscript writes every semester listed in meta, in meta's order:
// a line with the semester id, one aligned line per course and a blank line.
// A semester is written only once all of its courses resolve, so a failing
// semester leaves no partial output behind.
func RenderTranscript(w io.Writer, t model.Transcript, meta model.CourseMetadata, opts ...Option) error {
	cfg := applyOptions(opts)

	for _, sem := range meta {
		block, err := renderSemester(t, sem, cfg.NameWidth)
		if err != nil {
			return err
		}
		if _, err := w.Write(block); err != nil {
			return fmt.Errorf("write semester %s: %w", sem.SemesterID, err)
		}
	}
	return nil
}

func renderSemester(t model.Transcript, sem model.SemesterMetadata, width int) ([]byte, error) {
	rec, ok := t.Semester(sem.SemesterID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingSemester, sem.SemesterID)
	}

	var buf bytes.Buffer
	buf.WriteString(sem.SemesterID)
	buf.WriteByte('\n')
	for _, course := range sem.Courses {
		entry, ok := rec[course.Code]
		if !ok {
			return nil, fmt.Errorf("%w: %s in semester %s", ErrMissingCourse, course.Code, sem.SemesterID)
		}
		buf.WriteString(FormatCourseLine(course.Name, entry, width))
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// FormatCourseLine pads name to width and appends credits and grade.
func FormatCourseLine(name string, entry model.CourseEntry, width int) string {
	gap := width - utf8.RuneCountInString(name)
	if gap < 0 {
		gap = 0
	}
	return name + strings.Repeat(" ", gap) + FormatCredits(entry.Credits) + "\t" + entry.Grade
}

// FormatCredits prints credits without trailing zeros (4, 1.5).
func FormatCredits(credits float64) string {
	return strconv.FormatFloat(credits, 'f', -1, 64)
}
