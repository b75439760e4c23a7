package repository

import (
	"fmt"

	"github.com/stemsi/gconvert/internal/grading"
	"github.com/stemsi/gconvert/internal/model"
)

// courseRow is one course in storage order: semesters as the metadata lists
// them, then any semester only the transcript knows.
type courseRow struct {
	SemesterID  string
	SemesterOrd int
	Position    int
	Code        string
	Name        string
	Credits     float64
	Grade       string
}

// flatten turns a transcript and its metadata into ordered rows. Courses the
// metadata does not name keep an empty name and follow the named ones.
func flatten(t model.Transcript, meta model.CourseMetadata) ([]courseRow, error) {
	var rows []courseRow
	seen := make(map[string]bool, len(meta))

	addSemester := func(ord int, id string, named []model.CourseName) error {
		rec, ok := t.Semester(id)
		if !ok {
			return fmt.Errorf("%w: %s", grading.ErrMissingSemester, id)
		}
		listed := make(map[string]bool, len(named))
		pos := 0
		for _, c := range named {
			entry, ok := rec[c.Code]
			if !ok {
				return fmt.Errorf("%w: %s in semester %s", grading.ErrMissingCourse, c.Code, id)
			}
			listed[c.Code] = true
			rows = append(rows, courseRow{id, ord, pos, c.Code, c.Name, entry.Credits, entry.Grade})
			pos++
		}
		for _, code := range rec.Codes() {
			if listed[code] {
				continue
			}
			entry := rec[code]
			rows = append(rows, courseRow{id, ord, pos, code, "", entry.Credits, entry.Grade})
			pos++
		}
		return nil
	}

	ord := 0
	for _, sem := range meta {
		if err := addSemester(ord, sem.SemesterID, sem.Courses); err != nil {
			return nil, err
		}
		seen[sem.SemesterID] = true
		ord++
	}
	for _, id := range t.SemesterIDs() {
		if seen[id] {
			continue
		}
		if err := addSemester(ord, id, nil); err != nil {
			return nil, err
		}
		ord++
	}
	return rows, nil
}

// unflatten is the inverse of flatten. Rows must arrive in storage order.
func unflatten(rows []courseRow) (model.Transcript, model.CourseMetadata) {
	t := make(model.Transcript)
	var meta model.CourseMetadata

	for _, r := range rows {
		rec, ok := t[r.SemesterID]
		if !ok {
			rec = make(model.SemesterRecord)
			t[r.SemesterID] = rec
			meta = append(meta, model.SemesterMetadata{SemesterID: r.SemesterID})
		}
		rec[r.Code] = model.CourseEntry{Credits: r.Credits, Grade: r.Grade}

		last := &meta[len(meta)-1]
		name := r.Name
		if name == "" {
			name = r.Code
		}
		last.Courses = append(last.Courses, model.CourseName{Code: r.Code, Name: name})
	}
	return t, meta
}
