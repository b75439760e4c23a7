package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CourseName pairs a course code with its display name.
type CourseName struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SemesterMetadata lists the display names of one semester's courses.
type SemesterMetadata struct {
	SemesterID string       `json:"semester_id"`
	Courses    []CourseName `json:"courses"`
}

// CourseMetadata holds course display names per semester. Order matters:
// the transcript is printed in the order the metadata document lists it.
type CourseMetadata []SemesterMetadata

// Semester returns the metadata for a semester id.
func (m CourseMetadata) Semester(id string) (SemesterMetadata, bool) {
	for _, sem := range m {
		if sem.SemesterID == id {
			return sem, true
		}
	}
	return SemesterMetadata{}, false
}

// Name returns the display name of a course in a semester, if known.
func (m CourseMetadata) Name(semesterID, code string) (string, bool) {
	sem, ok := m.Semester(semesterID)
	if !ok {
		return "", false
	}
	for _, c := range sem.Courses {
		if c.Code == code {
			return c.Name, true
		}
	}
	return "", false
}

// UnmarshalJSON decodes {"<semester>": {"<code>": "<name>", ...}, ...}
// keeping the key order of the document.
func (m *CourseMetadata) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}

	var out CourseMetadata
	for dec.More() {
		semesterID, err := readKey(dec)
		if err != nil {
			return err
		}
		if err := expectDelim(dec, '{'); err != nil {
			return fmt.Errorf("semester %q: %w", semesterID, err)
		}

		sem := SemesterMetadata{SemesterID: semesterID}
		for dec.More() {
			code, err := readKey(dec)
			if err != nil {
				return err
			}
			var name string
			if err := dec.Decode(&name); err != nil {
				return fmt.Errorf("semester %q course %q: %w", semesterID, code, err)
			}
			sem.Courses = append(sem.Courses, CourseName{Code: code, Name: name})
		}
		if err := expectDelim(dec, '}'); err != nil {
			return err
		}
		out = append(out, sem)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return err
	}
	*m = out
	return nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}
