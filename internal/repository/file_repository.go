package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/stemsi/gconvert/internal/grading"
	"github.com/stemsi/gconvert/internal/model"
)

// FileRepository reads the transcript and course names from JSON documents.
type FileRepository struct {
	gradesPath   string
	metadataPath string
}

// NewFileRepository creates a new FileRepository.
func NewFileRepository(gradesPath, metadataPath string) *FileRepository {
	return &FileRepository{gradesPath: gradesPath, metadataPath: metadataPath}
}

// LoadTranscript decodes {"<semester>": {"<code>": {"credits": n, "grade": "AA"}}}.
func (r *FileRepository) LoadTranscript(_ context.Context) (model.Transcript, error) {
	var t model.Transcript
	if err := readJSON(r.gradesPath, &t); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadMetadata decodes {"<semester>": {"<code>": "<course name>"}} in document order.
func (r *FileRepository) LoadMetadata(_ context.Context) (model.CourseMetadata, error) {
	var meta model.CourseMetadata
	if err := readJSON(r.metadataPath, &meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// LoadScaleFile reads a grading scale override. Tables missing from the file
// keep their defaults; an empty path yields the default scale.
func LoadScaleFile(path string) (grading.Scale, error) {
	scale := grading.DefaultScale()
	if path == "" {
		return scale, nil
	}

	var override grading.Scale
	if err := readJSON(path, &override); err != nil {
		return grading.Scale{}, err
	}
	return scale.Merge(override), nil
}

func readJSON(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
