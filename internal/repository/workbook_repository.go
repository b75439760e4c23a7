package repository

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stemsi/gconvert/internal/model"
	"github.com/xuri/excelize/v2"
)

// Workbook layout: one sheet per semester, named after the semester id and
// ordered as the transcript is displayed. Row 1 is a header; every following
// row holds Code, Course, Credits, Grade.
var workbookHeader = []interface{}{"Code", "Course", "Credits", "Grade"}

// WorkbookRepository reads the transcript and course names from an .xlsx file.
type WorkbookRepository struct {
	path string
}

// NewWorkbookRepository creates a new WorkbookRepository.
func NewWorkbookRepository(path string) *WorkbookRepository {
	return &WorkbookRepository{path: path}
}

func (r *WorkbookRepository) LoadTranscript(_ context.Context) (model.Transcript, error) {
	t, _, err := r.load()
	return t, err
}

func (r *WorkbookRepository) LoadMetadata(_ context.Context) (model.CourseMetadata, error) {
	_, meta, err := r.load()
	return meta, err
}

func (r *WorkbookRepository) load() (model.Transcript, model.CourseMetadata, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook %s: %w", r.path, err)
	}
	defer f.Close()
	return readWorkbook(f)
}

// ReadWorkbook parses a workbook from r.
func ReadWorkbook(r io.Reader) (model.Transcript, model.CourseMetadata, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) (model.Transcript, model.CourseMetadata, error) {
	var rows []courseRow
	for ord, sheet := range f.GetSheetList() {
		sheetRows, err := f.GetRows(sheet)
		if err != nil {
			return nil, nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}

		pos := 0
		for i, cells := range sheetRows {
			if i == 0 || len(cells) == 0 || strings.TrimSpace(cells[0]) == "" {
				continue // header or blank row
			}
			if len(cells) < 4 {
				return nil, nil, fmt.Errorf("sheet %s row %d: expected 4 columns, got %d", sheet, i+1, len(cells))
			}
			credits, err := strconv.ParseFloat(strings.TrimSpace(cells[2]), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("sheet %s row %d: credits: %w", sheet, i+1, err)
			}
			rows = append(rows, courseRow{
				SemesterID:  sheet,
				SemesterOrd: ord,
				Position:    pos,
				Code:        strings.TrimSpace(cells[0]),
				Name:        strings.TrimSpace(cells[1]),
				Credits:     credits,
				Grade:       strings.TrimSpace(cells[3]),
			})
			pos++
		}
	}

	t, meta := unflatten(rows)
	return t, meta, nil
}

// WriteWorkbook exports a transcript in the layout ReadWorkbook accepts.
func WriteWorkbook(w io.Writer, t model.Transcript, meta model.CourseMetadata) error {
	rows, err := flatten(t, meta)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	current := ""
	line := 0
	for _, r := range rows {
		if r.SemesterID != current {
			if current == "" {
				if err := f.SetSheetName(defaultSheet, r.SemesterID); err != nil {
					return fmt.Errorf("rename sheet: %w", err)
				}
			} else if _, err := f.NewSheet(r.SemesterID); err != nil {
				return fmt.Errorf("create sheet %s: %w", r.SemesterID, err)
			}
			current = r.SemesterID
			if err := f.SetSheetRow(current, "A1", &workbookHeader); err != nil {
				return err
			}
			line = 1
		}

		line++
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return err
		}
		values := []interface{}{r.Code, r.Name, r.Credits, r.Grade}
		if err := f.SetSheetRow(current, cell, &values); err != nil {
			return fmt.Errorf("write %s/%s: %w", current, r.Code, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
