package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/gconvert/internal/config"
	"github.com/stemsi/gconvert/internal/model"
	"github.com/stemsi/gconvert/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gradesJSON = `{
  "1": {"CS101": {"credits": 4, "grade": "AA"}, "MA101": {"credits": 4, "grade": "BB"}},
  "2": {"CS201": {"credits": 2, "grade": "CC"}, "HM101": {"credits": 3, "grade": "DD"}}
}`

const metadataJSON = `{
  "1": {"CS101": "Programming", "MA101": "Calculus"},
  "2": {"CS201": "Algorithms", "HM101": "Economics"}
}`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	grades := filepath.Join(dir, "grades.json")
	meta := filepath.Join(dir, "metadata.json")
	require.NoError(t, os.WriteFile(grades, []byte(gradesJSON), 0o644))
	require.NoError(t, os.WriteFile(meta, []byte(metadataJSON), 0o644))

	return &config.Config{
		TranscriptSource: config.SourceJSON,
		GradesFile:       grades,
		MetadataFile:     meta,
		NameColumnWidth:  20,
		CacheTTL:         time.Minute,
	}
}

func runCLI(t *testing.T, cfg *config.Config, args ...string) (int, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, cfg, &stdout, &stderr, zerolog.Nop())
	return code, stdout.String()
}

func TestRunPrintsLabelledLines(t *testing.T) {
	code, out := runCLI(t, testConfig(t), "--spi", "--id", "1", "--cpi", "-c")
	require.Equal(t, 0, code)
	assert.Equal(t,
		"S.P.I for Semester 1 is: 9\n"+
			"C.P.I is: 8.4\n"+
			"Corresponding GPA is: 3.8\n",
		out)
}

func TestRunDisplay(t *testing.T) {
	code, out := runCLI(t, testConfig(t), "-d")
	require.Equal(t, 0, code)
	assert.Equal(t,
		"Displaying transcript:\n\n"+
			"1\n"+
			"Programming         4\tAA\n"+
			"Calculus            4\tBB\n"+
			"\n"+
			"2\n"+
			"Algorithms          2\tCC\n"+
			"Economics           3\tDD\n"+
			"\n",
		out)
}

func TestRunRequiresSemesterID(t *testing.T) {
	code, out := runCLI(t, testConfig(t), "--spi")
	assert.Equal(t, 1, code)
	assert.Equal(t, "--id argument is required.\n", out)
}

func TestRunFailsOnLookupErrors(t *testing.T) {
	code, out := runCLI(t, testConfig(t), "--spi", "--id", "7")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)

	cfg := testConfig(t)
	cfg.GradesFile = filepath.Join(t.TempDir(), "missing.json")
	code, _ = runCLI(t, cfg, "--cpi")
	assert.Equal(t, 1, code)
}

func TestRunWithoutOperationsPrintsUsage(t *testing.T) {
	code, out := runCLI(t, testConfig(t))
	assert.Equal(t, 0, code)
	assert.Empty(t, out)

	code, _ = runCLI(t, testConfig(t), "--bogus")
	assert.Equal(t, 2, code)
}

func TestRunReport(t *testing.T) {
	code, out := runCLI(t, testConfig(t), "--report")
	require.Equal(t, 0, code)

	var report model.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Semesters, 2)
	assert.Equal(t, 10.0, report.TotalCredits)
	assert.Equal(t, 8.4, report.CumulativeIndex)
}

func TestRunExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.xlsx")
	code, out := runCLI(t, testConfig(t), "--export", path)
	require.Equal(t, 0, code)
	assert.Contains(t, out, path)

	tr, err := repository.NewWorkbookRepository(path).LoadTranscript(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.CourseEntry{Credits: 3, Grade: "DD"}, tr["2"]["HM101"])
}
