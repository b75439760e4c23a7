package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/gconvert/internal/grading"
	"github.com/stemsi/gconvert/internal/model"
	"github.com/stemsi/gconvert/internal/response"
	"github.com/stemsi/gconvert/internal/service"
	"github.com/stemsi/gconvert/internal/validator"
)

const maxSemesterIDLen = 32

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TranscriptHandler exposes the grade calculations over HTTP.
type TranscriptHandler struct {
	transcriptService *service.TranscriptService
	log               zerolog.Logger
}

// NewTranscriptHandler creates a new TranscriptHandler.
func NewTranscriptHandler(transcriptService *service.TranscriptService, log zerolog.Logger) *TranscriptHandler {
	return &TranscriptHandler{
		transcriptService: transcriptService,
		log:               log.With().Str("component", "transcript_handler").Logger(),
	}
}

// GetTranscript godoc
// GET /api/v1/transcript
// Returns the formatted transcript as plain text.
func (h *TranscriptHandler) GetTranscript(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.transcriptService.RenderTranscript(c.Request.Context(), &buf); err != nil {
		h.fail(c, err)
		return
	}
	response.Text(c, buf.String())
}

// ExportTranscript godoc
// GET /api/v1/transcript/export
// Returns the transcript as an .xlsx workbook, one sheet per semester.
func (h *TranscriptHandler) ExportTranscript(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.transcriptService.ExportWorkbook(c.Request.Context(), &buf); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="transcript.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// GetSemesterIndex godoc
// GET /api/v1/semesters/:id/index
func (h *TranscriptHandler) GetSemesterIndex(c *gin.Context) {
	id := c.Param("id")
	if id == "" || len(id) > maxSemesterIDLen {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	spi, err := h.transcriptService.SemesterIndex(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.IndexResponse{Metric: "spi", SemesterID: id, Value: spi})
}

// GetCumulativeIndex godoc
// GET /api/v1/cumulative-index
func (h *TranscriptHandler) GetCumulativeIndex(c *gin.Context) {
	cpi, err := h.transcriptService.CumulativeIndex(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.IndexResponse{Metric: "cpi", Value: cpi})
}

// GetConvertedIndex godoc
// GET /api/v1/converted-index
func (h *TranscriptHandler) GetConvertedIndex(c *gin.Context) {
	gpa, err := h.transcriptService.ConvertedIndex(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, model.IndexResponse{Metric: "gpa", Value: gpa})
}

// GetReport godoc
// GET /api/v1/report
func (h *TranscriptHandler) GetReport(c *gin.Context) {
	report, err := h.transcriptService.Report(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// GetScale godoc
// GET /api/v1/scale
// Returns the grading tables calculations run against.
func (h *TranscriptHandler) GetScale(c *gin.Context) {
	response.Success(c, http.StatusOK, h.transcriptService.Scale())
}

// Evaluate godoc
// POST /api/v1/evaluate
// Computes a report for the transcript in the request body.
func (h *TranscriptHandler) Evaluate(c *gin.Context) {
	var req model.EvaluateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		if detail, ok := fields["detail"]; ok {
			response.FailWithDetail(c, http.StatusBadRequest, response.ErrInvalidPayload, detail)
			return
		}
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	report, err := h.transcriptService.Evaluate(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// fail maps calculation errors onto API error codes.
func (h *TranscriptHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, grading.ErrMissingSemester):
		response.FailWithDetail(c, http.StatusNotFound, response.ErrSemesterNotFound, err.Error())
	case errors.Is(err, grading.ErrMissingCourse):
		response.FailWithDetail(c, http.StatusUnprocessableEntity, response.ErrCourseNotFound, err.Error())
	case errors.Is(err, grading.ErrMissingMapping):
		response.FailWithDetail(c, http.StatusUnprocessableEntity, response.ErrGradeNotMapped, err.Error())
	case errors.Is(err, grading.ErrZeroCredits):
		response.FailWithDetail(c, http.StatusUnprocessableEntity, response.ErrZeroCredits, err.Error())
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("transcript request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrSourceFailure)
	}
}
