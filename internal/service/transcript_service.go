package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/gconvert/internal/cache"
	"github.com/stemsi/gconvert/internal/config"
	"github.com/stemsi/gconvert/internal/grading"
	"github.com/stemsi/gconvert/internal/model"
	"github.com/stemsi/gconvert/internal/repository"
)

// TranscriptSource supplies the transcript and its course names.
type TranscriptSource interface {
	LoadTranscript(ctx context.Context) (model.Transcript, error)
	LoadMetadata(ctx context.Context) (model.CourseMetadata, error)
}

// TranscriptService loads the configured transcript and runs the grade
// calculations over it, caching full reports.
type TranscriptService struct {
	source    TranscriptSource
	scale     grading.Scale
	nameWidth int
	store     cache.Store
	ttl       time.Duration
	log       zerolog.Logger
}

// NewTranscriptService creates a new TranscriptService.
func NewTranscriptService(
	cfg *config.Config,
	source TranscriptSource,
	scale grading.Scale,
	store cache.Store,
	log zerolog.Logger,
) *TranscriptService {
	return &TranscriptService{
		source:    source,
		scale:     scale,
		nameWidth: cfg.NameColumnWidth,
		store:     store,
		ttl:       cfg.CacheTTL,
		log:       log.With().Str("component", "transcript_service").Logger(),
	}
}

// Scale returns the grading scale calculations run against.
func (s *TranscriptService) Scale() grading.Scale {
	return s.scale
}

// Transcript loads the transcript from the source.
func (s *TranscriptService) Transcript(ctx context.Context) (model.Transcript, error) {
	t, err := s.source.LoadTranscript(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	return t, nil
}

// SemesterIndex computes the S.P.I. of one semester.
func (s *TranscriptService) SemesterIndex(ctx context.Context, semesterID string) (float64, error) {
	t, err := s.Transcript(ctx)
	if err != nil {
		return 0, err
	}
	return grading.SemesterIndex(t, semesterID, grading.WithScale(s.scale))
}

// CumulativeIndex computes the C.P.I. of the whole transcript.
func (s *TranscriptService) CumulativeIndex(ctx context.Context) (float64, error) {
	t, err := s.Transcript(ctx)
	if err != nil {
		return 0, err
	}
	return grading.CumulativeIndex(t, grading.WithScale(s.scale))
}

// ConvertedIndex computes the cumulative index on the letter point scale.
func (s *TranscriptService) ConvertedIndex(ctx context.Context) (float64, error) {
	t, err := s.Transcript(ctx)
	if err != nil {
		return 0, err
	}
	return grading.ConvertToScale(t, grading.WithScale(s.scale))
}

// Report computes every metric of the stored transcript.
func (s *TranscriptService) Report(ctx context.Context) (*model.Report, error) {
	t, err := s.Transcript(ctx)
	if err != nil {
		return nil, err
	}
	return s.report(ctx, t, s.scale)
}

// Evaluate computes a report for a transcript supplied by the caller,
// optionally under a modified scale. Nothing is stored besides the cache.
func (s *TranscriptService) Evaluate(ctx context.Context, req *model.EvaluateRequest) (*model.Report, error) {
	scale := s.scale
	if o := req.Scale; o != nil {
		scale = scale.Merge(grading.Scale{
			GradePoints:  o.GradePoints,
			GradeLetters: o.GradeLetters,
			LetterPoints: o.LetterPoints,
			Excluded:     o.Excluded,
		})
	}
	return s.report(ctx, req.Transcript, scale)
}

// RenderTranscript writes the formatted transcript to w.
func (s *TranscriptService) RenderTranscript(ctx context.Context, w io.Writer) error {
	t, meta, err := s.load(ctx)
	if err != nil {
		return err
	}
	return grading.RenderTranscript(w, t, meta, grading.WithNameWidth(s.nameWidth))
}

// ExportWorkbook writes the transcript as an .xlsx workbook to w.
func (s *TranscriptService) ExportWorkbook(ctx context.Context, w io.Writer) error {
	t, meta, err := s.load(ctx)
	if err != nil {
		return err
	}
	return repository.WriteWorkbook(w, t, meta)
}

func (s *TranscriptService) load(ctx context.Context) (model.Transcript, model.CourseMetadata, error) {
	t, err := s.Transcript(ctx)
	if err != nil {
		return nil, nil, err
	}
	meta, err := s.source.LoadMetadata(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load metadata: %w", err)
	}
	return t, meta, nil
}

func (s *TranscriptService) report(ctx context.Context, t model.Transcript, scale grading.Scale) (*model.Report, error) {
	fp, err := fingerprint(t, scale)
	if err != nil {
		return nil, err
	}
	key := config.CacheKey.ReportKey(fp)

	if cached, ok := s.cachedReport(ctx, key); ok {
		return cached, nil
	}

	report, err := grading.BuildReport(t, grading.WithScale(scale))
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(report); err == nil {
		if err := s.store.Set(ctx, key, data, s.ttl); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to cache report")
		}
	}
	return report, nil
}

func (s *TranscriptService) cachedReport(ctx context.Context, key string) (*model.Report, bool) {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Warn().Err(err).Str("key", key).Msg("report cache unavailable")
		}
		return nil, false
	}

	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("discarding corrupt cached report")
		return nil, false
	}
	s.log.Debug().Str("key", key).Msg("report cache hit")
	return &report, true
}
