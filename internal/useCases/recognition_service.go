package useCases

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/larriantoniy/ocrspace/internal/adapters/ocrspace"
	"github.com/larriantoniy/ocrspace/internal/domain"
	"github.com/larriantoniy/ocrspace/internal/ports"
)

// maxReplySize caps how much of a reply body is read.
const maxReplySize = 32 << 20

type RecognitionService struct {
	repo   ports.ResultRepo
	logger *slog.Logger
	now    func() time.Time
}

// NewRecognitionService creates the service. repo may be nil, in which case
// results are not persisted.
func NewRecognitionService(repo ports.ResultRepo, logger *slog.Logger) *RecognitionService {
	return &RecognitionService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Record decodes an OCR.space reply body read from source and stores the
// recognized text. An empty body yields ocrspace.ErrEmptyResponse.
func (s *RecognitionService) Record(ctx context.Context, source string, body io.Reader) (*domain.Recognition, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxReplySize))
	if err != nil {
		return nil, fmt.Errorf("read reply for %s: %w", source, err)
	}
	if len(data) == 0 {
		s.logger.Warn("Server returned empty body", "source", source)
		return nil, fmt.Errorf("%s: %w", source, ocrspace.ErrEmptyResponse)
	}

	var resp domain.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode reply for %s: %w", source, err)
	}
	if resp.IsErroredOnProcessing {
		s.logger.Error("OCR processing failed", "source", source, "exit_code", resp.OCRExitCode, "message", resp.ErrorMessage.String())
		return nil, fmt.Errorf("ocr failed for %s (exit code %d): %s", source, resp.OCRExitCode, resp.ErrorMessage)
	}

	rec := &domain.Recognition{
		ID:               uuid.New().String(),
		Source:           source,
		Text:             resp.Text(),
		ExitCode:         resp.OCRExitCode,
		SearchablePDFURL: resp.SearchablePDFURL,
		ProcessingTimeMs: resp.ProcessingTimeInMilliseconds,
		CreatedAt:        s.now(),
	}
	s.logger.Info("Recognized text", "source", source, "id", rec.ID, "chars", len(rec.Text))

	if s.repo == nil {
		return rec, nil
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return rec, fmt.Errorf("save recognition %s: %w", rec.ID, err)
	}
	return rec, nil
}

func (s *RecognitionService) GetAll(ctx context.Context) ([]domain.Recognition, error) {
	s.logger.Info("Get all recognitions")
	if s.repo == nil {
		return []domain.Recognition{}, nil
	}
	return s.repo.GetAll(ctx)
}

func (s *RecognitionService) Search(ctx context.Context, query string) ([]domain.Recognition, error) {
	s.logger.Info("Search recognitions", "query", query)
	if s.repo == nil {
		return []domain.Recognition{}, nil
	}
	return s.repo.FindByText(ctx, query)
}
