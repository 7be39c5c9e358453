package ports

import (
	"context"

	"github.com/larriantoniy/ocrspace/internal/domain"
)

type ResultRepo interface {
	Save(ctx context.Context, rec *domain.Recognition) error
	GetAll(ctx context.Context) ([]domain.Recognition, error)
	FindByText(ctx context.Context, query string) ([]domain.Recognition, error)
}
