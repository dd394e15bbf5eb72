package postgres

import (
	"context"

	"medidispatch/internal/domain"

	"github.com/google/uuid"
)

type CandidateRepository interface {
	Create(ctx context.Context, c *domain.Candidate) error
	List(ctx context.Context, page, limit int) ([]*domain.Candidate, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)
	Update(ctx context.Context, c *domain.Candidate) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByCategory(ctx context.Context, category domain.Category) ([]domain.Candidate, error)
	FindNearby(ctx context.Context, lat, lng, radiusKm float64, category domain.Category) ([]domain.Candidate, error)
}

type DispatchRepository interface {
	Save(ctx context.Context, rec *domain.DispatchRecord) error
	Stats(ctx context.Context, windowMinutes int) (*domain.DispatchStats, error)
}
