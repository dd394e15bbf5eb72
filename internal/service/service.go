package service

import (
	"context"
	"time"

	"medidispatch/internal/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go
type CandidateService interface {
	Create(ctx context.Context, req domain.CreateCandidateRequest) (uuid.UUID, error)
	List(ctx context.Context, page, limit int) ([]*domain.Candidate, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)
	Update(ctx context.Context, id uuid.UUID, req domain.UpdateCandidateRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type DispatchService interface {
	Dispatch(ctx context.Context, req domain.DispatchRequest) (domain.DispatchResponse, error)
	Match(ctx context.Context, req domain.MatchRequest) (domain.MatchResponse, error)
	Geofence(req domain.GeofenceRequest) (domain.GeofenceResponse, error)
}

type StatsService interface {
	GetStats(ctx context.Context, req domain.StatsRequest) (*domain.DispatchStats, error)
}

// Ports to storage and infrastructure, kept here so one mockgen run
// covers everything the services depend on.
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

type CandidateCacheService interface {
	GetByCategory(ctx context.Context, category domain.Category) ([]domain.Candidate, error)
	SetByCategory(ctx context.Context, category domain.Category, candidates []domain.Candidate, ttl time.Duration) error
	Invalidate(ctx context.Context, category domain.Category) error
}

type NotificationQueue interface {
	Enqueue(ctx context.Context, job domain.NotificationJob) error
}

type Service struct {
	CandidateService CandidateService
	DispatchService  DispatchService
	StatsService     StatsService
}

func NewService(
	candidateService CandidateService,
	dispatchService DispatchService,
	statsService StatsService,
) *Service {
	return &Service{
		CandidateService: candidateService,
		DispatchService:  dispatchService,
		StatsService:     statsService,
	}
}
