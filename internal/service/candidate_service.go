package service

import (
	"context"

	"log/slog"

	"medidispatch/internal/domain"

	"github.com/google/uuid"
)

func (s *Service) Create(ctx context.Context, req domain.CreateCandidateRequest) (uuid.UUID, error) {
	return s.CandidateService.Create(ctx, req)
}

func (s *Service) List(ctx context.Context, page, limit int) ([]*domain.Candidate, int64, error) {
	return s.CandidateService.List(ctx, page, limit)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	return s.CandidateService.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req domain.UpdateCandidateRequest) error {
	return s.CandidateService.Update(ctx, id, req)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.CandidateService.Delete(ctx, id)
}

type candidateService struct {
	repo   CandidateRepository
	cache  CandidateCacheService
	logger *slog.Logger
}

func NewCandidateService(repo CandidateRepository, cache CandidateCacheService, logger *slog.Logger) CandidateService {
	return &candidateService{repo: repo, cache: cache, logger: logger}
}

func (s *candidateService) Create(ctx context.Context, req domain.CreateCandidateRequest) (uuid.UUID, error) {
	availability := req.Availability
	if availability == "" {
		availability = domain.AvailabilityUnknown
	}

	c := &domain.Candidate{
		Name:         req.Name,
		Location:     domain.GeoPoint{Lat: req.Lat, Lng: req.Lng},
		Availability: availability,
		Category:     req.Category,
		Rating:       req.Rating,
		Attributes:   req.Attributes,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return uuid.Nil, err
	}

	s.invalidate(ctx, c.Category)
	return c.ID, nil
}

func (s *candidateService) List(ctx context.Context, page, limit int) ([]*domain.Candidate, int64, error) {
	return s.repo.List(ctx, page, limit)
}

func (s *candidateService) Get(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	return s.repo.Get(ctx, id)
}

func (s *candidateService) Update(ctx context.Context, id uuid.UUID, req domain.UpdateCandidateRequest) error {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Lat != nil {
		c.Location.Lat = *req.Lat
	}
	if req.Lng != nil {
		c.Location.Lng = *req.Lng
	}
	if req.Availability != nil {
		c.Availability = *req.Availability
	}
	if req.Rating != nil {
		c.Rating = *req.Rating
	}
	if req.Attributes != nil {
		c.Attributes = *req.Attributes
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return err
	}

	s.invalidate(ctx, c.Category)
	return nil
}

func (s *candidateService) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, c.Category)
	return nil
}

// invalidate drops the category set so the next dispatch sees the write.
// Cache failures only cost freshness, never correctness.
func (s *candidateService) invalidate(ctx context.Context, category domain.Category) {
	if err := s.cache.Invalidate(ctx, category); err != nil {
		s.logger.Warn("cache invalidate failed",
			slog.String("category", string(category)),
			slog.Any("error", err),
		)
	}
}
