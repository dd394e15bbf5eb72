package service

import (
	"context"

	"medidispatch/internal/domain"
)

func (s *Service) GetStats(ctx context.Context, req domain.StatsRequest) (*domain.DispatchStats, error) {
	return s.StatsService.GetStats(ctx, req)
}

type statsService struct {
	records DispatchRepository
}

func NewStatsService(records DispatchRepository) StatsService {
	return &statsService{records: records}
}

func (s *statsService) GetStats(ctx context.Context, req domain.StatsRequest) (*domain.DispatchStats, error) {
	window := req.WindowMinutes
	if window < 1 {
		window = 60
	}
	return s.records.Stats(ctx, window)
}
