package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"medidispatch/internal/domain"
	"medidispatch/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DispatchRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewDispatchRepo(pool *pgxpool.Pool, logger *slog.Logger) *DispatchRepo {
	return &DispatchRepo{pool: pool, logger: logger}
}

func (r *DispatchRepo) Save(ctx context.Context, rec *domain.DispatchRecord) error {
	const op = "postgres.Dispatch.Save"

	if rec == nil {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if rec.RequesterID == uuid.Nil {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if !rec.Location.Valid() {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	const query = `
INSERT INTO dispatches (id, requester_id, geo_point, radius_km, category, urgency, matched_ids, notified_ids, created_at)
VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography, $5, $6, $7, $8, $9, $10)
`

	_, err := r.pool.Exec(ctx, query,
		rec.ID,
		rec.RequesterID,
		rec.Location.Lng,
		rec.Location.Lat,
		rec.RadiusKm,
		rec.Category,
		rec.Urgency,
		rec.MatchedIDs,
		rec.NotifiedIDs,
		rec.CreatedAt,
	)
	if err != nil {
		r.logger.Error("db exec failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.String("requester_id", rec.RequesterID.String()),
		)
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (r *DispatchRepo) Stats(ctx context.Context, windowMinutes int) (*domain.DispatchStats, error) {
	const op = "postgres.Dispatch.Stats"

	if windowMinutes < 1 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	const query = `
SELECT
	count(*),
	coalesce(sum(cardinality(matched_ids)), 0),
	coalesce(sum(cardinality(notified_ids)), 0),
	count(DISTINCT requester_id)
FROM dispatches
WHERE created_at >= now() - make_interval(mins => $1)
`

	stats := &domain.DispatchStats{WindowMinutes: windowMinutes}
	err := r.pool.QueryRow(ctx, query, windowMinutes).Scan(
		&stats.Dispatches,
		&stats.MatchedTotal,
		&stats.NotifiedTotal,
		&stats.UniqueRequesters,
	)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return stats, nil
}
