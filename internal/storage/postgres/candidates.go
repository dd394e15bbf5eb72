package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"medidispatch/internal/domain"
	"medidispatch/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CandidateRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCandidateRepo(pool *pgxpool.Pool, logger *slog.Logger) *CandidateRepo {
	return &CandidateRepo{pool: pool, logger: logger}
}

const candidateColumns = `
id,
name,
ST_Y(geo_point::geometry) AS lat,
ST_X(geo_point::geometry) AS lng,
availability,
category,
rating,
attributes,
created_at
`

func (r *CandidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	const op = "postgres.Candidate.Create"

	if c == nil {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if !c.Location.Valid() {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if !c.Category.Valid() {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidCategory)
	}

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Availability == "" {
		c.Availability = domain.AvailabilityUnknown
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	attrs, err := json.Marshal(c.Attributes)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	const query = `
INSERT INTO candidates (id, name, geo_point, availability, category, rating, attributes, created_at)
VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography, $5, $6, $7, $8, $9)
`

	_, err = r.pool.Exec(ctx, query,
		c.ID,
		c.Name,
		c.Location.Lng,
		c.Location.Lat,
		c.Availability,
		c.Category,
		c.Rating,
		attrs,
		c.CreatedAt,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (r *CandidateRepo) List(ctx context.Context, page, limit int) ([]*domain.Candidate, int64, error) {
	const op = "postgres.Candidate.List"

	if page < 1 || limit < 1 {
		return nil, 0, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM candidates`).Scan(&total); err != nil {
		r.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	query := `SELECT ` + candidateColumns + `
FROM candidates
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	candidates := make([]*domain.Candidate, 0, limit)
	for rows.Next() {
		c, err := scanCandidate(rows.Scan)
		if err != nil {
			r.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, 0, e.WrapError(ctx, op, err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, e.WrapError(ctx, op, err)
	}

	return candidates, total, nil
}

func (r *CandidateRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	const op = "postgres.Candidate.Get"

	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	c, err := scanCandidate(row.Scan)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return c, nil
}

func (r *CandidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	const op = "postgres.Candidate.Update"

	if c == nil || c.ID == uuid.Nil {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if !c.Location.Valid() {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}

	attrs, err := json.Marshal(c.Attributes)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	const query = `
UPDATE candidates
SET name = $2,
    geo_point = ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography,
    availability = $5,
    rating = $6,
    attributes = $7
WHERE id = $1
`

	tag, err := r.pool.Exec(ctx, query,
		c.ID,
		c.Name,
		c.Location.Lng,
		c.Location.Lat,
		c.Availability,
		c.Rating,
		attrs,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}

func (r *CandidateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.Candidate.Delete"

	tag, err := r.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}

func (r *CandidateRepo) ListByCategory(ctx context.Context, category domain.Category) ([]domain.Candidate, error) {
	const op = "postgres.Candidate.ListByCategory"

	if !category.Valid() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCategory)
	}

	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE category = $1`

	rows, err := r.pool.Query(ctx, query, category)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	return collectCandidates(ctx, op, rows.Next, rows.Scan, rows.Err)
}

// FindNearby prefilters with ST_DWithin so matching never sees candidates
// hopelessly out of range. Exact distance and ranking stay in the matching
// package.
func (r *CandidateRepo) FindNearby(ctx context.Context, lat, lng, radiusKm float64, category domain.Category) ([]domain.Candidate, error) {
	const op = "postgres.Candidate.FindNearby"

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 || radiusKm <= 0 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	query := `SELECT ` + candidateColumns + `
FROM candidates
WHERE category = $1
  AND ST_DWithin(
    geo_point,
    ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography,
    $4 * 1000
  )`

	rows, err := r.pool.Query(ctx, query, category, lng, lat, radiusKm)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	return collectCandidates(ctx, op, rows.Next, rows.Scan, rows.Err)
}

func collectCandidates(ctx context.Context, op string, next func() bool, scan func(...any) error, rowsErr func() error) ([]domain.Candidate, error) {
	candidates := make([]domain.Candidate, 0, 16)
	for next() {
		c, err := scanCandidate(scan)
		if err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		candidates = append(candidates, *c)
	}
	if err := rowsErr(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return candidates, nil
}

func scanCandidate(scan func(...any) error) (*domain.Candidate, error) {
	var (
		c     domain.Candidate
		attrs []byte
	)
	if err := scan(
		&c.ID,
		&c.Name,
		&c.Location.Lat,
		&c.Location.Lng,
		&c.Availability,
		&c.Category,
		&c.Rating,
		&attrs,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &c.Attributes); err != nil {
			return nil, err
		}
	}
	return &c, nil
}
