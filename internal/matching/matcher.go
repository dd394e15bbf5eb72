package matching

import (
	"fmt"
	"sort"

	"medidispatch/internal/domain"
	"medidispatch/pkg/e"
)

type RankPolicy int

const (
	// RankByDistance orders matches by ascending distance only.
	RankByDistance RankPolicy = iota
	// RankByRatingThenDistance orders by descending rating first and uses
	// ascending distance as the tie-break ("top-rated-nearest", used for
	// hospital and lab discovery).
	RankByRatingThenDistance
)

// Request describes one matching call. Candidates are supplied by the
// caller per request and never persisted here.
type Request struct {
	Location         domain.GeoPoint
	RadiusKm         float64
	Category         domain.Category   // empty matches any category
	RequireAvailable bool              // drop candidates that are busy/unknown
	Attributes       map[string]string // exact-match attribute filters
	Rank             RankPolicy
	Limit            int // 0 means unbounded
}

// Match computes distances from the request location to every candidate,
// filters by radius/availability/category/attributes and returns the
// ranked survivors. A candidate with malformed coordinates is skipped,
// never fatal: one bad record must not abort an alert for the rest.
func Match(req Request, candidates []domain.Candidate) ([]domain.MatchResult, error) {
	const op = "matching.Match"

	if !req.Location.Valid() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if req.RadiusKm <= 0 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidRadius)
	}

	results := make([]domain.MatchResult, 0, len(candidates))
	for _, c := range candidates {
		if !c.Location.Valid() {
			continue
		}
		if req.Category != "" && c.Category != req.Category {
			continue
		}
		if req.RequireAvailable && c.Availability != domain.AvailabilityAvailable {
			continue
		}
		if !attributesMatch(req.Attributes, c.Attributes) {
			continue
		}
		dist := Distance(req.Location, c.Location)
		if dist > req.RadiusKm {
			continue
		}
		results = append(results, domain.MatchResult{Candidate: c, DistanceKm: dist})
	}

	rank(results, req.Rank)

	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}
	return results, nil
}

func attributesMatch(want, have map[string]string) bool {
	for k, v := range want {
		if have[k] != v {
			return false
		}
	}
	return true
}

func rank(results []domain.MatchResult, policy RankPolicy) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if policy == RankByRatingThenDistance && a.Candidate.Rating != b.Candidate.Rating {
			return a.Candidate.Rating > b.Candidate.Rating
		}
		if a.DistanceKm != b.DistanceKm {
			return a.DistanceKm < b.DistanceKm
		}
		// deterministic order for equal keys
		return a.Candidate.ID.String() < b.Candidate.ID.String()
	})
}
