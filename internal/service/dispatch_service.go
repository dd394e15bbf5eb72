package service

import (
	"context"
	"time"

	"log/slog"

	"medidispatch/internal/domain"
	"medidispatch/internal/matching"
	"medidispatch/pkg/e"

	"github.com/google/uuid"
)

func (s *Service) Dispatch(ctx context.Context, req domain.DispatchRequest) (domain.DispatchResponse, error) {
	return s.DispatchService.Dispatch(ctx, req)
}

func (s *Service) Match(ctx context.Context, req domain.MatchRequest) (domain.MatchResponse, error) {
	return s.DispatchService.Match(ctx, req)
}

func (s *Service) Geofence(req domain.GeofenceRequest) (domain.GeofenceResponse, error) {
	return s.DispatchService.Geofence(req)
}

type dispatchService struct {
	repo            CandidateRepository
	records         DispatchRepository
	cache           CandidateCacheService
	queue           NotificationQueue
	coordinator     *matching.Coordinator
	logger          *slog.Logger
	defaultRadiusKm float64
	notifyLimit     int
	cacheTTL        time.Duration
}

func NewDispatchService(
	repo CandidateRepository,
	records DispatchRepository,
	cache CandidateCacheService,
	queue NotificationQueue,
	logger *slog.Logger,
	defaultRadiusKm float64,
	notifyLimit int,
	cacheTTL time.Duration,
) DispatchService {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = 5.0
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &dispatchService{
		repo:            repo,
		records:         records,
		cache:           cache,
		queue:           queue,
		coordinator:     matching.NewCoordinator(logger),
		logger:          logger,
		defaultRadiusKm: defaultRadiusKm,
		notifyLimit:     notifyLimit,
		cacheTTL:        cacheTTL,
	}
}

// requiresAvailability reports whether the category only makes sense
// with a live responder: an off-duty ambulance is useless at incident
// time, a closed lab can still be listed.
func requiresAvailability(category domain.Category) bool {
	return category == domain.CategoryAmbulance || category == domain.CategoryDoctor
}

// rankPolicy picks "top-rated-nearest" where the category carries a
// quality signal, plain nearest otherwise.
func rankPolicy(category domain.Category) matching.RankPolicy {
	if category == domain.CategoryHospital || category == domain.CategoryLab {
		return matching.RankByRatingThenDistance
	}
	return matching.RankByDistance
}

func (s *dispatchService) Dispatch(ctx context.Context, req domain.DispatchRequest) (domain.DispatchResponse, error) {
	s.logger.Info("dispatch START",
		slog.String("requester_id", req.RequesterID),
		slog.String("category", string(req.Category)),
		slog.Float64("lat", req.Lat),
		slog.Float64("lng", req.Lng),
	)

	requesterID, err := uuid.Parse(req.RequesterID)
	if err != nil {
		return domain.DispatchResponse{}, e.ErrInvalidInput
	}
	incident := domain.GeoPoint{Lat: req.Lat, Lng: req.Lng}
	if !incident.Valid() {
		s.logger.Warn("invalid coordinates",
			slog.Float64("lat", req.Lat),
			slog.Float64("lng", req.Lng),
		)
		return domain.DispatchResponse{}, e.ErrInvalidCoordinates
	}
	if !req.Category.Valid() {
		return domain.DispatchResponse{}, e.ErrInvalidCategory
	}

	radius := req.RadiusKm
	if radius == 0 {
		radius = s.defaultRadiusKm
	}
	urgency := req.Urgency
	if urgency == "" {
		urgency = domain.UrgencyNormal
	}
	notifyLimit := req.NotifyLimit
	if notifyLimit == 0 {
		notifyLimit = s.notifyLimit
	}

	candidates, err := s.loadCandidates(ctx, req.Category)
	if err != nil {
		s.logger.Error("load candidates failed", slog.Any("error", err))
		return domain.DispatchResponse{}, err
	}
	s.logger.Debug("candidates loaded", slog.Int("count", len(candidates)))

	dispatchID := uuid.New()

	outcome, err := s.coordinator.Dispatch(ctx,
		matching.Request{
			Location:         incident,
			RadiusKm:         radius,
			Category:         req.Category,
			RequireAvailable: requiresAvailability(req.Category),
			Attributes:       req.Attributes,
			Rank:             rankPolicy(req.Category),
			Limit:            req.Limit,
		},
		candidates,
		notifyLimit,
		func(ctx context.Context, m domain.MatchResult) error {
			return s.queue.Enqueue(ctx, domain.NotificationJob{
				DispatchID:  dispatchID,
				CandidateID: m.Candidate.ID,
				Category:    m.Candidate.Category,
				Urgency:     urgency,
				Incident:    incident,
				DistanceKm:  m.DistanceKm,
				EnqueuedAt:  time.Now().UTC(),
			})
		},
	)
	if err != nil {
		return domain.DispatchResponse{}, err
	}

	matchedIDs := make([]uuid.UUID, 0, len(outcome.Matches))
	for _, m := range outcome.Matches {
		matchedIDs = append(matchedIDs, m.Candidate.ID)
	}

	rec := &domain.DispatchRecord{
		ID:          dispatchID,
		RequesterID: requesterID,
		Location:    incident,
		RadiusKm:    radius,
		Category:    req.Category,
		Urgency:     urgency,
		MatchedIDs:  matchedIDs,
		NotifiedIDs: outcome.Notified,
	}
	if err := s.records.Save(ctx, rec); err != nil {
		// the alert already went out; losing the audit row is logged, not fatal
		s.logger.Error("save dispatch record failed", slog.Any("error", err))
	}

	s.logger.Info("dispatch END",
		slog.String("dispatch_id", dispatchID.String()),
		slog.Int("matched", len(outcome.Matches)),
		slog.Int("notified", len(outcome.Notified)),
		slog.Int("attempted", outcome.Attempted),
	)

	return domain.DispatchResponse{
		DispatchID: dispatchID.String(),
		Matches:    outcome.Matches,
		Notified:   idsToStrings(outcome.Notified),
		Attempted:  outcome.Attempted,
		Geofence:   outcome.Geofence,
	}, nil
}

// Match is the side-effect-free preview: fresh DB prefilter, no cache,
// no notifications, no record.
func (s *dispatchService) Match(ctx context.Context, req domain.MatchRequest) (domain.MatchResponse, error) {
	incident := domain.GeoPoint{Lat: req.Lat, Lng: req.Lng}
	if !incident.Valid() {
		return domain.MatchResponse{}, e.ErrInvalidCoordinates
	}
	if !req.Category.Valid() {
		return domain.MatchResponse{}, e.ErrInvalidCategory
	}

	radius := req.RadiusKm
	if radius == 0 {
		radius = s.defaultRadiusKm
	}

	candidates, err := s.repo.FindNearby(ctx, incident.Lat, incident.Lng, radius, req.Category)
	if err != nil {
		s.logger.Error("find nearby failed", slog.Any("error", err))
		return domain.MatchResponse{}, err
	}

	matches, err := matching.Match(matching.Request{
		Location:         incident,
		RadiusKm:         radius,
		Category:         req.Category,
		RequireAvailable: requiresAvailability(req.Category),
		Attributes:       req.Attributes,
		Rank:             rankPolicy(req.Category),
		Limit:            req.Limit,
	}, candidates)
	if err != nil {
		return domain.MatchResponse{}, err
	}

	return domain.MatchResponse{Matches: matches}, nil
}

func (s *dispatchService) Geofence(req domain.GeofenceRequest) (domain.GeofenceResponse, error) {
	vertices, err := matching.Hexagon(domain.GeoPoint{Lat: req.Lat, Lng: req.Lng}, req.RadiusKm)
	if err != nil {
		return domain.GeofenceResponse{}, err
	}
	return domain.GeofenceResponse{Vertices: vertices}, nil
}

// loadCandidates serves the dispatch hot path: category set from Redis
// when warm, Postgres fallback that re-warms the cache.
func (s *dispatchService) loadCandidates(ctx context.Context, category domain.Category) ([]domain.Candidate, error) {
	candidates, err := s.cache.GetByCategory(ctx, category)
	if err != nil {
		s.logger.Warn("cache read failed, falling back to db", slog.Any("error", err))
	}
	if candidates != nil {
		return candidates, nil
	}

	candidates, err = s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetByCategory(ctx, category, candidates, s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed", slog.Any("error", err))
	}
	return candidates, nil
}

func idsToStrings(ids []uuid.UUID) []string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return strs
}
