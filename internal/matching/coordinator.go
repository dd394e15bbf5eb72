package matching

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"medidispatch/internal/domain"
)

// NotifyFunc is the caller-supplied notification side effect, invoked
// once per matched candidate. It is the only suspension point of a
// dispatch and is expected to perform I/O.
type NotifyFunc func(ctx context.Context, m domain.MatchResult) error

// Outcome aggregates one dispatch call.
type Outcome struct {
	Matches   []domain.MatchResult
	Notified  []uuid.UUID
	Attempted int
	Geofence  []domain.GeoPoint
}

// Coordinator runs the match → notify → aggregate pipeline. It is
// stateless and safe for concurrent use.
type Coordinator struct {
	logger *slog.Logger
}

func NewCoordinator(logger *slog.Logger) *Coordinator {
	return &Coordinator{logger: logger}
}

// Dispatch matches candidates against the request, notifies the top
// notifyLimit matches (0 = all) in rank order, and returns the outcome.
// A failed individual notification is recorded as not-notified and does
// not abort the remaining ones; one unreachable responder must not
// block alerting the rest. An empty match set is a normal outcome.
func (c *Coordinator) Dispatch(ctx context.Context, req Request, candidates []domain.Candidate, notifyLimit int, notify NotifyFunc) (Outcome, error) {
	matches, err := Match(req, candidates)
	if err != nil {
		return Outcome{}, err
	}

	fence, err := Hexagon(req.Location, req.RadiusKm)
	if err != nil {
		return Outcome{}, err
	}

	toNotify := matches
	if notifyLimit > 0 && len(toNotify) > notifyLimit {
		toNotify = toNotify[:notifyLimit]
	}

	out := Outcome{
		Matches:  matches,
		Notified: make([]uuid.UUID, 0, len(toNotify)),
		Geofence: fence,
	}

	for _, m := range toNotify {
		if ctx.Err() != nil {
			c.logger.Warn("dispatch canceled mid-notification",
				slog.Int("attempted", out.Attempted),
				slog.Int("matched", len(matches)),
			)
			break
		}
		out.Attempted++
		if err := notify(ctx, m); err != nil {
			c.logger.Warn("notify failed",
				slog.String("candidate_id", m.Candidate.ID.String()),
				slog.Any("error", err),
			)
			continue
		}
		out.Notified = append(out.Notified, m.Candidate.ID)
	}

	return out, nil
}
