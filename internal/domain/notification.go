package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationJob is the queued payload delivered to a matched candidate
// through one of the configured senders (webhook, AMQP).
type NotificationJob struct {
	DispatchID  uuid.UUID `json:"dispatch_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	Category    Category  `json:"category"`
	Urgency     Urgency   `json:"urgency"`
	Incident    GeoPoint  `json:"incident"`
	DistanceKm  float64   `json:"distance_km"`
	EnqueuedAt  time.Time `json:"enqueued_at"`
}
