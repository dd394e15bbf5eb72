package domain

import (
	"time"

	"github.com/google/uuid"
)

type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyNormal   Urgency = "normal"
)

// MatchResult pairs a candidate with its great-circle distance from the
// incident location. Sequences of MatchResult are always rank-ordered.
type MatchResult struct {
	Candidate  Candidate `json:"candidate"`
	DistanceKm float64   `json:"distance_km"`
}

// DispatchRecord is the persisted trace of one dispatch call.
type DispatchRecord struct {
	ID          uuid.UUID   `json:"id"`
	RequesterID uuid.UUID   `json:"requester_id"`
	Location    GeoPoint    `json:"location"`
	RadiusKm    float64     `json:"radius_km"`
	Category    Category    `json:"category"`
	Urgency     Urgency     `json:"urgency"`
	MatchedIDs  []uuid.UUID `json:"matched_ids"`
	NotifiedIDs []uuid.UUID `json:"notified_ids"`
	CreatedAt   time.Time   `json:"created_at"`
}
