package domain

// DispatchRequest is the public "find and alert responders" request.
type DispatchRequest struct {
	RequesterID string            `json:"requester_id" validate:"required,uuid"`
	Lat         float64           `json:"lat" validate:"lat"`
	Lng         float64           `json:"lng" validate:"lng"`
	RadiusKm    float64           `json:"radius_km" validate:"omitempty,radius_km"` // 0 falls back to the configured default
	Category    Category          `json:"category" validate:"required,category"`
	Urgency     Urgency           `json:"urgency" validate:"omitempty,oneof=critical urgent normal"`
	Attributes  map[string]string `json:"attributes,omitempty"` // e.g. {"blood_type": "O-"}
	Limit       int               `json:"limit" validate:"min=0,max=100"`
	NotifyLimit int               `json:"notify_limit" validate:"min=0,max=100"`
}

type DispatchResponse struct {
	DispatchID string        `json:"dispatch_id"`
	Matches    []MatchResult `json:"matches"`
	Notified   []string      `json:"notified"`
	Attempted  int           `json:"attempted"`
	Geofence   []GeoPoint    `json:"geofence"`
}

// MatchRequest is the side-effect-free preview variant of DispatchRequest.
type MatchRequest struct {
	Lat        float64           `json:"lat" validate:"lat"`
	Lng        float64           `json:"lng" validate:"lng"`
	RadiusKm   float64           `json:"radius_km" validate:"omitempty,radius_km"`
	Category   Category          `json:"category" validate:"required,category"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Limit      int               `json:"limit" validate:"min=0,max=100"`
}

type MatchResponse struct {
	Matches []MatchResult `json:"matches"`
}

type GeofenceRequest struct {
	Lat      float64 `json:"lat" validate:"lat"`
	Lng      float64 `json:"lng" validate:"lng"`
	RadiusKm float64 `json:"radius_km" validate:"required,radius_km"`
}

type GeofenceResponse struct {
	Vertices []GeoPoint `json:"vertices"`
}
