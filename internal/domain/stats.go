package domain

type StatsRequest struct {
	WindowMinutes int `query:"window_minutes" validate:"min=1,max=10080"`
}

type DispatchStats struct {
	WindowMinutes    int   `json:"window_minutes"`
	Dispatches       int64 `json:"dispatches"`
	MatchedTotal     int64 `json:"matched_total"`
	NotifiedTotal    int64 `json:"notified_total"`
	UniqueRequesters int64 `json:"unique_requesters"`
}
