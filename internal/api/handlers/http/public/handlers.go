package public

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"log/slog"

	"medidispatch/internal/domain"
	"medidispatch/pkg/validator"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type DispatchHandler interface {
	Dispatch(ctx context.Context, req domain.DispatchRequest) (domain.DispatchResponse, error)
	Match(ctx context.Context, req domain.MatchRequest) (domain.MatchResponse, error)
	Geofence(req domain.GeofenceRequest) (domain.GeofenceResponse, error)
}

type Handler struct {
	logger          *slog.Logger
	DispatchHandler DispatchHandler
}

func NewHandler(logger *slog.Logger, dispatchHandler DispatchHandler) *Handler {
	return &Handler{
		logger:          logger,
		DispatchHandler: dispatchHandler,
	}
}

func (h *Handler) PublicDispatch(w http.ResponseWriter, r *http.Request) {
	var req domain.DispatchRequest
	if !h.bind(w, r, &req) {
		return
	}

	resp, err := h.DispatchHandler.Dispatch(r.Context(), req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) PublicMatch(w http.ResponseWriter, r *http.Request) {
	var req domain.MatchRequest
	if !h.bind(w, r, &req) {
		return
	}

	resp, err := h.DispatchHandler.Match(r.Context(), req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) PublicGeofence(w http.ResponseWriter, r *http.Request) {
	var req domain.GeofenceRequest
	if !h.bind(w, r, &req) {
		return
	}

	resp, err := h.DispatchHandler.Geofence(req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// bind decodes a single strict JSON object into target and validates it.
func (h *Handler) bind(w http.ResponseWriter, r *http.Request, target any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(target); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return false
	}
	if err := validator.ValidateStruct(target); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return false
	}
	return true
}
