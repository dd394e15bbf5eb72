package public_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"log/slog"

	"github.com/golang/mock/gomock"

	"medidispatch/internal/api/handlers/http/public"
	mock_public "medidispatch/internal/api/handlers/http/public/mocks"
	"medidispatch/internal/domain"
	"medidispatch/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

func TestPublicDispatch_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockDispatchHandler(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	reqBody := `{"requester_id":"00000000-0000-0000-0000-000000000001","lat":20.296071,"lng":85.824539,"radius_km":5,"category":"ambulance","urgency":"critical"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dispatch", bytes.NewBufferString(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	wantReq := domain.DispatchRequest{
		RequesterID: "00000000-0000-0000-0000-000000000001",
		Lat:         20.296071,
		Lng:         85.824539,
		RadiusKm:    5,
		Category:    domain.CategoryAmbulance,
		Urgency:     domain.UrgencyCritical,
	}
	wantResp := domain.DispatchResponse{
		DispatchID: "11111111-1111-1111-1111-111111111111",
		Matches:    []domain.MatchResult{},
		Notified:   []string{"22222222-2222-2222-2222-222222222222"},
		Attempted:  1,
	}

	svc.EXPECT().
		Dispatch(gomock.Any(), wantReq).
		Return(wantResp, nil).
		Times(1)

	h.PublicDispatch(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}

	got := decodeJSON[domain.DispatchResponse](t, rr)
	if !reflect.DeepEqual(got, wantResp) {
		t.Fatalf("unexpected response: got=%+v want=%+v", got, wantResp)
	}
}

func TestPublicDispatch_InvalidJSON_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockDispatchHandler(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dispatch", bytes.NewBufferString("{bad json"))
	rr := httptest.NewRecorder()

	h.PublicDispatch(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestPublicDispatch_UnknownField_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockDispatchHandler(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	reqBody := `{"requester_id":"00000000-0000-0000-0000-000000000001","lat":20.29,"lng":85.82,"category":"ambulance","surprise":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dispatch", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	h.PublicDispatch(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestPublicDispatch_MissingRequester_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockDispatchHandler(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	reqBody := `{"lat":20.29,"lng":85.82,"category":"ambulance"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dispatch", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	h.PublicDispatch(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestPublicDispatch_ServiceInvalidInput_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockDispatchHandler(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	reqBody := `{"requester_id":"00000000-0000-0000-0000-000000000001","lat":20.29,"lng":85.82,"category":"ambulance"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dispatch", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	svc.EXPECT().
		Dispatch(gomock.Any(), gomock.Any()).
		Return(domain.DispatchResponse{}, e.ErrInvalidCoordinates).
		Times(1)

	h.PublicDispatch(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestPublicDispatch_ServiceError_500(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockDispatchHandler(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	reqBody := `{"requester_id":"00000000-0000-0000-0000-000000000001","lat":20.29,"lng":85.82,"category":"ambulance"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dispatch", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	svc.EXPECT().
		Dispatch(gomock.Any(), gomock.Any()).
		Return(domain.DispatchResponse{}, errors.New("db down")).
		Times(1)

	h.PublicDispatch(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d got %d body=%s", http.StatusInternalServerError, rr.Code, rr.Body.String())
	}
}

func TestPublicMatch_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockDispatchHandler(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	reqBody := `{"lat":20.296071,"lng":85.824539,"radius_km":10,"category":"hospital","limit":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/match", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	wantReq := domain.MatchRequest{
		Lat:      20.296071,
		Lng:      85.824539,
		RadiusKm: 10,
		Category: domain.CategoryHospital,
		Limit:    3,
	}

	svc.EXPECT().
		Match(gomock.Any(), wantReq).
		Return(domain.MatchResponse{Matches: []domain.MatchResult{}}, nil).
		Times(1)

	h.PublicMatch(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
}

func TestPublicGeofence_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockDispatchHandler(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	reqBody := `{"lat":20.296071,"lng":85.824539,"radius_km":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/geofence", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	wantResp := domain.GeofenceResponse{
		Vertices: []domain.GeoPoint{
			{Lat: 20.341, Lng: 85.824539},
			{Lat: 20.318, Lng: 85.866},
			{Lat: 20.273, Lng: 85.866},
			{Lat: 20.251, Lng: 85.824539},
			{Lat: 20.273, Lng: 85.783},
			{Lat: 20.318, Lng: 85.783},
		},
	}

	svc.EXPECT().
		Geofence(domain.GeofenceRequest{Lat: 20.296071, Lng: 85.824539, RadiusKm: 5}).
		Return(wantResp, nil).
		Times(1)

	h.PublicGeofence(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}

	got := decodeJSON[domain.GeofenceResponse](t, rr)
	if len(got.Vertices) != 6 {
		t.Fatalf("expected 6 vertices, got %d", len(got.Vertices))
	}
}

func TestPublicGeofence_MissingRadius_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_public.NewMockDispatchHandler(ctrl)
	h := public.NewHandler(newTestLogger(), svc)

	reqBody := `{"lat":20.296071,"lng":85.824539}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/geofence", bytes.NewBufferString(reqBody))
	rr := httptest.NewRecorder()

	h.PublicGeofence(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}
