package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"medidispatch/internal/domain"
	"medidispatch/internal/service"
	"medidispatch/pkg/e"

	mock_service "medidispatch/internal/service/mocks"
)

var testIncident = domain.GeoPoint{Lat: 20.296071, Lng: 85.824539}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ambulanceAtKm places an available ambulance roughly km kilometers due
// north of the test incident.
func ambulanceAtKm(t *testing.T, km float64) domain.Candidate {
	t.Helper()
	return domain.Candidate{
		ID:           uuid.New(),
		Name:         "amb",
		Location:     domain.GeoPoint{Lat: testIncident.Lat + km*180/(math.Pi*6371), Lng: testIncident.Lng},
		Availability: domain.AvailabilityAvailable,
		Category:     domain.CategoryAmbulance,
	}
}

func newDispatchService(t *testing.T, ctrl *gomock.Controller) (
	service.DispatchService,
	*mock_service.MockCandidateRepository,
	*mock_service.MockDispatchRepository,
	*mock_service.MockCandidateCacheService,
	*mock_service.MockNotificationQueue,
) {
	t.Helper()
	repo := mock_service.NewMockCandidateRepository(ctrl)
	records := mock_service.NewMockDispatchRepository(ctrl)
	cache := mock_service.NewMockCandidateCacheService(ctrl)
	queue := mock_service.NewMockNotificationQueue(ctrl)

	svc := service.NewDispatchService(repo, records, cache, queue, testLogger(), 5.0, 0, 0)
	return svc, repo, records, cache, queue
}

func TestDispatchService_Dispatch_CacheHit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, records, cache, queue := newDispatchService(t, ctrl)

	near := ambulanceAtKm(t, 1)
	mid := ambulanceAtKm(t, 4)
	far := ambulanceAtKm(t, 8)

	cache.EXPECT().
		GetByCategory(gomock.Any(), domain.CategoryAmbulance).
		Return([]domain.Candidate{far, mid, near}, nil).
		Times(1)

	queue.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(2)

	var saved *domain.DispatchRecord
	records.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *domain.DispatchRecord) error {
			saved = rec
			return nil
		}).
		Times(1)

	resp, err := svc.Dispatch(context.Background(), domain.DispatchRequest{
		RequesterID: uuid.New().String(),
		Lat:         testIncident.Lat,
		Lng:         testIncident.Lng,
		RadiusKm:    5,
		Category:    domain.CategoryAmbulance,
		Urgency:     domain.UrgencyCritical,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(resp.Matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(resp.Matches))
	}
	if resp.Matches[0].Candidate.ID != near.ID || resp.Matches[1].Candidate.ID != mid.ID {
		t.Fatalf("wrong order: %v", resp.Matches)
	}
	if len(resp.Notified) != 2 || resp.Attempted != 2 {
		t.Fatalf("notified=%d attempted=%d, want 2/2", len(resp.Notified), resp.Attempted)
	}
	if len(resp.Geofence) != 6 {
		t.Fatalf("geofence vertices = %d, want 6", len(resp.Geofence))
	}
	if saved == nil {
		t.Fatal("dispatch record not saved")
	}
	if len(saved.MatchedIDs) != 2 || len(saved.NotifiedIDs) != 2 {
		t.Fatalf("record ids = %d/%d, want 2/2", len(saved.MatchedIDs), len(saved.NotifiedIDs))
	}
	if saved.Urgency != domain.UrgencyCritical {
		t.Fatalf("urgency = %s", saved.Urgency)
	}
}

func TestDispatchService_Dispatch_CacheMissFallsBackToRepo(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, records, cache, queue := newDispatchService(t, ctrl)

	near := ambulanceAtKm(t, 1)

	cache.EXPECT().
		GetByCategory(gomock.Any(), domain.CategoryAmbulance).
		Return(nil, nil).
		Times(1)
	repo.EXPECT().
		ListByCategory(gomock.Any(), domain.CategoryAmbulance).
		Return([]domain.Candidate{near}, nil).
		Times(1)
	cache.EXPECT().
		SetByCategory(gomock.Any(), domain.CategoryAmbulance, gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)
	queue.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)
	records.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	resp, err := svc.Dispatch(context.Background(), domain.DispatchRequest{
		RequesterID: uuid.New().String(),
		Lat:         testIncident.Lat,
		Lng:         testIncident.Lng,
		RadiusKm:    5,
		Category:    domain.CategoryAmbulance,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(resp.Matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(resp.Matches))
	}
}

func TestDispatchService_Dispatch_EnqueueFailureTolerated(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, records, cache, queue := newDispatchService(t, ctrl)

	first := ambulanceAtKm(t, 1)
	second := ambulanceAtKm(t, 2)

	cache.EXPECT().
		GetByCategory(gomock.Any(), domain.CategoryAmbulance).
		Return([]domain.Candidate{first, second}, nil).
		Times(1)

	queue.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job domain.NotificationJob) error {
			if job.CandidateID == second.ID {
				return errors.New("queue down")
			}
			return nil
		}).
		Times(2)

	records.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	resp, err := svc.Dispatch(context.Background(), domain.DispatchRequest{
		RequesterID: uuid.New().String(),
		Lat:         testIncident.Lat,
		Lng:         testIncident.Lng,
		RadiusKm:    5,
		Category:    domain.CategoryAmbulance,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(resp.Matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(resp.Matches))
	}
	if len(resp.Notified) != 1 || resp.Notified[0] != first.ID.String() {
		t.Fatalf("notified = %v, want only %s", resp.Notified, first.ID)
	}
	if resp.Attempted != 2 {
		t.Fatalf("attempted = %d, want 2", resp.Attempted)
	}
}

func TestDispatchService_Dispatch_RecordSaveFailureNotFatal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, records, cache, queue := newDispatchService(t, ctrl)

	near := ambulanceAtKm(t, 1)

	cache.EXPECT().
		GetByCategory(gomock.Any(), domain.CategoryAmbulance).
		Return([]domain.Candidate{near}, nil).
		Times(1)
	queue.EXPECT().
		Enqueue(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)
	records.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(errors.New("db down")).
		Times(1)

	resp, err := svc.Dispatch(context.Background(), domain.DispatchRequest{
		RequesterID: uuid.New().String(),
		Lat:         testIncident.Lat,
		Lng:         testIncident.Lng,
		RadiusKm:    5,
		Category:    domain.CategoryAmbulance,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(resp.Notified) != 1 {
		t.Fatalf("notified = %d, want 1", len(resp.Notified))
	}
}

func TestDispatchService_Dispatch_InvalidInput(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _ := newDispatchService(t, ctrl)

	_, err := svc.Dispatch(context.Background(), domain.DispatchRequest{
		RequesterID: "not-a-uuid",
		Lat:         testIncident.Lat,
		Lng:         testIncident.Lng,
		Category:    domain.CategoryAmbulance,
	})
	if !errors.Is(err, e.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	_, err = svc.Dispatch(context.Background(), domain.DispatchRequest{
		RequesterID: uuid.New().String(),
		Lat:         120,
		Lng:         85.8,
		Category:    domain.CategoryAmbulance,
	})
	if !errors.Is(err, e.ErrInvalidCoordinates) {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}

	_, err = svc.Dispatch(context.Background(), domain.DispatchRequest{
		RequesterID: uuid.New().String(),
		Lat:         testIncident.Lat,
		Lng:         testIncident.Lng,
		Category:    "spaceship",
	})
	if !errors.Is(err, e.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestDispatchService_Match_NoSideEffects(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repo, _, _, _ := newDispatchService(t, ctrl)

	near := ambulanceAtKm(t, 1)

	repo.EXPECT().
		FindNearby(gomock.Any(), testIncident.Lat, testIncident.Lng, 5.0, domain.CategoryAmbulance).
		Return([]domain.Candidate{near}, nil).
		Times(1)

	resp, err := svc.Match(context.Background(), domain.MatchRequest{
		Lat:      testIncident.Lat,
		Lng:      testIncident.Lng,
		RadiusKm: 5,
		Category: domain.CategoryAmbulance,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(resp.Matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(resp.Matches))
	}
}

func TestDispatchService_Geofence(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _, _ := newDispatchService(t, ctrl)

	resp, err := svc.Geofence(domain.GeofenceRequest{Lat: 20.3, Lng: 85.8, RadiusKm: 5})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(resp.Vertices) != 6 {
		t.Fatalf("vertices = %d, want 6", len(resp.Vertices))
	}

	_, err = svc.Geofence(domain.GeofenceRequest{Lat: 20.3, Lng: 85.8, RadiusKm: -1})
	if !errors.Is(err, e.ErrInvalidRadius) {
		t.Fatalf("expected ErrInvalidRadius, got %v", err)
	}
}

func TestService_Dispatch_Delegates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dispatchSvc := mock_service.NewMockDispatchService(ctrl)

	req := domain.DispatchRequest{
		RequesterID: uuid.New().String(),
		Lat:         20.3,
		Lng:         85.8,
		Category:    domain.CategoryAmbulance,
	}
	want := domain.DispatchResponse{DispatchID: uuid.New().String()}

	dispatchSvc.EXPECT().
		Dispatch(gomock.Any(), req).
		Return(want, nil).
		Times(1)

	svc := service.NewService(nil, dispatchSvc, nil)

	got, err := svc.Dispatch(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.DispatchID != want.DispatchID {
		t.Fatalf("response mismatch: got=%+v want=%+v", got, want)
	}
}
