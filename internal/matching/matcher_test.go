package matching

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medidispatch/internal/domain"
	"medidispatch/pkg/e"
)

var incidentLoc = domain.GeoPoint{Lat: 20.296071, Lng: 85.824539}

// candidateAtKm places an available candidate roughly km kilometers due
// north of the incident location.
func candidateAtKm(km float64, category domain.Category) domain.Candidate {
	return domain.Candidate{
		ID:           uuid.New(),
		Name:         "c-" + string(category),
		Location:     domain.GeoPoint{Lat: incidentLoc.Lat + rad2deg(km/earthRadiusKm), Lng: incidentLoc.Lng},
		Availability: domain.AvailabilityAvailable,
		Category:     category,
	}
}

func TestMatch_FiltersByRadiusAndOrdersByDistance(t *testing.T) {
	t.Parallel()

	near := candidateAtKm(1, domain.CategoryAmbulance)
	mid := candidateAtKm(4, domain.CategoryAmbulance)
	far := candidateAtKm(8, domain.CategoryAmbulance)

	got, err := Match(Request{
		Location:         incidentLoc,
		RadiusKm:         5,
		Category:         domain.CategoryAmbulance,
		RequireAvailable: true,
	}, []domain.Candidate{far, mid, near})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, near.ID, got[0].Candidate.ID)
	assert.Equal(t, mid.ID, got[1].Candidate.ID)
	assert.InDelta(t, 1, got[0].DistanceKm, 0.05)
	assert.InDelta(t, 4, got[1].DistanceKm, 0.05)
}

func TestMatch_BusyCandidateExcludedWhenAvailabilityRequired(t *testing.T) {
	t.Parallel()

	busy := candidateAtKm(1, domain.CategoryDoctor)
	busy.Availability = domain.AvailabilityBusy

	got, err := Match(Request{
		Location:         incidentLoc,
		RadiusKm:         5,
		Category:         domain.CategoryDoctor,
		RequireAvailable: true,
	}, []domain.Candidate{busy})
	require.NoError(t, err)
	assert.Empty(t, got)

	// Without the availability requirement the same candidate matches.
	got, err = Match(Request{
		Location: incidentLoc,
		RadiusKm: 5,
		Category: domain.CategoryDoctor,
	}, []domain.Candidate{busy})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestMatch_RatingThenDistanceRanking(t *testing.T) {
	t.Parallel()

	lower := candidateAtKm(2, domain.CategoryLab)
	lower.Rating = 4.5
	higher := candidateAtKm(2, domain.CategoryLab)
	higher.Rating = 4.9

	got, err := Match(Request{
		Location: incidentLoc,
		RadiusKm: 5,
		Category: domain.CategoryLab,
		Rank:     RankByRatingThenDistance,
	}, []domain.Candidate{lower, higher})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, higher.ID, got[0].Candidate.ID)
	assert.Equal(t, lower.ID, got[1].Candidate.ID)
}

func TestMatch_AttributeFilter(t *testing.T) {
	t.Parallel()

	oneg := candidateAtKm(1, domain.CategoryDonor)
	oneg.Attributes = map[string]string{"blood_type": "O-"}
	apos := candidateAtKm(2, domain.CategoryDonor)
	apos.Attributes = map[string]string{"blood_type": "A+"}

	got, err := Match(Request{
		Location:   incidentLoc,
		RadiusKm:   10,
		Category:   domain.CategoryDonor,
		Attributes: map[string]string{"blood_type": "O-"},
	}, []domain.Candidate{apos, oneg})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, oneg.ID, got[0].Candidate.ID)
}

func TestMatch_CategoryFilter(t *testing.T) {
	t.Parallel()

	amb := candidateAtKm(1, domain.CategoryAmbulance)
	doc := candidateAtKm(1, domain.CategoryDoctor)

	got, err := Match(Request{
		Location: incidentLoc,
		RadiusKm: 5,
		Category: domain.CategoryAmbulance,
	}, []domain.Candidate{doc, amb})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, amb.ID, got[0].Candidate.ID)
}

func TestMatch_LimitTruncates(t *testing.T) {
	t.Parallel()

	cands := []domain.Candidate{
		candidateAtKm(3, domain.CategoryHospital),
		candidateAtKm(1, domain.CategoryHospital),
		candidateAtKm(2, domain.CategoryHospital),
		candidateAtKm(4, domain.CategoryHospital),
	}

	got, err := Match(Request{
		Location: incidentLoc,
		RadiusKm: 10,
		Category: domain.CategoryHospital,
		Limit:    3,
	}, cands)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.True(t, got[0].DistanceKm <= got[1].DistanceKm)
	assert.True(t, got[1].DistanceKm <= got[2].DistanceKm)
}

func TestMatch_EmptyCandidatesIsNotAnError(t *testing.T) {
	t.Parallel()

	got, err := Match(Request{Location: incidentLoc, RadiusKm: 5}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMatch_InvalidRadiusRejected(t *testing.T) {
	t.Parallel()

	_, err := Match(Request{Location: incidentLoc, RadiusKm: 0}, nil)
	assert.ErrorIs(t, err, e.ErrInvalidRadius)

	_, err = Match(Request{Location: incidentLoc, RadiusKm: -3}, nil)
	assert.ErrorIs(t, err, e.ErrInvalidRadius)
}

func TestMatch_InvalidIncidentCoordinatesRejected(t *testing.T) {
	t.Parallel()

	_, err := Match(Request{Location: domain.GeoPoint{Lat: 91, Lng: 0}, RadiusKm: 5}, nil)
	assert.ErrorIs(t, err, e.ErrInvalidCoordinates)
}

func TestMatch_MalformedCandidateSkippedNotFatal(t *testing.T) {
	t.Parallel()

	ok := candidateAtKm(1, domain.CategoryAmbulance)
	bad := candidateAtKm(1, domain.CategoryAmbulance)
	bad.Location = domain.GeoPoint{Lat: 120, Lng: 400}

	got, err := Match(Request{
		Location: incidentLoc,
		RadiusKm: 5,
		Category: domain.CategoryAmbulance,
	}, []domain.Candidate{bad, ok})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, ok.ID, got[0].Candidate.ID)
}

func TestMatch_DeterministicOrderOnTies(t *testing.T) {
	t.Parallel()

	a := candidateAtKm(2, domain.CategoryLab)
	b := candidateAtKm(2, domain.CategoryLab)

	req := Request{Location: incidentLoc, RadiusKm: 5, Category: domain.CategoryLab}

	first, err := Match(req, []domain.Candidate{a, b})
	require.NoError(t, err)
	second, err := Match(req, []domain.Candidate{b, a})
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, first[0].Candidate.ID, second[0].Candidate.ID)
	assert.Equal(t, first[1].Candidate.ID, second[1].Candidate.ID)
}
