package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medidispatch/internal/domain"
)

func TestDistance_ZeroForSamePoint(t *testing.T) {
	t.Parallel()

	p := domain.GeoPoint{Lat: 20.296071, Lng: 85.824539}
	assert.InDelta(t, 0, Distance(p, p), 1e-9)
}

func TestDistance_Symmetric(t *testing.T) {
	t.Parallel()

	pairs := [][2]domain.GeoPoint{
		{{Lat: 20.296071, Lng: 85.824539}, {Lat: 20.462521, Lng: 85.882988}},
		{{Lat: -33.8688, Lng: 151.2093}, {Lat: 51.5074, Lng: -0.1278}},
		{{Lat: 0, Lng: 179.9}, {Lat: 0, Lng: -179.9}},
	}
	for _, pair := range pairs {
		assert.InDelta(t, Distance(pair[0], pair[1]), Distance(pair[1], pair[0]), 1e-9)
	}
}

func TestDistance_TriangleInequality(t *testing.T) {
	t.Parallel()

	a := domain.GeoPoint{Lat: 20.296071, Lng: 85.824539}
	b := domain.GeoPoint{Lat: 20.35, Lng: 85.90}
	c := domain.GeoPoint{Lat: 20.40, Lng: 85.75}

	assert.LessOrEqual(t, Distance(a, c), Distance(a, b)+Distance(b, c)+1e-9)
}

func TestDistance_KnownCityPair(t *testing.T) {
	t.Parallel()

	// Bhubaneswar -> Cuttack, roughly 19.5 km great-circle.
	bbsr := domain.GeoPoint{Lat: 20.296071, Lng: 85.824539}
	ctc := domain.GeoPoint{Lat: 20.462521, Lng: 85.882988}

	assert.InDelta(t, 19.5, Distance(bbsr, ctc), 0.6)
}

func TestDistance_NeverNegative(t *testing.T) {
	t.Parallel()

	pts := []domain.GeoPoint{
		{Lat: 89.9, Lng: 0},
		{Lat: -89.9, Lng: 180},
		{Lat: 0, Lng: 0},
	}
	for _, a := range pts {
		for _, b := range pts {
			assert.GreaterOrEqual(t, Distance(a, b), 0.0)
		}
	}
}
