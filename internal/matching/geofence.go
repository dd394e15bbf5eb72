package matching

import (
	"fmt"
	"math"

	"medidispatch/internal/domain"
	"medidispatch/pkg/e"
)

// maxGeofenceLat bounds the center latitude: the longitude correction
// divides by cos(lat) and blows up near the poles.
const maxGeofenceLat = 85.0

// Hexagon returns the 6 vertices of a regular hexagon approximating a
// circular alert zone of radiusKm around center. Vertex 0 is due north,
// vertices follow clockwise at 60° steps. Display-quality only: the
// longitude correction is a flat-earth approximation of meridian
// convergence.
func Hexagon(center domain.GeoPoint, radiusKm float64) ([]domain.GeoPoint, error) {
	const op = "matching.Hexagon"

	if !center.Valid() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if radiusKm <= 0 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidRadius)
	}
	if math.Abs(center.Lat) > maxGeofenceLat {
		return nil, fmt.Errorf("%s: latitude too close to pole: %w", op, e.ErrInvalidCoordinates)
	}

	radiusDeg := rad2deg(radiusKm / earthRadiusKm)
	lngScale := math.Cos(deg2rad(center.Lat))

	vertices := make([]domain.GeoPoint, 6)
	for i := 0; i < 6; i++ {
		angle := deg2rad(float64(i) * 60.0)
		vertices[i] = domain.GeoPoint{
			Lat: center.Lat + radiusDeg*math.Cos(angle),
			Lng: center.Lng + radiusDeg*math.Sin(angle)/lngScale,
		}
	}
	return vertices, nil
}
