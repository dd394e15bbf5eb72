package matching

import (
	"math"

	"medidispatch/internal/domain"
)

// earthRadiusKm is the mean Earth radius used by every distance and
// geofence computation in this package.
const earthRadiusKm = 6371.0

// Distance returns the great-circle distance between two points in km,
// computed with the haversine formula. Accurate enough for the
// sub-hundred-km ranges dispatch works with.
func Distance(a, b domain.GeoPoint) float64 {
	dLat := deg2rad(b.Lat - a.Lat)
	dLng := deg2rad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Lat))*math.Cos(deg2rad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func rad2deg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
