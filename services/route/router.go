package route

import (
	"context"
	"fmt"
	"math"

	"roadstay/models"
	"roadstay/services/supplier"
)

// earthRadiusMiles is the great-circle Earth radius used for trip distances.
const earthRadiusMiles = 3958.8

// avgSpeedMph is the coarse driving-speed estimate behind trip durations.
// Explicitly an approximation, not a routed-road figure.
const avgSpeedMph = 60.0

// NotFoundError signals that a place name could not be geocoded. The request
// fails fast on it: no waypoints can be computed without both endpoints.
type NotFoundError struct {
	Place string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find coordinates for %q", e.Place)
}

// Router turns an origin/destination pair into resolved coordinates and an
// ordered list of intermediate waypoints.
type Router struct {
	Geocoder supplier.Adapter
}

// NewRouter builds a Router over the given supplier's geocoder.
func NewRouter(geocoder supplier.Adapter) *Router {
	return &Router{Geocoder: geocoder}
}

// Resolve returns coords unchanged when given, otherwise geocodes the place
// name through the supplier.
func (r *Router) Resolve(ctx context.Context, place string, coords *models.Coordinates) (models.Coordinates, error) {
	if coords != nil {
		return *coords, nil
	}
	resolved, err := r.Geocoder.CityCoordinates(ctx, place)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("geocoding %q: %w", place, err)
	}
	if resolved == nil {
		return models.Coordinates{}, &NotFoundError{Place: place}
	}
	return *resolved, nil
}

// Waypoints places count stops at evenly spaced fractional positions along
// the straight-line interpolation between origin and destination. The default
// count of 3 yields the 25%/50%/75% stops.
func Waypoints(origin, destination models.Coordinates, count int, radiusMiles float64) []models.Waypoint {
	if count <= 0 {
		count = 3
	}
	waypoints := make([]models.Waypoint, 0, count)
	for i := 1; i <= count; i++ {
		f := float64(i) / float64(count+1)
		waypoints = append(waypoints, models.Waypoint{
			Coordinates: models.Coordinates{
				Lat: origin.Lat + (destination.Lat-origin.Lat)*f,
				Lng: origin.Lng + (destination.Lng-origin.Lng)*f,
			},
			Label:       waypointLabel(i, count),
			RadiusMiles: radiusMiles,
		})
	}
	return waypoints
}

func waypointLabel(i, count int) string {
	if i*2 == count+1 {
		return "Midpoint"
	}
	return fmt.Sprintf("%d/%d Way", i, count+1)
}

// TripDistance is the great-circle distance between two points in miles.
func TripDistance(origin, destination models.Coordinates) float64 {
	return haversineMiles(origin.Lat, origin.Lng, destination.Lat, destination.Lng)
}

// TripDuration estimates driving hours for a distance at a fixed average speed.
func TripDuration(distanceMiles float64) float64 {
	return distanceMiles / avgSpeedMph
}

// Direction labels the trip with its dominant cardinal direction, for display.
// Same interpolation underneath, presentation only.
func Direction(origin, destination models.Coordinates) string {
	dLat := destination.Lat - origin.Lat
	dLng := destination.Lng - origin.Lng
	if math.Abs(dLat) >= math.Abs(dLng) {
		if dLat >= 0 {
			return "Northbound"
		}
		return "Southbound"
	}
	if dLng >= 0 {
		return "Eastbound"
	}
	return "Westbound"
}

func haversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}
