package models

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Waypoint is a computed intermediate stop along a trip. RadiusMiles is the
// search radius actually used for it: the orchestrator may widen it once, and
// the widened value is recorded for auditability.
type Waypoint struct {
	Coordinates
	Label       string  `json:"label"`
	RadiusMiles float64 `json:"radiusMiles"`
}

// Stop statuses of a route search. NO_OFFERS is a valid outcome, not an error.
const (
	StopOK       = "OK"
	StopNoOffers = "NO_OFFERS"
	StopError    = "ERROR"
)

// StopResult is the per-waypoint outcome of a route search. The original
// waypoint index is preserved for every stop, including failed ones, so the
// caller can render a stable layout.
type StopResult struct {
	StopIndex  int      `json:"stopIndex"`
	Status     string   `json:"status"`
	Label      string   `json:"label"`
	Waypoint   Waypoint `json:"waypoint"`
	RadiusUsed float64  `json:"radiusUsed,omitempty"`
	BestOffer  *Offer   `json:"bestOffer,omitempty"`
	Offers     []Offer  `json:"offers,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// RouteSearchRequest is the inbound shape for a route search. Origin and
// destination may be place names or coordinate pairs; coordinates win when
// both are present.
type RouteSearchRequest struct {
	Origin            string       `json:"origin"`
	Destination       string       `json:"destination"`
	OriginCoords      *Coordinates `json:"originCoords,omitempty"`
	DestinationCoords *Coordinates `json:"destinationCoords,omitempty"`
	CheckIn           string       `json:"checkIn,omitempty"`
	CheckOut          string       `json:"checkOut,omitempty"`
	RadiusMiles       float64      `json:"radiusMiles,omitempty"`
	Guests            int          `json:"guests,omitempty"`
}

// RouteResponse is the aggregate answer for a route search.
type RouteResponse struct {
	Origin        Coordinates  `json:"origin"`
	Destination   Coordinates  `json:"destination"`
	DistanceMiles float64      `json:"distance"`
	DurationHours float64      `json:"durationHours"`
	Direction     string       `json:"direction"`
	Stops         []StopResult `json:"stops"`
}

// SearchRequest is the inbound shape for a single-point search.
type SearchRequest struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	CheckIn     string  `json:"checkIn"`
	CheckOut    string  `json:"checkOut"`
	Guests      int     `json:"guests"`
	RadiusMiles float64 `json:"radiusMiles,omitempty"`
}
