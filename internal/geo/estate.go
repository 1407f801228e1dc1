// Package geo maps coordinates to the named estates served by the app.
package geo

// Kilimani center, used when a report arrives without coordinates.
const (
	DefaultLatitude  = -1.2860
	DefaultLongitude = 36.7871
)

const (
	DefaultEstate  = "Kilimani"
	FallbackEstate = "Kilimani Central"
)

// DefaultEstates is returned when nothing has been registered yet.
var DefaultEstates = []string{"Kilimani", "Westlands", "Karen", "Lavington", "Kileleshwa"}

type Bounds struct {
	North, South, East, West float64
}

func (b Bounds) Contains(lat, lng float64) bool {
	return lat >= b.South && lat <= b.North && lng >= b.West && lng <= b.East
}

type Estate struct {
	Name   string
	Bounds Bounds
}

// Estates lists the approximate estate boundaries. Order matters where
// boxes share an edge: the first match wins.
var Estates = []Estate{
	{Name: "Yaya Center", Bounds: Bounds{North: -1.2820, South: -1.2880, East: 36.7920, West: 36.7860}},
	{Name: "Woodlands", Bounds: Bounds{North: -1.2780, South: -1.2840, East: 36.7980, West: 36.7920}},
	{Name: "Kileleshwa", Bounds: Bounds{North: -1.2740, South: -1.2800, East: 36.7860, West: 36.7800}},
	{Name: "Lavington", Bounds: Bounds{North: -1.2700, South: -1.2760, East: 36.7800, West: 36.7740}},
	{Name: "Kilimani Central", Bounds: Bounds{North: -1.2840, South: -1.2900, East: 36.7860, West: 36.7800}},
	{Name: "Argwings Kodhek", Bounds: Bounds{North: -1.2880, South: -1.2940, East: 36.7920, West: 36.7860}},
}

// EstateFor returns the estate containing the point, or FallbackEstate.
func EstateFor(lat, lng float64) string {
	for _, e := range Estates {
		if e.Bounds.Contains(lat, lng) {
			return e.Name
		}
	}
	return FallbackEstate
}
