package geo

// Point represents a geographic coordinate in WGS84 degrees.
type Point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Valid reports whether the point lies inside the WGS84 coordinate domain:
// latitude in [-90, 90], longitude in [-180, 180].
func (p Point) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}
