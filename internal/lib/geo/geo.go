package geo

import "math"

// Earth's mean radius in meters.
const earthRadius = 6371000

// Distance calculates the great-circle distance between two points in
// meters using the Haversine formula. Coincident points yield 0.
func Distance(p1, p2 Point) float64 {
	// If points are the same, distance is 0
	if p1.Latitude == p2.Latitude && p1.Longitude == p2.Longitude {
		return 0
	}

	// Convert degrees to radians
	lat1 := p1.Latitude * math.Pi / 180
	lon1 := p1.Longitude * math.Pi / 180
	lat2 := p2.Latitude * math.Pi / 180
	lon2 := p2.Longitude * math.Pi / 180

	// Haversine formula
	dlat := lat2 - lat1
	dlon := lon2 - lon1

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// DistanceFromCoords calculates the distance between two coordinate pairs.
// Convenience function for raw latitude/longitude values.
func DistanceFromCoords(lat1, lon1, lat2, lon2 float64) float64 {
	point1 := Point{Latitude: lat1, Longitude: lon1}
	point2 := Point{Latitude: lat2, Longitude: lon2}

	return Distance(point1, point2)
}

// Distance3D combines the great-circle distance with an elevation delta in
// meters. With equal elevations it degenerates to Distance.
func Distance3D(p1, p2 Point, ele1, ele2 float64) float64 {
	flat := Distance(p1, p2)
	dele := ele2 - ele1
	if dele == 0 {
		return flat
	}
	return math.Sqrt(flat*flat + dele*dele)
}

// PathLength sums the consecutive-point distances along a path. Paths with
// fewer than two points have length 0.
func PathLength(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}
	return total
}
