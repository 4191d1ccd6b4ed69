// Package geo computes distances, travel times and visiting order for attractions.
//
// All distances use the haversine formula on WGS-84 coordinates and are in kilometres.
package geo

import (
	"math"
	"sort"

	"github.com/Corner-venturo/Corner-sub010/internal/attraction"
	"github.com/Corner-venturo/Corner-sub010/internal/schedule"
)

// EarthRadiusKm is the mean radius of the Earth.
const EarthRadiusKm = 6371.0

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func pointOf(a attraction.Attraction) (Point, bool) {
	if !a.HasCoordinates() {
		return Point{}, false
	}
	return Point{Lat: *a.Latitude, Lng: *a.Longitude}, true
}

// Distance returns the great-circle distance between two coordinates.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*sinLon*sinLon
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func distanceBetween(a, b Point) float64 {
	return Distance(a.Lat, a.Lng, b.Lat, b.Lng)
}

// EstimateTravelTime converts a distance to minutes at the configured average speed,
// never below MinTravelTime.
func EstimateTravelTime(distanceKm float64, cfg schedule.Config) int {
	if cfg.AvgSpeedKmh <= 0 {
		return cfg.MinTravelTime
	}
	minutes := int(math.Round(distanceKm / cfg.AvgSpeedKmh * 60))
	return max(minutes, cfg.MinTravelTime)
}

// FilterNearby keeps attractions within radiusKm of the centre, nearest first. Each result's
// DistanceFromPrevious is its distance from the centre. Attractions without coordinates are skipped.
func FilterNearby(centerLat, centerLon float64, attractions []attraction.Attraction, radiusKm float64) []attraction.WithDistance {
	out := make([]attraction.WithDistance, 0, len(attractions))
	for _, a := range attractions {
		p, ok := pointOf(a)
		if !ok {
			continue
		}
		d := Distance(centerLat, centerLon, p.Lat, p.Lng)
		if d > radiusKm {
			continue
		}
		out = append(out, attraction.WithDistance{Attraction: a, DistanceFromPrevious: &d})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].DistanceFromPrevious < *out[j].DistanceFromPrevious
	})
	return out
}

// OptimizeOrder builds a greedy nearest-neighbour tour. Attractions without coordinates are left
// out. The tour starts from start, or from the first located attraction when start is nil.
func OptimizeOrder(attractions []attraction.Attraction, start *Point) []attraction.Attraction {
	if len(attractions) <= 1 {
		return append([]attraction.Attraction(nil), attractions...)
	}

	type stop struct {
		a attraction.Attraction
		p Point
	}
	remaining := make([]stop, 0, len(attractions))
	for _, a := range attractions {
		if p, ok := pointOf(a); ok {
			remaining = append(remaining, stop{a: a, p: p})
		}
	}
	if len(remaining) == 0 {
		return []attraction.Attraction{}
	}

	current := remaining[0].p
	if start != nil {
		current = *start
	}

	ordered := make([]attraction.Attraction, 0, len(remaining))
	for len(remaining) > 0 {
		best := 0
		bestDistance := math.Inf(1)
		for i, s := range remaining {
			if d := distanceBetween(current, s.p); d < bestDistance {
				best, bestDistance = i, d
			}
		}
		ordered = append(ordered, remaining[best].a)
		current = remaining[best].p
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return ordered
}

// DistancesBetween annotates an ordered list with the distance and travel time from the last
// located stop before it, or from start for the first located stop. Entries without coordinates,
// or with no located predecessor, stay unannotated and do not move the cursor.
func DistancesBetween(attractions []attraction.Attraction, start *Point, cfg schedule.Config) []attraction.WithDistance {
	out := make([]attraction.WithDistance, len(attractions))

	var prev *Point
	if start != nil {
		p := *start
		prev = &p
	}
	for i, a := range attractions {
		out[i] = attraction.WithDistance{Attraction: a}
		p, ok := pointOf(a)
		if !ok {
			continue
		}
		if prev != nil {
			d := distanceBetween(*prev, p)
			minutes := EstimateTravelTime(d, cfg)
			out[i].DistanceFromPrevious = &d
			out[i].TravelTimeMinutes = &minutes
		}
		prev = &p
	}
	return out
}

// TotalDistance sums the legs between consecutive located attractions. Attractions without
// coordinates contribute nothing and the leg is measured from the last located one.
func TotalDistance(attractions []attraction.Attraction) float64 {
	total := 0.0
	var prev *Point
	for _, a := range attractions {
		p, ok := pointOf(a)
		if !ok {
			continue
		}
		if prev != nil {
			total += distanceBetween(*prev, p)
		}
		prev = &p
	}
	return total
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
