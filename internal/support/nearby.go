package support

import (
	"math"
	"sort"

	"github.com/golang/geo/s2"
)

const (
	earthRadiusKm = 6371.0

	// NearLimitKm and FarLimitKm bound the near and far bands (inclusive).
	NearLimitKm = 5.0
	FarLimitKm  = 50.0
)

func hsin(theta float64) float64 {
	return math.Pow(math.Sin(theta/2), 2)
}

// Distance returns the great-circle distance in kilometers between two
// points, rounded to one decimal. Invalid coordinates yield +Inf.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	if !validCoordinate(lat1, lon1) || !validCoordinate(lat2, lon2) {
		return math.Inf(1)
	}

	la1 := lat1 * math.Pi / 180
	lo1 := lon1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	lo2 := lon2 * math.Pi / 180

	a := hsin(la2-la1) + math.Cos(la1)*math.Cos(la2)*hsin(lo2-lo1)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(earthRadiusKm*c*10) / 10
}

func validCoordinate(lat, lon float64) bool {
	for _, v := range []float64{lat, lon} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return s2.LatLngFromDegrees(lat, lon).IsValid()
}

// Nearby is a point together with its distance from the requester.
type Nearby struct {
	Point
	DistanceKm float64 `json:"distance_km"`
}

// Report is the banded result of FindNearby.
type Report struct {
	Near []Nearby `json:"near"`
	Far  []Nearby `json:"far"`
	// VisibleIDs lists every point the requester may open, in input order,
	// including points outside both bands.
	VisibleIDs []int `json:"visible_ids"`
}

// FindNearby measures every visible point against (lat, lon) and places it
// in the near band (d <= 5 km), the far band (5 < d <= 50 km) or neither.
// Each band is sorted by ascending distance, ties keeping input order.
func FindNearby(lat, lon float64, points []Point, visible func(Point) bool) Report {
	report := Report{Near: []Nearby{}, Far: []Nearby{}, VisibleIDs: []int{}}
	for _, p := range points {
		if visible != nil && !visible(p) {
			continue
		}
		report.VisibleIDs = append(report.VisibleIDs, p.ID)

		d := Distance(lat, lon, p.Lat, p.Lon)
		switch {
		case d <= NearLimitKm:
			report.Near = append(report.Near, Nearby{Point: p, DistanceKm: d})
		case d <= FarLimitKm:
			report.Far = append(report.Far, Nearby{Point: p, DistanceKm: d})
		}
	}

	byDistance := func(band []Nearby) {
		sort.SliceStable(band, func(i, j int) bool { return band[i].DistanceKm < band[j].DistanceKm })
	}
	byDistance(report.Near)
	byDistance(report.Far)
	return report
}
