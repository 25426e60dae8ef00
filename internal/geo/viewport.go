// Package geo computes the initial map viewport for the map view. It
// only produces a bounding region and center for the placeholder map;
// there is no geocoding or tile handling here.
package geo

import (
	"github.com/paulmach/orb"

	"homescape/server/internal/models"
)

// Viewport is the region the map view should open on.
type Viewport struct {
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
	MinLat    float64 `json:"min_lat"`
	MinLon    float64 `json:"min_lon"`
	MaxLat    float64 `json:"max_lat"`
	MaxLon    float64 `json:"max_lon"`
	ZoomLevel int     `json:"zoom_level"`
	Listings  int     `json:"listings"`
}

// FallbackCenter is used when no listing carries coordinates.
type FallbackCenter struct {
	Name      string
	Lat, Lon  float64
	ZoomLevel int
}

// DefaultCenter is a continental-US overview.
var DefaultCenter = FallbackCenter{
	Name:      "united-states",
	Lat:       39.8283,
	Lon:       -98.5795,
	ZoomLevel: 4,
}

// ComputeViewport returns the bound and center of all listings that
// carry coordinates. Listings without coordinates are skipped; when
// none have any, the fallback center is returned with zero bounds
// around it.
func ComputeViewport(listings []models.Listing, fallback FallbackCenter) Viewport {
	var points []orb.Point
	for _, l := range listings {
		if l.Latitude == nil || l.Longitude == nil {
			continue
		}
		points = append(points, orb.Point{*l.Longitude, *l.Latitude})
	}

	if len(points) == 0 {
		return Viewport{
			CenterLat: fallback.Lat,
			CenterLon: fallback.Lon,
			MinLat:    fallback.Lat,
			MinLon:    fallback.Lon,
			MaxLat:    fallback.Lat,
			MaxLon:    fallback.Lon,
			ZoomLevel: fallback.ZoomLevel,
		}
	}

	bound := orb.MultiPoint(points).Bound()
	center := bound.Center()

	return Viewport{
		CenterLat: center.Lat(),
		CenterLon: center.Lon(),
		MinLat:    bound.Min.Lat(),
		MinLon:    bound.Min.Lon(),
		MaxLat:    bound.Max.Lat(),
		MaxLon:    bound.Max.Lon(),
		ZoomLevel: zoomFor(bound),
		Listings:  len(points),
	}
}

// zoomFor picks a coarse zoom level from the bound extent. Good enough
// for a placeholder map.
func zoomFor(bound orb.Bound) int {
	span := bound.Max.Lon() - bound.Min.Lon()
	if latSpan := bound.Max.Lat() - bound.Min.Lat(); latSpan > span {
		span = latSpan
	}

	switch {
	case span > 20:
		return 4
	case span > 5:
		return 6
	case span > 1:
		return 8
	case span > 0.2:
		return 10
	default:
		return 13
	}
}
