package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"homescape/server/internal/models"
)

func coord(v float64) *float64 { return &v }

func TestComputeViewport(t *testing.T) {
	listings := []models.Listing{
		{ID: 1, Latitude: coord(30.2672), Longitude: coord(-97.7431)}, // Austin
		{ID: 2, Latitude: coord(32.7767), Longitude: coord(-96.7970)}, // Dallas
		{ID: 3}, // no coordinates, skipped
	}

	vp := ComputeViewport(listings, DefaultCenter)

	assert.Equal(t, 2, vp.Listings)
	assert.Equal(t, 30.2672, vp.MinLat)
	assert.Equal(t, 32.7767, vp.MaxLat)
	assert.Equal(t, -97.7431, vp.MinLon)
	assert.Equal(t, -96.7970, vp.MaxLon)
	assert.InDelta(t, 31.52195, vp.CenterLat, 0.0001)
	assert.InDelta(t, -97.27005, vp.CenterLon, 0.0001)
}

func TestComputeViewportFallback(t *testing.T) {
	listings := []models.Listing{{ID: 1}, {ID: 2}}

	vp := ComputeViewport(listings, DefaultCenter)

	assert.Equal(t, 0, vp.Listings)
	assert.Equal(t, DefaultCenter.Lat, vp.CenterLat)
	assert.Equal(t, DefaultCenter.Lon, vp.CenterLon)
	assert.Equal(t, DefaultCenter.ZoomLevel, vp.ZoomLevel)
}

func TestZoomScalesWithExtent(t *testing.T) {
	tight := ComputeViewport([]models.Listing{
		{ID: 1, Latitude: coord(30.26), Longitude: coord(-97.74)},
		{ID: 2, Latitude: coord(30.27), Longitude: coord(-97.75)},
	}, DefaultCenter)

	wide := ComputeViewport([]models.Listing{
		{ID: 1, Latitude: coord(30.26), Longitude: coord(-97.74)},
		{ID: 2, Latitude: coord(47.61), Longitude: coord(-122.33)},
	}, DefaultCenter)

	assert.Greater(t, tight.ZoomLevel, wide.ZoomLevel)
}
