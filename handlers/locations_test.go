package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"coastwatch/models"
)

func referenceLocations() []*models.Location {
	return []*models.Location{
		{ID: primitive.NewObjectID(), Name: "Shelter A", Type: models.LocationShelter, Latitude: 10.610, Longitude: 75.220},
		{ID: primitive.NewObjectID(), Name: "NGO Help Center 1", Type: models.LocationNGO, Latitude: 10.620, Longitude: 75.230, Address: "Market Square"},
	}
}

func TestListLocations(t *testing.T) {
	e := newEnv(t)
	e.locations.locations = referenceLocations()

	w := performJSON(e.h.ListLocations, http.MethodGet, "/api/locations", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var locations []models.Location
	decodeBody(t, w, &locations)
	assert.Len(t, locations, 2)
}

func TestListLocationsNearby(t *testing.T) {
	e := newEnv(t)
	all := referenceLocations()
	e.locations.nearbyFn = func(lat, lng, radiusKm float64) ([]*models.Location, error) {
		assert.Equal(t, 10.61, lat)
		assert.Equal(t, 75.22, lng)
		assert.Equal(t, 5.0, radiusKm)
		return all[:1], nil
	}

	w := performJSON(e.h.ListLocations, http.MethodGet, "/api/locations?lat=10.61&lng=75.22&radius_km=5", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var locations []models.Location
	decodeBody(t, w, &locations)
	require.Len(t, locations, 1)
	assert.Equal(t, "Shelter A", locations[0].Name)
}

func TestListLocationsDefaultRadius(t *testing.T) {
	e := newEnv(t)
	e.locations.nearbyFn = func(lat, lng, radiusKm float64) ([]*models.Location, error) {
		assert.Equal(t, 25.0, radiusKm)
		return nil, nil
	}

	w := performJSON(e.h.ListLocations, http.MethodGet, "/api/locations?lat=10.61&lng=75.22", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListLocationsInvalidLat(t *testing.T) {
	e := newEnv(t)

	w := performJSON(e.h.ListLocations, http.MethodGet, "/api/locations?lat=north&lng=75.22", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "invalid lat", resp.Error)
}

func TestLocationsGeoJSON(t *testing.T) {
	e := newEnv(t)
	e.locations.locations = referenceLocations()

	w := performJSON(e.h.LocationsGeoJSON, http.MethodGet, "/api/locations/geojson", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	decodeBody(t, w, &fc)

	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 2)

	first := fc.Features[0]
	assert.Equal(t, "Point", first.Geometry.Type)
	// GeoJSON positions are [lng, lat]
	require.Len(t, first.Geometry.Coordinates, 2)
	assert.Equal(t, 75.220, first.Geometry.Coordinates[0])
	assert.Equal(t, 10.610, first.Geometry.Coordinates[1])
	assert.Equal(t, "Shelter A", first.Properties["name"])
	assert.Equal(t, models.LocationShelter, first.Properties["type"])
}
