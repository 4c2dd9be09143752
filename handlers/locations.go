package handlers

import (
	"net/http"
	"strconv"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	geojson "github.com/paulmach/go.geojson"

	"coastwatch/models"
)

const defaultNearbyRadiusKm = 25.0

// ListLocations returns the shelter/NGO reference list. With lat and
// lng query params the list is filtered to a radius (radius_km,
// default 25) around that point.
func (h *Handlers) ListLocations(c *gin.Context) {
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr == "" && lngStr == "" {
		locations, err := h.locations.List(c.Request.Context())
		if err != nil {
			log.Errorf("failed to list locations: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list locations"})
			return
		}
		c.JSON(http.StatusOK, locations)
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid lat"})
		return
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid lng"})
		return
	}
	radiusKm := defaultNearbyRadiusKm
	if radiusStr := c.Query("radius_km"); radiusStr != "" {
		radiusKm, err = strconv.ParseFloat(radiusStr, 64)
		if err != nil || radiusKm <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid radius_km"})
			return
		}
	}

	locations, err := h.locations.Nearby(c.Request.Context(), lat, lng, radiusKm)
	if err != nil {
		log.Errorf("failed to find nearby locations: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list locations"})
		return
	}
	c.JSON(http.StatusOK, locations)
}

// LocationsGeoJSON returns the same reference data as a GeoJSON
// FeatureCollection for direct map rendering.
func (h *Handlers) LocationsGeoJSON(c *gin.Context) {
	locations, err := h.locations.List(c.Request.Context())
	if err != nil {
		log.Errorf("failed to list locations: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list locations"})
		return
	}

	fc := geojson.NewFeatureCollection()
	for _, loc := range locations {
		feature := geojson.NewPointFeature([]float64{loc.Longitude, loc.Latitude})
		feature.SetProperty("id", loc.ID.Hex())
		feature.SetProperty("name", loc.Name)
		feature.SetProperty("type", loc.Type)
		if loc.Address != "" {
			feature.SetProperty("address", loc.Address)
		}
		fc.AddFeature(feature)
	}
	c.JSON(http.StatusOK, fc)
}
