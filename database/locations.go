package database

import (
	"context"
	"fmt"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"coastwatch/models"
)

const earthRadiusKm = 6371.01

// LocationService reads the static shelter/NGO reference data.
type LocationService struct {
	db *mongo.Database
}

// NewLocationService creates a new location service instance
func NewLocationService(db *mongo.Database) *LocationService {
	return &LocationService{db: db}
}

func (s *LocationService) col() *mongo.Collection {
	return s.db.Collection(ColLocations)
}

// List returns all shelters and NGOs.
func (s *LocationService) List(ctx context.Context) ([]*models.Location, error) {
	cur, err := s.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer cur.Close(ctx)

	locations := make([]*models.Location, 0)
	if err := cur.All(ctx, &locations); err != nil {
		return nil, fmt.Errorf("failed to decode locations: %w", err)
	}
	return locations, nil
}

// Nearby returns locations within radiusKm of the given point,
// great-circle distance. The reference set is small, so the filter
// runs in memory over the full list.
func (s *LocationService) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]*models.Location, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	center := s2.LatLngFromDegrees(lat, lng)
	maxAngle := s1.Angle(radiusKm / earthRadiusKm)

	nearby := make([]*models.Location, 0, len(all))
	for _, loc := range all {
		point := s2.LatLngFromDegrees(loc.Latitude, loc.Longitude)
		if center.Distance(point) <= maxAngle {
			nearby = append(nearby, loc)
		}
	}
	return nearby, nil
}

// Seed inserts reference rows when the collection is empty. Used by
// the seeding tool, not the API.
func (s *LocationService) Seed(ctx context.Context, locations []models.Location) (int, error) {
	count, err := s.col().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count locations: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(locations))
	for i := range locations {
		docs[i] = locations[i]
	}
	res, err := s.col().InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("failed to seed locations: %w", err)
	}
	return len(res.InsertedIDs), nil
}
