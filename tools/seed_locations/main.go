// Seeds the reference shelter and NGO locations. Safe to run more
// than once: seeding is skipped when the collection is non-empty.
package main

import (
	"context"
	"time"

	"github.com/apex/log"

	"coastwatch/config"
	"coastwatch/database"
	"coastwatch/models"
)

var seedLocations = []models.Location{
	{Name: "Shelter A", Type: models.LocationShelter, Latitude: 10.610, Longitude: 75.220, Address: "Coastal Road, Zone 1"},
	{Name: "Shelter B", Type: models.LocationShelter, Latitude: 10.615, Longitude: 75.225, Address: "Harbor Street, Zone 2"},
	{Name: "NGO Help Center 1", Type: models.LocationNGO, Latitude: 10.620, Longitude: 75.230, Address: "Market Square, Zone 3"},
	{Name: "NGO Help Center 2", Type: models.LocationNGO, Latitude: 10.625, Longitude: 75.235, Address: "Lighthouse Lane, Zone 4"},
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	locations := database.NewLocationService(db)
	inserted, err := locations.Seed(ctx, seedLocations)
	if err != nil {
		log.Fatalf("failed to seed locations: %v", err)
	}
	if inserted == 0 {
		log.Info("locations already present, nothing to do")
		return
	}
	log.Infof("seeded %d locations", inserted)
}
