package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Location kinds.
const (
	LocationShelter = "shelter"
	LocationNGO     = "ngo"
)

// Location is a static shelter or NGO reference point shown on the map.
// Seeded out-of-band, never mutated by the API.
type Location struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Type      string             `bson:"type" json:"type"` // shelter | ngo
	Latitude  float64            `bson:"latitude" json:"latitude"`
	Longitude float64            `bson:"longitude" json:"longitude"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
}
