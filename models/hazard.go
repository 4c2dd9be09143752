package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HazardTypes is the fixed category set a report must belong to.
// Values are stored lowercase.
var HazardTypes = []string{
	"tsunami",
	"storm surge",
	"high waves",
	"swell surge",
	"flooding",
	"flood",
	"earthquake",
	"fire",
	"cyclone",
	"other",
}

// IsHazardType reports whether t (already lowercased) is a known category.
func IsHazardType(t string) bool {
	for _, known := range HazardTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Media describes one uploaded attachment of a hazard report.
type Media struct {
	FileType     string `bson:"fileType" json:"fileType"` // image | video | audio | doc
	FileURL      string `bson:"fileUrl" json:"fileUrl"`   // storage-relative path, e.g. /uploads/xyz.jpg
	OriginalName string `bson:"originalName" json:"originalName"`
}

// ReportLocation is the optional geolocation attached to a report.
type ReportLocation struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Address   string  `bson:"address,omitempty" json:"address,omitempty"`
}

// Reporter is the denormalized owning-user reference returned with a report.
type Reporter struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}

// HazardReport is a citizen-submitted hazard observation. Immutable once
// created; User is set only when the submitter was authenticated.
type HazardReport struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	User        *primitive.ObjectID `bson:"user,omitempty" json:"-"`
	Type        string              `bson:"type" json:"type"`
	Description string              `bson:"description" json:"description"`
	Location    *ReportLocation     `bson:"location,omitempty" json:"location,omitempty"`
	Media       []Media             `bson:"media" json:"media"`
	Name        string              `bson:"name" json:"name"`   // victim's name
	Phone       string              `bson:"phone" json:"phone"` // victim's phone
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`

	// Filled on reads when User resolves; never persisted.
	Reporter *Reporter `bson:"-" json:"user,omitempty"`
}

// HazardStats is the admin dashboard aggregate.
type HazardStats struct {
	Total   int64            `json:"total"`
	Last24h int64            `json:"last24h"`
	ByType  map[string]int64 `json:"byType"`
}
