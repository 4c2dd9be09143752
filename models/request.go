package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Aid request kinds used to tag merged listings.
const (
	AidResource = "resource"
	AidService  = "service"
)

// AidRequest is a citizen ask for a physical resource or a service.
// Resource and service requests live in separate collections but share
// this shape.
type AidRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Location       string             `bson:"location" json:"location"` // free text
	RequestDetails string             `bson:"requestDetails" json:"requestDetails"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// AidRequestInput is the submission payload for either kind.
type AidRequestInput struct {
	Name           string `json:"name" binding:"required"`
	Location       string `json:"location" binding:"required"`
	RequestDetails string `json:"requestDetails" binding:"required"`
}

// TaggedAidRequest is an aid request annotated with its origin kind for
// the merged help-me listing.
type TaggedAidRequest struct {
	AidRequest
	Type string `json:"type"` // resource | service
}

// AidRequestEnvelope mirrors the bodies the clients expect:
// {success:true, data} on success, {success:false, error} on failure.
type AidRequestEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}
