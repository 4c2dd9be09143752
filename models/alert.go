package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Alert statuses.
const (
	AlertUnread = "unread"
	AlertRead   = "read"
)

// Alert is an admin-issued notification tied to a hazard report.
type Alert struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Message    string             `bson:"message" json:"message"`
	Hazard     primitive.ObjectID `bson:"hazard" json:"-"`
	Recipients []string           `bson:"recipients" json:"recipients"` // emails or user ids
	Status     string             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// CreateAlertRequest is the admin request to issue an alert.
type CreateAlertRequest struct {
	Message    string   `json:"message" binding:"required"`
	Hazard     string   `json:"hazard" binding:"required"`
	Recipients []string `json:"recipients"`
}

// AlertResponse is an alert with its hazard embedded, the way the
// dashboard consumes it.
type AlertResponse struct {
	ID         string        `json:"id"`
	Message    string        `json:"message"`
	Recipients []string      `json:"recipients"`
	Status     string        `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	Hazard     *HazardReport `json:"hazard"`
}
