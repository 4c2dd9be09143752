package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact types a verification code can be sent to.
const (
	ContactPhone = "phone"
	ContactEmail = "email"
)

// Verification is one issued OTP. Records are never deleted; expiry is
// checked at verify time only.
type Verification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Contact     string             `bson:"contact" json:"contact"`
	ContactType string             `bson:"contactType" json:"contactType"`
	OTP         string             `bson:"otp" json:"-"`
	Verified    bool               `bson:"verified" json:"verified"`
	ExpiresAt   time.Time          `bson:"expiresAt" json:"expiresAt"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// SendOTPRequest asks for a code to be sent to a contact.
type SendOTPRequest struct {
	Contact string `json:"contact" binding:"required"`
}

// VerifyOTPRequest checks a previously sent code.
type VerifyOTPRequest struct {
	Contact string `json:"contact" binding:"required"`
	OTP     string `json:"otp" binding:"required"`
}
