package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coastwatch/models"
)

// VerificationService stores issued OTPs and checks them at verify
// time. Records accumulate; expiry is a timestamp compare on lookup,
// there is no background sweep.
type VerificationService struct {
	db *mongo.Database
}

// NewVerificationService creates a new verification service instance
func NewVerificationService(db *mongo.Database) *VerificationService {
	return &VerificationService{db: db}
}

func (s *VerificationService) col() *mongo.Collection {
	return s.db.Collection(ColVerifications)
}

// Create stores a freshly issued OTP for a contact.
func (s *VerificationService) Create(ctx context.Context, contact, contactType, otp string, expiresAt time.Time) error {
	record := &models.Verification{
		Contact:     contact,
		ContactType: contactType,
		OTP:         otp,
		Verified:    false,
		ExpiresAt:   expiresAt.UTC(),
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.col().InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert verification: %w", err)
	}
	return nil
}

// Verify looks up the most recent (contact, otp) record. ErrInvalidOTP
// when no match exists, ErrOTPExpired when the match is past its
// expiry. On success the record is marked verified; re-verifying an
// already verified, unexpired record succeeds again.
func (s *VerificationService) Verify(ctx context.Context, contact, otp string) error {
	var record models.Verification
	err := s.col().FindOne(ctx,
		bson.M{"contact": contact, "otp": otp},
		options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to query verification: %w", err)
	}

	if err := checkOTP(&record, time.Now()); err != nil {
		return err
	}

	_, err = s.col().UpdateOne(ctx,
		bson.M{"_id": record.ID},
		bson.M{"$set": bson.M{"verified": true}})
	if err != nil {
		return fmt.Errorf("failed to mark verification: %w", err)
	}
	return nil
}

// checkOTP validates a matched record against the clock. An already
// verified record passes again as long as it has not expired.
func checkOTP(record *models.Verification, now time.Time) error {
	if record.ExpiresAt.Before(now) {
		return ErrOTPExpired
	}
	return nil
}
