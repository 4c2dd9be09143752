// Package handlers exposes the REST surface of the coastwatch backend.
// Handlers bind and validate requests, call the entity services and map
// sentinel errors to HTTP statuses.
package handlers

import (
	"context"
	"time"

	"coastwatch/models"
)

// UserStore is the account operations the handlers need.
type UserStore interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, id string, req models.UpdateUserRequest) (*models.User, error)
	ToggleActive(ctx context.Context, id string) (*models.User, error)
	GenerateToken(userID string) (string, error)
}

// HazardStore persists citizen hazard reports.
type HazardStore interface {
	Create(ctx context.Context, report *models.HazardReport) (*models.HazardReport, error)
	GetByID(ctx context.Context, id string) (*models.HazardReport, error)
	List(ctx context.Context) ([]*models.HazardReport, error)
	Stats(ctx context.Context) (*models.HazardStats, error)
}

// AlertStore persists admin alerts.
type AlertStore interface {
	Create(ctx context.Context, message, hazardID string, recipients []string) (*models.AlertResponse, error)
	List(ctx context.Context) ([]*models.AlertResponse, error)
	ListByType(ctx context.Context, hazardType string) ([]*models.AlertResponse, error)
	MarkRead(ctx context.Context, id string) (*models.AlertResponse, error)
}

// AidRequestStore persists resource and service requests.
type AidRequestStore interface {
	CreateResource(ctx context.Context, input models.AidRequestInput) (*models.AidRequest, error)
	CreateService(ctx context.Context, input models.AidRequestInput) (*models.AidRequest, error)
	ListResources(ctx context.Context) ([]*models.AidRequest, error)
	ListServices(ctx context.Context) ([]*models.AidRequest, error)
	ListAll(ctx context.Context) ([]models.TaggedAidRequest, error)
}

// VerificationStore persists issued OTPs.
type VerificationStore interface {
	Create(ctx context.Context, contact, contactType, otp string, expiresAt time.Time) error
	Verify(ctx context.Context, contact, otp string) error
}

// LocationStore reads the shelter/NGO reference data.
type LocationStore interface {
	List(ctx context.Context) ([]*models.Location, error)
	Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]*models.Location, error)
}

// OTPSender delivers a one-time passcode over one channel.
type OTPSender interface {
	SendOTP(to, code string) error
}

// AlertNotifier delivers alert notifications to email recipients.
type AlertNotifier interface {
	SendAlert(to, message, hazardType string) error
}

// Handlers handles HTTP requests for the coastwatch backend
type Handlers struct {
	users         UserStore
	hazards       HazardStore
	alerts        AlertStore
	requests      AidRequestStore
	verifications VerificationStore
	locations     LocationStore

	// optional transports, nil when not configured
	sms      OTPSender
	mail     OTPSender
	notifier AlertNotifier

	uploadDir string
}

// NewHandlers creates a new handlers instance
func NewHandlers(users UserStore, hazards HazardStore, alerts AlertStore,
	requests AidRequestStore, verifications VerificationStore,
	locations LocationStore, uploadDir string) *Handlers {
	return &Handlers{
		users:         users,
		hazards:       hazards,
		alerts:        alerts,
		requests:      requests,
		verifications: verifications,
		locations:     locations,
		uploadDir:     uploadDir,
	}
}

// WithSMS attaches the SMS transport for phone OTPs.
func (h *Handlers) WithSMS(sender OTPSender) *Handlers {
	h.sms = sender
	return h
}

// WithEmail attaches the mail transport for email OTPs.
func (h *Handlers) WithEmail(sender OTPSender) *Handlers {
	h.mail = sender
	return h
}

// WithAlertNotifier attaches the transport for alert recipient email.
func (h *Handlers) WithAlertNotifier(notifier AlertNotifier) *Handlers {
	h.notifier = notifier
	return h
}
