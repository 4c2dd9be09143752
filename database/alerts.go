package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coastwatch/models"
)

// AlertService issues and reads admin alerts tied to hazard reports.
type AlertService struct {
	db *mongo.Database
}

// NewAlertService creates a new alert service instance
func NewAlertService(db *mongo.Database) *AlertService {
	return &AlertService{db: db}
}

func (s *AlertService) col() *mongo.Collection {
	return s.db.Collection(ColAlerts)
}

// Create stores an alert after checking the referenced hazard exists.
// Nothing is persisted when the hazard id does not resolve.
func (s *AlertService) Create(ctx context.Context, message, hazardID string, recipients []string) (*models.AlertResponse, error) {
	oid, err := primitive.ObjectIDFromHex(hazardID)
	if err != nil {
		return nil, ErrNotFound
	}

	var hazard models.HazardReport
	err = s.db.Collection(ColHazardReports).FindOne(ctx, bson.M{"_id": oid}).Decode(&hazard)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query hazard report: %w", err)
	}

	if recipients == nil {
		recipients = []string{}
	}
	alert := &models.Alert{
		Message:    message,
		Hazard:     oid,
		Recipients: recipients,
		Status:     models.AlertUnread,
		CreatedAt:  time.Now().UTC(),
	}
	res, err := s.col().InsertOne(ctx, alert)
	if err != nil {
		return nil, fmt.Errorf("failed to insert alert: %w", err)
	}
	alert.ID = res.InsertedID.(primitive.ObjectID)

	return toAlertResponse(alert, &hazard), nil
}

// List returns all alerts newest first, hazards embedded.
func (s *AlertService) List(ctx context.Context) ([]*models.AlertResponse, error) {
	return s.list(ctx, "")
}

// ListByType returns alerts whose linked hazard has the given type.
// Alerts whose hazard misses the filter are dropped, never returned
// with a nil hazard.
func (s *AlertService) ListByType(ctx context.Context, hazardType string) ([]*models.AlertResponse, error) {
	return s.list(ctx, strings.ToLower(hazardType))
}

func (s *AlertService) list(ctx context.Context, typeFilter string) ([]*models.AlertResponse, error) {
	cur, err := s.col().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer cur.Close(ctx)

	alerts := make([]*models.Alert, 0)
	if err := cur.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("failed to decode alerts: %w", err)
	}

	hazards, err := s.hazardsFor(ctx, alerts)
	if err != nil {
		return nil, err
	}
	return embedHazards(alerts, hazards, typeFilter), nil
}

// embedHazards joins each alert with its hazard and applies the
// optional type filter. Alerts with a dangling hazard reference are
// dropped, never returned with a nil hazard.
func embedHazards(alerts []*models.Alert, hazards map[primitive.ObjectID]*models.HazardReport, typeFilter string) []*models.AlertResponse {
	out := make([]*models.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		hazard := hazards[a.Hazard]
		if hazard == nil {
			continue
		}
		if typeFilter != "" && hazard.Type != typeFilter {
			continue
		}
		out = append(out, toAlertResponse(a, hazard))
	}
	return out
}

func (s *AlertService) hazardsFor(ctx context.Context, alerts []*models.Alert) (map[primitive.ObjectID]*models.HazardReport, error) {
	ids := make([]primitive.ObjectID, 0)
	seen := make(map[primitive.ObjectID]bool)
	for _, a := range alerts {
		if !seen[a.Hazard] {
			seen[a.Hazard] = true
			ids = append(ids, a.Hazard)
		}
	}
	byID := make(map[primitive.ObjectID]*models.HazardReport, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	cur, err := s.db.Collection(ColHazardReports).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve alert hazards: %w", err)
	}
	defer cur.Close(ctx)

	var hazards []*models.HazardReport
	if err := cur.All(ctx, &hazards); err != nil {
		return nil, fmt.Errorf("failed to decode alert hazards: %w", err)
	}
	for _, h := range hazards {
		byID[h.ID] = h
	}
	return byID, nil
}

// MarkRead transitions an alert to read. Idempotent.
func (s *AlertService) MarkRead(ctx context.Context, id string) (*models.AlertResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var alert models.Alert
	err = s.col().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": models.AlertRead}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&alert)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to mark alert read: %w", err)
	}

	hazards, err := s.hazardsFor(ctx, []*models.Alert{&alert})
	if err != nil {
		return nil, err
	}
	return toAlertResponse(&alert, hazards[alert.Hazard]), nil
}

func toAlertResponse(a *models.Alert, hazard *models.HazardReport) *models.AlertResponse {
	return &models.AlertResponse{
		ID:         a.ID.Hex(),
		Message:    a.Message,
		Recipients: a.Recipients,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
		Hazard:     hazard,
	}
}
