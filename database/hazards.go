package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coastwatch/models"
)

// HazardService persists and reads citizen hazard reports.
type HazardService struct {
	db *mongo.Database
}

// NewHazardService creates a new hazard service instance
func NewHazardService(db *mongo.Database) *HazardService {
	return &HazardService{db: db}
}

func (s *HazardService) col() *mongo.Collection {
	return s.db.Collection(ColHazardReports)
}

// Create inserts a new hazard report and fills the server-assigned
// id and timestamp.
func (s *HazardService) Create(ctx context.Context, report *models.HazardReport) (*models.HazardReport, error) {
	report.CreatedAt = time.Now().UTC()
	if report.Media == nil {
		report.Media = []models.Media{}
	}

	res, err := s.col().InsertOne(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("failed to insert hazard report: %w", err)
	}
	report.ID = res.InsertedID.(primitive.ObjectID)
	return report, nil
}

// GetByID returns a single report with its reporter resolved.
func (s *HazardService) GetByID(ctx context.Context, id string) (*models.HazardReport, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var report models.HazardReport
	err = s.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query hazard report: %w", err)
	}

	if err := s.attachReporters(ctx, []*models.HazardReport{&report}); err != nil {
		return nil, err
	}
	return &report, nil
}

// List returns all reports, newest first, with reporters resolved.
func (s *HazardService) List(ctx context.Context) ([]*models.HazardReport, error) {
	cur, err := s.col().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list hazard reports: %w", err)
	}
	defer cur.Close(ctx)

	reports := make([]*models.HazardReport, 0)
	if err := cur.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode hazard reports: %w", err)
	}

	if err := s.attachReporters(ctx, reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// attachReporters denormalizes the owning user's name and email onto
// each report that carries a user reference.
func (s *HazardService) attachReporters(ctx context.Context, reports []*models.HazardReport) error {
	ids := make([]primitive.ObjectID, 0)
	seen := make(map[primitive.ObjectID]bool)
	for _, r := range reports {
		if r.User != nil && !seen[*r.User] {
			seen[*r.User] = true
			ids = append(ids, *r.User)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	cur, err := s.db.Collection(ColUsers).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return fmt.Errorf("failed to resolve reporters: %w", err)
	}
	defer cur.Close(ctx)

	var users []models.Reporter
	if err := cur.All(ctx, &users); err != nil {
		return fmt.Errorf("failed to decode reporters: %w", err)
	}

	byID := make(map[primitive.ObjectID]*models.Reporter, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	for _, r := range reports {
		if r.User != nil {
			r.Reporter = byID[*r.User]
		}
	}
	return nil
}

// Stats aggregates report counts for the admin dashboard.
func (s *HazardService) Stats(ctx context.Context) (*models.HazardStats, error) {
	stats := &models.HazardStats{ByType: make(map[string]int64)}

	cur, err := s.col().Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$type"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate hazard stats: %w", err)
	}
	defer cur.Close(ctx)

	var groups []struct {
		Type  string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode hazard stats: %w", err)
	}
	for _, g := range groups {
		stats.ByType[g.Type] = g.Count
		stats.Total += g.Count
	}

	last24h, err := s.col().CountDocuments(ctx, bson.M{
		"createdAt": bson.M{"$gte": time.Now().UTC().Add(-24 * time.Hour)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count recent hazard reports: %w", err)
	}
	stats.Last24h = last24h

	return stats, nil
}
