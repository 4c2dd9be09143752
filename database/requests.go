package database

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coastwatch/models"
)

// AidRequestService persists resource and service requests in two
// parallel collections and serves the merged help-me listing.
type AidRequestService struct {
	db *mongo.Database
}

// NewAidRequestService creates a new aid request service instance
func NewAidRequestService(db *mongo.Database) *AidRequestService {
	return &AidRequestService{db: db}
}

// CreateResource stores a physical-resource request.
func (s *AidRequestService) CreateResource(ctx context.Context, input models.AidRequestInput) (*models.AidRequest, error) {
	return s.create(ctx, ColResourceRequests, input)
}

// CreateService stores a service request.
func (s *AidRequestService) CreateService(ctx context.Context, input models.AidRequestInput) (*models.AidRequest, error) {
	return s.create(ctx, ColServiceRequests, input)
}

func (s *AidRequestService) create(ctx context.Context, col string, input models.AidRequestInput) (*models.AidRequest, error) {
	req := &models.AidRequest{
		Name:           input.Name,
		Location:       input.Location,
		RequestDetails: input.RequestDetails,
		CreatedAt:      time.Now().UTC(),
	}
	res, err := s.db.Collection(col).InsertOne(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to insert aid request: %w", err)
	}
	req.ID = res.InsertedID.(primitive.ObjectID)
	return req, nil
}

// ListResources returns all resource requests, newest first.
func (s *AidRequestService) ListResources(ctx context.Context) ([]*models.AidRequest, error) {
	return s.list(ctx, ColResourceRequests)
}

// ListServices returns all service requests, newest first.
func (s *AidRequestService) ListServices(ctx context.Context) ([]*models.AidRequest, error) {
	return s.list(ctx, ColServiceRequests)
}

func (s *AidRequestService) list(ctx context.Context, col string) ([]*models.AidRequest, error) {
	cur, err := s.db.Collection(col).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list aid requests: %w", err)
	}
	defer cur.Close(ctx)

	requests := make([]*models.AidRequest, 0)
	if err := cur.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode aid requests: %w", err)
	}
	return requests, nil
}

// ListAll merges both collections, tags each record with its origin
// kind and sorts newest first across the merge.
func (s *AidRequestService) ListAll(ctx context.Context) ([]models.TaggedAidRequest, error) {
	resources, err := s.ListResources(ctx)
	if err != nil {
		return nil, err
	}
	services, err := s.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	return mergeTagged(resources, services), nil
}

// mergeTagged tags each request with its origin kind and orders the
// merge newest first across both inputs.
func mergeTagged(resources, services []*models.AidRequest) []models.TaggedAidRequest {
	merged := make([]models.TaggedAidRequest, 0, len(resources)+len(services))
	for _, r := range resources {
		merged = append(merged, models.TaggedAidRequest{AidRequest: *r, Type: models.AidResource})
	}
	for _, r := range services {
		merged = append(merged, models.TaggedAidRequest{AidRequest: *r, Type: models.AidService})
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged
}
