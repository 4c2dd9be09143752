package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/apex/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coastwatch/config"
)

// Collection names, one collection per entity.
const (
	ColUsers            = "users"
	ColHazardReports    = "hazardreports"
	ColAlerts           = "alerts"
	ColResourceRequests = "resourcerequests"
	ColServiceRequests  = "servicerequests"
	ColVerifications    = "verifications"
	ColLocations        = "locations"
)

// Connect establishes the MongoDB connection, pings it and ensures
// indexes. The returned handle is injected into the entity services.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	dctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	start := time.Now()
	log.Infof("mongo: connecting uri=%s db=%s", redactURI(cfg.MongoURI), cfg.MongoDB)

	client, err := mongo.Connect(dctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(dctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.MongoDB)
	if err := ensureIndexes(dctx, db); err != nil {
		log.Warnf("mongo: index creation warnings: %v", err)
	}

	log.Infof("mongo: connected in %s", time.Since(start).Round(time.Millisecond))
	return db, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	var errs []string

	_, err := db.Collection(ColUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		errs = append(errs, "users.email: "+err.Error())
	}

	_, err = db.Collection(ColHazardReports).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		errs = append(errs, "hazardreports.createdAt: "+err.Error())
	}

	_, err = db.Collection(ColHazardReports).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "type", Value: 1}},
	})
	if err != nil {
		errs = append(errs, "hazardreports.type: "+err.Error())
	}

	// verifyCode looks up (contact, otp) newest-first
	_, err = db.Collection(ColVerifications).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "contact", Value: 1}, {Key: "otp", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		errs = append(errs, "verifications.contact: "+err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func redactURI(raw string) string {
	if !strings.Contains(raw, "://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	u.User = url.UserPassword("****", "****")
	return u.String()
}
