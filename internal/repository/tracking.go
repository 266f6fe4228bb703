package repository

import (
	"context"
	"time"

	"zapshift/internal/config"
	"zapshift/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ITrackingRepository defines the append-only tracking ledger
type ITrackingRepository interface {
	Append(ctx context.Context, log *model.TrackingLog) error
	FindByTrackingID(ctx context.Context, trackingID string) ([]*model.TrackingLog, error)
	FindAfter(ctx context.Context, trackingID string, after time.Time) ([]*model.TrackingLog, error)
}

// TrackingRepository implements the ledger over the trackingLogs collection
type TrackingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewTrackingRepository(cfg *config.Config, db *mongo.Database) ITrackingRepository {
	return &TrackingRepository{cfg: cfg, collection: db.Collection("trackingLogs")}
}

func (r *TrackingRepository) Append(ctx context.Context, log *model.TrackingLog) error {
	_, err := r.collection.InsertOne(ctx, log)
	return err
}

func (r *TrackingRepository) FindByTrackingID(ctx context.Context, trackingID string) ([]*model.TrackingLog, error) {
	return r.find(ctx, bson.M{"trackingId": trackingID})
}

func (r *TrackingRepository) FindAfter(ctx context.Context, trackingID string, after time.Time) ([]*model.TrackingLog, error) {
	return r.find(ctx, bson.M{
		"trackingId": trackingID,
		"timestamp":  bson.M{"$gt": after},
	})
}

func (r *TrackingRepository) find(ctx context.Context, filter bson.M) ([]*model.TrackingLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	logs := []*model.TrackingLog{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
