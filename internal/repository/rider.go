package repository

import (
	"context"
	"time"

	"zapshift/internal/config"
	"zapshift/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IRiderRepository defines rider persistence
type IRiderRepository interface {
	Create(ctx context.Context, rider *model.Rider) (*model.Rider, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Rider, error)
	FindByEmail(ctx context.Context, email string) (*model.Rider, error)
	FindByStatus(ctx context.Context, status string) ([]*model.Rider, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	ApplyCashout(ctx context.Context, id primitive.ObjectID, entry model.CashoutEntry) error
}

// RiderRepository implements rider persistence over the riders collection
type RiderRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewRiderRepository(cfg *config.Config, db *mongo.Database) IRiderRepository {
	return &RiderRepository{cfg: cfg, collection: db.Collection("riders")}
}

func (r *RiderRepository) Create(ctx context.Context, rider *model.Rider) (*model.Rider, error) {
	rider.AppliedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, rider)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rider.ID = oid
	}
	return rider, nil
}

func (r *RiderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Rider, error) {
	var rider *model.Rider
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rider)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return rider, nil
}

func (r *RiderRepository) FindByEmail(ctx context.Context, email string) (*model.Rider, error) {
	var rider *model.Rider
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&rider)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return rider, nil
}

func (r *RiderRepository) FindByStatus(ctx context.Context, status string) ([]*model.Rider, error) {
	opts := options.Find().SetSort(bson.D{{Key: "appliedAt", Value: -1}})
	cur, err := r.collection.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	riders := []*model.Rider{}
	if err := cur.All(ctx, &riders); err != nil {
		return nil, err
	}
	return riders, nil
}

func (r *RiderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (int64, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *RiderRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ApplyCashout credits the rider in one document update: increments the
// accumulated total and appends the history entry.
func (r *RiderRepository) ApplyCashout(ctx context.Context, id primitive.ObjectID, entry model.CashoutEntry) error {
	update := bson.M{
		"$inc":  bson.M{"totalCashedOut": entry.Amount},
		"$push": bson.M{"cashoutHistory": entry},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
