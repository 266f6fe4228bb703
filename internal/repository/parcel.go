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

// ParcelFilter narrows a parcel listing. Zero-valued fields are ignored.
type ParcelFilter struct {
	CreatedBy          string
	DeliveryStatus     string
	AssignedRiderEmail string
}

// IParcelRepository defines parcel persistence
type IParcelRepository interface {
	Create(ctx context.Context, parcel *model.Parcel) (*model.Parcel, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Parcel, error)
	Find(ctx context.Context, filter ParcelFilter) ([]*model.Parcel, error)
	FindCompletedByRider(ctx context.Context, riderEmail string) ([]*model.Parcel, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (int64, error)
	MarkCashedOut(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// ParcelRepository implements parcel persistence over the parcels collection
type ParcelRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewParcelRepository(cfg *config.Config, db *mongo.Database) IParcelRepository {
	return &ParcelRepository{cfg: cfg, collection: db.Collection("parcels")}
}

func (r *ParcelRepository) Create(ctx context.Context, parcel *model.Parcel) (*model.Parcel, error) {
	parcel.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, parcel)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		parcel.ID = oid
	}
	return parcel, nil
}

func (r *ParcelRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Parcel, error) {
	var parcel *model.Parcel
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&parcel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return parcel, nil
}

func (r *ParcelRepository) Find(ctx context.Context, filter ParcelFilter) ([]*model.Parcel, error) {
	query := bson.M{}
	if filter.CreatedBy != "" {
		query["createdBy"] = filter.CreatedBy
	}
	if filter.DeliveryStatus != "" {
		query["deliveryStatus"] = filter.DeliveryStatus
	}
	if filter.AssignedRiderEmail != "" {
		query["assignedRiderEmail"] = filter.AssignedRiderEmail
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	parcels := []*model.Parcel{}
	if err := cur.All(ctx, &parcels); err != nil {
		return nil, err
	}
	return parcels, nil
}

func (r *ParcelRepository) FindCompletedByRider(ctx context.Context, riderEmail string) ([]*model.Parcel, error) {
	query := bson.M{
		"assignedRiderEmail": riderEmail,
		"deliveryStatus": bson.M{
			"$in": []string{model.StatusDelivered, model.StatusServiceCenterDelivered},
		},
	}
	cur, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	parcels := []*model.Parcel{}
	if err := cur.All(ctx, &parcels); err != nil {
		return nil, err
	}
	return parcels, nil
}

func (r *ParcelRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *ParcelRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (int64, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// MarkCashedOut latches isCashedOut on the parcel. The filter requires the
// latch to still be open, so concurrent callers race on a single conditional
// update and at most one observes true.
func (r *ParcelRepository) MarkCashedOut(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "isCashedOut": false},
		bson.M{"$set": bson.M{"isCashedOut": true}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}
