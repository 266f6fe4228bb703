package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tracking event statuses written by the parcel lifecycle.
const (
	TrackParcelCreated = "parcel_created"
	TrackRiderAssigned = "rider_assigned"
)

// TrackingLog is one append-only event in a parcel's tracking ledger.
type TrackingLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrackingID string             `bson:"trackingId" json:"trackingId"`
	ParcelID   primitive.ObjectID `bson:"parcelId" json:"parcelId"`
	Status     string             `bson:"status" json:"status"`
	Message    string             `bson:"message" json:"message"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}

// AppendTrackingRequest is the body of a manual tracking-log append call.
type AppendTrackingRequest struct {
	TrackingID string `json:"trackingId"`
	ParcelID   string `json:"parcelId"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}
