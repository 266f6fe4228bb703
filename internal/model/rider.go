package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rider application statuses
const (
	RiderPending  = "pending"
	RiderApproved = "approved"
)

// CashoutEntry is one record in a rider's cashout history.
type CashoutEntry struct {
	Amount   int64              `bson:"amount" json:"amount"`
	Date     time.Time          `bson:"date" json:"date"`
	ParcelID primitive.ObjectID `bson:"parcelId" json:"parcelId"`
}

type Rider struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email          string             `bson:"email" json:"email"`
	Name           string             `bson:"name" json:"name"`
	District       string             `bson:"district,omitempty" json:"district,omitempty"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Status         string             `bson:"status" json:"status"` // pending, approved
	AppliedAt      time.Time          `bson:"appliedAt" json:"appliedAt"`
	TotalCashedOut int64              `bson:"totalCashedOut" json:"totalCashedOut"`
	CashoutHistory []CashoutEntry     `bson:"cashoutHistory,omitempty" json:"cashoutHistory,omitempty"`
}

// ApplyRiderRequest is the body of a rider application call.
type ApplyRiderRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	District string `json:"district"`
	Phone    string `json:"phone"`
}

// CashoutRequest is the body of a rider cashout call.
type CashoutRequest struct {
	ParcelID string `json:"parcelId"`
	Amount   int64  `json:"amount"`
}

// CashoutResult is returned on a successful cashout.
type CashoutResult struct {
	ParcelID       string `json:"parcelId"`
	Amount         int64  `json:"amount"`
	TotalCashedOut int64  `json:"totalCashedOut"`
}
