package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Parcel delivery statuses
const (
	StatusPending                = "pending"
	StatusRiderAssigned          = "rider-assigned"
	StatusInTransit              = "in-transit"
	StatusDelivered              = "delivered"
	StatusServiceCenterDelivered = "service_center_delivered"
)

// Payment statuses
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

type Parcel struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title              string             `bson:"title" json:"title"`
	Type               string             `bson:"type" json:"type"`
	CreatedBy          string             `bson:"createdBy" json:"createdBy"` // sender email
	SenderDistrict     string             `bson:"senderDistrict" json:"senderDistrict"`
	ReceiverDistrict   string             `bson:"receiverDistrict" json:"receiverDistrict"`
	DeliveryStatus     string             `bson:"deliveryStatus" json:"deliveryStatus"`
	PaymentStatus      string             `bson:"paymentStatus" json:"paymentStatus"`
	AssignedRiderEmail string             `bson:"assignedRiderEmail,omitempty" json:"assignedRiderEmail,omitempty"`
	AssignedRiderID    string             `bson:"assignedRiderId,omitempty" json:"assignedRiderId,omitempty"`
	AssignedRiderName  string             `bson:"assignedRiderName,omitempty" json:"assignedRiderName,omitempty"`
	IsCashedOut        bool               `bson:"isCashedOut" json:"isCashedOut"`
	// Pickup and delivery times are stored as RFC3339 strings; legacy documents
	// may hold values that do not parse.
	PickupTime    string    `bson:"pickupTime,omitempty" json:"pickupTime,omitempty"`
	DeliveredTime string    `bson:"deliveredTime,omitempty" json:"deliveredTime,omitempty"`
	TrackingID    string    `bson:"trackingId" json:"trackingId"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// Completed reports whether the parcel has reached a terminal delivered state
// and is therefore eligible for rider earnings.
func (p *Parcel) Completed() bool {
	return p.DeliveryStatus == StatusDelivered || p.DeliveryStatus == StatusServiceCenterDelivered
}

// CreateParcelRequest is the body of a parcel creation call.
type CreateParcelRequest struct {
	Title            string `json:"title"`
	Type             string `json:"type"`
	SenderDistrict   string `json:"senderDistrict"`
	ReceiverDistrict string `json:"receiverDistrict"`
}

// AssignRiderRequest is the body of an admin rider-assignment call.
type AssignRiderRequest struct {
	RiderID string `json:"riderId"`
}

// UpdateStatusRequest is the body of a rider status-update call.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
