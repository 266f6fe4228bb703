package service

import (
	"context"
	"fmt"
	"time"

	"zapshift/internal/apperr"
	"zapshift/internal/config"
	"zapshift/internal/model"
	"zapshift/internal/repository"
	"zapshift/pkg/util"
)

// allowedTransitions is the rider-driven part of the parcel lifecycle.
// rider-assigned is only entered via admin assignment.
var allowedTransitions = map[string][]string{
	model.StatusRiderAssigned: {model.StatusInTransit},
	model.StatusInTransit:     {model.StatusDelivered, model.StatusServiceCenterDelivered},
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ParcelService handles the parcel lifecycle
type ParcelService struct {
	parcels  repository.IParcelRepository
	riders   repository.IRiderRepository
	tracking *TrackingService
	cfg      *config.Config
}

func NewParcelService(cfg *config.Config, parcels repository.IParcelRepository, riders repository.IRiderRepository, tracking *TrackingService) *ParcelService {
	return &ParcelService{parcels: parcels, riders: riders, tracking: tracking, cfg: cfg}
}

// Create registers a new parcel for the sender, assigns a tracking ID and
// writes the first tracking event.
func (s *ParcelService) Create(ctx context.Context, req *model.CreateParcelRequest, senderEmail string) (*model.Parcel, error) {
	parcel := &model.Parcel{
		Title:            req.Title,
		Type:             req.Type,
		CreatedBy:        senderEmail,
		SenderDistrict:   req.SenderDistrict,
		ReceiverDistrict: req.ReceiverDistrict,
		DeliveryStatus:   model.StatusPending,
		PaymentStatus:    model.PaymentUnpaid,
		IsCashedOut:      false,
		TrackingID:       util.GenerateTrackingID(),
	}

	created, err := s.parcels.Create(ctx, parcel)
	if err != nil {
		return nil, fmt.Errorf("failed to create parcel: %w", err)
	}

	if err := s.tracking.Record(ctx, created.TrackingID, created.ID, model.TrackParcelCreated, "Parcel created"); err != nil {
		return nil, fmt.Errorf("failed to record tracking event: %w", err)
	}
	return created, nil
}

// List returns parcels matching the filter, newest first.
func (s *ParcelService) List(ctx context.Context, filter repository.ParcelFilter) ([]*model.Parcel, error) {
	return s.parcels.Find(ctx, filter)
}

// Get returns a parcel by ID.
func (s *ParcelService) Get(ctx context.Context, idHex string) (*model.Parcel, error) {
	id, err := util.ParseObjectID(idHex)
	if err != nil {
		return nil, err
	}
	parcel, err := s.parcels.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load parcel: %w", err)
	}
	if parcel == nil {
		return nil, fmt.Errorf("%w: parcel %s", apperr.ErrorNotFound, idHex)
	}
	return parcel, nil
}

// Delete removes a pending parcel. Only the sender or an admin may delete.
func (s *ParcelService) Delete(ctx context.Context, idHex, requesterEmail string, isAdmin bool) error {
	parcel, err := s.Get(ctx, idHex)
	if err != nil {
		return err
	}
	if !isAdmin && parcel.CreatedBy != requesterEmail {
		return fmt.Errorf("%w: not your parcel", apperr.ErrorForbidden)
	}
	if parcel.DeliveryStatus != model.StatusPending {
		return fmt.Errorf("%w: only pending parcels can be deleted", apperr.ErrorConflict)
	}
	if _, err := s.parcels.Delete(ctx, parcel.ID); err != nil {
		return fmt.Errorf("failed to delete parcel: %w", err)
	}
	return nil
}

// AssignRider puts an approved rider on a pending parcel.
func (s *ParcelService) AssignRider(ctx context.Context, parcelIDHex, riderIDHex string) (*model.Parcel, error) {
	parcel, err := s.Get(ctx, parcelIDHex)
	if err != nil {
		return nil, err
	}
	if parcel.DeliveryStatus != model.StatusPending {
		return nil, fmt.Errorf("%w: parcel is not pending", apperr.ErrorConflict)
	}

	riderID, err := util.ParseObjectID(riderIDHex)
	if err != nil {
		return nil, err
	}
	rider, err := s.riders.FindByID(ctx, riderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rider: %w", err)
	}
	if rider == nil {
		return nil, fmt.Errorf("%w: rider %s", apperr.ErrorNotFound, riderIDHex)
	}
	if rider.Status != model.RiderApproved {
		return nil, fmt.Errorf("%w: rider is not approved", apperr.ErrorConflict)
	}

	fields := map[string]interface{}{
		"deliveryStatus":     model.StatusRiderAssigned,
		"assignedRiderEmail": rider.Email,
		"assignedRiderId":    rider.ID.Hex(),
		"assignedRiderName":  rider.Name,
	}
	if _, err := s.parcels.UpdateFields(ctx, parcel.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to assign rider: %w", err)
	}

	if err := s.tracking.Record(ctx, parcel.TrackingID, parcel.ID, model.TrackRiderAssigned, "Rider "+rider.Name+" assigned"); err != nil {
		return nil, fmt.Errorf("failed to record tracking event: %w", err)
	}

	parcel.DeliveryStatus = model.StatusRiderAssigned
	parcel.AssignedRiderEmail = rider.Email
	parcel.AssignedRiderID = rider.ID.Hex()
	parcel.AssignedRiderName = rider.Name
	return parcel, nil
}

// UpdateStatus moves a parcel along the rider-driven lifecycle. Only the
// assigned rider may call this; pickup and delivery times are stamped on the
// corresponding transitions.
func (s *ParcelService) UpdateStatus(ctx context.Context, parcelIDHex, newStatus, riderEmail string) (*model.Parcel, error) {
	parcel, err := s.Get(ctx, parcelIDHex)
	if err != nil {
		return nil, err
	}
	if parcel.AssignedRiderEmail != riderEmail {
		return nil, fmt.Errorf("%w: parcel is not assigned to you", apperr.ErrorForbidden)
	}
	if !transitionAllowed(parcel.DeliveryStatus, newStatus) {
		return nil, fmt.Errorf("%w: cannot move from %s to %s", apperr.ErrorConflict, parcel.DeliveryStatus, newStatus)
	}

	fields := map[string]interface{}{"deliveryStatus": newStatus}
	stamp := time.Now().Format(time.RFC3339)
	switch newStatus {
	case model.StatusInTransit:
		fields["pickupTime"] = stamp
		parcel.PickupTime = stamp
	case model.StatusDelivered, model.StatusServiceCenterDelivered:
		fields["deliveredTime"] = stamp
		parcel.DeliveredTime = stamp
	}

	if _, err := s.parcels.UpdateFields(ctx, parcel.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	if err := s.tracking.Record(ctx, parcel.TrackingID, parcel.ID, newStatus, "Status updated to "+newStatus); err != nil {
		return nil, fmt.Errorf("failed to record tracking event: %w", err)
	}

	parcel.DeliveryStatus = newStatus
	return parcel, nil
}
