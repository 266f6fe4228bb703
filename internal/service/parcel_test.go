package service

import (
	"context"
	"strings"
	"testing"

	"zapshift/internal/apperr"
	"zapshift/internal/config"
	"zapshift/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parcelFixture struct {
	parcels  *fakeParcelRepo
	riders   *fakeRiderRepo
	tracking *fakeTrackingRepo
	svc      *ParcelService
}

func newParcelFixture(t *testing.T) *parcelFixture {
	t.Helper()
	parcels := newFakeParcelRepo()
	riders := newFakeRiderRepo()
	tracking := newFakeTrackingRepo()
	return &parcelFixture{
		parcels:  parcels,
		riders:   riders,
		tracking: tracking,
		svc:      NewParcelService(&config.Config{}, parcels, riders, NewTrackingService(tracking)),
	}
}

func (f *parcelFixture) createParcel(t *testing.T) *model.Parcel {
	t.Helper()
	parcel, err := f.svc.Create(context.Background(), &model.CreateParcelRequest{
		Title:            "Documents",
		Type:             "document",
		SenderDistrict:   "Dhaka",
		ReceiverDistrict: "Khulna",
	}, "sender@example.com")
	require.NoError(t, err)
	return parcel
}

func (f *parcelFixture) approvedRider(email, name string) *model.Rider {
	rider := &model.Rider{Email: email, Name: name, Status: model.RiderApproved}
	f.riders.put(rider)
	return rider
}

func TestParcelCreate(t *testing.T) {
	f := newParcelFixture(t)
	parcel := f.createParcel(t)

	assert.Equal(t, model.StatusPending, parcel.DeliveryStatus)
	assert.Equal(t, model.PaymentUnpaid, parcel.PaymentStatus)
	assert.Equal(t, "sender@example.com", parcel.CreatedBy)
	assert.False(t, parcel.IsCashedOut)
	assert.True(t, strings.HasPrefix(parcel.TrackingID, "TRK-"))

	logs, err := f.tracking.FindByTrackingID(context.Background(), parcel.TrackingID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.TrackParcelCreated, logs[0].Status)
	assert.Equal(t, parcel.ID, logs[0].ParcelID)
}

func TestParcelAssignRider(t *testing.T) {
	ctx := context.Background()
	f := newParcelFixture(t)
	parcel := f.createParcel(t)
	rider := f.approvedRider("rider@example.com", "Rider")

	updated, err := f.svc.AssignRider(ctx, parcel.ID.Hex(), rider.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, model.StatusRiderAssigned, updated.DeliveryStatus)
	assert.Equal(t, "rider@example.com", updated.AssignedRiderEmail)
	assert.Equal(t, rider.ID.Hex(), updated.AssignedRiderID)

	logs, _ := f.tracking.FindByTrackingID(ctx, parcel.TrackingID)
	require.Len(t, logs, 2)
	assert.Equal(t, model.TrackRiderAssigned, logs[1].Status)

	// Assigning again is a conflict: the parcel is no longer pending.
	_, err = f.svc.AssignRider(ctx, parcel.ID.Hex(), rider.ID.Hex())
	require.ErrorIs(t, err, apperr.ErrorConflict)
}

func TestParcelAssignUnapprovedRider(t *testing.T) {
	ctx := context.Background()
	f := newParcelFixture(t)
	parcel := f.createParcel(t)

	pending := &model.Rider{Email: "pending@example.com", Name: "Pending", Status: model.RiderPending}
	f.riders.put(pending)

	_, err := f.svc.AssignRider(ctx, parcel.ID.Hex(), pending.ID.Hex())
	require.ErrorIs(t, err, apperr.ErrorConflict)
}

func TestParcelStatusLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newParcelFixture(t)
	parcel := f.createParcel(t)
	rider := f.approvedRider("rider@example.com", "Rider")
	_, err := f.svc.AssignRider(ctx, parcel.ID.Hex(), rider.ID.Hex())
	require.NoError(t, err)

	inTransit, err := f.svc.UpdateStatus(ctx, parcel.ID.Hex(), model.StatusInTransit, rider.Email)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInTransit, inTransit.DeliveryStatus)
	assert.NotEmpty(t, inTransit.PickupTime)

	delivered, err := f.svc.UpdateStatus(ctx, parcel.ID.Hex(), model.StatusDelivered, rider.Email)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDelivered, delivered.DeliveryStatus)
	assert.NotEmpty(t, delivered.DeliveredTime)

	logs, _ := f.tracking.FindByTrackingID(ctx, parcel.TrackingID)
	assert.Len(t, logs, 4) // created, assigned, in-transit, delivered
}

func TestParcelStatusIllegalTransitions(t *testing.T) {
	ctx := context.Background()
	f := newParcelFixture(t)
	parcel := f.createParcel(t)
	rider := f.approvedRider("rider@example.com", "Rider")

	// Pending parcels cannot be moved by a rider at all.
	_, err := f.svc.UpdateStatus(ctx, parcel.ID.Hex(), model.StatusInTransit, rider.Email)
	require.ErrorIs(t, err, apperr.ErrorForbidden) // not assigned yet

	_, err = f.svc.AssignRider(ctx, parcel.ID.Hex(), rider.ID.Hex())
	require.NoError(t, err)

	// Cannot skip straight to delivered.
	_, err = f.svc.UpdateStatus(ctx, parcel.ID.Hex(), model.StatusDelivered, rider.Email)
	require.ErrorIs(t, err, apperr.ErrorConflict)

	// Only the assigned rider may update.
	_, err = f.svc.UpdateStatus(ctx, parcel.ID.Hex(), model.StatusInTransit, "other@example.com")
	require.ErrorIs(t, err, apperr.ErrorForbidden)
}

func TestParcelDelete(t *testing.T) {
	ctx := context.Background()
	f := newParcelFixture(t)
	parcel := f.createParcel(t)

	require.ErrorIs(t, f.svc.Delete(ctx, parcel.ID.Hex(), "stranger@example.com", false), apperr.ErrorForbidden)
	require.NoError(t, f.svc.Delete(ctx, parcel.ID.Hex(), "sender@example.com", false))
	require.ErrorIs(t, f.svc.Delete(ctx, parcel.ID.Hex(), "sender@example.com", false), apperr.ErrorNotFound)

	// Non-pending parcels cannot be deleted, even by admins.
	assigned := f.createParcel(t)
	rider := f.approvedRider("rider@example.com", "Rider")
	_, err := f.svc.AssignRider(ctx, assigned.ID.Hex(), rider.ID.Hex())
	require.NoError(t, err)
	require.ErrorIs(t, f.svc.Delete(ctx, assigned.ID.Hex(), "admin@example.com", true), apperr.ErrorConflict)
}
