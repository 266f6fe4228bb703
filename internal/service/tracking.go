package service

import (
	"context"
	"fmt"
	"time"

	"zapshift/internal/apperr"
	"zapshift/internal/model"
	"zapshift/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrackingService maintains the append-only tracking ledger
type TrackingService struct {
	repo repository.ITrackingRepository
}

func NewTrackingService(repo repository.ITrackingRepository) *TrackingService {
	return &TrackingService{repo: repo}
}

// Record appends one event to a parcel's ledger. Events are never updated or
// deleted.
func (s *TrackingService) Record(ctx context.Context, trackingID string, parcelID primitive.ObjectID, status, message string) error {
	if trackingID == "" {
		return fmt.Errorf("%w: trackingId is required", apperr.ErrorValidation)
	}
	if status == "" {
		return fmt.Errorf("%w: status is required", apperr.ErrorValidation)
	}
	return s.repo.Append(ctx, &model.TrackingLog{
		TrackingID: trackingID,
		ParcelID:   parcelID,
		Status:     status,
		Message:    message,
		Timestamp:  time.Now(),
	})
}

// Logs returns all events for a tracking ID, oldest first. An unknown
// tracking ID yields an empty list, not an error.
func (s *TrackingService) Logs(ctx context.Context, trackingID string) ([]*model.TrackingLog, error) {
	if trackingID == "" {
		return nil, fmt.Errorf("%w: trackingId is required", apperr.ErrorValidation)
	}
	return s.repo.FindByTrackingID(ctx, trackingID)
}

// LogsAfter returns events appended strictly after the given timestamp,
// oldest first. Used by the live stream tail.
func (s *TrackingService) LogsAfter(ctx context.Context, trackingID string, after time.Time) ([]*model.TrackingLog, error) {
	return s.repo.FindAfter(ctx, trackingID, after)
}
