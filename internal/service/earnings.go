package service

import (
	"context"
	"fmt"
	"time"

	"zapshift/internal/apperr"
	"zapshift/internal/model"
	"zapshift/internal/repository"

	"github.com/jinzhu/now"
)

// Per-delivery earning values. Same-district deliveries pay the lower rate.
const (
	SameDistrictEarning  int64 = 80
	CrossDistrictEarning int64 = 150
)

// EarningValue returns what a parcel pays its rider. Pure function of the
// district pair.
func EarningValue(p *model.Parcel) int64 {
	if p.SenderDistrict == p.ReceiverDistrict {
		return SameDistrictEarning
	}
	return CrossDistrictEarning
}

// parseDeliveredTime parses the stored delivery timestamp. Legacy documents
// may hold unparsable values; those parcels fall out of windowed sums.
func parseDeliveredTime(p *model.Parcel) (time.Time, bool) {
	if p.DeliveredTime == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, p.DeliveredTime)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Summarize computes a rider's earnings view over their completed parcels.
// Windows are anchored at ref: calendar day start, most recent Sunday, and
// first of the month. A parcel with no parsable deliveredTime counts toward
// the lifetime total only.
func Summarize(parcels []*model.Parcel, totalCashedOut int64, ref time.Time) *model.EarningsSummary {
	anchor := now.With(ref)
	dayStart := anchor.BeginningOfDay()
	weekStart := anchor.BeginningOfWeek()
	monthStart := anchor.BeginningOfMonth()

	summary := &model.EarningsSummary{TotalCashedOut: totalCashedOut}
	for _, p := range parcels {
		value := EarningValue(p)
		summary.TotalEarning += value

		deliveredAt, ok := parseDeliveredTime(p)
		if !ok {
			continue
		}
		if !deliveredAt.Before(dayStart) {
			summary.TodayEarning += value
		}
		if !deliveredAt.Before(weekStart) {
			summary.WeeklyEarning += value
		}
		if !deliveredAt.Before(monthStart) {
			summary.MonthlyEarning += value
		}
	}
	summary.PendingAmount = summary.TotalEarning - summary.TotalCashedOut
	return summary
}

// EarningsService derives rider earnings from completed parcels. Read-only.
type EarningsService struct {
	parcels repository.IParcelRepository
	riders  repository.IRiderRepository
}

func NewEarningsService(parcels repository.IParcelRepository, riders repository.IRiderRepository) *EarningsService {
	return &EarningsService{parcels: parcels, riders: riders}
}

// Summary returns the earnings view for the rider with the given email.
func (s *EarningsService) Summary(ctx context.Context, riderEmail string) (*model.EarningsSummary, error) {
	rider, err := s.riders.FindByEmail(ctx, riderEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to load rider: %w", err)
	}
	if rider == nil {
		return nil, fmt.Errorf("%w: rider %s", apperr.ErrorNotFound, riderEmail)
	}

	completed, err := s.parcels.FindCompletedByRider(ctx, riderEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed parcels: %w", err)
	}

	return Summarize(completed, rider.TotalCashedOut, time.Now()), nil
}

// CompletedParcels lists a rider's delivered parcels with their earning
// values, newest deliveries last (repository order).
func (s *EarningsService) CompletedParcels(ctx context.Context, riderEmail string) ([]*model.CompletedParcel, error) {
	completed, err := s.parcels.FindCompletedByRider(ctx, riderEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed parcels: %w", err)
	}

	result := make([]*model.CompletedParcel, len(completed))
	for i, p := range completed {
		result[i] = &model.CompletedParcel{Parcel: p, EarningValue: EarningValue(p)}
	}
	return result, nil
}
