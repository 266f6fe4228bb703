package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"zapshift/internal/apperr"
	"zapshift/internal/model"
	"zapshift/internal/repository"
	"zapshift/pkg/timer"
	"zapshift/pkg/util"
)

// CashoutService validates and executes rider cashout requests. The
// check-then-write sequence for one rider is serialized by a per-rider lock,
// and the two document mutations (parcel latch, rider credit) run inside a
// single transaction.
type CashoutService struct {
	parcels repository.IParcelRepository
	riders  repository.IRiderRepository
	txn     repository.TxnRunner

	mu    sync.Mutex
	locks map[string]*sync.Mutex // rider email -> lock
}

func NewCashoutService(parcels repository.IParcelRepository, riders repository.IRiderRepository, txn repository.TxnRunner) *CashoutService {
	return &CashoutService{
		parcels: parcels,
		riders:  riders,
		txn:     txn,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (s *CashoutService) riderLock(email string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[email]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[email] = lock
	}
	return lock
}

// Cashout executes a cashout of the given amount against one completed
// parcel. The amount must equal the parcel's earning value exactly, and the
// rider's pending balance must cover it.
func (s *CashoutService) Cashout(ctx context.Context, riderEmail, parcelIDHex string, amount int64) (*model.CashoutResult, error) {
	defer timer.Track("Cashout (Total)")()

	lock := s.riderLock(riderEmail)
	lock.Lock()
	defer lock.Unlock()

	parcelID, err := util.ParseObjectID(parcelIDHex)
	if err != nil {
		return nil, err
	}

	parcel, err := s.parcels.FindByID(ctx, parcelID)
	if err != nil {
		return nil, fmt.Errorf("failed to load parcel: %w", err)
	}
	if parcel == nil {
		return nil, fmt.Errorf("%w: parcel %s", apperr.ErrorNotFound, parcelIDHex)
	}
	if parcel.IsCashedOut {
		return nil, apperr.ErrorAlreadyCashedOut
	}
	if parcel.AssignedRiderEmail != riderEmail {
		return nil, fmt.Errorf("%w: parcel is not assigned to you", apperr.ErrorForbidden)
	}
	if !parcel.Completed() {
		return nil, fmt.Errorf("%w: parcel is not delivered yet", apperr.ErrorConflict)
	}

	expected := EarningValue(parcel)
	if amount != expected {
		return nil, fmt.Errorf("%w: expected %d, got %d", apperr.ErrorInvalidAmount, expected, amount)
	}

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
	var totalEarning int64
	for _, p := range completed {
		totalEarning += EarningValue(p)
	}
	pending := totalEarning - rider.TotalCashedOut
	if pending < expected {
		return nil, fmt.Errorf("%w: pending %d, requested %d", apperr.ErrorInsufficientBalance, pending, expected)
	}

	entry := model.CashoutEntry{Amount: expected, Date: time.Now(), ParcelID: parcel.ID}
	err = s.txn.WithTransaction(ctx, func(txCtx context.Context) error {
		latched, err := s.parcels.MarkCashedOut(txCtx, parcel.ID)
		if err != nil {
			return fmt.Errorf("failed to mark parcel cashed out: %w", err)
		}
		if !latched {
			return apperr.ErrorAlreadyCashedOut
		}
		if err := s.riders.ApplyCashout(txCtx, rider.ID, entry); err != nil {
			return fmt.Errorf("failed to credit rider: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[cashout] rider=%s parcel=%s amount=%d", riderEmail, parcelIDHex, expected)
	return &model.CashoutResult{
		ParcelID:       parcelIDHex,
		Amount:         expected,
		TotalCashedOut: rider.TotalCashedOut + expected,
	}, nil
}
