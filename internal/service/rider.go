package service

import (
	"context"
	"fmt"
	"log"

	"zapshift/internal/apperr"
	"zapshift/internal/config"
	"zapshift/internal/model"
	"zapshift/internal/repository"
	"zapshift/pkg/util"
)

// RiderService handles the rider application lifecycle:
// pending -> approved (admin), pending -> removed (cancel), and the explicit
// approved -> pending deactivation. Approval and deactivation also flip the
// linked user's role, all-or-nothing.
type RiderService struct {
	riders repository.IRiderRepository
	users  repository.IUserRepository
	cfg    *config.Config
}

func NewRiderService(cfg *config.Config, riders repository.IRiderRepository, users repository.IUserRepository) *RiderService {
	return &RiderService{riders: riders, users: users, cfg: cfg}
}

// Apply submits a rider application. One application per email.
func (s *RiderService) Apply(ctx context.Context, req *model.ApplyRiderRequest) (*model.Rider, error) {
	existing, err := s.riders.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up rider: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: application already exists for %s", apperr.ErrorConflict, req.Email)
	}

	rider := &model.Rider{
		Email:          req.Email,
		Name:           req.Name,
		District:       req.District,
		Phone:          req.Phone,
		Status:         model.RiderPending,
		TotalCashedOut: 0,
	}
	created, err := s.riders.Create(ctx, rider)
	if err != nil {
		return nil, fmt.Errorf("failed to create rider: %w", err)
	}
	return created, nil
}

// Pending lists riders awaiting approval.
func (s *RiderService) Pending(ctx context.Context) ([]*model.Rider, error) {
	return s.riders.FindByStatus(ctx, model.RiderPending)
}

// Approved lists active riders.
func (s *RiderService) Approved(ctx context.Context) ([]*model.Rider, error) {
	return s.riders.FindByStatus(ctx, model.RiderApproved)
}

// Approve moves a pending rider to approved and grants the linked user the
// rider role. If the application email does not resolve to a user record the
// whole operation fails.
func (s *RiderService) Approve(ctx context.Context, idHex string) error {
	rider, err := s.get(ctx, idHex)
	if err != nil {
		return err
	}
	if rider.Status != model.RiderPending {
		return fmt.Errorf("%w: rider is not pending", apperr.ErrorConflict)
	}
	if rider.Email == "" {
		return fmt.Errorf("%w: rider application has no email", apperr.ErrorValidation)
	}

	matched, err := s.users.UpdateRoleByEmail(ctx, rider.Email, model.RoleRider)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	if matched == 0 {
		return fmt.Errorf("%w: no user account for %s", apperr.ErrorNotFound, rider.Email)
	}

	if _, err := s.riders.UpdateStatus(ctx, rider.ID, model.RiderApproved); err != nil {
		// Roll the role grant back so a half-approved rider never exists.
		if _, rbErr := s.users.UpdateRoleByEmail(ctx, rider.Email, model.RoleUser); rbErr != nil {
			log.Printf("[rider] role rollback failed for %s: %v", rider.Email, rbErr)
		}
		return fmt.Errorf("failed to approve rider: %w", err)
	}
	return nil
}

// Cancel hard-deletes a pending application.
func (s *RiderService) Cancel(ctx context.Context, idHex string) error {
	rider, err := s.get(ctx, idHex)
	if err != nil {
		return err
	}
	if rider.Status != model.RiderPending {
		return fmt.Errorf("%w: only pending applications can be cancelled", apperr.ErrorConflict)
	}
	if _, err := s.riders.Delete(ctx, rider.ID); err != nil {
		return fmt.Errorf("failed to delete rider: %w", err)
	}
	return nil
}

// Deactivate moves an approved rider back to pending and reverts the linked
// user's role.
func (s *RiderService) Deactivate(ctx context.Context, idHex string) error {
	rider, err := s.get(ctx, idHex)
	if err != nil {
		return err
	}
	if rider.Status != model.RiderApproved {
		return fmt.Errorf("%w: rider is not approved", apperr.ErrorConflict)
	}

	if _, err := s.riders.UpdateStatus(ctx, rider.ID, model.RiderPending); err != nil {
		return fmt.Errorf("failed to deactivate rider: %w", err)
	}
	if _, err := s.users.UpdateRoleByEmail(ctx, rider.Email, model.RoleUser); err != nil {
		return fmt.Errorf("failed to revert user role: %w", err)
	}
	return nil
}

func (s *RiderService) get(ctx context.Context, idHex string) (*model.Rider, error) {
	id, err := util.ParseObjectID(idHex)
	if err != nil {
		return nil, err
	}
	rider, err := s.riders.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load rider: %w", err)
	}
	if rider == nil {
		return nil, fmt.Errorf("%w: rider %s", apperr.ErrorNotFound, idHex)
	}
	return rider, nil
}
