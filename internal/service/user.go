package service

import (
	"context"
	"fmt"

	"zapshift/internal/apperr"
	"zapshift/internal/config"
	"zapshift/internal/model"
	"zapshift/internal/repository"
	"zapshift/pkg/util"
)

// UserService handles user registration and role management
type UserService struct {
	repo repository.IUserRepository
	cfg  *config.Config
}

func NewUserService(cfg *config.Config, repo repository.IUserRepository) *UserService {
	return &UserService{repo: repo, cfg: cfg}
}

// Register creates the user record on first sign-in. Idempotent: when the
// email is already known, the existing record is returned and created is
// false.
func (s *UserService) Register(ctx context.Context, email, name string) (*model.User, bool, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	user := &model.User{Email: email, Name: name, Role: model.RoleUser}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	return created, true, nil
}

// RoleByEmail resolves a verified email to its stored role. A verified caller
// without a user record gets the default role.
func (s *UserService) RoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return model.RoleUser, nil
	}
	return user.Role, nil
}

// Search returns users whose email contains the fragment.
func (s *UserService) Search(ctx context.Context, fragment string) ([]*model.User, error) {
	return s.repo.SearchByEmail(ctx, fragment, config.DefaultPageSize)
}

// List returns all users, newest first.
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.repo.FindAll(ctx)
}

// ChangeRole sets the role on a user by ID.
func (s *UserService) ChangeRole(ctx context.Context, idHex, role string) error {
	if !model.ValidRole(role) {
		return fmt.Errorf("%w: unknown role %q", apperr.ErrorValidation, role)
	}
	id, err := util.ParseObjectID(idHex)
	if err != nil {
		return err
	}
	matched, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if matched == 0 {
		return fmt.Errorf("%w: user %s", apperr.ErrorNotFound, idHex)
	}
	return nil
}
