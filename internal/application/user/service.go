package user

import (
	"context"
	"fmt"

	"vantage/internal/domain/rbac"
	"vantage/internal/domain/user"
	"vantage/internal/shared/errors"
	"vantage/internal/shared/logger"
)

// PasswordHasher derives a storable hash from a plaintext password.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Service manages user accounts.
type Service struct {
	userRepo user.Repository
	roleRepo rbac.RoleRepository
	hasher   PasswordHasher
	logger   logger.Interface
}

func NewService(userRepo user.Repository, roleRepo rbac.RoleRepository, hasher PasswordHasher, logger logger.Interface) *Service {
	return &Service{
		userRepo: userRepo,
		roleRepo: roleRepo,
		hasher:   hasher,
		logger:   logger.Named("user"),
	}
}

type CreateUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	RoleID   uint   `json:"role_id" binding:"required"`
}

type UpdateUserInput struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	RoleID   *uint   `json:"role_id"`
	IsActive *bool   `json:"is_active"`
}

type ResetPasswordInput struct {
	Password string `json:"password" binding:"required,min=8,max=72"`
}

func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*user.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, errors.NewInternalError("failed to check email", err.Error())
	}
	if exists {
		return nil, errors.NewConflictError("email already registered")
	}

	if err := s.ensureRoleExists(ctx, input.RoleID); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err.Error())
	}

	account, err := user.NewUser(input.Email, input.Name, hash, input.RoleID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Create(ctx, account); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("email already registered")
		}
		return nil, errors.NewInternalError("failed to create user", err.Error())
	}

	s.logger.Infow("user created", "user_id", account.ID(), "role_id", account.RoleID())
	return account, nil
}

func (s *Service) GetUser(ctx context.Context, id uint) (*user.User, error) {
	account, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get user", err.Error())
	}
	if account == nil {
		return nil, errors.NewNotFoundError("user not found")
	}
	return account, nil
}

func (s *Service) ListUsers(ctx context.Context, filter user.Filter) ([]*user.User, int64, error) {
	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError("failed to list users", err.Error())
	}
	return users, total, nil
}

func (s *Service) UpdateUser(ctx context.Context, id uint, input UpdateUserInput) (*user.User, error) {
	account, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := account.UpdateName(*input.Name); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if input.RoleID != nil {
		if err := s.ensureRoleExists(ctx, *input.RoleID); err != nil {
			return nil, err
		}
		if err := account.ChangeRole(*input.RoleID); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if input.IsActive != nil {
		if *input.IsActive {
			account.Activate()
		} else {
			account.Deactivate()
		}
	}

	if err := s.userRepo.Update(ctx, account); err != nil {
		return nil, errors.NewInternalError("failed to update user", err.Error())
	}
	return account, nil
}

// ResetPassword sets a new password for the account. Administrative
// operation; the current password is not required.
func (s *Service) ResetPassword(ctx context.Context, id uint, input ResetPasswordInput) error {
	account, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return errors.NewInternalError("failed to hash password", err.Error())
	}
	if err := account.ChangePasswordHash(hash); err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Update(ctx, account); err != nil {
		return errors.NewInternalError("failed to update user", err.Error())
	}

	s.logger.Infow("password reset", "user_id", id)
	return nil
}

func (s *Service) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return errors.NewInternalError("failed to delete user", err.Error())
	}

	s.logger.Infow("user deleted", "user_id", id)
	return nil
}

func (s *Service) ensureRoleExists(ctx context.Context, roleID uint) error {
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return errors.NewInternalError("failed to check role", err.Error())
	}
	if role == nil {
		return errors.NewNotFoundError(fmt.Sprintf("role %d not found", roleID))
	}
	return nil
}
