package auth

import (
	"context"

	"vantage/internal/domain/user"
	"vantage/internal/shared/errors"
	"vantage/internal/shared/logger"
)

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	Verify(password, hash string) error
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Generate(userID uint, email string, roleID uint) (string, error)
	ExpMinutes() int
}

// Service authenticates credentials and issues access tokens.
type Service struct {
	userRepo user.Repository
	hasher   PasswordVerifier
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewService(userRepo user.Repository, hasher PasswordVerifier, tokens TokenIssuer, logger logger.Interface) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger.Named("auth"),
	}
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
	User      *user.User
}

// Authenticate validates a credential pair. Unknown email, wrong password and
// deactivated account all return (nil, nil): the caller cannot tell which gate
// failed. A store fault is the only error return.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	account, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}

	if err := s.hasher.Verify(password, account.PasswordHash()); err != nil {
		return nil, nil
	}

	if !account.IsActive() {
		return nil, nil
	}

	return account, nil
}

// Login authenticates the credential pair and issues a signed access token.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	account, err := s.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		s.logger.Errorw("authentication store error", "error", err)
		return nil, errors.NewInternalError("authentication failed")
	}
	if account == nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Generate(account.ID(), account.Email(), account.RoleID())
	if err != nil {
		s.logger.Errorw("token generation failed", "user_id", account.ID(), "error", err)
		return nil, errors.NewInternalError("authentication failed")
	}

	s.logger.Infow("user logged in", "user_id", account.ID())
	return &LoginResult{
		Token:     token,
		ExpiresIn: s.tokens.ExpMinutes() * 60,
		User:      account,
	}, nil
}
