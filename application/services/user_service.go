package services

import (
	"context"

	"go.uber.org/zap"

	"contactkeeper/application/ports"
	"contactkeeper/domain/user"
	"contactkeeper/pkg/auth"
	apperrors "contactkeeper/pkg/errors"
)

// UserService backs registration and login. Both return a signed bearer
// token on success.
type UserService struct {
	users  ports.UserRepository
	tokens *auth.TokenService
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users ports.UserRepository, tokens *auth.TokenService, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates an account and returns a token for it. Registering an
// email that already exists is a conflict, reported as a 400 to match the
// public contract.
func (s *UserService) Register(ctx context.Context, name, email, password string) (string, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to check existing user", zap.Error(err))
		return "", apperrors.NewDatabaseError("find user", err)
	}
	if existing != nil {
		return "", apperrors.NewValidationError(apperrors.FieldError{
			Field:   "email",
			Message: "User already exists",
		})
	}

	u, err := user.New(name, email, password)
	if err != nil {
		return "", apperrors.NewValidationError(apperrors.FieldError{
			Field:   "user",
			Message: err.Error(),
		})
	}

	if err := s.users.Save(ctx, u); err != nil {
		s.logger.Error("failed to save user", zap.Error(err))
		return "", apperrors.NewDatabaseError("save user", err)
	}

	return s.signToken(u)
}

// Authenticate checks credentials and returns a token. Unknown email and
// wrong password produce the same message so the response does not reveal
// which part failed.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to look up user", zap.Error(err))
		return "", apperrors.NewDatabaseError("find user", err)
	}
	if u == nil || !u.CheckPassword(password) {
		return "", apperrors.NewValidationError(apperrors.FieldError{
			Field:   "credentials",
			Message: "Invalid credentials",
		})
	}

	return s.signToken(u)
}

// Get returns the user for an authenticated identity
func (s *UserService) Get(ctx context.Context, id user.ID) (*user.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to load user",
			zap.String("userID", id.String()),
			zap.Error(err),
		)
		return nil, apperrors.NewDatabaseError("find user", err)
	}
	if u == nil {
		return nil, apperrors.NewNotFoundError("User")
	}
	return u, nil
}

func (s *UserService) signToken(u *user.User) (string, error) {
	token, err := s.tokens.Generate(u.ID.String(), u.Email)
	if err != nil {
		s.logger.Error("failed to sign token", zap.Error(err))
		return "", apperrors.NewInternalError("failed to issue token").WithCause(err)
	}
	return token, nil
}
