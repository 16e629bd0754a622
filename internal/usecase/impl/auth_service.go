// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"authgate/config"
	deliverycontext "authgate/internal/delivery/context"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"
	"authgate/internal/domain/service"
	"authgate/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo       repository.UserRepository
	hasher         service.PasswordHasher
	minPasswordLen int
	logger         *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Config   *config.Config
	Logger   *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	minPasswordLen := 4
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.MinPasswordLength > 0 {
		minPasswordLen = params.Config.Auth.MinPasswordLength
	}

	return &authService{
		userRepo:       params.UserRepo,
		hasher:         params.Hasher,
		minPasswordLen: minPasswordLen,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register runs the registration pre-checks in their fixed order, hashes the
// password and inserts the user. The username pre-check is only the fast
// rejection; the unique constraint in storage is the real guarantee, and its
// violation surfaces as the same "Username taken" failure.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	// Pre-check 1: username must not already exist.
	_, err := srv.userRepo.FindByUsername(ctx, input.Username)
	switch {
	case err == nil:
		srv.log(ctx).Warn("Username already registered", slog.String("username", input.Username))

		return nil, domainerrors.ErrUsernameTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		srv.log(ctx).Error("Username lookup failed during registration", slog.Any("error", err))

		return nil, domainerrors.NewRegistrationError(err)
	}

	// Pre-check 2: password must be longer than three characters.
	if utf8.RuneCountInString(input.Password) < srv.minPasswordLen {
		return nil, domainerrors.ErrPasswordTooShort
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.NewRegistrationError(err)
	}

	user := &entity.User{
		Username:     input.Username,
		PasswordHash: hash,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		// The unique constraint fallback keeps its friendly message; every
		// other storage failure carries its raw error text.
		if errors.Is(err, domainerrors.ErrUsernameTaken) {
			srv.log(ctx).Warn("Username uniqueness race lost", slog.String("username", input.Username))

			return nil, domainerrors.ErrUsernameTaken
		}
		srv.log(ctx).Error("Failed to create user during registration", slog.Any("error", err))

		return nil, domainerrors.NewRegistrationError(err)
	}

	srv.log(ctx).Debug("Registration completed", slog.Int64("userID", user.ID))

	return &usecase.RegisterOutput{User: user}, nil
}

// Login verifies the supplied credentials. The internal short-circuit order
// is fixed: fetch the candidate user, check the password length, then verify
// against the stored hash. Every failure collapses into the same
// ErrInvalidCredentials so callers cannot tell an unknown username from a
// wrong password.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Error("Username lookup failed during login", slog.Any("error", err))
		}
		user = nil
	}

	if utf8.RuneCountInString(input.Password) < srv.minPasswordLen {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if user == nil || !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	srv.log(ctx).Info("Login succeeded", slog.Int64("userID", user.ID), slog.String("username", user.Username))

	return &usecase.LoginOutput{User: user}, nil
}
