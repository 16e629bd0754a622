package impl

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"authgate/config"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/domain/repository"
	mockRepo "authgate/internal/mocks/repository"
	mockSvc "authgate/internal/mocks/service"
	"authgate/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service  usecase.AuthUsecase
	userRepo *mockRepo.MockUserRepository
	hasher   *mockSvc.MockPasswordHasher
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAuthService(AuthServiceParams{
		UserRepo: userRepo,
		Hasher:   hasher,
		Config: &config.Config{
			Auth: &config.AuthConfig{BcryptCost: 10, MinPasswordLength: 4},
		},
		Logger: logger,
	})

	return authServiceFixtures{
		service:  service,
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{Username: "sue", Password: "1234"}

	fx.userRepo.On("FindByUsername", ctx, "sue").Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", "1234").Return("hashed_password", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			user := args.Get(1).(*entity.User)
			user.ID = 1
		}).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, int64(1), output.User.ID)
	assert.Equal(t, "sue", output.User.Username)
	assert.Equal(t, "hashed_password", output.User.PasswordHash)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	existing := &entity.User{ID: 1, Username: "sue", PasswordHash: "hashed"}

	fx.userRepo.On("FindByUsername", ctx, "sue").Return(existing, nil)

	// The hasher must never run: the pre-check short-circuits first.
	output, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "sue", Password: "1234"})

	require.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
	assert.Equal(t, "Username taken", domainerrors.ErrUsernameTaken.Message())
}

func TestAuthService_Register_UsernameTakenBeforePasswordLength(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	existing := &entity.User{ID: 1, Username: "sue", PasswordHash: "hashed"}

	fx.userRepo.On("FindByUsername", ctx, "sue").Return(existing, nil)

	// Both pre-checks would fail; the username check runs first.
	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "sue", Password: "ab"})

	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestAuthService_Register_PasswordTooShort(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	fx.userRepo.On("FindByUsername", ctx, "sue").Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "sue", Password: "abc"})

	require.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordTooShort)
	assert.Equal(t, "Password must be longer than 3 chars", domainerrors.ErrPasswordTooShort.Message())
}

func TestAuthService_Register_UniquenessRaceFallback(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	fx.userRepo.On("FindByUsername", ctx, "sue").Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", "1234").Return("hashed_password", nil)
	// The insert loses the check-then-insert race and the unique constraint
	// rejects it at the storage layer.
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrUsernameTaken)

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "sue", Password: "1234"})

	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestAuthService_Register_StorageFailureCarriesRawMessage(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	fx.userRepo.On("FindByUsername", ctx, "sue").Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", "1234").Return("hashed_password", nil)
	fx.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(errors.New("connection reset by peer"))

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "sue", Password: "1234"})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPCode())
	assert.Contains(t, appErr.Message(), "connection reset by peer")
}

func TestAuthService_Register_HashFailure(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	fx.userRepo.On("FindByUsername", ctx, "sue").Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", "1234").Return("", errors.New("bcrypt: cost out of range"))

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{Username: "sue", Password: "1234"})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.HTTPCode())
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{ID: 1, Username: "sue", PasswordHash: "hashed"}

	fx.userRepo.On("FindByUsername", ctx, "sue").Return(user, nil)
	fx.hasher.On("Check", "1234", "hashed").Return(true)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "sue", Password: "1234"})

	require.NoError(t, err)
	assert.Equal(t, user, output.User)
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	fx.userRepo.On("FindByUsername", ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	// Hash verification must never run without a candidate user.
	output, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "1234"})

	require.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_ShortPasswordSkipsVerification(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{ID: 1, Username: "sue", PasswordHash: "hashed"}

	fx.userRepo.On("FindByUsername", ctx, "sue").Return(user, nil)

	// The length check runs after the lookup and before verification; the
	// hasher mock would fail the test if it were called.
	output, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "sue", Password: "abc"})

	require.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{ID: 1, Username: "sue", PasswordHash: "hashed"}

	fx.userRepo.On("FindByUsername", ctx, "sue").Return(user, nil)
	fx.hasher.On("Check", "wrong", "hashed").Return(false)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "sue", Password: "wrong"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{ID: 1, Username: "sue", PasswordHash: "hashed"}

	fx.userRepo.On("FindByUsername", ctx, "ghost").Return(nil, repository.ErrUserNotFound)
	fx.userRepo.On("FindByUsername", ctx, "sue").Return(user, nil)
	fx.hasher.On("Check", "wrong", "hashed").Return(false)

	_, unknownErr := fx.service.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "1234"})
	_, shortErr := fx.service.Login(ctx, &usecase.LoginInput{Username: "sue", Password: "abc"})
	_, wrongErr := fx.service.Login(ctx, &usecase.LoginInput{Username: "sue", Password: "wrong"})

	assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, shortErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_LookupInfraErrorStaysGeneric(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	fx.userRepo.On("FindByUsername", ctx, "sue").Return(nil, errors.New("connection refused"))

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "sue", Password: "1234"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}
