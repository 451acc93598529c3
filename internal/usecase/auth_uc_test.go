package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/srirupaul05/foodbridge/internal/domain"
	"github.com/srirupaul05/foodbridge/internal/platform/logger"
)

func authTestFixture() (*AuthUsecase, *MockUserRepository, *MockStatsRepository, *MockTokenCache, *MockMailer) {
	users := new(MockUserRepository)
	statsRepo := new(MockStatsRepository)
	tokens := new(MockTokenCache)
	mailer := new(MockMailer)

	stats := NewStatsUsecase(statsRepo, users, logger.NoOp{})
	uc := NewAuthUsecase(users, stats, tokens, mailer, logger.NoOp{}, "test-secret", 24*time.Hour)
	return uc, users, statsRepo, tokens, mailer
}

func TestAuthUsecase_Register_Success(t *testing.T) {
	uc, users, statsRepo, tokens, mailer := authTestFixture()
	ctx := context.Background()

	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)
	statsRepo.On("InitUser", ctx, mock.AnythingOfType("string")).Return(nil)
	users.On("SetVerificationCode", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendVerificationEmail", "dana@example.com", "Dana", mock.AnythingOfType("string")).Return(nil)
	tokens.On("CacheToken", ctx, mock.Anything, mock.Anything, 24*time.Hour).Return(nil)

	res, err := uc.Register(ctx, RegisterInput{
		Name:     "Dana",
		Email:    "  Dana@Example.com ",
		Password: "secret1",
		Role:     domain.RoleDonor,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "dana@example.com", res.User.Email)
	assert.NotEqual(t, "secret1", res.User.Password)
	users.AssertExpectations(t)
	statsRepo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestAuthUsecase_Register_WeakPassword(t *testing.T) {
	uc, users, _, _, _ := authTestFixture()

	_, err := uc.Register(context.Background(), RegisterInput{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "12345",
		Role:     domain.RoleDonor,
	})

	assert.ErrorIs(t, err, domain.ErrWeakPassword)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	uc, users, _, _, _ := authTestFixture()
	ctx := context.Background()

	users.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicateEmail)

	_, err := uc.Register(ctx, RegisterInput{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "secret1",
		Role:     domain.RoleRecipient,
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	uc, users, _, tokens, _ := authTestFixture()
	ctx := context.Background()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	user := &domain.User{ID: "user-1", Name: "Dana", Email: "dana@example.com", Password: string(hashed), Role: domain.RoleDonor}

	users.On("FindByEmail", ctx, "dana@example.com").Return(user, nil)
	tokens.On("CacheToken", ctx, "user-1", mock.Anything, 24*time.Hour).Return(nil)

	res, err := uc.Login(ctx, "dana@example.com", "secret1")

	assert.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	// The issued token round-trips through validation.
	tokens.On("GetToken", ctx, "user-1").Return(res.Token, nil)
	claims, err := uc.ValidateToken(ctx, res.Token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleDonor, claims.Role)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	uc, users, _, _, _ := authTestFixture()
	ctx := context.Background()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	users.On("FindByEmail", ctx, "dana@example.com").
		Return(&domain.User{ID: "user-1", Password: string(hashed)}, nil)

	_, err := uc.Login(ctx, "dana@example.com", "wrong")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthUsecase_Login_UnknownEmailHidesExistence(t *testing.T) {
	uc, users, _, _, _ := authTestFixture()
	ctx := context.Background()

	users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrUserNotFound)

	_, err := uc.Login(ctx, "nobody@example.com", "whatever")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthUsecase_ValidateToken_RejectsLoggedOutToken(t *testing.T) {
	uc, users, _, tokens, _ := authTestFixture()
	ctx := context.Background()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	users.On("FindByEmail", ctx, "dana@example.com").
		Return(&domain.User{ID: "user-1", Password: string(hashed)}, nil)
	tokens.On("CacheToken", ctx, "user-1", mock.Anything, mock.Anything).Return(nil)

	res, err := uc.Login(ctx, "dana@example.com", "secret1")
	assert.NoError(t, err)

	// After logout the cache no longer holds the token.
	tokens.On("GetToken", ctx, "user-1").Return("", domain.ErrNotAuthenticated)

	_, err = uc.ValidateToken(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestAuthUsecase_VerifyEmail(t *testing.T) {
	uc, users, _, _, _ := authTestFixture()
	ctx := context.Background()

	expires := time.Now().Add(10 * time.Minute)
	user := &domain.User{
		ID:                        "user-1",
		Email:                     "dana@example.com",
		VerificationCode:          "123456",
		VerificationCodeExpiresAt: &expires,
	}

	users.On("FindByEmail", ctx, "dana@example.com").Return(user, nil)
	users.On("MarkEmailVerified", ctx, "user-1").Return(nil)

	assert.NoError(t, uc.VerifyEmail(ctx, "dana@example.com", "123456"))
	assert.ErrorIs(t, uc.VerifyEmail(ctx, "dana@example.com", "654321"), domain.ErrCodeExpired)
}

func TestAuthUsecase_VerifyEmail_ExpiredCode(t *testing.T) {
	uc, users, _, _, _ := authTestFixture()
	ctx := context.Background()

	expires := time.Now().Add(-time.Minute)
	users.On("FindByEmail", ctx, "dana@example.com").Return(&domain.User{
		ID:                        "user-1",
		VerificationCode:          "123456",
		VerificationCodeExpiresAt: &expires,
	}, nil)

	err := uc.VerifyEmail(ctx, "dana@example.com", "123456")

	assert.ErrorIs(t, err, domain.ErrCodeExpired)
	users.AssertNotCalled(t, "MarkEmailVerified", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Logout(t *testing.T) {
	uc, _, _, tokens, _ := authTestFixture()
	ctx := context.Background()

	tokens.On("InvalidateToken", ctx, "user-1").Return(nil)

	assert.NoError(t, uc.Logout(ctx, "user-1"))
	assert.ErrorIs(t, uc.Logout(ctx, ""), domain.ErrNotAuthenticated)
}
