package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/srirupaul05/foodbridge/internal/domain"
	"github.com/srirupaul05/foodbridge/internal/platform/logger"
)

const (
	minPasswordLength   = 6
	verificationCodeTTL = 15 * time.Minute
)

// Claims is the JWT payload carried by every authenticated request.
type Claims struct {
	UserID string      `json:"uid"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// RegisterInput is the signup form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AuthResult is a signed session: the user plus their bearer token.
type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// AuthUsecase handles signup, login, logout and email verification. Sessions
// are JWTs; the active token per user is mirrored in the token cache so
// logout can invalidate it before expiry.
type AuthUsecase struct {
	users     domain.UserRepository
	stats     *StatsUsecase
	tokens    TokenCache
	mailer    Mailer
	logger    logger.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthUsecase(
	users domain.UserRepository,
	stats *StatsUsecase,
	tokens TokenCache,
	mailer Mailer,
	log logger.Logger,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		stats:     stats,
		tokens:    tokens,
		mailer:    mailer,
		logger:    log,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// Register creates the account, seeds its stats document and emails a
// verification code. Email delivery is best effort: a failed send is logged
// and the code can be re-requested.
func (uc *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)

	if name == "" || email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}
	if !domain.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidCredentials, in.Role)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := uc.now()
	user := &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		Role:      in.Role,
		JoinedAt:  now,
		UpdatedAt: now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := uc.stats.InitUser(ctx, user.ID); err != nil {
		uc.logger.Errorf("AuthUsecase.Register: stats init failed for %s: %v", user.ID, err)
	}

	if err := uc.sendVerificationCode(ctx, user); err != nil {
		uc.logger.Warnf("AuthUsecase.Register: verification email failed for %s: %v", email, err)
	}

	return uc.issueSession(ctx, user)
}

// Login checks the credentials and issues a fresh session token.
func (uc *AuthUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := uc.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return uc.issueSession(ctx, user)
}

// Logout drops the user's cached session token. The JWT itself stays valid
// until expiry; the middleware rejects it because the cache no longer
// vouches for it.
func (uc *AuthUsecase) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrNotAuthenticated
	}
	return uc.tokens.InvalidateToken(ctx, userID)
}

// VerifyEmail consumes the emailed code and marks the account verified.
func (uc *AuthUsecase) VerifyEmail(ctx context.Context, email, code string) error {
	user, err := uc.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.IsEmailVerified {
		return nil
	}
	if user.VerificationCode == "" || user.VerificationCode != code {
		return domain.ErrCodeExpired
	}
	if user.VerificationCodeExpiresAt == nil || uc.now().After(*user.VerificationCodeExpiresAt) {
		return domain.ErrCodeExpired
	}
	return uc.users.MarkEmailVerified(ctx, user.ID)
}

// ResendVerification issues a new code to an unverified account.
func (uc *AuthUsecase) ResendVerification(ctx context.Context, email string) error {
	user, err := uc.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.IsEmailVerified {
		return nil
	}
	return uc.sendVerificationCode(ctx, user)
}

// CurrentUser resolves the authenticated user's profile.
func (uc *AuthUsecase) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	return uc.users.FindByID(ctx, userID)
}

// ValidateToken parses and verifies a bearer token, then checks the token
// cache so logged-out tokens die early.
func (uc *AuthUsecase) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return uc.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrNotAuthenticated
	}

	cached, err := uc.tokens.GetToken(ctx, claims.UserID)
	if err != nil || cached != tokenString {
		return nil, domain.ErrNotAuthenticated
	}
	return claims, nil
}

func (uc *AuthUsecase) issueSession(ctx context.Context, user *domain.User) (*AuthResult, error) {
	now := uc.now()
	claims := Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(uc.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	if err := uc.tokens.CacheToken(ctx, user.ID, token, uc.tokenTTL); err != nil {
		return nil, fmt.Errorf("cache session token: %w", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUsecase) sendVerificationCode(ctx context.Context, user *domain.User) error {
	code, err := generateVerificationCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	expiresAt := uc.now().Add(verificationCodeTTL)
	if err := uc.users.SetVerificationCode(ctx, user.ID, code, expiresAt); err != nil {
		return fmt.Errorf("store code: %w", err)
	}
	if uc.mailer == nil {
		return nil
	}
	return uc.mailer.SendVerificationEmail(user.Email, user.Name, code)
}

// generateVerificationCode returns a 6-digit numeric code.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
