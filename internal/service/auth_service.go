package service

import (
	"context"
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"miniblog/internal/config"
	"miniblog/internal/models"
	"miniblog/internal/repository"
	"time"
)

// Token rejection reasons. They stay distinguishable here for logging, but
// the auth guard collapses all of them into one generic 401 so that a caller
// cannot probe which check failed.
var (
	ErrTokenInvalid = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token is expired")
	ErrTokenRevoked = errors.New("token is revoked")
)

// TokenClaims is the payload of an access token: sub carries the user id,
// jti keys the denylist.
type TokenClaims struct {
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	ValidateToken(ctx context.Context, tokenString string) (*models.User, *TokenClaims, error)
	RevokeToken(ctx context.Context, claims *TokenClaims) error
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	cfg       *config.Config
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		cfg:       cfg,
	}
}

// Register creates the user; duplicate username/email surfaces from the
// repository as repository.ErrDuplicate after the insert is rolled back.
func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
	}

	err := s.userRepo.CreateUser(ctx, user, req.Password)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, username, password)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка аутентификации: %w", err)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	return user, accessToken, nil
}

// generateAccessToken issues a stateless HS256 token: sub = user id, a fresh
// jti, expiry = now + configured TTL.
func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()

	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

// ValidateToken runs the three checks in order: signature, expiry, denylist.
// Only then is the subject resolved against the user store.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*models.User, *TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, nil, fmt.Errorf("%w: %s", ErrTokenExpired, err)
		}
		return nil, nil, fmt.Errorf("%w: %s", ErrTokenInvalid, err)
	}

	if !token.Valid {
		return nil, nil, ErrTokenInvalid
	}

	if claims.ID == "" || claims.Subject == "" {
		return nil, nil, ErrTokenInvalid
	}

	revoked, err := s.tokenRepo.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка при проверке denylist: %w", err)
	}

	if revoked {
		return nil, nil, ErrTokenRevoked
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: subject no longer exists", ErrTokenInvalid)
		}
		return nil, nil, err
	}

	return user, claims, nil
}

// RevokeToken denylists the jti for the token's remaining lifetime; once the
// token expires naturally the entry lapses with it.
func (s *authService) RevokeToken(ctx context.Context, claims *TokenClaims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return ErrTokenInvalid
	}

	err := s.tokenRepo.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
	if err != nil {
		return fmt.Errorf("ошибка при отзыве токена: %w", err)
	}

	return nil
}
