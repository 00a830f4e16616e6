package services

import (
	"context"
	"errors"

	"astrafin-backoffice/internal/adapters/persistence/models"
	"astrafin-backoffice/internal/adapters/persistence/repositories"
	"astrafin-backoffice/internal/config"
	"astrafin-backoffice/internal/core/domain"
	"astrafin-backoffice/internal/pkg/jwt"
	"astrafin-backoffice/internal/pkg/password"

	"github.com/google/uuid"
)

// AuthService is the thin identity boundary: it exchanges credentials for
// tokens and resolves tokens back to actors. Workflow permissions live in the
// engine, not here.
type AuthService struct {
	userRepo  *repositories.UserRepository
	tokenRepo *repositories.RefreshTokenRepository
	cfg       *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repositories.UserRepository, tokenRepo *repositories.RefreshTokenRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		cfg:       cfg,
	}
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, username, pass string) (*models.User, *TokenPair, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !password.Verify(pass, user.Password) {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates a refresh token and issues a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	stored, err := s.tokenRepo.GetByTokenHash(ctx, password.HashToken(refreshToken))
	if err != nil || stored.IsExpired() {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil || !user.IsActive {
		return nil, domain.ErrTokenInvalid
	}

	// Rotation: the presented token is dead after one use
	if err := s.tokenRepo.RevokeByTokenHash(ctx, stored.TokenHash); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.RevokeByTokenHash(ctx, password.HashToken(refreshToken))
}

// LogoutAll revokes every refresh token of a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	return s.tokenRepo.RevokeAllByUserID(ctx, userID)
}

// Me gets the authenticated user's profile
func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, err := jwt.GenerateAccessToken(user.ID, user.Username, string(user.Role), s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins)
	if err != nil {
		return nil, err
	}

	tokenID := uuid.New().String()
	refresh, err := jwt.GenerateRefreshToken(user.ID, tokenID, s.cfg.JWT.RefreshSecret, s.cfg.JWT.RefreshTokenDays)
	if err != nil {
		return nil, err
	}

	record := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: password.HashToken(refresh),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
