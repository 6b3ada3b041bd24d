package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"flowmarine/internal/caching"
	"flowmarine/internal/common"
	"flowmarine/internal/models"
	"flowmarine/internal/repositories"
)

// TokenResponse is the login/refresh payload
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// TokenClaims are the JWT claims issued for a FlowMarine user
type TokenClaims struct {
	UserID   string  `json:"user_id"`
	Role     string  `json:"role"`
	VesselID *string `json:"vessel_id,omitempty"`
	jwt.RegisteredClaims
}

type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
	HashPassword(password string) string
}

type authService struct {
	userRepo   repositories.UserRepository
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	tokenTTL   time.Duration
	refreshTTL time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, cacheSvc caching.CacheService, jwtSecret string, tokenTTL, refreshTTL time.Duration) AuthServiceInterface {
	return &authService{
		userRepo:   userRepo,
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("fetch user by email: %w", err)
	}
	if user == nil || user.PasswordHash != s.HashPassword(password) {
		return nil, common.NewAppError("invalid credentials", http.StatusUnauthorized, "INVALID_CREDENTIALS")
	}
	if user.Status != "active" {
		return nil, common.NewAppError("account is disabled", http.StatusForbidden, "ACCOUNT_DISABLED")
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*TokenResponse, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: user.ID.String(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "flowmarine-auth",
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{"flowmarine-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	if user.VesselID != nil {
		vesselID := user.VesselID.String()
		claims.VesselID = &vesselID
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := generateSecureToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	cacheKey := fmt.Sprintf("refresh_token:%s", hashToken(refreshToken))
	if err := s.cacheSvc.SetString(ctx, cacheKey, user.ID.String(), s.refreshTTL); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.tokenTTL.Seconds()),
	}, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	cacheKey := fmt.Sprintf("refresh_token:%s", hashToken(refreshToken))
	userIDStr, err := s.cacheSvc.GetString(ctx, cacheKey)
	if err != nil || userIDStr == "" {
		return nil, common.NewAppError("invalid or expired refresh token", http.StatusUnauthorized, "INVALID_REFRESH_TOKEN")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, common.NewAppError("invalid or expired refresh token", http.StatusUnauthorized, "INVALID_REFRESH_TOKEN")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch user %s: %w", userID, err)
	}
	if user == nil || user.Status != "active" {
		return nil, common.NewAppError("invalid or expired refresh token", http.StatusUnauthorized, "INVALID_REFRESH_TOKEN")
	}

	// Rotate: the old refresh token is single-use.
	if err := s.cacheSvc.Delete(ctx, cacheKey); err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) ValidateToken(ctx context.Context, token string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, common.NewAppError("invalid token", http.StatusUnauthorized, "INVALID_TOKEN")
	}
	return claims, nil
}

func (s *authService) HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func generateSecureToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
