package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/studiosadmin/admin-console/internal/auth"
	"github.com/studiosadmin/admin-console/internal/config"
	"github.com/studiosadmin/admin-console/internal/domain"
	apperrors "github.com/studiosadmin/admin-console/pkg/util"
)

// AuthService checks admin credentials and issues session tokens.
type AuthService struct {
	allowList *auth.AllowList
	tokenMgr  *auth.TokenManager
	logger    *zap.Logger
}

// NewAuthService builds the service from the configured allow-list.
func NewAuthService(cfg config.AuthConfig, tokens *auth.TokenManager, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		allowList: auth.NewAllowList(cfg.AdminUsers),
		tokenMgr:  tokens,
		logger:    logger,
	}
}

// LoginResult carries a freshly issued token.
type LoginResult struct {
	Username  string
	Token     string
	ExpiresAt time.Time
}

// Login verifies the pair against the allow-list and signs a token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if !s.allowList.Verify(username, password) {
		s.logger.Info("admin login rejected", zap.String("username", username))
		return nil, apperrors.NewUnauthorized("Invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(username)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.logger.Info("admin login", zap.String("username", username))
	return &LoginResult{Username: username, Token: token, ExpiresAt: exp}, nil
}

// Authenticate validates a token and returns its session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, apperrors.NewUnauthorized("Not authenticated")
	}
	session, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Not authenticated")
	}
	return session, nil
}

// TokenTTL is the lifetime of issued sessions.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenMgr.TTL()
}
