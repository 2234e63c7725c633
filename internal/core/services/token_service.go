package services

import (
	"fmt"

	portssvc "github.com/BekhzodS/china_shop_app/internal/core/ports/services"
	"github.com/BekhzodS/china_shop_app/internal/platform/config"
	"github.com/BekhzodS/china_shop_app/internal/utils"
)

// tokenService issues signed JWT access tokens.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new token service.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken returns a signed JWT for the user and its lifetime in
// seconds.
func (s *tokenService) GenerateAccessToken(userID string) (string, int64, error) {
	token, err := utils.GenerateJWT(userID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, int64(s.cfg.JWTExpiryDuration.Seconds()), nil
}
