package auth

import (
	"errors"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/taiwoajasa245/memories-api/pkg/util"
)

const DefaultTokenTTL = 30 * 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDisabled           = errors.New("login is not enabled")
)

// AuthService guards the site with one shared password. With no password
// hash configured the site is open and every request passes.
type AuthService struct {
	passwordHash string
	secret       string
	ttl          time.Duration
	participants []string
	log          zerolog.Logger
}

func NewAuthService(passwordHash, secret string, participants []string, log zerolog.Logger) *AuthService {
	return &AuthService{
		passwordHash: passwordHash,
		secret:       secret,
		ttl:          DefaultTokenTTL,
		participants: participants,
		log:          log.With().Str("service", "auth").Logger(),
	}
}

func (s *AuthService) Enabled() bool {
	return s.passwordHash != ""
}

// Login checks the shared password and returns a signed token. Name is
// optional but must be a participant when given.
func (s *AuthService) Login(name, password string) (*LoginResponse, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}
	if password == "" {
		return nil, ErrInvalidCredentials
	}
	if name != "" && !slices.Contains(s.participants, name) {
		return nil, ErrInvalidCredentials
	}

	if err := util.ComparePassword(s.passwordHash, password); err != nil {
		s.log.Warn().Str("name", name).Msg("failed login")
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := util.GenerateJWT(s.secret, name, s.ttl)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("name", name).Msg("logged in")
	return &LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) Verify(token string) (*util.Claims, error) {
	return util.ValidateJWT(s.secret, token)
}
