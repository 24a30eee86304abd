package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/petcareapp/portal-api/internal/email"
	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/internal/repository"
	"github.com/petcareapp/portal-api/pkg/errors"
	"github.com/petcareapp/portal-api/pkg/logger"
)

type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)
	Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error)
	Logout(ctx context.Context, sessionID string) error
	// SessionID parses a portal JWT and returns its session claim.
	SessionID(portalToken string) (string, error)
	// BackendToken returns the backend API token held by a session.
	BackendToken(ctx context.Context, sessionID string) (string, error)
}

type Service struct {
	auth      repository.AuthRepository
	customers repository.CustomerRepository
	sessions  SessionStore
	mailer    email.Service
	log       *logger.Logger
	jwtSecret []byte
	ttl       time.Duration
}

func NewService(
	auth repository.AuthRepository,
	customers repository.CustomerRepository,
	sessions SessionStore,
	mailer email.Service,
	log *logger.Logger,
	jwtSecret string,
	ttl time.Duration,
) *Service {
	return &Service{
		auth:      auth,
		customers: customers,
		sessions:  sessions,
		mailer:    mailer,
		log:       log,
		jwtSecret: []byte(jwtSecret),
		ttl:       ttl,
	}
}

// Login authenticates against the backend, opens a session holding the
// backend token and returns a portal JWT plus the customer profile.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	backendToken, err := s.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	portalToken, err := s.openSession(ctx, backendToken)
	if err != nil {
		return nil, err
	}

	customer, err := s.customers.Me(repository.ContextWithToken(ctx, backendToken))
	if err != nil {
		return nil, fmt.Errorf("failed to load customer profile: %w", err)
	}

	return &model.TokenResponse{Token: portalToken, Customer: customer}, nil
}

// Register validates the CPF locally, creates the account upstream and logs
// the new customer straight in. The welcome email is best-effort.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	cpf, err := model.NewCPF(req.CPF)
	if err != nil {
		return nil, err
	}
	req.CPF = cpf.String()

	customer, backendToken, err := s.auth.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	portalToken, err := s.openSession(ctx, backendToken)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendWelcome(ctx, customer.Email(), customer.FullName()); err != nil {
		s.log.Error(err, "failed to send welcome email")
	}

	return &model.TokenResponse{Token: portalToken, Customer: customer}, nil
}

// Logout revokes the session and tells the backend to drop its token.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	backendToken, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := s.auth.Logout(repository.ContextWithToken(ctx, backendToken)); err != nil {
		// The local session is revoked regardless.
		s.log.Error(err, "backend logout failed")
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *Service) SessionID(portalToken string) (string, error) {
	return s.parseSessionID(portalToken)
}

func (s *Service) BackendToken(ctx context.Context, sessionID string) (string, error) {
	return s.sessions.Get(ctx, sessionID)
}

func (s *Service) openSession(ctx context.Context, backendToken string) (string, error) {
	sessionID := uuid.NewString()
	if err := s.sessions.Save(ctx, sessionID, backendToken, s.ttl); err != nil {
		return "", err
	}

	portalToken, err := s.signToken(sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to sign portal token: %w", err)
	}
	return portalToken, nil
}

func (s *Service) signToken(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *Service) parseSessionID(portalToken string) (string, error) {
	token, err := jwt.Parse(portalToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", errors.NewUnauthorized(fmt.Errorf("invalid portal token: %w", err))
	}
	if !token.Valid {
		return "", errors.NewUnauthorized(fmt.Errorf("invalid portal token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.NewUnauthorized(fmt.Errorf("malformed claims"))
	}
	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return "", errors.NewUnauthorized(fmt.Errorf("missing session claim"))
	}
	return sessionID, nil
}
