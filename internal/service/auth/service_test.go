package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/internal/repository"
	"github.com/petcareapp/portal-api/pkg/errors"
	"github.com/petcareapp/portal-api/pkg/logger"
)

type memorySessionStore struct {
	sessions map[string]string
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: map[string]string{}}
}

func (m *memorySessionStore) Save(_ context.Context, id, token string, _ time.Duration) error {
	m.sessions[id] = token
	return nil
}

func (m *memorySessionStore) Get(_ context.Context, id string) (string, error) {
	token, ok := m.sessions[id]
	if !ok {
		return "", errors.NewUnauthorized(nil)
	}
	return token, nil
}

func (m *memorySessionStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

type fakeAuthRepo struct {
	loginToken  string
	registered  *model.RegisterRequest
	logoutCalls int
}

func (f *fakeAuthRepo) Login(_ context.Context, username, password string) (string, error) {
	if password != "secret" {
		return "", errors.NewUnauthorized(nil)
	}
	return f.loginToken, nil
}

func (f *fakeAuthRepo) Register(_ context.Context, req *model.RegisterRequest) (*model.Customer, string, error) {
	f.registered = req
	return &model.Customer{
		ID:   1,
		User: model.User{Username: req.Username, Email: req.Email},
		CPF:  req.CPF,
	}, "fresh-backend-token", nil
}

func (f *fakeAuthRepo) Logout(_ context.Context) error {
	f.logoutCalls++
	return nil
}

type fakeCustomerRepo struct{}

func (f *fakeCustomerRepo) Me(ctx context.Context) (*model.Customer, error) {
	if _, ok := repository.TokenFromContext(ctx); !ok {
		return nil, errors.NewUnauthorized(nil)
	}
	return &model.Customer{ID: 7, User: model.User{Username: "ana"}}, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, _ int64, _ *model.UpdateCustomerRequest) (*model.Customer, error) {
	return nil, nil
}

type noopMailer struct {
	welcomes int
}

func (n *noopMailer) SendWelcome(_ context.Context, _, _ string) error {
	n.welcomes++
	return nil
}

func (n *noopMailer) SendAppointmentConfirmation(_ context.Context, _ string, _ *model.Appointment) error {
	return nil
}

func (n *noopMailer) SendAppointmentCancellation(_ context.Context, _ string, _ *model.Appointment) error {
	return nil
}

func newTestService(repo *fakeAuthRepo, store SessionStore, mailer *noopMailer) *Service {
	return NewService(repo, &fakeCustomerRepo{}, store, mailer,
		logger.NewLogger(nil), "test-secret", time.Hour)
}

func TestLoginOpensSessionAndSignsToken(t *testing.T) {
	store := newMemorySessionStore()
	svc := newTestService(&fakeAuthRepo{loginToken: "backend-token"}, store, &noopMailer{})

	resp, err := svc.Login(context.Background(), &model.LoginRequest{Username: "ana", Password: "secret"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana", resp.Customer.User.Username)

	sessionID, err := svc.SessionID(resp.Token)
	require.NoError(t, err)

	backendToken, err := svc.BackendToken(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, "backend-token", backendToken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(&fakeAuthRepo{}, newMemorySessionStore(), &noopMailer{})

	_, err := svc.Login(context.Background(), &model.LoginRequest{Username: "ana", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrUnauthorized, errors.CodeOf(err))
}

func TestRegisterValidatesCPFLocally(t *testing.T) {
	repo := &fakeAuthRepo{}
	svc := newTestService(repo, newMemorySessionStore(), &noopMailer{})

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "ana", Email: "ana@example.com", Password: "supersegura",
		CPF: "11111111111",
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Nil(t, repo.registered)
}

func TestRegisterStripsCPFFormattingAndSendsWelcome(t *testing.T) {
	repo := &fakeAuthRepo{}
	mailer := &noopMailer{}
	svc := newTestService(repo, newMemorySessionStore(), mailer)

	resp, err := svc.Register(context.Background(), &model.RegisterRequest{
		Username: "ana", Email: "ana@example.com", Password: "supersegura",
		CPF: "111.444.777-35",
	})

	require.NoError(t, err)
	require.NotNil(t, repo.registered)
	assert.Equal(t, "11144477735", repo.registered.CPF)
	assert.Equal(t, 1, mailer.welcomes)
	assert.NotEmpty(t, resp.Token)
}

func TestLogoutRevokesSession(t *testing.T) {
	store := newMemorySessionStore()
	repo := &fakeAuthRepo{loginToken: "backend-token"}
	svc := newTestService(repo, store, &noopMailer{})

	resp, err := svc.Login(context.Background(), &model.LoginRequest{Username: "ana", Password: "secret"})
	require.NoError(t, err)

	sessionID, err := svc.SessionID(resp.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), sessionID))
	assert.Equal(t, 1, repo.logoutCalls)

	_, err = svc.BackendToken(context.Background(), sessionID)
	require.Error(t, err)
	assert.Equal(t, errors.ErrUnauthorized, errors.CodeOf(err))
}

func TestSessionIDRejectsForgedToken(t *testing.T) {
	svc := newTestService(&fakeAuthRepo{}, newMemorySessionStore(), &noopMailer{})
	other := NewService(&fakeAuthRepo{loginToken: "t"}, &fakeCustomerRepo{}, newMemorySessionStore(),
		&noopMailer{}, logger.NewLogger(nil), "other-secret", time.Hour)

	resp, err := other.Login(context.Background(), &model.LoginRequest{Username: "ana", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.SessionID(resp.Token)
	require.Error(t, err)
	assert.Equal(t, errors.ErrUnauthorized, errors.CodeOf(err))
}
