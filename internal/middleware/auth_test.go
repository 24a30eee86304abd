package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petcareapp/portal-api/internal/model"
	"github.com/petcareapp/portal-api/internal/repository"
	"github.com/petcareapp/portal-api/pkg/errors"
)

type fakeAuthService struct {
	validToken   string
	sessionID    string
	backendToken string
}

func (f *fakeAuthService) Login(_ context.Context, _ *model.LoginRequest) (*model.TokenResponse, error) {
	return nil, nil
}

func (f *fakeAuthService) Register(_ context.Context, _ *model.RegisterRequest) (*model.TokenResponse, error) {
	return nil, nil
}

func (f *fakeAuthService) Logout(_ context.Context, _ string) error { return nil }

func (f *fakeAuthService) SessionID(portalToken string) (string, error) {
	if portalToken != f.validToken {
		return "", errors.NewUnauthorized(nil)
	}
	return f.sessionID, nil
}

func (f *fakeAuthService) BackendToken(_ context.Context, sessionID string) (string, error) {
	if sessionID != f.sessionID {
		return "", errors.NewUnauthorized(nil)
	}
	return f.backendToken, nil
}

func newAuthTestRouter(svc *fakeAuthService) (*gin.Engine, *string, *string) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	var gotToken, gotSession string
	engine.GET("/protected", RequireSession(svc), func(c *gin.Context) {
		gotToken, _ = repository.TokenFromContext(c.Request.Context())
		gotSession = c.GetString(ContextSessionID)
		c.Status(http.StatusOK)
	})
	return engine, &gotToken, &gotSession
}

func TestRequireSessionInjectsBackendToken(t *testing.T) {
	svc := &fakeAuthService{validToken: "jwt", sessionID: "sid-1", backendToken: "backend-token"}
	engine, gotToken, gotSession := newAuthTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer jwt")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "backend-token", *gotToken)
	assert.Equal(t, "sid-1", *gotSession)
}

func TestRequireSessionRejectsMissingHeader(t *testing.T) {
	engine, _, _ := newAuthTestRouter(&fakeAuthService{})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSessionRejectsForgedToken(t *testing.T) {
	svc := &fakeAuthService{validToken: "jwt", sessionID: "sid-1"}
	engine, _, _ := newAuthTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
