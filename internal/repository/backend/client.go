package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/petcareapp/portal-api/internal/repository"
	"github.com/petcareapp/portal-api/pkg/circuitbreaker"
	"github.com/petcareapp/portal-api/pkg/errors"
)

// Upstream API paths, mirroring the backend's URL layout. Every collection
// path ends in a slash; detail paths append "<id>/".
const (
	pathLogin        = "/api/v1/auth/login/"
	pathLogout       = "/api/v1/auth/logout/"
	pathRegister     = "/api/v1/accounts/register/"
	pathCurrentUser  = "/api/v1/accounts/me/"
	pathCustomers    = "/api/v1/accounts/customers/"
	pathPets         = "/api/v1/pets/pets/"
	pathBreeds       = "/api/v1/pets/breeds/"
	pathAppointments = "/api/v1/schedule/appointments/"
	pathServices     = "/api/v1/schedule/services/"
	pathRecords      = "/api/v1/health/records/"
	pathProducts     = "/api/v1/store/products/"
	pathCategories   = "/api/v1/store/categories/"
	pathBrands       = "/api/v1/store/brands/"
)

// Client is a thin JSON client for the upstream pet-care backend. It
// carries no session state: the per-request API token travels in the
// context, set by the auth middleware.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: circuitbreaker.New(circuitbreaker.Settings{
			Name:        "petcare-backend",
			MaxFailures: 5,
			CoolDown:    30 * time.Second,
		}),
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.NewInternal(fmt.Errorf("marshal request body: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("build request: %w", err))
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := repository.TokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Token "+token)
	}
	if requestID, ok := repository.RequestIDFromContext(ctx); ok {
		req.Header.Set("X-Request-ID", requestID)
	}

	// The breaker only counts upstream faults: transport errors and 5xx
	// responses. Rejected requests (4xx) pass through without tripping it.
	var resp *http.Response
	execErr := c.breaker.Execute(func() error {
		var doErr error
		resp, doErr = c.httpClient.Do(req)
		if doErr != nil {
			return doErr
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("backend status %d", resp.StatusCode)
		}
		return nil
	})
	if execErr == circuitbreaker.ErrOpen {
		return errors.NewUpstream("backend temporarily unavailable", execErr)
	}
	if resp == nil {
		return errors.NewUpstream("backend unreachable", execErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewUpstream("malformed backend response", err)
	}
	return nil
}

// errorFromResponse maps upstream HTTP failures onto the application error
// taxonomy, preserving the backend's message when it sent one.
func (c *Client) errorFromResponse(resp *http.Response) error {
	message := decodeErrorMessage(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return errors.NewUnauthorized(fmt.Errorf("backend returned 401"))
	case resp.StatusCode == http.StatusForbidden:
		return &errors.AppError{Code: errors.ErrForbidden, Message: "forbidden"}
	case resp.StatusCode == http.StatusNotFound:
		return errors.NewNotFound("resource", nil)
	case resp.StatusCode >= 500:
		return errors.NewUpstream(fmt.Sprintf("backend error (status %d)", resp.StatusCode), nil)
	default:
		if message == "" {
			message = fmt.Sprintf("backend rejected request (status %d)", resp.StatusCode)
		}
		return errors.NewBadRequest(message, nil)
	}
}

// decodeErrorMessage flattens the backend's error payloads. It understands
// both {"detail": "..."} and per-field {"field": ["msg", ...]} shapes.
func decodeErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil {
		return ""
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}

	if detail, ok := payload["detail"].(string); ok {
		return detail
	}

	var parts []string
	for field, value := range payload {
		switch v := value.(type) {
		case string:
			parts = append(parts, fmt.Sprintf("%s: %s", field, v))
		case []interface{}:
			var msgs []string
			for _, m := range v {
				if s, ok := m.(string); ok {
					msgs = append(msgs, s)
				}
			}
			if len(msgs) > 0 {
				parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, ", ")))
			}
		}
	}
	return strings.Join(parts, "; ")
}

func detailPath(collection string, id int64) string {
	return fmt.Sprintf("%s%d/", collection, id)
}
