// Package backend is the boundary to the opaque SyncSpace API. It translates
// local auth operations into remote HTTP/JSON calls and forwards opaque
// resource requests, normalising every failure into a single error shape.
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

	"github.com/rs/zerolog"

	"github.com/syncspace/edge-gateway/internal/api/metrics"
	"github.com/syncspace/edge-gateway/internal/core/domain"
	"github.com/syncspace/edge-gateway/internal/core/ports"
)

// genericErrorMessage is the fallback when a failing response carries no
// message field of its own.
const genericErrorMessage = "something went wrong"

// maxErrorBody bounds how much of a failing response body is read when
// extracting the message.
const maxErrorBody = 64 << 10

// Error is the uniform failure shape of every gateway call. Application-level
// rejections and transport failures are indistinguishable to callers; only
// the message differs.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Client implements ports.AuthGateway and opaque resource forwarding against
// a configured base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     log,
	}
}

// Register creates an account and returns the backend's confirmation message.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	body, err := c.postJSON(ctx, "/auth/register", map[string]string{
		"firstName": in.FirstName,
		"lastName":  in.LastName,
		"gender":    in.Gender,
		"email":     in.Email,
		"password":  in.Password,
	}, nil)
	if err != nil {
		return "", err
	}

	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)
	return payload.Message, nil
}

// Login authenticates and returns the User the backend produced plus the
// credential cookies it set.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, []*http.Cookie, error) {
	start := time.Now()
	req, err := c.newJSONRequest(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	if err != nil {
		return nil, nil, &Error{Message: err.Error()}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.GatewayRequestDuration.WithLabelValues("login").Observe(time.Since(start).Seconds())
		return nil, nil, &Error{Message: err.Error()}
	}
	defer resp.Body.Close()
	metrics.GatewayRequestDuration.WithLabelValues("login").Observe(time.Since(start).Seconds())

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, nil, &Error{Message: genericErrorMessage}
	}
	if !successful(resp.StatusCode) {
		return nil, nil, &Error{Message: extractMessage(data)}
	}

	var payload struct {
		domain.User
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.User.Email == "" {
		c.log.Warn().Err(err).Msg("login response body malformed")
		return nil, nil, &Error{Message: genericErrorMessage}
	}

	user := payload.User
	return &user, resp.Cookies(), nil
}

// Logout terminates the server-side session. The caller clears local state
// regardless of this result.
func (c *Client) Logout(ctx context.Context, upstream []*http.Cookie) error {
	_, err := c.postJSON(ctx, "/auth/logout", nil, upstream)
	return err
}

// Forward relays an opaque resource request (events, bookings, reviews,
// stats) and returns the raw response for streaming back to the client. The
// caller owns closing the response body.
func (c *Client) Forward(
	ctx context.Context,
	method, path string,
	query url.Values,
	body io.Reader,
	contentType string,
	upstream []*http.Cookie,
) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	attachCookies(req, upstream)

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.GatewayRequestDuration.WithLabelValues("forward").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	return resp, nil
}

// Ping reports backend reachability for the readiness probe. Any HTTP
// response counts as reachable; only transport failures do not.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend ping: %w", err)
	}
	resp.Body.Close()
	return nil
}

// postJSON issues a JSON POST and returns the success body. Non-2xx statuses
// and transport failures come back as *Error.
func (c *Client) postJSON(ctx context.Context, path string, payload any, upstream []*http.Cookie) ([]byte, error) {
	operation := strings.TrimPrefix(path, "/auth/")

	req, err := c.newJSONRequest(ctx, path, payload, upstream)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.GatewayRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, &Error{Message: genericErrorMessage}
	}
	if !successful(resp.StatusCode) {
		return nil, &Error{Message: extractMessage(data)}
	}
	return data, nil
}

func (c *Client) newJSONRequest(ctx context.Context, path string, payload any, upstream []*http.Cookie) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	attachCookies(req, upstream)
	return req, nil
}

func attachCookies(req *http.Request, cookies []*http.Cookie) {
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
}

// successful treats every 2xx alike; the specific status code carries no
// distinct semantics to callers.
func successful(status int) bool {
	return status >= 200 && status < 300
}

// extractMessage pulls the message field out of a failing response body,
// falling back to the generic message when absent or unparsable.
func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		return genericErrorMessage
	}
	return payload.Message
}
