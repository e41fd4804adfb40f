package apiclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aribt/hackathon-cms/frontend/internal/notify"
	"github.com/aribt/hackathon-cms/frontend/internal/session"
	"github.com/aribt/hackathon-cms/shared/api"
	internal_errors "github.com/aribt/hackathon-cms/shared/errors"
	"github.com/aribt/hackathon-cms/shared/logger"
	"github.com/aribt/hackathon-cms/shared/middleware/metrics"
)

// Texts shown when the backend gives no message of its own.
const (
	MsgAuthFailed = "Authentication failed. Please login again."
	MsgForbidden  = "You don't have permission to perform this action."
	MsgNotFound   = "Resource not found."
	MsgServer     = "Server error. Please try again later."
	MsgNetwork    = "Network error. Please check your connection."
	MsgUnexpected = "An unexpected error occurred."
)

const jsonContentType = "application/json"

// APIClient is the single point of outbound traffic to the CMS backend.
// Every request carries the session's bearer token when there is one, and
// every answer produces at most one notification.
type APIClient struct {
	BaseURL    string
	HttpClient *http.Client
	// TokenFields are the login response fields searched for the token;
	// empty means api.DefaultTokenFields.
	TokenFields []string

	session  *session.Session
	notifier notify.Notifier
	log      *slog.Logger
}

// New creates a new client for interacting with the backend. No timeout is
// set on the underlying http.Client.
func New(baseURL string, sess *session.Session, notifier notify.Notifier) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		HttpClient: &http.Client{},
		session:    sess,
		notifier:   notifier,
		log:        logger.Component("apiclient"),
	}
}

func (c *APIClient) Session() *session.Session {
	return c.session
}

type request struct {
	method      string
	path        string // relative to BaseURL, leading slash
	resource    string // metrics label, never contains an id
	body        io.Reader
	contentType string // JSON when empty
}

// do is the single, unified helper for making API requests. It returns the
// raw body of a 2xx answer. Any other outcome has already been reported to
// the notifier and comes back as *errors.ErrorWithStatusCode, except a
// cancelled ctx, which is returned silently.
func (c *APIClient) do(ctx context.Context, r request) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.BaseURL+r.path, r.body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	contentType := r.contentType
	if contentType == "" {
		contentType = jsonContentType
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", jsonContentType)
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.HttpClient.Do(req)
	if err != nil {
		metrics.ObserveBackend(r.method, r.resource, 0, time.Since(start))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, c.fail(r, 0, nil, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.ObserveBackend(r.method, r.resource, resp.StatusCode, time.Since(start))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, c.fail(r, 0, nil, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.fail(r, resp.StatusCode, body, nil)
	}

	if msg := api.ParseEnvelope(body).Message; msg != "" {
		c.notifier.Success(msg)
	}
	c.log.Debug("backend request", "method", r.method, "path", r.path, "status", resp.StatusCode)
	return body, nil
}

// fail reports one failed call: exactly one notification, the session
// dropped on 401, and the classified error for the caller.
func (c *APIClient) fail(r request, status int, body []byte, transportErr error) error {
	apiErr := classify(status, body, transportErr)
	c.notifier.Error(apiErr.Message)

	if status == http.StatusUnauthorized {
		if err := c.session.Clear(); err != nil {
			c.log.Error("clearing session after 401", "error", err)
		}
	}

	c.log.Warn("backend request failed",
		"method", r.method,
		"path", r.path,
		"status", status,
		"message", apiErr.Message,
		"error", transportErr)
	return apiErr
}

// classify picks the user-facing text: the backend's own message, then its
// error field, then a fixed text for the status.
func classify(status int, body []byte, transportErr error) *internal_errors.ErrorWithStatusCode {
	if status == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message: MsgNetwork,
			Cause:   fmt.Errorf("%w: %w", internal_errors.ErrNetwork, transportErr),
		}
	}

	msg := api.ParseEnvelope(body).Text()
	if msg == "" {
		msg = statusMessage(status)
	}
	return &internal_errors.ErrorWithStatusCode{
		Message:    msg,
		StatusCode: status,
		Cause:      internal_errors.ClassFor(status),
	}
}

func statusMessage(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return MsgAuthFailed
	case status == http.StatusForbidden:
		return MsgForbidden
	case status == http.StatusNotFound:
		return MsgNotFound
	case status >= http.StatusInternalServerError:
		return MsgServer
	default:
		return MsgUnexpected
	}
}
