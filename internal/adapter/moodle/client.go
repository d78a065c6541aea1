package moodle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"moodle-bridge/internal/config"
	"moodle-bridge/internal/logger"
	"moodle-bridge/internal/metrics"

	"go.uber.org/zap"
)

const (
	tokenPath      = "/login/token.php"
	restPath       = "/webservice/rest/server.php"
	restFormatJSON = "json"

	// maxBodyBytes caps how much of a response is read into memory.
	maxBodyBytes = 10 << 20
)

// Client talks to a Moodle site's token and REST web-service endpoints.
// It keeps no per-user state; the user's token is passed on every call.
type Client struct {
	baseURL    string
	service    string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithMetrics records every call in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a Moodle client for the configured site.
func NewClient(cfg config.LMSConfig, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("moodle base URL cannot be empty")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("moodle base URL is invalid: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		service:    cfg.ServiceShortname,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchToken exchanges Moodle credentials for a web-service token.
// A transport failure and a rejection both return a *CallError; only the
// rejection matches ErrCredentialsRejected.
func (c *Client) FetchToken(ctx context.Context, username, password string) (string, error) {
	appLogger := logger.Get()
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	form.Set("service", c.service)

	start := time.Now()
	token, err := c.fetchToken(ctx, form)
	c.metrics.ObserveLMSCall(FunctionToken, outcome(err), time.Since(start))

	if err != nil {
		ce, _ := AsCallError(err)
		if ce != nil && ce.IsTransport() {
			appLogger.Error("HTTP error fetching Moodle token",
				zap.String("username", username),
				zap.Int("status", ce.StatusCode),
				zap.ByteString("response", ce.RawBody),
				zap.Error(err))
		} else {
			appLogger.Warn("Moodle token request rejected",
				zap.String("username", username),
				zap.Error(err))
		}
		return "", err
	}
	return token, nil
}

func (c *Client) fetchToken(ctx context.Context, form url.Values) (string, error) {
	body, status, err := c.postForm(ctx, c.baseURL+tokenPath, form)
	if err != nil {
		ce := newTransportError(FunctionToken, "Moodle token request failed", err)
		ce.StatusCode = status
		return "", ce
	}
	if status < 200 || status >= 300 {
		return "", newHTTPStatusError(FunctionToken, status, body)
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		ce := newTransportError(FunctionToken, "Moodle token response is not valid JSON", err)
		ce.StatusCode = status
		ce.RawBody = body
		return "", ce
	}
	if resp.Token == "" {
		return "", newApplicationError(FunctionToken, status,
			&ErrorPayload{Error: resp.Error, ErrorCode: resp.ErrorCode}, body)
	}
	return resp.Token, nil
}

// Call invokes a web-service function and decodes a successful result into out.
// out may be nil when the result is not needed. The fixed wstoken, wsfunction
// and moodlewsrestformat fields always override caller params of the same name.
// Calls are never retried.
func (c *Client) Call(ctx context.Context, token, function string, params map[string]string, out any) error {
	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	form.Set("wstoken", token)
	form.Set("wsfunction", function)
	form.Set("moodlewsrestformat", restFormatJSON)

	start := time.Now()
	err := c.call(ctx, function, form, out)
	c.metrics.ObserveLMSCall(function, outcome(err), time.Since(start))

	if ce, ok := AsCallError(err); ok {
		fields := []zap.Field{
			zap.String("wsfunction", function),
			zap.String("kind", string(ce.Kind)),
			zap.Int("status", ce.StatusCode),
			zap.ByteString("response", ce.RawBody),
			zap.Error(err),
		}
		if ce.IsTransport() {
			logger.Get().Error("Moodle API call HTTP error", fields...)
		} else {
			logger.Get().Warn("Moodle API call returned an error", fields...)
		}
	}
	return err
}

func (c *Client) call(ctx context.Context, function string, form url.Values, out any) error {
	body, status, err := c.postForm(ctx, c.baseURL+restPath, form)
	if err != nil {
		ce := newTransportError(function, "Moodle API HTTP error", err)
		ce.StatusCode = status
		return ce
	}
	if status < 200 || status >= 300 {
		return newHTTPStatusError(function, status, body)
	}
	if payload, ok := decodeErrorPayload(body); ok {
		return newApplicationError(function, status, payload, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		ce := newTransportError(function, "unexpected Moodle response shape", err)
		ce.StatusCode = status
		ce.RawBody = body
		return ce
	}
	return nil
}

func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, resp.StatusCode, err
	}
	if len(body) > maxBodyBytes {
		return nil, resp.StatusCode, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxBodyBytes)
	}
	return body, resp.StatusCode, nil
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	if ce, ok := AsCallError(err); ok {
		return string(ce.Kind) + "_error"
	}
	return "error"
}
