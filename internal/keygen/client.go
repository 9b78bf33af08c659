package keygen

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/spec-kit/license-service/pkg/util"
)

// Client talks to the external license-key issuing service. The caller's
// bearer header is forwarded on every request; the service enforces its own
// authorization.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient constructs a client for the given base URL. A zero timeout keeps
// the transport default.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// CreateKey mints a new key and returns the issued record.
func (c *Client) CreateKey(ctx context.Context, authHeader string, body CreateKeyRequest) (*Key, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader)

	var key Key
	if err := c.do(req, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

// GetKeys fetches every key record the service holds.
func (c *Client) GetKeys(ctx context.Context, authHeader string) ([]Key, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", authHeader)

	var keys []Key
	if err := c.do(req, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// GetKey fetches one key record by its external id.
func (c *Client) GetKey(ctx context.Context, authHeader, keyID string) (*Key, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+keyID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", authHeader)

	var key Key
	if err := c.do(req, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewExternalError(http.StatusBadGateway, []string{err.Error()}, req.Method, req.URL.String())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.translateError(resp, req.Method, req.URL.String())
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewExternalError(http.StatusBadGateway,
			[]string{"unable to decode license key service response"}, req.Method, req.URL.String())
	}
	return nil
}

// translateError re-surfaces the service's structured error body with its
// original status code. An unparseable body fails closed with the transport
// status. Logged once here; callers do not retry.
func (c *Client) translateError(resp *http.Response, method, url string) error {
	var body serviceError
	status := resp.StatusCode
	messages := []string{"license key service request failed"}

	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.StatusCode != 0 {
		status = body.StatusCode
		if len(body.Message) > 0 {
			messages = body.Message
		}
	}

	c.logger.Error("license key service error",
		zap.Int("status", status),
		zap.Strings("message", messages),
		zap.String("method", method),
		zap.String("url", url),
	)

	return apperrors.NewExternalError(status, messages, method, url)
}
