package daily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"webinar-token-service/internal/domain"
	"webinar-token-service/internal/logger"
)

const serviceName = "daily"

// Config holds what the client needs to reach the Token Issuing Service.
type Config struct {
	BaseURL string // e.g. "https://api.daily.co/v1/"
	APIKey  string
	Timeout time.Duration
}

// Client calls the Token Issuing Service on behalf of the form. It is the
// only place the API key is used.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new Token Issuing Service client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetHTTPClient allows setting a custom HTTP client.
func (c *Client) SetHTTPClient(client *http.Client) {
	if client != nil {
		c.httpClient = client
	}
}

// CreateMeetingToken asks the service for a token. Failures are always a
// *domain.TokenError of kind service or transport.
func (c *Client) CreateMeetingToken(ctx context.Context, req domain.TokenRequest) (*domain.TokenResult, error) {
	logger.ExternalServiceCall(serviceName, "CreateMeetingToken",
		"room", req.Properties.RoomName, "user", req.Properties.UserName)

	result, err := c.createMeetingToken(ctx, req)

	logger.ExternalServiceResult(serviceName, "CreateMeetingToken", err,
		"room", req.Properties.RoomName)
	return result, err
}

func (c *Client) createMeetingToken(ctx context.Context, req domain.TokenRequest) (*domain.TokenResult, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, domain.NewTransportError(fmt.Errorf("marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/meeting-tokens", bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewTransportError(fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, domain.NewTransportError(fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewTransportError(fmt.Errorf("read response: %w", err))
	}

	return decodeTokenResponse(resp.StatusCode, body)
}

// decodeTokenResponse classifies a response body. An "error" field wins over
// the HTTP status.
func decodeTokenResponse(status int, body []byte) (*domain.TokenResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, domain.NewTransportError(fmt.Errorf("unmarshal response (status %d): %w", status, err))
	}

	errBody := domain.TokenErrorBody{Error: fields["error"], Info: fields["info"]}
	if errBody.Present() {
		return nil, domain.NewServiceError(errBody.Code(), errBody.Detail())
	}

	if status >= 400 {
		return nil, domain.NewServiceError(fmt.Sprintf("http_%d", status), http.StatusText(status))
	}

	var result domain.TokenResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, domain.NewTransportError(fmt.Errorf("unmarshal token: %w", err))
	}
	if result.Token == "" {
		return nil, domain.NewTransportError(fmt.Errorf("response has no token (status %d)", status))
	}
	result.Fields = fields

	return &result, nil
}
