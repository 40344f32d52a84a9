package flash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aquamarinepk/aqm"
)

// Gateway wraps the Comanda Flash backend API. Every operation is a single
// request/response pair: no retries, no caching, no request de-duplication.
// The bearer token travels with each call even when empty; a missing token is
// the backend's 401 to report, not ours.
type Gateway struct {
	httpClient *http.Client
	baseURL    string
	logger     aqm.Logger
}

// NewGateway creates a gateway against the base URL in services.flash.url.
func NewGateway(config *aqm.Config, logger aqm.Logger) (*Gateway, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}

	baseURL, _ := config.GetString("services.flash.url")
	if baseURL == "" {
		return nil, fmt.Errorf("services.flash.url not configured")
	}

	return &Gateway{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}, nil
}

// ListTables fetches every table section visible in the current session
// window.
func (g *Gateway) ListTables(ctx context.Context, token string) ([]TableSection, error) {
	status, body, err := g.call(ctx, http.MethodGet, "/tables", token, nil)
	if err != nil {
		return nil, err
	}

	if err := mapStatus(status); err != nil {
		return nil, err
	}

	var sections []TableSection
	if err := json.Unmarshal(body, &sections); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return sections, nil
}

// GetTableDetail fetches a single table section. The id is validated before
// any request goes out; non-positive ids never reach the network.
func (g *Gateway) GetTableDetail(ctx context.Context, token string, tableID int) (*TableSection, error) {
	if tableID <= 0 {
		return nil, fmt.Errorf("%w: table id %d", ErrInvalidInput, tableID)
	}

	status, body, err := g.call(ctx, http.MethodGet, fmt.Sprintf("/tables/%d", tableID), token, nil)
	if err != nil {
		return nil, err
	}

	if err := mapStatus(status); err != nil {
		return nil, err
	}

	var section TableSection
	if err := json.Unmarshal(body, &section); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &section, nil
}

// GetOrder fetches a single comanda by id for the closure page.
func (g *Gateway) GetOrder(ctx context.Context, token string, orderID int) (*OrderDetail, error) {
	if orderID <= 0 {
		return nil, fmt.Errorf("%w: order id %d", ErrInvalidInput, orderID)
	}

	status, body, err := g.call(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), token, nil)
	if err != nil {
		return nil, err
	}

	if err := mapStatus(status); err != nil {
		return nil, err
	}

	var detail OrderDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &detail, nil
}

// OpenOrder opens a new comanda for a table and returns the new order id.
// The backend answers 400 when the table already has an open comanda, which
// surfaces as ErrConflict.
func (g *Gateway) OpenOrder(ctx context.Context, token string, tableNumber int, customerName string) (int, error) {
	if tableNumber <= 0 {
		return 0, fmt.Errorf("%w: table number %d", ErrInvalidInput, tableNumber)
	}

	path := fmt.Sprintf("/orders/open?number=%d", tableNumber)
	payload := map[string]string{"name": customerName}

	status, body, err := g.call(ctx, http.MethodPost, path, token, payload)
	if err != nil {
		return 0, err
	}

	if status == http.StatusBadRequest {
		return 0, fmt.Errorf("%w: table %d already has an open order", ErrConflict, tableNumber)
	}
	if err := mapStatus(status); err != nil {
		return 0, err
	}

	// The backend answers with idOrder or orderId depending on the endpoint
	// version deployed.
	var result struct {
		IDOrder *int `json:"idOrder"`
		OrderID *int `json:"orderId"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	switch {
	case result.IDOrder != nil:
		return *result.IDOrder, nil
	case result.OrderID != nil:
		return *result.OrderID, nil
	}

	return 0, fmt.Errorf("%w: response carries no order id", ErrMalformedResponse)
}

// Login exchanges credentials for a bearer token. Backend failure messages
// are surfaced verbatim when present.
func (g *Gateway) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{
		"login":    email,
		"password": password,
	}

	status, body, err := g.call(ctx, http.MethodPost, "/auth/login", "", payload)
	if err != nil {
		return "", err
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		if msg := errorMessage(body); msg != "" {
			return "", fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		}
		return "", ErrUnauthorized
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if result.Token == "" {
		return "", fmt.Errorf("%w: response carries no token", ErrMalformedResponse)
	}

	return result.Token, nil
}

// call performs one HTTP exchange and hands back status plus raw body.
// Transport failures are wrapped so errors.Is can tell them apart from the
// HTTP error classes.
func (g *Gateway) call(ctx context.Context, method, path, token string, payload interface{}) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, body, nil
}

// mapStatus converts a non-success HTTP status to the matching error class.
func mapStatus(status int) error {
	switch {
	case status >= http.StatusOK && status < http.StatusMultipleChoices:
		return nil
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrServerError, status)
	}
}

// errorMessage extracts the backend's message field from an error body.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
