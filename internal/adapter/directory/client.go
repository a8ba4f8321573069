// Package directory is the HTTP client for the order directory API. It
// implements the same repository contracts the server implements over
// PostgreSQL, so the reconciliation use cases run unchanged on either side.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/errors"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/model"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/domain/repository"
	"github.com/msf-bennett8/oshocks-junior-bike-shop-sub004/internal/server/http/dto"
)

// TransportError marks failures where the directory's answer is unknown:
// network errors, timeouts, 5xx. After one of these the caller must re-query
// order status before any retry, because the commit may have landed.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("directory %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationRejectedError carries the field errors from a 422 response.
type ValidationRejectedError struct {
	Fields []dto.FieldErrorPayload
}

func (e *ValidationRejectedError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "payment rejected: " + strings.Join(parts, "; ")
}

// HTTPClient talks to the directory API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	token      string
}

var _ repository.OrderRepository = (*HTTPClient)(nil)

// NewHTTPClient creates a directory client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse directory url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("directory url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// SetToken installs the agent token used on authenticated calls.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// Register creates an agent account and returns its token.
func (c *HTTPClient) Register(ctx context.Context, login, password string) (string, error) {
	return c.authenticate(ctx, "/api/agent/register", login, password)
}

// Login authenticates an existing agent and returns its token.
func (c *HTTPClient) Login(ctx context.Context, login, password string) (string, error) {
	return c.authenticate(ctx, "/api/agent/login", login, password)
}

func (c *HTTPClient) authenticate(ctx context.Context, endpoint, login, password string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, endpoint, nil, dto.AuthRequest{Login: login, Password: password})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		token := strings.TrimSpace(strings.TrimPrefix(resp.Header.Get("Authorization"), "Bearer"))
		if token == "" {
			return "", &TransportError{Op: endpoint, Err: fmt.Errorf("no token in response")}
		}
		c.token = token
		return token, nil
	case http.StatusBadRequest, http.StatusUnauthorized:
		return "", domainErrors.ErrInvalidCredentials
	case http.StatusConflict:
		return "", domainErrors.ErrAlreadyExists
	default:
		return "", c.unexpected(endpoint, resp)
	}
}

// Create ingests an order through the checkout endpoint.
func (c *HTTPClient) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/orders", nil, dto.NewCreateOrderRequest(order))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var payload dto.OrderResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, &TransportError{Op: "create order", Err: err}
		}
		return payload.Order(), nil
	case http.StatusConflict:
		return nil, domainErrors.ErrAlreadyExists
	case http.StatusUnprocessableEntity:
		return nil, decodeValidation(resp.Body)
	case http.StatusUnauthorized:
		return nil, domainErrors.ErrUnauthorized
	default:
		return nil, c.unexpected("create order", resp)
	}
}

// GetByNumber resolves an order number to the full order.
func (c *HTTPClient) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	resp, err := c.do(ctx, http.MethodGet, path.Join("/api/orders", number), nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload dto.OrderResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, &TransportError{Op: "get order", Err: err}
		}
		return payload.Order(), nil
	case http.StatusNotFound:
		return nil, domainErrors.ErrNotFound
	case http.StatusUnauthorized:
		return nil, domainErrors.ErrUnauthorized
	default:
		return nil, c.unexpected("get order", resp)
	}
}

// ListPendingPayment pages through pending orders.
func (c *HTTPClient) ListPendingPayment(ctx context.Context, limit, offset int) ([]model.PendingOrder, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := url.Values{
		"limit": []string{strconv.Itoa(limit)},
		"page":  []string{strconv.Itoa(offset/limit + 1)},
	}
	resp, err := c.do(ctx, http.MethodGet, "/api/orders/pending", query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload []dto.PendingOrderResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, &TransportError{Op: "list pending", Err: err}
		}
		result := make([]model.PendingOrder, 0, len(payload))
		for _, row := range payload {
			result = append(result, row.PendingOrder())
		}
		return result, nil
	case http.StatusNoContent:
		return nil, nil
	case http.StatusUnauthorized:
		return nil, domainErrors.ErrUnauthorized
	default:
		return nil, c.unexpected("list pending", resp)
	}
}

// CommitPayment submits payment evidence for an order.
func (c *HTTPClient) CommitPayment(ctx context.Context, number string, record model.PaymentRecord) (*model.PaymentReceipt, error) {
	endpoint := path.Join("/api/orders", number, "payment")
	resp, err := c.do(ctx, http.MethodPost, endpoint, nil, dto.NewRecordPaymentRequest(record))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload dto.PaymentReceiptResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, &TransportError{Op: "commit payment", Err: err}
		}
		return payload.Receipt(), nil
	case http.StatusConflict:
		return nil, domainErrors.ErrOrderAlreadyPaid
	case http.StatusNotFound:
		return nil, domainErrors.ErrNotFound
	case http.StatusUnprocessableEntity:
		return nil, decodeValidation(resp.Body)
	case http.StatusUnauthorized:
		return nil, domainErrors.ErrUnauthorized
	default:
		return nil, c.unexpected("commit payment", resp)
	}
}

// Search runs the normalized existence check.
func (c *HTTPClient) Search(ctx context.Context, query string) (*model.Order, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/orders/search", url.Values{"q": []string{query}}, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload dto.OrderResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, &TransportError{Op: "search", Err: err}
		}
		return payload.Order(), nil
	case http.StatusBadRequest:
		return nil, domainErrors.ErrEmptyOrderNumber
	case http.StatusNotFound:
		return nil, domainErrors.ErrNotFound
	case http.StatusUnauthorized:
		return nil, domainErrors.ErrUnauthorized
	default:
		return nil, c.unexpected("search", resp)
	}
}

// Summary fetches the pending count and total outstanding.
func (c *HTTPClient) Summary(ctx context.Context) (model.PendingSummary, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/dashboard/summary", nil, nil)
	if err != nil {
		return model.PendingSummary{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload dto.SummaryResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return model.PendingSummary{}, &TransportError{Op: "summary", Err: err}
		}
		return payload.Summary(), nil
	case http.StatusUnauthorized:
		return model.PendingSummary{}, domainErrors.ErrUnauthorized
	default:
		return model.PendingSummary{}, c.unexpected("summary", resp)
	}
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, query url.Values, body any) (*http.Response, error) {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)
	if query != nil {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: method + " " + endpoint, Err: err}
	}
	return resp, nil
}

func (c *HTTPClient) unexpected(op string, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	c.logger.Error("directory request failed",
		slog.String("op", op),
		slog.Int("status", resp.StatusCode),
		slog.String("body", string(body)),
	)
	return &TransportError{Op: op, Err: fmt.Errorf("unexpected status %s", resp.Status)}
}

func decodeValidation(body io.Reader) error {
	var payload dto.ValidationErrorResponse
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return &ValidationRejectedError{}
	}
	return &ValidationRejectedError{Fields: payload.Errors}
}
