package client

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

	"github.com/jrsteele09/go-stock-server/internal/errors"
	"github.com/jrsteele09/go-stock-server/products"
	"github.com/jrsteele09/go-stock-server/sessions"
	"github.com/rs/zerolog/log"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// APIError carries the status and the server's message verbatim.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap lets callers match the server's failure with errors.Is.
func (e *APIError) Unwrap() error {
	return e.kind
}

// ProductRequest is the payload for create and update
type ProductRequest struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Client talks to the stock server. Protected calls use the stored session;
// a 401 or 403 answer discards it so the caller is back to logged out.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   sessions.Store
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(baseURL string, store sessions.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		sessions:   store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases idle connections held by the underlying HTTP client.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Login exchanges username and password for the credential and stores it.
func (c *Client) Login(ctx context.Context, username, password string) (*sessions.Session, error) {
	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.send(ctx, http.MethodPost, "/login", "", body, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			apiErr.kind = errors.ErrInvalidCredentials
		}
		return nil, err
	}

	session := &sessions.Session{
		Token:    resp.Token,
		Username: username,
		IssuedAt: NowTimeFunc(),
		APIURL:   c.baseURL,
	}
	if err := c.sessions.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Logout forgets the stored credential. The server has nothing to revoke.
func (c *Client) Logout() error {
	return c.sessions.Clear()
}

func (c *Client) List(ctx context.Context) ([]products.Product, error) {
	var list []products.Product
	if err := c.authorised(ctx, http.MethodGet, "/products", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) Create(ctx context.Context, req ProductRequest) (*products.Product, error) {
	var created products.Product
	if err := c.authorised(ctx, http.MethodPost, "/products", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) Update(ctx context.Context, id string, req ProductRequest) (*products.Product, error) {
	var updated products.Product
	if err := c.authorised(ctx, http.MethodPut, "/products/"+url.PathEscape(id), req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a product and returns the server's acknowledgement message.
func (c *Client) Delete(ctx context.Context, id string) (string, error) {
	var ack struct {
		Message string `json:"message"`
	}
	if err := c.authorised(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, &ack); err != nil {
		return "", err
	}
	return ack.Message, nil
}

func (c *Client) authorised(ctx context.Context, method, path string, body, out any) error {
	session, err := c.sessions.Load()
	if err != nil {
		return err
	}
	if session == nil {
		return errors.ErrNotLoggedIn
	}

	err = c.send(ctx, method, path, session.Token, body, out)

	var apiErr *APIError
	if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
		log.Debug().Int("status", apiErr.StatusCode).Msg("credential rejected, clearing session")
		if clearErr := c.sessions.Clear(); clearErr != nil {
			return errors.Join(err, clearErr)
		}
	}
	return err
}

func (c *Client) send(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "[Client] encode request")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrapf(err, "[Client] build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "[Client] %s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "[Client] read response")
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return newAPIError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "[Client] decode response")
	}
	return nil
}

func newAPIError(status int, data []byte) *APIError {
	var body struct {
		Message string `json:"message"`
	}
	message := strings.TrimSpace(string(data))
	if json.Unmarshal(data, &body) == nil && body.Message != "" {
		message = body.Message
	}
	if message == "" {
		message = fmt.Sprintf("server error (%d)", status)
	}
	return &APIError{StatusCode: status, Message: message, kind: kindForStatus(status)}
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusBadRequest:
		return errors.ErrInvalidInput
	case http.StatusUnauthorized:
		return errors.ErrUnauthorized
	case http.StatusForbidden:
		return errors.ErrForbidden
	case http.StatusNotFound:
		return errors.ErrNotFound
	default:
		return nil
	}
}
