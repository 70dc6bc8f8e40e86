// Package client implements the HTTP client for the backend: signup, login
// and item CRUD calls. The access token obtained at login is attached to
// subsequent requests automatically.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Item mirrors the item record returned by the server.
type Item struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type itemPayload struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	token string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Signup registers a new account and stores the returned access token.
func (c *Client) Signup(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/auth/signup", email, password)
}

// Login exchanges credentials for an access token and stores it.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/auth/login", email, password)
}

// LoggedIn reports whether an access token is held.
func (c *Client) LoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token != ""
}

// Logout drops the held access token.
func (c *Client) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

func (c *Client) CreateItem(ctx context.Context, name string, description *string) (*Item, error) {
	item := &Item{}
	err := c.do(ctx, http.MethodPost, "/items", itemPayload{Name: name, Description: description}, item)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := c.do(ctx, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) GetItem(ctx context.Context, id string) (*Item, error) {
	item := &Item{}
	if err := c.do(ctx, http.MethodGet, "/items/"+id, nil, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (c *Client) UpdateItem(ctx context.Context, id, name string, description *string) (*Item, error) {
	item := &Item{}
	err := c.do(ctx, http.MethodPut, "/items/"+id, itemPayload{Name: name, Description: description}, item)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	out := &deleteResponse{}
	return c.do(ctx, http.MethodDelete, "/items/"+id, nil, out)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) error {
	tr := &tokenResponse{}
	if err := c.do(ctx, http.MethodPost, path, credentials{Email: email, Password: password}, tr); err != nil {
		return err
	}

	c.mu.Lock()
	c.token = tr.AccessToken
	c.mu.Unlock()
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return errorFromResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}

	return nil
}
