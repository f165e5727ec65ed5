package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"store-rating/dto"
)

var ErrNoSession = errors.New("client: not logged in")

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int              `json:"-"`
	Message string           `json:"error"`
	Fields  []dto.FieldError `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("client: request failed with status %d", e.Status)
	}
	return fmt.Sprintf("client: %d %s", e.Status, e.Message)
}

// Client calls the store-rating API on behalf of one session.
// Call Init before use and Logout to tear the session down.
type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore
	session *Session
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithSessionStore(s SessionStore) Option {
	return func(c *Client) { c.store = s }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		store:   &MemoryStore{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init restores a previously saved session, if any.
func (c *Client) Init() error {
	s, err := c.store.Load()
	if err != nil {
		return err
	}
	c.session = s
	return nil
}

func (c *Client) Session() *Session { return c.session }

func (c *Client) Signup(ctx context.Context, in dto.SignupInput) (uint, error) {
	var out dto.IDResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", nil, in, &out, false)
	return out.ID, err
}

// Login authenticates and persists the new session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, dto.LoginInput{Email: email, Password: password}, &out, false); err != nil {
		return nil, err
	}
	s := &Session{Token: out.Token, User: out.User}
	if err := c.store.Save(s); err != nil {
		return nil, err
	}
	c.session = s
	return s, nil
}

// Logout revokes the token server-side and clears the local session even
// when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	if c.session == nil {
		return nil
	}
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil, true)
	c.session = nil
	if clearErr := c.store.Clear(); clearErr != nil {
		return clearErr
	}
	return err
}

func (c *Client) ChangePassword(ctx context.Context, userID uint, newPassword string) error {
	in := dto.ChangePasswordInput{UserID: int64(userID), NewPassword: newPassword}
	return c.do(ctx, http.MethodPost, "/auth/password", nil, in, nil, true)
}

func (c *Client) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	var out dto.DashboardResponse
	if err := c.do(ctx, http.MethodGet, "/admin/dashboard", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, in dto.CreateUserInput) (uint, error) {
	var out dto.IDResponse
	err := c.do(ctx, http.MethodPost, "/admin/users", nil, in, &out, true)
	return out.ID, err
}

func (c *Client) CreateStore(ctx context.Context, in dto.CreateStoreInput) (uint, error) {
	var out dto.IDResponse
	err := c.do(ctx, http.MethodPost, "/admin/stores", nil, in, &out, true)
	return out.ID, err
}

func (c *Client) AdminStores(ctx context.Context, f dto.StoreFilter) ([]dto.AdminStoreResponse, error) {
	q := url.Values{}
	setIf(q, "name", f.Name)
	setIf(q, "email", f.Email)
	setIf(q, "address", f.Address)
	var out []dto.AdminStoreResponse
	err := c.do(ctx, http.MethodGet, "/admin/stores", q, nil, &out, true)
	return out, err
}

// AdminUser mirrors dto.AdminUserResponse; Rating is nil both for users
// without a store and for stores without ratings, HasRating tells them apart.
type AdminUser struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Address   string   `json:"address"`
	Role      string   `json:"role"`
	Rating    *float64 `json:"rating"`
	HasRating bool     `json:"-"`
}

func (c *Client) AdminUsers(ctx context.Context, f dto.UserFilter) ([]AdminUser, error) {
	q := url.Values{}
	setIf(q, "name", f.Name)
	setIf(q, "email", f.Email)
	setIf(q, "address", f.Address)
	setIf(q, "role", string(f.Role))
	var raw []json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/admin/users", q, nil, &raw, true); err != nil {
		return nil, err
	}
	out := make([]AdminUser, 0, len(raw))
	for _, r := range raw {
		var u AdminUser
		if err := json.Unmarshal(r, &u); err != nil {
			return nil, err
		}
		var keys map[string]json.RawMessage
		if err := json.Unmarshal(r, &keys); err != nil {
			return nil, err
		}
		_, u.HasRating = keys["rating"]
		out = append(out, u)
	}
	return out, nil
}

func (c *Client) Stores(ctx context.Context, qName, qAddress string) ([]dto.UserStoreResponse, error) {
	q := url.Values{}
	setIf(q, "qName", qName)
	setIf(q, "qAddress", qAddress)
	var out []dto.UserStoreResponse
	err := c.do(ctx, http.MethodGet, "/user/stores", q, nil, &out, true)
	return out, err
}

func (c *Client) Rate(ctx context.Context, storeID uint, value int) (*dto.RatingResponse, error) {
	var out dto.RatingResponse
	in := dto.RateInput{StoreID: int64(storeID), Value: value}
	if err := c.do(ctx, http.MethodPost, "/user/rate", nil, in, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) OwnerRatings(ctx context.Context) (*dto.OwnerRatingsResponse, error) {
	var out dto.OwnerRatingsResponse
	if err := c.do(ctx, http.MethodGet, "/owner/ratings", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any, auth bool) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		if c.session == nil {
			return ErrNoSession
		}
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
