package api

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

	"github.com/google/uuid"

	"hacksnooze/internal/client/models"
	"hacksnooze/internal/logging"
	"hacksnooze/internal/shared"
)

// Config holds transport settings for the HTTP client.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// HTTPClient implements Client against the story service's JSON API.
// Response envelopes ({stories:[…]}, {story:{…}}, {user:{…}, token}) and
// token placement (body for writes, query param for the user fetch) follow
// the server's wire contract.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client

	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration

	logger logging.Logger
}

func NewHTTPClient(cfg Config, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("component", "api"),
	}
}

// wire shapes

type storyJSON struct {
	StoryID   string `json:"storyId"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	URL       string `json:"url"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
}

type userJSON struct {
	Username  string      `json:"username"`
	Name      string      `json:"name"`
	CreatedAt string      `json:"createdAt"`
	Favorites []storyJSON `json:"favorites"`
	// own stories travel under the "stories" key in the user record
	Stories []storyJSON `json:"stories"`
}

type storiesEnvelope struct {
	Stories []storyJSON `json:"stories"`
}

type storyEnvelope struct {
	Story storyJSON `json:"story"`
}

type userEnvelope struct {
	User  userJSON `json:"user"`
	Token string   `json:"token"`
}

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Title   string `json:"title"`
	} `json:"error"`
}

// ListStories fetches the full story feed in server order. As the only
// idempotent read it retries with bounded exponential backoff; every other
// call is single-shot.
func (c *HTTPClient) ListStories(ctx context.Context) ([]models.Story, error) {
	var env storiesEnvelope
	var err error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		err = c.do(ctx, http.MethodGet, "/stories", nil, nil, &env)
		if err == nil {
			return c.storiesFromJSON(ctx, env.Stories), nil
		}

		if attempt == c.maxAttempts {
			break
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn(ctx, "list stories failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", shared.ErrorNetwork, ctx.Err())
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
}

func (c *HTTPClient) CreateStory(ctx context.Context, token string, draft models.StoryDraft) (models.Story, error) {
	body := map[string]any{
		"token": token,
		"story": map[string]string{
			"title":  draft.Title,
			"author": draft.Author,
			"url":    draft.URL,
		},
	}

	var env storyEnvelope
	if err := c.do(ctx, http.MethodPost, "/stories", nil, body, &env); err != nil {
		return models.Story{}, err
	}
	return c.storyFromJSON(ctx, env.Story), nil
}

func (c *HTTPClient) DeleteStory(ctx context.Context, token string, storyID string) error {
	body := map[string]string{"token": token}
	path := "/stories/" + url.PathEscape(storyID)
	return c.do(ctx, http.MethodDelete, path, nil, body, nil)
}

func (c *HTTPClient) Signup(ctx context.Context, username, password, name string) (*models.User, error) {
	body := map[string]any{
		"user": map[string]string{
			"username": username,
			"password": password,
			"name":     name,
		},
	}

	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/signup", nil, body, &env); err != nil {
		return nil, err
	}
	return c.userFromJSON(ctx, env.User, env.Token), nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.User, error) {
	body := map[string]any{
		"user": map[string]string{
			"username": username,
			"password": password,
		},
	}

	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &env); err != nil {
		return nil, err
	}
	return c.userFromJSON(ctx, env.User, env.Token), nil
}

// GetUser fetches the profile of the named user. This is the one call that
// passes the token as a query parameter rather than in the body.
func (c *HTTPClient) GetUser(ctx context.Context, token string, username string) (*models.User, error) {
	query := url.Values{"token": []string{token}}
	path := "/users/" + url.PathEscape(username)

	var env userEnvelope
	if err := c.do(ctx, http.MethodGet, path, query, nil, &env); err != nil {
		return nil, err
	}
	return c.userFromJSON(ctx, env.User, token), nil
}

func (c *HTTPClient) AddFavorite(ctx context.Context, token string, username, storyID string) error {
	body := map[string]string{"token": token}
	path := c.favoritePath(username, storyID)
	return c.do(ctx, http.MethodPost, path, nil, body, nil)
}

func (c *HTTPClient) RemoveFavorite(ctx context.Context, token string, username, storyID string) error {
	body := map[string]string{"token": token}
	path := c.favoritePath(username, storyID)
	return c.do(ctx, http.MethodDelete, path, nil, body, nil)
}

func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) favoritePath(username, storyID string) string {
	return "/users/" + url.PathEscape(username) + "/favorites/" + url.PathEscape(storyID)
}

// do performs one request/response round trip: marshal the body, classify
// the status, decode the envelope. Transport failures (including the client
// timeout) surface as shared.ErrorNetwork. Mutating requests carry an
// X-Request-Id so the server side can spot accidental resubmission.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hacksnooze/1.0")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("X-Request-Id", uuid.NewString())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrorNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return statusError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", shared.ErrorServer, err)
	}
	return nil
}

// statusError maps a non-2xx status to the error taxonomy, carrying along
// the server's message when one is present.
func statusError(code int, body []byte) error {
	var kind error
	switch {
	case code == http.StatusBadRequest:
		kind = shared.ErrorValidation
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		kind = shared.ErrorAuth
	case code == http.StatusNotFound:
		kind = shared.ErrorNotFound
	default:
		kind = shared.ErrorServer
	}

	msg := serverMessage(body)
	if msg == "" {
		return fmt.Errorf("%w: http %d", kind, code)
	}
	return fmt.Errorf("%w: http %d: %s", kind, code, msg)
}

func serverMessage(body []byte) string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		return env.Error.Message
	}
	return strings.TrimSpace(string(body))
}

func (c *HTTPClient) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

func (c *HTTPClient) storiesFromJSON(ctx context.Context, records []storyJSON) []models.Story {
	stories := make([]models.Story, 0, len(records))
	for _, r := range records {
		stories = append(stories, c.storyFromJSON(ctx, r))
	}
	return stories
}

func (c *HTTPClient) storyFromJSON(ctx context.Context, r storyJSON) models.Story {
	return models.Story{
		ID:        r.StoryID,
		Title:     r.Title,
		Author:    r.Author,
		URL:       r.URL,
		Username:  r.Username,
		CreatedAt: c.parseCreatedAt(ctx, r.StoryID, r.CreatedAt),
	}
}

func (c *HTTPClient) userFromJSON(ctx context.Context, r userJSON, token string) *models.User {
	u := models.NewUser(r.Username, r.Name, c.parseCreatedAt(ctx, r.Username, r.CreatedAt), token)
	for _, s := range r.Favorites {
		u.Favorites.Append(c.storyFromJSON(ctx, s))
	}
	for _, s := range r.Stories {
		u.OwnStories.Append(c.storyFromJSON(ctx, s))
	}
	return u
}

// parseCreatedAt tolerates malformed server timestamps: records keep a zero
// creation time instead of failing the whole call.
func (c *HTTPClient) parseCreatedAt(ctx context.Context, id, value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		c.logger.Warn(ctx, "failed to parse createdAt",
			"id", id,
			"createdAt", value,
		)
		return time.Time{}
	}
	return t
}
