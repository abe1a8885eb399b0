package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gamevault-app/gamevault/internal/client/models"
	"github.com/gamevault-app/gamevault/internal/common"
	"github.com/gamevault-app/gamevault/internal/logging"
)

// wire DTOs — field names follow the backend's JSON (camelCase, Gson-style).

type wireUser struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Token    string `json:"token,omitempty"`
}

type wireComment struct {
	ID       *int   `json:"id"`
	AnimeID  int    `json:"animeId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type wireCommentUpdate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// HTTPClient implements Client over net/http. If the backend returns a JWT
// on login, it is attached to subsequent requests as a bearer token until
// its expiry claim lapses; the signature is the server's concern.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	mu    sync.Mutex
	token string
}

func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "remote"),
	}
}

func (c *HTTPClient) Register(ctx context.Context, email, username, password string) error {
	body := wireUser{Email: email, Username: username, Password: password}
	return c.do(ctx, http.MethodPost, "register", body, nil)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Account, error) {
	body := wireUser{Email: email, Password: password}

	var resp wireUser
	if err := c.do(ctx, http.MethodPost, "login", body, &resp); err != nil {
		return nil, err
	}

	if resp.Token != "" {
		c.setToken(ctx, resp.Token)
	}
	return &models.Account{Email: resp.Email, Username: resp.Username}, nil
}

func (c *HTTPClient) SaveComment(ctx context.Context, cm models.Comment, email string) error {
	body := wireComment{
		AnimeID:  cm.AnimeID,
		Title:    cm.Title,
		Content:  cm.Content,
		Email:    email,
		Username: cm.Username,
	}
	return c.do(ctx, http.MethodPost, "comments", body, nil)
}

func (c *HTTPClient) CommentsByAnime(ctx context.Context, animeID int) ([]models.Comment, error) {
	var resp []wireComment
	if err := c.do(ctx, http.MethodGet, "comments/"+strconv.Itoa(animeID), nil, &resp); err != nil {
		return nil, err
	}
	return toComments(resp), nil
}

func (c *HTTPClient) CommentsByUser(ctx context.Context, email string) ([]models.Comment, error) {
	var resp []wireComment
	if err := c.do(ctx, http.MethodGet, "comments/user/"+url.PathEscape(email), nil, &resp); err != nil {
		return nil, err
	}
	return toComments(resp), nil
}

func (c *HTTPClient) UpdateComment(ctx context.Context, id int, title, content string) error {
	body := wireCommentUpdate{Title: title, Content: content}
	return c.do(ctx, http.MethodPut, "comments/"+strconv.Itoa(id), body, nil)
}

func (c *HTTPClient) DeleteComment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "comments/"+strconv.Itoa(id), nil, nil)
}

func (c *HTTPClient) UserByEmail(ctx context.Context, email string) (*models.Account, error) {
	var resp wireUser
	if err := c.do(ctx, http.MethodGet, "users/"+url.PathEscape(email), nil, &resp); err != nil {
		return nil, err
	}
	return &models.Account{Email: resp.Email, Username: resp.Username}, nil
}

// do performs one request/response round trip. out may be nil when the
// response body is not needed.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// statusError maps non-2xx statuses onto the sentinel taxonomy.
func statusError(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return common.ErrInvalidCredentials
	case code == http.StatusNotFound:
		return common.ErrNotFound
	case code == http.StatusConflict:
		return common.ErrEmailTaken
	default:
		return fmt.Errorf("%w: unexpected status %d", common.ErrInternal, code)
	}
}

func (c *HTTPClient) setToken(ctx context.Context, token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	c.log.Debug(ctx, "bearer token updated")
}

// bearerToken returns the cached token, dropping it when its exp claim has
// lapsed so a stale token is never sent.
func (c *HTTPClient) bearerToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.token, claims); err != nil {
		// Opaque (non-JWT) tokens are used as-is.
		return c.token
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return c.token
	}
	if exp.Before(time.Now()) {
		c.token = ""
		return ""
	}
	return c.token
}

func toComments(ws []wireComment) []models.Comment {
	result := make([]models.Comment, 0, len(ws))
	for _, w := range ws {
		id := ""
		if w.ID != nil {
			id = strconv.Itoa(*w.ID)
		}
		result = append(result, models.Comment{
			ID:       id,
			AnimeID:  w.AnimeID,
			Title:    w.Title,
			Content:  w.Content,
			Username: w.Username,
		})
	}
	return result
}
