package digitsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

const (
	csrfCookieName = "csrftoken"
	csrfHeaderName = "X-CSRF-Token"
)

// Client talks to a digits server the way a browser would: it keeps the
// session and CSRF cookies in a jar and sends the CSRF token on every POST.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	base *url.URL
}

// NewClient creates a client with its own cookie jar. Redirects are not
// followed so callers can see the 303 responses.
func NewClient(baseURL string) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		BaseURL: base.String(),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		base: base,
	}, nil
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

func (c *Client) cookie(name string) string {
	if c.HTTPClient.Jar == nil {
		return ""
	}
	for _, ck := range c.HTTPClient.Jar.Cookies(c.base) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

// CSRFToken returns the anti-forgery token, fetching one from the server
// when the jar holds none yet.
func (c *Client) CSRFToken(ctx context.Context) (string, error) {
	if tok := c.cookie(csrfCookieName); tok != "" {
		return tok, nil
	}
	if _, err := c.Livez(ctx); err != nil {
		return "", err
	}
	if tok := c.cookie(csrfCookieName); tok != "" {
		return tok, nil
	}
	return "", fmt.Errorf("server did not issue a csrf cookie")
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) (*http.Response, error) {
	tok, err := c.CSRFToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(csrfHeaderName, tok)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// decodeJSON reads resp into target when the status matches, and turns any
// other status into an *APIError.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, body)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func getJSON[T any](ctx context.Context, c *Client, path string) (*T, error) {
	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	var out T
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func postJSON[T any](ctx context.Context, c *Client, path string, form url.Values, status int) (*T, error) {
	resp, err := c.postForm(ctx, path, form)
	if err != nil {
		return nil, err
	}
	var out T
	if err := decodeJSON(resp, &out, status); err != nil {
		return nil, err
	}
	return &out, nil
}

// Livez checks the process is up.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	return getJSON[HealthResponse](ctx, c, "/livez")
}

// Readyz checks the process can serve traffic.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	return getJSON[HealthResponse](ctx, c, "/readyz")
}

func (c *Client) Register(ctx context.Context, username, password1, password2 string) (*UserResponse, error) {
	return postJSON[UserResponse](ctx, c, "/register", url.Values{
		"username":  {username},
		"password1": {password1},
		"password2": {password2},
	}, http.StatusCreated)
}

// Login opens a session; the cookie is kept in the client's jar.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	return postJSON[LoginResponse](ctx, c, "/login", url.Values{
		"username": {username},
		"password": {password},
	}, http.StatusOK)
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := postJSON[StatusResponse](ctx, c, "/logout", url.Values{}, http.StatusOK)
	return err
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword1, newPassword2 string) error {
	_, err := postJSON[StatusResponse](ctx, c, "/password", url.Values{
		"old_password":  {oldPassword},
		"new_password1": {newPassword1},
		"new_password2": {newPassword2},
	}, http.StatusOK)
	return err
}

func (c *Client) Profile(ctx context.Context) (*UserResponse, error) {
	return getJSON[UserResponse](ctx, c, "/profile")
}

func (c *Client) Index(ctx context.Context) (*IndexResponse, error) {
	return getJSON[IndexResponse](ctx, c, "/")
}

// Start submits the user's number and returns the pair to display.
func (c *Client) Start(ctx context.Context, userNumber string) (*StartResponse, error) {
	return postJSON[StartResponse](ctx, c, "/start", url.Values{"user_number": {userNumber}}, http.StatusOK)
}

// Commit stores the pair carried by signedPayload.
func (c *Client) Commit(ctx context.Context, signedPayload string) (*CommitResponse, error) {
	return postJSON[CommitResponse](ctx, c, "/commit", url.Values{"signed_payload": {signedPayload}}, http.StatusOK)
}

func (c *Client) List(ctx context.Context) (*ListResponse, error) {
	return getJSON[ListResponse](ctx, c, "/list")
}

// RequestReveal asks for a challenge on an entry.
func (c *Client) RequestReveal(ctx context.Context, entryID string) (*RevealResponse, error) {
	return getJSON[RevealResponse](ctx, c, "/reveal/"+url.PathEscape(entryID))
}

// Verify answers a challenge with one character per position.
func (c *Client) Verify(ctx context.Context, entryID string, chars [3]string) (*VerifyResponse, error) {
	return postJSON[VerifyResponse](ctx, c, "/verify/"+url.PathEscape(entryID), url.Values{
		"char1": {chars[0]},
		"char2": {chars[1]},
		"char3": {chars[2]},
	}, http.StatusOK)
}

// Delete removes an entry. The server answers with a redirect to the list.
func (c *Client) Delete(ctx context.Context, entryID string) error {
	resp, err := c.postForm(ctx, "/delete/"+url.PathEscape(entryID), url.Values{})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		body, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, body)
	}
	return nil
}
