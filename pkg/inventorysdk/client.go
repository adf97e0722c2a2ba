package inventorysdk

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// SDKClient talks to the inventory service. It is safe for concurrent use;
// all calls share the session held in its cookie jar.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient returns a client with a fresh cookie jar.
func NewSDKClient(baseURL string) *SDKClient {
	// cookiejar.New only fails on a bad PublicSuffixList.
	jar, _ := cookiejar.New(nil)

	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

// Ptr returns a pointer to v. Request types use pointers to tell a
// missing field from its zero value.
func Ptr[T any](v T) *T { return &v }

// Register creates an account. It does not log in.
func (c *SDKClient) Register(ctx context.Context, req RegisterUserRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a session cookie, stored in the jar.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*UserResponse, error) {
	var out UserResponse
	req := LoginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the current session.
func (c *SDKClient) Logout(ctx context.Context) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the signed-in user's profile.
func (c *SDKClient) Me(ctx context.Context) (*ProfileResponse, error) {
	var out ProfileResponse
	if err := c.doJSON(ctx, http.MethodGet, "/user/protected", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
