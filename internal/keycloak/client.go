// Package keycloak is a minimal client for the Keycloak admin REST API:
// just what user registration needs.
//
// FLOW:
//  1. AdminToken: password grant against the master realm with the
//     "admin-cli" client (golang.org/x/oauth2 does the form encoding and
//     token parsing).
//  2. Every other call is an admin API request carrying that token. The HTTP
//     client comes from oauth2.NewClient, which adds the
//     "Authorization: Bearer" header for us.
//
// Every failure is an *apperror.AppError wrapping apperror.ErrIntegration,
// carrying the upstream status and body when there was a response.
package keycloak

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

	"golang.org/x/oauth2"

	"github.com/paul-ayesiga/portfolio-service/internal/apperror"
)

// adminClientID is Keycloak's built-in public client for admin tooling.
const adminClientID = "admin-cli"

// maxBody caps how much of an upstream response we keep for error messages.
const maxBody = 64 << 10

type Config struct {
	BaseURL       string // e.g. http://localhost:8080
	Realm         string // realm users are created in
	AdminUsername string
	AdminPassword string

	// HTTPClient is used for every call. nil means http.DefaultClient.
	HTTPClient *http.Client
}

type Client struct {
	base       string
	realm      string
	adminUser  string
	adminPass  string
	oauth      *oauth2.Config
	httpClient *http.Client
}

func New(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}

	return &Client{
		base:      base,
		realm:     cfg.Realm,
		adminUser: cfg.AdminUsername,
		adminPass: cfg.AdminPassword,
		oauth: &oauth2.Config{
			ClientID: adminClientID,
			Endpoint: oauth2.Endpoint{
				TokenURL:  base + "/realms/master/protocol/openid-connect/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: hc,
	}
}

// NewUser is the registration payload sent to Keycloak.
type NewUser struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Role is a realm role representation. Keycloak needs id and name back when
// the role is assigned.
type Role struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Composite   bool   `json:"composite"`
	ClientRole  bool   `json:"clientRole"`
	ContainerID string `json:"containerId,omitempty"`
}

// AdminToken obtains an admin access token from the master realm.
func (c *Client) AdminToken(ctx context.Context) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	tok, err := c.oauth.PasswordCredentialsToken(ctx, c.adminUser, c.adminPass)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			return "", apperror.Integration(
				fmt.Sprintf("Failed to get admin token. Status code: %d - %s", re.Response.StatusCode, string(re.Body)),
				re.Response.StatusCode, string(re.Body), err)
		}
		return "", apperror.Integration("Failed to get admin token: "+err.Error(), 0, "", err)
	}
	return tok.AccessToken, nil
}

// CreateUser creates an enabled, email-verified user with a permanent
// password and returns the new user's id, taken from the Location header.
func (c *Client) CreateUser(ctx context.Context, token string, u NewUser) (string, error) {
	payload := map[string]any{
		"username":      u.Username,
		"email":         u.Email,
		"firstName":     u.FirstName,
		"lastName":      u.LastName,
		"enabled":       true,
		"emailVerified": true,
		"credentials": []map[string]any{{
			"type":      "password",
			"value":     u.Password,
			"temporary": false,
		}},
	}

	resp, body, err := c.do(ctx, token, http.MethodPost, c.adminURL("users"), payload)
	if err != nil {
		return "", apperror.Integration("Failed to create user: "+err.Error(), 0, "", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return "", apperror.Integration(
			fmt.Sprintf("Failed to create user. Status code: %d - %s", resp.StatusCode, body),
			resp.StatusCode, body, nil)
	}

	loc := resp.Header.Get("Location")
	if loc == "" {
		return "", apperror.Integration("User created but location header not found", resp.StatusCode, body, nil)
	}
	id := loc[strings.LastIndex(loc, "/")+1:]
	if id == "" {
		return "", apperror.Integration("User created but location header has no id: "+loc, resp.StatusCode, body, nil)
	}
	return id, nil
}

// FindRealmRole fetches the realm's roles and returns the one called name.
// When it is missing the error lists the roles that do exist.
func (c *Client) FindRealmRole(ctx context.Context, token, name string) (Role, error) {
	resp, body, err := c.do(ctx, token, http.MethodGet, c.adminURL("roles"), nil)
	if err != nil {
		return Role{}, apperror.Integration("Failed to fetch roles: "+err.Error(), 0, "", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Role{}, apperror.Integration(
			fmt.Sprintf("Failed to fetch roles. Status code: %d - %s", resp.StatusCode, body),
			resp.StatusCode, body, nil)
	}

	var roles []Role
	if err := json.Unmarshal([]byte(body), &roles); err != nil {
		return Role{}, apperror.Integration("Failed to decode roles: "+err.Error(), resp.StatusCode, body, err)
	}

	available := make([]string, 0, len(roles))
	for _, r := range roles {
		if r.Name == name {
			return r, nil
		}
		if r.Name != "" {
			available = append(available, r.Name)
		}
	}

	return Role{}, apperror.Integration(
		fmt.Sprintf("Role '%s' not found. Available roles: %s. Please create the '%s' role in Keycloak.",
			name, strings.Join(available, ", "), name),
		resp.StatusCode, body, nil)
}

// AssignRealmRole maps role onto the user. Keycloak answers 204.
func (c *Client) AssignRealmRole(ctx context.Context, token, userID string, role Role) error {
	resp, body, err := c.do(ctx, token, http.MethodPost,
		c.adminURL("users", userID, "role-mappings", "realm"), []Role{role})
	if err != nil {
		return apperror.Integration("Failed to assign role to user: "+err.Error(), 0, "", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		return apperror.Integration(
			fmt.Sprintf("Failed to assign role to user. Status code: %d - %s", resp.StatusCode, body),
			resp.StatusCode, body, nil)
	}
	return nil
}

// DeleteUser removes a user. Keycloak answers 204.
func (c *Client) DeleteUser(ctx context.Context, token, userID string) error {
	resp, body, err := c.do(ctx, token, http.MethodDelete, c.adminURL("users", userID), nil)
	if err != nil {
		return apperror.Integration("Failed to delete user: "+err.Error(), 0, "", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		return apperror.Integration(
			fmt.Sprintf("Failed to delete user. Status code: %d - %s", resp.StatusCode, body),
			resp.StatusCode, body, nil)
	}
	return nil
}

// adminURL builds {base}/admin/realms/{realm}/{segments...}, escaping each
// segment.
func (c *Client) adminURL(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.base)
	b.WriteString("/admin/realms/")
	b.WriteString(url.PathEscape(c.realm))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// do sends one bearer-authenticated request. payload, when non-nil, is sent
// as JSON. The response body is read (up to maxBody) and closed.
func (c *Client) do(ctx context.Context, token, method, target string, payload any) (*http.Response, string, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, "", fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, "", fmt.Errorf("building request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	// oauth2.NewClient reuses the transport of the client stored in ctx.
	hc := oauth2.NewClient(
		context.WithValue(ctx, oauth2.HTTPClient, c.httpClient),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
	)
	hc.Timeout = c.httpClient.Timeout

	resp, err := hc.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return resp, "", fmt.Errorf("reading response: %w", err)
	}
	return resp, string(b), nil
}
