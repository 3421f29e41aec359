package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound reports that the upstream has no repositories for the user.
// Any non-success upstream status collapses into it.
var ErrNotFound = errors.New("no github profile found")

// Client is a pass-through adapter for the GitHub repository listing. The
// base URL is injectable so tests can point it at a local server.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

func NewClient(baseURL, clientID, clientSecret string) *Client {
	return &Client{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// LookupRepos fetches the user's five most recent repositories and forwards
// the upstream payload verbatim.
func (c *Client) LookupRepos(ctx context.Context, username string) ([]json.RawMessage, error) {
	query := url.Values{}
	query.Set("per_page", "5")
	query.Set("sort", "created:asc")
	if c.clientID != "" {
		query.Set("client_id", c.clientID)
		query.Set("client_secret", c.clientSecret)
	}

	reqURL := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "devconnector")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrNotFound
	}

	var repos []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, err
	}

	return repos, nil
}
