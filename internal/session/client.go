package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"devconnector/internal/models"
)

// APIClient implements AuthAPI against a running server.
type APIClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *APIClient) Register(ctx context.Context, name, email, password string) (string, error) {
	return c.requestToken(ctx, "/api/users/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

func (c *APIClient) Login(ctx context.Context, email, password string) (string, error) {
	return c.requestToken(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *APIClient) CurrentUser(ctx context.Context, token string) (models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/auth", nil)
	if err != nil {
		return models.User{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return models.User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.User{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *APIClient) requestToken(ctx context.Context, path string, payload map[string]string) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody struct {
			Errors []struct {
				Msg string `json:"msg"`
			} `json:"errors"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && len(errBody.Errors) > 0 {
			return "", errors.New(errBody.Errors[0].Msg)
		}
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var tokenBody struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenBody); err != nil {
		return "", err
	}
	return tokenBody.Token, nil
}
