// ABOUTME: Client for the external user service
// ABOUTME: Verifies bearer tokens and fetches user records for the trends services

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"trends-shared/core/domain"
	coreerrors "trends-shared/core/errors"
	"trends-shared/core/interfaces"
	"trends-shared/core/messages"
	"trends-shared/pkg/config"
)

// userIDPlaceholder marks where the user ID is substituted in the info URL.
const userIDPlaceholder = "{user_id}"

// Client talks to the user service that owns authentication.
type Client struct {
	http    interfaces.HTTPClient
	logger  interfaces.Logger
	authURL string
	infoURL string
	timeout time.Duration
}

// NewClient creates a user service client.
func NewClient(deps interfaces.Dependencies, cfg config.UserServiceConfig) *Client {
	return &Client{
		http:    deps.HTTPClient,
		logger:  deps.Logger,
		authURL: cfg.AuthURL,
		infoURL: cfg.InfoURL,
		timeout: cfg.RequestTimeout,
	}
}

// requestContext bounds a user service call by the configured timeout.
func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// CurrentUser verifies the token against the user service and returns the
// authenticated user. A non-200 response maps to an UnauthorizedError.
func (c *Client) CurrentUser(ctx context.Context, scheme, credentials string) (*domain.User, error) {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	resp, err := c.http.Do(ctx, http.MethodGet, c.authURL, map[string]string{
		"Authorization": scheme + " " + credentials,
	}, nil)
	if err != nil {
		return nil, coreerrors.WrapError(err, "user service request failed")
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		if c.logger != nil {
			c.logger.Debug("Token verification rejected", map[string]interface{}{
				"status": resp.StatusCode(),
			})
		}
		return nil, &coreerrors.UnauthorizedError{Message: messages.InvalidToken}
	}

	return decodeUser(resp)
}

// UserByID fetches a user by ID, forwarding the caller's credentials.
// A non-200 response maps to a NotFoundError.
func (c *Client) UserByID(ctx context.Context, userID int64, scheme, credentials string) (*domain.User, error) {
	url := strings.ReplaceAll(c.infoURL, userIDPlaceholder, strconv.FormatInt(userID, 10))

	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	resp, err := c.http.Do(ctx, http.MethodGet, url, map[string]string{
		"Authorization": scheme + " " + credentials,
	}, nil)
	if err != nil {
		return nil, coreerrors.WrapError(err, "user service request failed")
	}
	defer resp.Body().Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, &coreerrors.NotFoundError{
			Resource: "user",
			ID:       strconv.FormatInt(userID, 10),
		}
	}

	return decodeUser(resp)
}

func decodeUser(resp interfaces.Response) (*domain.User, error) {
	var user domain.User
	if err := json.NewDecoder(resp.Body()).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user payload: %w", err)
	}

	return &user, nil
}
