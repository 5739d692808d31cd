package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
	"github.com/bizpilot/bizpilot-cli/internal/core/ports/driven"
)

// Ensure Client implements the account port.
var _ driven.AccountClient = (*Client)(nil)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	User        domain.Account `json:"user"`
	AccessToken string         `json:"accessToken"`
	Token       string         `json:"token"`
}

type tierRequest struct {
	Account string `json:"account"`
}

type tierData struct {
	Account string `json:"account"`
}

// Login exchanges email and password for an access token via POST /user/login.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Credentials, error) {
	resp, err := c.do(ctx, http.MethodPost, "/user/login", "", loginRequest{
		Email:    email,
		Password: password,
	}, nil)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.status == http.StatusBadRequest, resp.status == http.StatusUnauthorized,
		resp.status == http.StatusForbidden, resp.status == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrAuthInvalid, resp.message())
	case !resp.ok():
		return nil, fmt.Errorf("login failed (status %d): %s", resp.status, resp.message())
	case !resp.decoded:
		return nil, fmt.Errorf("decode login response: body is not a JSON envelope")
	}

	var data loginData
	if err := json.Unmarshal(resp.env.Data, &data); err != nil {
		return nil, fmt.Errorf("decode login data: %w", err)
	}
	token := data.AccessToken
	if token == "" {
		token = data.Token
	}

	return &domain.Credentials{
		Token:   token,
		Account: data.User,
	}, nil
}

// Register creates an account via POST /user. Only 201 counts as created.
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	resp, err := c.do(ctx, http.MethodPost, "/user", "", reg, nil)
	if err != nil {
		return err
	}
	if resp.status != http.StatusCreated {
		return fmt.Errorf("%w: %s", domain.ErrRegistrationFailed, resp.message())
	}
	return nil
}

// UpdateTier changes the account tier via PATCH /user/{id}.
// When the response does not echo the tier, the requested one is assumed.
func (c *Client) UpdateTier(
	ctx context.Context,
	token, userID string,
	tier domain.AccountTier,
) (domain.AccountTier, error) {
	resp, err := c.do(ctx, http.MethodPatch, "/user/"+url.PathEscape(userID), token, tierRequest{
		Account: tier.String(),
	}, nil)
	if err != nil {
		return "", err
	}
	switch {
	case resp.status == http.StatusUnauthorized:
		return "", fmt.Errorf("%w: %s", domain.ErrUnauthenticated, resp.message())
	case !resp.ok():
		return "", fmt.Errorf("upgrade failed (status %d): %s", resp.status, resp.message())
	}

	var data tierData
	if resp.decoded && len(resp.env.Data) > 0 {
		_ = json.Unmarshal(resp.env.Data, &data)
	}
	if data.Account == "" {
		return tier, nil
	}
	return domain.ParseAccountTier(data.Account), nil
}
