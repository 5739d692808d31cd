package domain

import "time"

// Credentials is the stored login of the current user: the access token
// issued by the account service and the account it belongs to.
type Credentials struct {
	// Token is sent verbatim in the Authorization header.
	Token string `json:"token"`

	// Account is the logged-in user.
	Account Account `json:"account"`

	// CreatedAt is when the user logged in.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the stored account was last changed.
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAuthenticated returns true if the credentials hold both a token and a user.
func (c *Credentials) IsAuthenticated() bool {
	return c != nil && c.Token != "" && c.Account.ID != ""
}

// Tier returns the account tier, Free when unknown.
func (c *Credentials) Tier() AccountTier {
	if c == nil {
		return TierFree
	}
	return ParseAccountTier(string(c.Account.Tier))
}
