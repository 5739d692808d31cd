package domain

import (
	"strings"
	"unicode/utf8"
)

// AccountTier is the subscription level of an account.
type AccountTier string

// Available account tiers.
const (
	// TierFree is the default tier.
	TierFree AccountTier = "Free"

	// TierPro unlocks automation insights.
	TierPro AccountTier = "Pro"
)

// ParseAccountTier converts a server value to a tier. Matching is
// case-insensitive and anything unrecognised is Free.
func ParseAccountTier(s string) AccountTier {
	if strings.EqualFold(strings.TrimSpace(s), string(TierPro)) {
		return TierPro
	}
	return TierFree
}

// String returns the string representation.
func (t AccountTier) String() string {
	if t == "" {
		return string(TierFree)
	}
	return string(t)
}

// UnmarshalText normalises the tier while decoding.
func (t *AccountTier) UnmarshalText(text []byte) error {
	*t = ParseAccountTier(string(text))
	return nil
}

// IsPro returns true for the Pro tier.
func (t AccountTier) IsPro() bool {
	return ParseAccountTier(string(t)) == TierPro
}

// ShowsAutomationInsights returns true if automation insights are displayed
// for this tier. This only gates rendering; the server decides what it sends.
func (t AccountTier) ShowsAutomationInsights() bool {
	return t.IsPro()
}

// Account is a BizPilot user as returned by the account endpoints.
type Account struct {
	ID        string      `json:"_id"`
	FirstName string      `json:"firstName,omitempty"`
	LastName  string      `json:"lastName,omitempty"`
	Email     string      `json:"email,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	Role      string      `json:"role,omitempty"`
	Tier      AccountTier `json:"account,omitempty"`
}

// DisplayName returns the name shown for the account.
func (a Account) DisplayName() string {
	switch {
	case a.FirstName != "" && a.LastName != "":
		return a.FirstName + " " + a.LastName
	case a.FirstName != "":
		return a.FirstName
	case a.Email != "":
		local, _, _ := strings.Cut(a.Email, "@")
		return local
	default:
		return "User"
	}
}

// Initials returns up to two upper-case initials of the display name.
func (a Account) Initials() string {
	parts := strings.Fields(a.DisplayName())
	if len(parts) >= 2 {
		first, _ := utf8.DecodeRuneInString(parts[0])
		second, _ := utf8.DecodeRuneInString(parts[1])
		return strings.ToUpper(string([]rune{first, second}))
	}
	name := []rune(a.DisplayName())
	if len(name) > 2 {
		name = name[:2]
	}
	return strings.ToUpper(string(name))
}

// Registration holds the fields of a new account.
type Registration struct {
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Password  string      `json:"password"`
	Role      string      `json:"role"`
	Tier      AccountTier `json:"account"`
}

// Normalise fills defaults and strips whitespace from the phone number.
func (r Registration) Normalise() Registration {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.Join(strings.Fields(r.Phone), "")
	if r.Role == "" {
		r.Role = "User"
	}
	r.Tier = ParseAccountTier(string(r.Tier))
	return r
}

// Validate checks that the required fields are present.
func (r Registration) Validate() error {
	if r.FirstName == "" || r.Email == "" || r.Password == "" {
		return ErrInvalidInput
	}
	if !strings.Contains(r.Email, "@") {
		return ErrInvalidInput
	}
	return nil
}
