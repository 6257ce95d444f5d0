package models

import "time"

// Subscription plan tiers
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// APIKey is a programmatic credential owned by an organization.
// Only the SHA-256 hash of the secret is ever stored or compared;
// KeyPrefix exists purely for display in the dashboard.
type APIKey struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id"`
	Name           string     `json:"name"`
	KeyPrefix      string     `json:"key_prefix"`
	IsActive       bool       `json:"is_active"`
	CallsCount     int        `json:"calls_count"`
	LastUsedAt     *time.Time `json:"last_used_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Organization is the tenant boundary. Every entity the gateway touches is
// scoped to exactly one organization.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Subscription is an organization's current plan and metered usage.
// APICallsUsed is monotonically non-decreasing within a billing period.
type Subscription struct {
	ID            string `json:"id"`
	Plan          string `json:"plan"`
	APICallsUsed  int    `json:"api_calls_used"`
	APICallsLimit int    `json:"api_calls_limit"`
}

// Identity is the result of resolving a presented API key: the key record,
// its owning organization and that organization's subscription, fetched in
// a single joined read so the later gates see a consistent snapshot.
type Identity struct {
	Key          APIKey
	Organization Organization
	Subscription Subscription
}
