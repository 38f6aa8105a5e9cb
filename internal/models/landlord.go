package models

import (
	"time"

	"github.com/google/uuid"
)

// Landlord is a tenant-of-the-SaaS: an account owning properties. Every
// portal and dashboard query is scoped by a landlord ID. The Subdomain
// (and optional CustomDomain) drive host-header tenant resolution.
type Landlord struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Subdomain      string     `json:"subdomain"`
	CustomDomain   *string    `json:"custom_domain,omitempty"`
	DisplayName    string     `json:"display_name"`
	LogoURL        *string    `json:"logo_url,omitempty"`
	AccentColor    string     `json:"accent_color"`
	SubscriptionTier string   `json:"subscription_tier"`
	StripeCustomerID     *string `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID *string `json:"stripe_subscription_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Versioned
}

func (l *Landlord) GetID() string { return l.ID.String() }
