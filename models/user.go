package models

import (
	"gorm.io/gorm"
)

// User represents a tenant account. Registration, login and token
// issuance live in a separate auth service; this backend only consumes
// the resulting JWTs.
type User struct {
	gorm.Model

	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	EmailVerified bool   `gorm:"default:false" json:"email_verified"`

	// Profile information
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Timezone  string  `gorm:"default:'UTC'" json:"timezone"`

	// Account status
	IsActive bool `gorm:"default:true" json:"is_active"`
	IsAdmin  bool `gorm:"default:false" json:"is_admin"`

	// Entitlement: landing-page creation is gated on the pro flag.
	IsPro bool `gorm:"default:false" json:"is_pro"`

	// Incremented on password change / forced logout; tokens carrying an
	// older version are rejected.
	TokenVersion int `gorm:"default:0" json:"-"`

	// Stripe Connect account used for ebook checkout on the user's page.
	StripeAccountID *string `gorm:"index" json:"stripe_account_id,omitempty"`

	// Relations
	LandingPage *LandingPage   `gorm:"foreignKey:UserID" json:"landing_page,omitempty"`
	Templates   []PageTemplate `gorm:"foreignKey:UserID" json:"templates,omitempty"`
	Campaigns   []Campaign     `gorm:"foreignKey:UserID" json:"campaigns,omitempty"`
}
