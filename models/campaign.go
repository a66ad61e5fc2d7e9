package models

import (
	"time"

	"gorm.io/gorm"
)

// Campaign statuses.
const (
	CampaignDraft   = "draft"
	CampaignQueued  = "queued"
	CampaignSending = "sending"
	CampaignSent    = "sent"
	CampaignFailed  = "failed"
)

// Campaign is a one-off email blast to the leads captured by the
// owner's landing page.
type Campaign struct {
	gorm.Model
	UserID        uint `gorm:"not null;index" json:"user_id"`
	LandingPageID uint `gorm:"not null;index" json:"landing_page_id"`

	Name     string `gorm:"not null" json:"name"`
	Subject  string `gorm:"not null" json:"subject"`
	BodyHTML string `gorm:"type:text" json:"body_html"`

	Status      string     `gorm:"default:'draft';index" json:"status"`
	QueuedAt    *time.Time `json:"queued_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Counters updated as the worker walks the lead list.
	TotalLeads int `gorm:"default:0" json:"total_leads"`
	SentCount  int `gorm:"default:0" json:"sent_count"`
	FailCount  int `gorm:"default:0" json:"fail_count"`

	Messages []CampaignMessage `gorm:"foreignKey:CampaignID" json:"messages,omitempty"`
}

// CampaignMessage records one delivery attempt to one lead.
type CampaignMessage struct {
	ID         string     `gorm:"primarykey" json:"id"`
	CampaignID uint       `gorm:"not null;index" json:"campaign_id"`
	LeadID     uint       `gorm:"not null;index" json:"lead_id"`
	Email      string     `gorm:"not null" json:"email"`
	Status     string     `gorm:"default:'pending'" json:"status"` // pending, sent, failed
	Error      string     `json:"error,omitempty"`
	SentAt     *time.Time `json:"sent_at"`
	CreatedAt  time.Time  `json:"created_at"`
}
