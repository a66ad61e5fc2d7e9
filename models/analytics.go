package models

import (
	"time"
)

// Analytics event types fired by the rendered page's beacon script.
const (
	EventView     = "view"
	EventClick    = "click"
	EventDownload = "download"
)

// ValidEventType reports whether the beacon sent a known event type.
func ValidEventType(t string) bool {
	switch t {
	case EventView, EventClick, EventDownload:
		return true
	}
	return false
}

// PageEvent is one analytics beacon hit against a landing page.
type PageEvent struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	LandingPageID uint      `gorm:"not null;index" json:"landing_page_id"`
	EventType     string    `gorm:"not null;index" json:"event_type"`
	Path          string    `json:"path"`
	Referrer      string    `json:"referrer"`
	// Two-letter country code, best-effort from the geo lookup service.
	Country   string    `gorm:"size:2" json:"country"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
