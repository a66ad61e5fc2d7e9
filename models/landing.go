package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LandingPage is the tenant's single public page: header fields, a
// presentation theme and an ordered list of content blocks serialized
// into one JSON column.
type LandingPage struct {
	gorm.Model
	// One page per user. The unique index also makes concurrent
	// get-or-create safe: the losing insert reads back the winner's row.
	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`

	// Username is the subdomain the page is served under. Nullable until
	// claimed, globally unique once set.
	Username     *string `gorm:"uniqueIndex" json:"username"`
	CustomDomain *string `gorm:"uniqueIndex" json:"custom_domain"`

	Title       *string `json:"title"`
	Headline    *string `json:"headline"`
	Description *string `json:"description"`

	// Presentation
	Font               string  `gorm:"default:'Inter'" json:"font"`
	FontFile           *string `json:"font_file"`
	BgTheme            string  `gorm:"default:'light'" json:"bg_theme"`
	H1Color            string  `gorm:"default:'#1a1a2e'" json:"h1_color"`
	H2Color            string  `gorm:"default:'#1a1a2e'" json:"h2_color"`
	H3Color            string  `gorm:"default:'#1a1a2e'" json:"h3_color"`
	ParagraphColor     string  `gorm:"default:'#444444'" json:"paragraph_color"`
	LogoURL            *string `json:"logo_url"`
	CoverImageURL      *string `json:"cover_image_url"`
	PDFURL             *string `json:"pdf_url"`
	ButtonText         string  `gorm:"default:'Download'" json:"button_text"`
	ShowDownloadButton bool    `gorm:"default:false" json:"show_download_button"`

	// Ordered content blocks, serialized. Always parse through
	// ParseBlocksOr so corrupted legacy data degrades to an empty list
	// instead of failing the read.
	ContentBlocks datatypes.JSON `json:"content_blocks"`

	// Lead capture
	CollectEmails    bool    `gorm:"default:false" json:"collect_emails"`
	EmailListName    *string `json:"email_list_name"`
	EmailNotify      bool    `gorm:"default:false" json:"email_notify"`
	EmailThankYouMsg *string `json:"email_thank_you_msg"`
	AutoSendPDF      bool    `gorm:"default:false" json:"auto_send_pdf"`
	// Denormalized; bumped on capture, not transactionally reconciled
	// with the leads table.
	EmailLeadsCount int `gorm:"default:0" json:"email_leads_count"`

	// Relations
	Leads []Lead `gorm:"foreignKey:LandingPageID" json:"leads,omitempty"`
}

// Blocks returns the page's block list, degrading to an empty list when
// the stored JSON is corrupted.
func (lp *LandingPage) Blocks() BlockList {
	return ParseBlocksOr([]byte(lp.ContentBlocks), nil)
}

// Lead is one captured email address. Append-only: the application
// never updates or deletes lead rows.
type Lead struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	LandingPageID uint      `gorm:"not null;index" json:"landing_page_id"`
	Email         string    `gorm:"not null" json:"email"`
	CreatedAt     time.Time `json:"created_at"`
}
