package models

import (
	"time"

	"gorm.io/datatypes"
)

// PageTemplate is a named snapshot of a landing page's full field set,
// saved by the owner and restorable onto the live row later. Snapshots
// survive restores; a page can accumulate any number of them.
type PageTemplate struct {
	ID            string         `gorm:"primarykey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	LandingPageID uint           `gorm:"not null;index" json:"landing_page_id"`
	Name          string         `gorm:"not null" json:"name"`
	Snapshot      datatypes.JSON `json:"snapshot,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// PageSnapshot is the field set captured in a template: everything on
// the live row except id and timestamps. Restoring writes these fields
// back onto the page.
type PageSnapshot struct {
	Username     *string `json:"username"`
	CustomDomain *string `json:"custom_domain"`

	Title       *string `json:"title"`
	Headline    *string `json:"headline"`
	Description *string `json:"description"`

	Font               string  `json:"font"`
	FontFile           *string `json:"font_file"`
	BgTheme            string  `json:"bg_theme"`
	H1Color            string  `json:"h1_color"`
	H2Color            string  `json:"h2_color"`
	H3Color            string  `json:"h3_color"`
	ParagraphColor     string  `json:"paragraph_color"`
	LogoURL            *string `json:"logo_url"`
	CoverImageURL      *string `json:"cover_image_url"`
	PDFURL             *string `json:"pdf_url"`
	ButtonText         string  `json:"button_text"`
	ShowDownloadButton bool    `json:"show_download_button"`

	// Kept as raw JSON so unknown block variants survive the round trip.
	ContentBlocks datatypes.JSON `json:"content_blocks"`

	CollectEmails    bool    `json:"collect_emails"`
	EmailListName    *string `json:"email_list_name"`
	EmailNotify      bool    `json:"email_notify"`
	EmailThankYouMsg *string `json:"email_thank_you_msg"`
	AutoSendPDF      bool    `json:"auto_send_pdf"`
}

// SnapshotOf captures the restorable field set of a page.
func SnapshotOf(lp *LandingPage) PageSnapshot {
	return PageSnapshot{
		Username:           lp.Username,
		CustomDomain:       lp.CustomDomain,
		Title:              lp.Title,
		Headline:           lp.Headline,
		Description:        lp.Description,
		Font:               lp.Font,
		FontFile:           lp.FontFile,
		BgTheme:            lp.BgTheme,
		H1Color:            lp.H1Color,
		H2Color:            lp.H2Color,
		H3Color:            lp.H3Color,
		ParagraphColor:     lp.ParagraphColor,
		LogoURL:            lp.LogoURL,
		CoverImageURL:      lp.CoverImageURL,
		PDFURL:             lp.PDFURL,
		ButtonText:         lp.ButtonText,
		ShowDownloadButton: lp.ShowDownloadButton,
		ContentBlocks:      lp.ContentBlocks,
		CollectEmails:      lp.CollectEmails,
		EmailListName:      lp.EmailListName,
		EmailNotify:        lp.EmailNotify,
		EmailThankYouMsg:   lp.EmailThankYouMsg,
		AutoSendPDF:        lp.AutoSendPDF,
	}
}
