package controller

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pagenest/models"
)

// LandingPageStore is the persistence and validation gateway for
// landing pages. It takes an explicit *gorm.DB so tests can hand it a
// throwaway database.
type LandingPageStore struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewLandingPageStore(db *gorm.DB, logger *log.Logger) *LandingPageStore {
	return &LandingPageStore{DB: db, Logger: logger}
}

// UpdateResult is the outcome of an update: rejected input comes back
// as Success=false with a user-facing message, never as an error.
// Errors are reserved for unexpected store failures.
type UpdateResult struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message,omitempty"`
	LandingPage *models.LandingPage `json:"landing_page,omitempty"`
}

// PageWithOwner is a page row joined with the owner's payment-connect
// identifier, used by checkout.
type PageWithOwner struct {
	models.LandingPage
	StripeAccountID *string `json:"stripe_account_id"`
}

// UpdateInput carries the full field set of a save from the builder.
// Nil pointers mean "field not sent"; in practice the builder always
// submits the complete set.
type UpdateInput struct {
	Username     *string `json:"username"`
	CustomDomain *string `json:"custom_domain"`

	Title       *string `json:"title"`
	Headline    *string `json:"headline"`
	Description *string `json:"description"`

	Font               *string `json:"font"`
	FontFile           *string `json:"font_file"`
	BgTheme            *string `json:"bg_theme"`
	H1Color            *string `json:"h1_color"`
	H2Color            *string `json:"h2_color"`
	H3Color            *string `json:"h3_color"`
	ParagraphColor     *string `json:"paragraph_color"`
	LogoURL            *string `json:"logo_url"`
	CoverImageURL      *string `json:"cover_image_url"`
	PDFURL             *string `json:"pdf_url"`
	ButtonText         *string `json:"button_text"`
	ShowDownloadButton *bool   `json:"show_download_button"`

	// Either a JSON array or a JSON string containing a serialized
	// array; older builder versions sent the latter.
	ContentBlocks json.RawMessage `json:"content_blocks"`

	CollectEmails    *bool   `json:"collect_emails"`
	EmailListName    *string `json:"email_list_name"`
	EmailNotify      *bool   `json:"email_notify"`
	EmailThankYouMsg *string `json:"email_thank_you_msg"`
	AutoSendPDF      *bool   `json:"auto_send_pdf"`
}

// GetByUsername returns the page claimed under username, or nil when no
// page has it. Stored blocks are left as-is; callers go through
// LandingPage.Blocks which degrades corrupted data to an empty list.
func (s *LandingPageStore) GetByUsername(username string) (*models.LandingPage, error) {
	var lp models.LandingPage
	err := s.DB.Where("username = ?", username).First(&lp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lp, nil
}

// GetByCustomDomain returns the page connected to a custom domain.
func (s *LandingPageStore) GetByCustomDomain(domain string) (*models.LandingPage, error) {
	var lp models.LandingPage
	err := s.DB.Where("custom_domain = ?", domain).First(&lp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lp, nil
}

// GetByID returns the page plus the owner's Stripe account id.
func (s *LandingPageStore) GetByID(id uint) (*PageWithOwner, error) {
	var row PageWithOwner
	err := s.DB.Model(&models.LandingPage{}).
		Select("landing_pages.*, users.stripe_account_id").
		Joins("JOIN users ON users.id = landing_pages.user_id").
		Where("landing_pages.id = ?", id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GetOrCreate returns the user's page, creating a default one on first
// call. Creation is gated on the pro entitlement; the status return is
// the HTTP status the handler should answer with when err is a
// rejection rather than a store failure.
func (s *LandingPageStore) GetOrCreate(userID uint) (*models.LandingPage, int, error) {
	var lp models.LandingPage
	err := s.DB.Where("user_id = ?", userID).First(&lp).Error
	if err == nil {
		return &lp, fiber.StatusOK, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fiber.StatusInternalServerError, err
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.StatusNotFound, errors.New("user not found")
		}
		return nil, fiber.StatusInternalServerError, err
	}
	if !user.IsPro {
		return nil, fiber.StatusForbidden, errors.New("landing pages require a pro subscription")
	}

	lp = defaultLandingPage(userID)
	if err := s.DB.Create(&lp).Error; err != nil {
		// Concurrent first calls race on the user_id unique index; the
		// loser reads back the winner's row.
		var existing models.LandingPage
		if readErr := s.DB.Where("user_id = ?", userID).First(&existing).Error; readErr == nil {
			return &existing, fiber.StatusOK, nil
		}
		return nil, fiber.StatusInternalServerError, err
	}
	return &lp, fiber.StatusCreated, nil
}

func defaultLandingPage(userID uint) models.LandingPage {
	return models.LandingPage{
		UserID:         userID,
		Font:           "Inter",
		BgTheme:        "light",
		H1Color:        "#1a1a2e",
		H2Color:        "#1a1a2e",
		H3Color:        "#1a1a2e",
		ParagraphColor: "#444444",
		ButtonText:     "Download",
		ContentBlocks:  datatypes.JSON("[]"),
	}
}

// Update validates and applies the full field set in one transaction,
// then re-reads and returns the fresh row so the caller sees its own
// write.
//
// Rejections (username collision, bad calendly URL) leave the row
// completely untouched. A corrupted content_blocks payload is not a
// rejection: the previous blocks are kept and the rest of the update
// proceeds.
func (s *LandingPageStore) Update(id uint, input UpdateInput) (*UpdateResult, error) {
	var current models.LandingPage
	if err := s.DB.First(&current, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &UpdateResult{Success: false, Message: "Landing page not found"}, nil
		}
		return nil, err
	}

	trimInput(&input)

	// Username rename must not collide with another page. Checked
	// before anything is written so a rejected rename changes nothing.
	if input.Username != nil && *input.Username != "" {
		available, err := s.CheckUsernameAvailable(*input.Username, id)
		if err != nil {
			return nil, err
		}
		if !available {
			return &UpdateResult{Success: false, Message: "That username is already taken"}, nil
		}
	}

	blocks, blocksChanged, parseErr := s.resolveBlocks(&current, input.ContentBlocks)
	if parseErr != nil {
		// Bad serialized payload: keep what is stored, warn, move on.
		s.Logger.Printf("WARN: unparseable content_blocks for page %d, keeping existing blocks: %v", id, parseErr)
		blocks = current.Blocks()
		blocksChanged = false
	}

	if blocksChanged {
		if err := blocks.Validate(); err != nil {
			return &UpdateResult{Success: false, Message: err.Error()}, nil
		}
		blocks.Normalize()
	}

	updates := buildUpdates(input)
	if blocksChanged {
		raw, err := blocks.Marshal()
		if err != nil {
			return nil, err
		}
		updates["content_blocks"] = datatypes.JSON(raw)
	}
	updates["updated_at"] = time.Now()

	if err := s.DB.Model(&models.LandingPage{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		// The availability check above races with concurrent claims; the
		// unique index is the arbiter, so its violation gets the same
		// friendly answer as a failed check.
		if isUniqueViolation(err, "username") {
			return &UpdateResult{Success: false, Message: "That username is already taken"}, nil
		}
		if isUniqueViolation(err, "custom_domain") {
			return &UpdateResult{Success: false, Message: "That domain is already connected to another page"}, nil
		}
		return nil, err
	}

	var fresh models.LandingPage
	if err := s.DB.First(&fresh, id).Error; err != nil {
		return nil, err
	}
	return &UpdateResult{Success: true, LandingPage: &fresh}, nil
}

// resolveBlocks interprets the incoming content_blocks payload, which
// may be absent, a structured array, or a doubly serialized string.
func (s *LandingPageStore) resolveBlocks(current *models.LandingPage, raw json.RawMessage) (models.BlockList, bool, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return current.Blocks(), false, nil
	}

	data := []byte(raw)
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, false, err
		}
		// An empty inner string is not a serialized array. Without this
		// check it would fall into ParseBlocks' empty-column case and
		// silently wipe the stored blocks.
		if strings.TrimSpace(inner) == "" {
			return nil, false, errors.New("empty serialized block payload")
		}
		data = []byte(inner)
	}

	blocks, err := models.ParseBlocks(data)
	if err != nil {
		return nil, false, err
	}
	return blocks, true, nil
}

// isUniqueViolation reports whether err is a unique-index violation on
// the named column. Matched on the driver message so both the Postgres
// driver and the sqlite test driver map.
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "unique") && !strings.Contains(msg, "duplicate") {
		return false
	}
	return strings.Contains(msg, column)
}

// CheckUsernameAvailable reports whether username is unclaimed,
// ignoring the page excludeID so a page renaming to its own username
// is not a collision.
func (s *LandingPageStore) CheckUsernameAvailable(username string, excludeID uint) (bool, error) {
	var count int64
	q := s.DB.Model(&models.LandingPage{}).Where("username = ?", username)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// Restore writes a snapshot's field set onto the live row. Unlike
// Update it skips the username and calendly validation: the snapshot
// was produced by a previously successful save and restoring must not
// fail for legacy data.
func (s *LandingPageStore) Restore(pageID uint, snap models.PageSnapshot) error {
	blocks := models.ParseBlocksOr([]byte(snap.ContentBlocks), nil)
	raw, err := blocks.Marshal()
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"username":             snap.Username,
		"custom_domain":        snap.CustomDomain,
		"title":                snap.Title,
		"headline":             snap.Headline,
		"description":          snap.Description,
		"font":                 snap.Font,
		"font_file":            snap.FontFile,
		"bg_theme":             snap.BgTheme,
		"h1_color":             snap.H1Color,
		"h2_color":             snap.H2Color,
		"h3_color":             snap.H3Color,
		"paragraph_color":      snap.ParagraphColor,
		"logo_url":             snap.LogoURL,
		"cover_image_url":      snap.CoverImageURL,
		"pdf_url":              snap.PDFURL,
		"button_text":          snap.ButtonText,
		"show_download_button": snap.ShowDownloadButton,
		"content_blocks":       datatypes.JSON(raw),
		"collect_emails":       snap.CollectEmails,
		"email_list_name":      snap.EmailListName,
		"email_notify":         snap.EmailNotify,
		"email_thank_you_msg":  snap.EmailThankYouMsg,
		"auto_send_pdf":        snap.AutoSendPDF,
		"updated_at":           time.Now(),
	}
	return s.DB.Model(&models.LandingPage{}).Where("id = ?", pageID).Updates(updates).Error
}

// trimInput trims all incoming string fields and nulls out the ones
// left empty.
func trimInput(input *UpdateInput) {
	for _, p := range []**string{
		&input.Username, &input.CustomDomain, &input.Title, &input.Headline,
		&input.Description, &input.Font, &input.FontFile, &input.BgTheme,
		&input.H1Color, &input.H2Color, &input.H3Color, &input.ParagraphColor,
		&input.LogoURL, &input.CoverImageURL, &input.PDFURL, &input.ButtonText,
		&input.EmailListName, &input.EmailThankYouMsg,
	} {
		if *p == nil {
			continue
		}
		trimmed := strings.TrimSpace(**p)
		if trimmed == "" {
			// Present but empty: persist as NULL, except for fields
			// with non-null defaults which keep their current value.
			**p = ""
			continue
		}
		**p = trimmed
	}
}

// buildUpdates translates present input fields into a column update
// map. Nullable text fields sent as empty strings become NULL.
func buildUpdates(input UpdateInput) map[string]interface{} {
	updates := map[string]interface{}{}

	setNullable := func(col string, p *string) {
		if p == nil {
			return
		}
		if *p == "" {
			updates[col] = gorm.Expr("NULL")
			return
		}
		updates[col] = *p
	}
	setText := func(col string, p *string) {
		if p != nil && *p != "" {
			updates[col] = *p
		}
	}
	setBool := func(col string, p *bool) {
		if p != nil {
			updates[col] = *p
		}
	}

	setNullable("username", input.Username)
	setNullable("custom_domain", input.CustomDomain)
	setNullable("title", input.Title)
	setNullable("headline", input.Headline)
	setNullable("description", input.Description)
	setText("font", input.Font)
	setNullable("font_file", input.FontFile)
	setText("bg_theme", input.BgTheme)
	setText("h1_color", input.H1Color)
	setText("h2_color", input.H2Color)
	setText("h3_color", input.H3Color)
	setText("paragraph_color", input.ParagraphColor)
	setNullable("logo_url", input.LogoURL)
	setNullable("cover_image_url", input.CoverImageURL)
	setNullable("pdf_url", input.PDFURL)
	setText("button_text", input.ButtonText)
	setBool("show_download_button", input.ShowDownloadButton)
	setBool("collect_emails", input.CollectEmails)
	setNullable("email_list_name", input.EmailListName)
	setBool("email_notify", input.EmailNotify)
	setNullable("email_thank_you_msg", input.EmailThankYouMsg)
	setBool("auto_send_pdf", input.AutoSendPDF)

	return updates
}
