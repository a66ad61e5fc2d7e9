package controller

import (
	"bytes"
	"encoding/csv"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pagenest/config"
	"pagenest/models"
	"pagenest/utils"
)

type LeadController struct {
	DB     *gorm.DB
	Mailer utils.Sender
	Logger *log.Logger
}

func NewLeadController(db *gorm.DB, mailer utils.Sender, logger *log.Logger) *LeadController {
	return &LeadController{
		DB:     db,
		Mailer: mailer,
		Logger: logger,
	}
}

// CaptureLead stores a visitor's email submitted through the page's
// download form and fires the configured transactional mail. Mail
// failures never fail the capture: the lead row is already safe.
func (lc *LeadController) CaptureLead(c *fiber.Ctx) error {
	var input struct {
		LandingPageID uint   `json:"landing_page_id" validate:"required"`
		Email         string `json:"email" validate:"required,email"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	skipHostCheck := config.AppConfig.Environment == "development"
	if err := utils.ValidateLeadEmail(email, skipHostCheck); err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, err.Error(), nil)
	}

	var lp models.LandingPage
	if err := lc.DB.First(&lp, input.LandingPageID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Landing page not found", nil)
	}
	if !lp.CollectEmails && !lp.ShowDownloadButton {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "This page does not collect emails", nil)
	}

	lead := models.Lead{
		LandingPageID: lp.ID,
		Email:         email,
	}
	if err := lc.DB.Create(&lead).Error; err != nil {
		utils.LogError("create_lead", err, map[string]interface{}{"page_id": lp.ID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save lead", nil)
	}

	// Denormalized counter; drifts if this write is lost, accepted.
	lc.DB.Model(&lp).UpdateColumn("email_leads_count", gorm.Expr("email_leads_count + 1"))

	lc.sendLeadMail(&lp, email)

	return c.JSON(fiber.Map{"success": true})
}

func (lc *LeadController) sendLeadMail(lp *models.LandingPage, leadEmail string) {
	listName := ""
	if lp.EmailListName != nil {
		listName = *lp.EmailListName
	}

	if lp.EmailNotify {
		var owner models.User
		if err := lc.DB.First(&owner, lp.UserID).Error; err == nil {
			if err := utils.SendLeadNotification(lc.Mailer, owner.Email, leadEmail, listName, lp.EmailLeadsCount+1); err != nil {
				lc.Logger.Printf("WARN: lead notification to %s failed: %v", owner.Email, err)
			}
		}
	}

	thankYou := ""
	if lp.EmailThankYouMsg != nil {
		thankYou = *lp.EmailThankYouMsg
	}
	pdfURL := ""
	if lp.AutoSendPDF && lp.PDFURL != nil {
		pdfURL = *lp.PDFURL
	}
	if thankYou != "" || pdfURL != "" {
		title := ""
		if lp.Title != nil {
			title = *lp.Title
		}
		if err := utils.SendLeadThankYou(lc.Mailer, leadEmail, title, thankYou, pdfURL); err != nil {
			lc.Logger.Printf("WARN: thank-you mail to %s failed: %v", leadEmail, err)
		}
	}
}

// GetLeads returns the caller's captured leads, newest first,
// paginated.
func (lc *LeadController) GetLeads(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var lp models.LandingPage
	if err := lc.DB.Where("user_id = ?", user.ID).First(&lp).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Landing page not found", nil)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit > 200 {
		limit = 200
	}
	offset := (page - 1) * limit

	var leads []models.Lead
	if err := lc.DB.Where("landing_page_id = ?", lp.ID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&leads).Error; err != nil {
		utils.LogError("list_leads", err, map[string]interface{}{"page_id": lp.ID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch leads", nil)
	}

	var total int64
	lc.DB.Model(&models.Lead{}).Where("landing_page_id = ?", lp.ID).Count(&total)

	return c.JSON(utils.PaginatedResponse{
		Data:  leads,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// ExportLeads streams the caller's leads as a CSV download.
func (lc *LeadController) ExportLeads(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var lp models.LandingPage
	if err := lc.DB.Where("user_id = ?", user.ID).First(&lp).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Landing page not found", nil)
	}

	var leads []models.Lead
	if err := lc.DB.Where("landing_page_id = ?", lp.ID).
		Order("created_at ASC").
		Find(&leads).Error; err != nil {
		utils.LogError("export_leads", err, map[string]interface{}{"page_id": lp.ID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to export leads", nil)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"email", "created_at"})
	for _, lead := range leads {
		_ = w.Write([]string{lead.Email, lead.CreatedAt.Format("2006-01-02 15:04:05")})
	}
	w.Flush()

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="leads.csv"`)
	return c.Send(buf.Bytes())
}
