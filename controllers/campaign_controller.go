package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pagenest/models"
	"pagenest/utils"
)

type CampaignController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewCampaignController(db *gorm.DB, logger *log.Logger) *CampaignController {
	return &CampaignController{
		DB:     db,
		Logger: logger,
	}
}

// CreateCampaign drafts a new email blast to the caller's leads.
func (cc *CampaignController) CreateCampaign(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		Name     string `json:"name" validate:"required,max=200"`
		Subject  string `json:"subject" validate:"required,max=300"`
		BodyHTML string `json:"body_html" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var lp models.LandingPage
	if err := cc.DB.Where("user_id = ?", user.ID).First(&lp).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Landing page not found", nil)
	}

	campaign := models.Campaign{
		UserID:        user.ID,
		LandingPageID: lp.ID,
		Name:          input.Name,
		Subject:       input.Subject,
		BodyHTML:      input.BodyHTML,
		Status:        models.CampaignDraft,
	}
	if err := cc.DB.Create(&campaign).Error; err != nil {
		utils.LogError("create_campaign", err, map[string]interface{}{"user_id": user.ID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create campaign", nil)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(campaign))
}

// GetCampaigns lists the caller's campaigns, newest first.
func (cc *CampaignController) GetCampaigns(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var campaigns []models.Campaign
	if err := cc.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&campaigns).Error; err != nil {
		utils.LogError("list_campaigns", err, map[string]interface{}{"user_id": user.ID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch campaigns", nil)
	}

	return c.JSON(utils.SuccessResponse(campaigns))
}

// GetCampaign returns one campaign with its per-lead delivery records.
func (cc *CampaignController) GetCampaign(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	campaignID := c.Params("id")

	var campaign models.Campaign
	if err := cc.DB.Preload("Messages").
		Where("id = ? AND user_id = ?", campaignID, user.ID).
		First(&campaign).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch campaign", err)
	}

	return c.JSON(utils.SuccessResponse(campaign))
}

// SendCampaign queues a draft for the background sender. The actual
// per-lead delivery loop runs in the campaign worker.
func (cc *CampaignController) SendCampaign(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	campaignID := c.Params("id")

	var campaign models.Campaign
	if err := cc.DB.Where("id = ? AND user_id = ?", campaignID, user.ID).First(&campaign).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", nil)
	}

	if campaign.Status != models.CampaignDraft && campaign.Status != models.CampaignFailed {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Campaign has already been sent or is sending", nil)
	}

	var leadCount int64
	cc.DB.Model(&models.Lead{}).Where("landing_page_id = ?", campaign.LandingPageID).Count(&leadCount)
	if leadCount == 0 {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "No leads to send to", nil)
	}

	campaign.Status = models.CampaignQueued
	campaign.QueuedAt = utils.Pointer(time.Now())
	campaign.TotalLeads = int(leadCount)
	if err := cc.DB.Save(&campaign).Error; err != nil {
		utils.LogError("queue_campaign", err, map[string]interface{}{"campaign_id": campaign.ID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to queue campaign", nil)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Campaign queued for sending",
	})
}

// DeleteCampaign removes a draft campaign and its delivery records.
func (cc *CampaignController) DeleteCampaign(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	campaignID := c.Params("id")

	var campaign models.Campaign
	if err := cc.DB.Where("id = ? AND user_id = ?", campaignID, user.ID).First(&campaign).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Campaign not found", nil)
	}
	if campaign.Status == models.CampaignSending {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot delete a campaign while it is sending", nil)
	}

	tx := cc.DB.Begin()
	if err := tx.Where("campaign_id = ?", campaign.ID).Delete(&models.CampaignMessage{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete campaign messages", nil)
	}
	if err := tx.Delete(&campaign).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete campaign", nil)
	}
	tx.Commit()

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Campaign deleted successfully",
	}))
}
