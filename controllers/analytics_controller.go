package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pagenest/models"
	"pagenest/utils"
)

type AnalyticsController struct {
	DB     *gorm.DB
	Geo    utils.GeoLookup
	Logger *log.Logger
}

func NewAnalyticsController(db *gorm.DB, geo utils.GeoLookup, logger *log.Logger) *AnalyticsController {
	return &AnalyticsController{
		DB:     db,
		Geo:    geo,
		Logger: logger,
	}
}

// TrackEvent records one beacon hit from a rendered page. Geo
// resolution is best-effort; a failed lookup still records the event.
func (ac *AnalyticsController) TrackEvent(c *fiber.Ctx) error {
	var input struct {
		LandingPageID uint   `json:"landing_page_id" validate:"required"`
		EventType     string `json:"event_type" validate:"required"`
		Path          string `json:"path" validate:"omitempty,max=512"`
		Referrer      string `json:"referrer" validate:"omitempty,max=512"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}
	if !models.ValidEventType(input.EventType) {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, "Unknown event type", nil)
	}

	var exists int64
	ac.DB.Model(&models.LandingPage{}).Where("id = ?", input.LandingPageID).Count(&exists)
	if exists == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Landing page not found", nil)
	}

	country := ""
	if ac.Geo != nil {
		if code, err := ac.Geo.CountryCode(c.IP()); err == nil {
			country = code
		}
	}

	event := models.PageEvent{
		LandingPageID: input.LandingPageID,
		EventType:     input.EventType,
		Path:          input.Path,
		Referrer:      input.Referrer,
		Country:       country,
	}
	if err := ac.DB.Create(&event).Error; err != nil {
		utils.LogError("track_event", err, map[string]interface{}{"page_id": input.LandingPageID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to record event", nil)
	}

	return c.JSON(fiber.Map{"success": true})
}

// EventCount is one aggregation row for the stats endpoint.
type EventCount struct {
	EventType string `json:"event_type"`
	Day       string `json:"day"`
	Count     int64  `json:"count"`
}

// GetStats aggregates the caller's page events per type per day over
// the requested window (default 30 days).
func (ac *AnalyticsController) GetStats(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var lp models.LandingPage
	if err := ac.DB.Where("user_id = ?", user.ID).First(&lp).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Landing page not found", nil)
	}

	days := c.QueryInt("days", 30)
	if days < 1 || days > 365 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	var rows []EventCount
	err := ac.DB.Model(&models.PageEvent{}).
		Select("event_type, DATE(created_at) AS day, COUNT(*) AS count").
		Where("landing_page_id = ? AND created_at >= ?", lp.ID, since).
		Group("event_type, DATE(created_at)").
		Order("day ASC").
		Find(&rows).Error
	if err != nil {
		utils.LogError("analytics_stats", err, map[string]interface{}{"page_id": lp.ID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load stats", nil)
	}

	var totals []struct {
		EventType string `json:"event_type"`
		Count     int64  `json:"count"`
	}
	ac.DB.Model(&models.PageEvent{}).
		Select("event_type, COUNT(*) AS count").
		Where("landing_page_id = ?", lp.ID).
		Group("event_type").
		Find(&totals)

	return c.JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"daily":  rows,
			"totals": totals,
			"leads":  lp.EmailLeadsCount,
		},
	})
}
