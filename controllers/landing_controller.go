package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pagenest/models"
	"pagenest/utils"
)

type LandingController struct {
	DB     *gorm.DB
	Store  *LandingPageStore
	Logger *log.Logger
}

func NewLandingController(db *gorm.DB, logger *log.Logger) *LandingController {
	return &LandingController{
		DB:     db,
		Store:  NewLandingPageStore(db, logger),
		Logger: logger,
	}
}

// GetBuilderPage returns the caller's landing page, creating the
// default page on first visit to the builder.
func (lc *LandingController) GetBuilderPage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	requestedID := utils.ParseUint(c.Params("userId"))

	if requestedID != user.ID && !user.IsAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "You can only access your own page", nil)
	}

	lp, status, err := lc.Store.GetOrCreate(requestedID)
	if err != nil {
		if status == fiber.StatusInternalServerError {
			utils.LogError("get_or_create_page", err, map[string]interface{}{"user_id": requestedID})
			return utils.ErrorResponse(c, status, "Failed to load landing page", nil)
		}
		return utils.ErrorResponse(c, status, err.Error(), nil)
	}

	return c.Status(status).JSON(fiber.Map{
		"success":     true,
		"landingPage": lp,
	})
}

// UpdatePage applies a full-field save from the builder.
func (lc *LandingController) UpdatePage(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	pageID := utils.ParseUint(c.Params("id"))

	var owned models.LandingPage
	if err := lc.DB.Where("id = ? AND user_id = ?", pageID, user.ID).First(&owned).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Landing page not found", nil)
	}

	var input UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	result, err := lc.Store.Update(pageID, input)
	if err != nil {
		utils.LogError("update_page", err, map[string]interface{}{"page_id": pageID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update landing page", nil)
	}
	if !result.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Landing page updated",
		"landingPage": result.LandingPage,
	})
}

// CheckUsername answers the builder's availability probe while the
// owner types a new username.
func (lc *LandingController) CheckUsername(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	username := c.Params("username")

	var excludeID uint
	var own models.LandingPage
	if err := lc.DB.Where("user_id = ?", user.ID).First(&own).Error; err == nil {
		excludeID = own.ID
	}

	available, err := lc.Store.CheckUsernameAvailable(username, excludeID)
	if err != nil {
		utils.LogError("check_username", err, map[string]interface{}{"username": username})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to check username", nil)
	}

	message := "Username is available"
	if !available {
		message = "Username is already taken"
	}
	return c.JSON(fiber.Map{
		"available": available,
		"message":   message,
	})
}

// ConnectDomain attaches a custom domain to the caller's page after a
// whois sanity check that the domain is actually registered.
func (lc *LandingController) ConnectDomain(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var input struct {
		Domain string `json:"domain" validate:"required,fqdn"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var lp models.LandingPage
	if err := lc.DB.Where("user_id = ?", user.ID).First(&lp).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Landing page not found", nil)
	}

	if err := utils.CheckDomainRegistered(input.Domain); err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, err.Error(), nil)
	}

	var taken int64
	lc.DB.Model(&models.LandingPage{}).
		Where("custom_domain = ? AND id <> ?", input.Domain, lp.ID).
		Count(&taken)
	if taken > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "That domain is already connected to another page", nil)
	}

	if err := lc.DB.Model(&lp).Update("custom_domain", input.Domain).Error; err != nil {
		utils.LogError("connect_domain", err, map[string]interface{}{"page_id": lp.ID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to connect domain", nil)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{"domain": input.Domain}))
}
