package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pagenest/models"
	"pagenest/utils"
)

type TemplateController struct {
	DB     *gorm.DB
	Store  *TemplateStore
	Logger *log.Logger
}

func NewTemplateController(db *gorm.DB, logger *log.Logger) *TemplateController {
	pages := NewLandingPageStore(db, logger)
	return &TemplateController{
		DB:     db,
		Store:  NewTemplateStore(db, pages, logger),
		Logger: logger,
	}
}

// ownPage loads the caller's landing page; every template operation is
// scoped to it.
func (tc *TemplateController) ownPage(c *fiber.Ctx) (*models.LandingPage, error) {
	user := c.Locals("user").(*models.User)
	var lp models.LandingPage
	if err := tc.DB.Where("user_id = ?", user.ID).First(&lp).Error; err != nil {
		return nil, err
	}
	return &lp, nil
}

// SaveTemplate snapshots the current page state (or an explicitly
// provided snapshot body) under a named version.
func (tc *TemplateController) SaveTemplate(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	lp, err := tc.ownPage(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Landing page not found", nil)
	}

	var input struct {
		Name     string               `json:"name" validate:"omitempty,max=120"`
		Snapshot *models.PageSnapshot `json:"snapshot"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	snap := models.SnapshotOf(lp)
	if input.Snapshot != nil {
		snap = *input.Snapshot
	}

	versionID, err := tc.Store.Save(user.ID, lp.ID, input.Name, snap)
	if err != nil {
		utils.LogError("save_template", err, map[string]interface{}{"page_id": lp.ID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save template", nil)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"versionId": versionID,
	})
}

// ListTemplates returns the page's saved versions, newest first.
// Bodies are omitted; load one explicitly to get its snapshot.
func (tc *TemplateController) ListTemplates(c *fiber.Ctx) error {
	lp, err := tc.ownPage(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Landing page not found", nil)
	}

	pageID := utils.ParseUint(c.Query("landing_page_id"))
	if pageID != 0 && pageID != lp.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "You can only list your own templates", nil)
	}

	items, err := tc.Store.ListByPage(lp.ID)
	if err != nil {
		utils.LogError("list_templates", err, map[string]interface{}{"page_id": lp.ID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list templates", nil)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"templates": items,
	})
}

// LoadTemplate returns a snapshot's full body.
func (tc *TemplateController) LoadTemplate(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	versionID := c.Params("versionId")

	var tmpl models.PageTemplate
	if err := tc.DB.Where("id = ? AND user_id = ?", versionID, user.ID).First(&tmpl).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Template not found", nil)
	}

	snap, err := tc.Store.Load(versionID)
	if err != nil {
		utils.LogError("load_template", err, map[string]interface{}{"version_id": versionID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load template", nil)
	}
	if snap == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Template not found", nil)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"snapshot": snap,
	})
}

// RestoreTemplate overwrites the live page with the saved version.
func (tc *TemplateController) RestoreTemplate(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	versionID := c.Params("versionId")

	lp, err := tc.ownPage(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Landing page not found", nil)
	}

	if err := tc.Store.Restore(lp.ID, versionID, user.ID); err != nil {
		if errors.Is(err, ErrTemplateNotOwned) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Template not found", nil)
		}
		utils.LogError("restore_template", err, map[string]interface{}{"version_id": versionID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to restore template", nil)
	}

	return c.JSON(fiber.Map{"success": true})
}

// DeleteTemplate removes a saved version. Missing and foreign ids get
// the same answer; the response must not reveal which it was.
func (tc *TemplateController) DeleteTemplate(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	versionID := c.Params("versionId")

	if err := tc.Store.Delete(versionID, user.ID); err != nil {
		if errors.Is(err, ErrTemplateNotOwned) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Template not found", nil)
		}
		utils.LogError("delete_template", err, map[string]interface{}{"version_id": versionID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete template", nil)
	}

	return c.JSON(fiber.Map{"success": true})
}
