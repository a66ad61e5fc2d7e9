package controller

import (
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pagenest/models"
	"pagenest/renderer"
	"pagenest/utils"
)

// PageController serves the public, tenant-resolved side: the rendered
// page itself and checkout initiation.
type PageController struct {
	DB     *gorm.DB
	Store  *LandingPageStore
	Logger *log.Logger
}

func NewPageController(db *gorm.DB, logger *log.Logger) *PageController {
	return &PageController{
		DB:     db,
		Store:  NewLandingPageStore(db, logger),
		Logger: logger,
	}
}

// ServePage renders the landing page the tenant middleware resolved
// from the request host. This path never hard-fails: an unknown host,
// unclaimed page or corrupted block data all degrade to a placeholder
// or an empty page, not an error.
func (pc *PageController) ServePage(c *fiber.Ctx) error {
	lp, _ := c.Locals("landingPage").(*models.LandingPage)
	if lp == nil {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(renderer.ComingSoonHTML)
	}

	html := renderer.Render(lp, lp.Blocks())
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

// Checkout starts a Stripe checkout session for an offer block on the
// page. Payment completion and fulfillment are the billing service's
// job; this endpoint only hands the visitor the hosted payment URL.
func (pc *PageController) Checkout(c *fiber.Ctx) error {
	pageID := utils.ParseUint(c.Params("pageId"))

	var input struct {
		BlockID string `json:"block_id" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	row, err := pc.Store.GetByID(pageID)
	if err != nil {
		utils.LogError("checkout_load_page", err, map[string]interface{}{"page_id": pageID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load page", nil)
	}
	if row == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Page not found", nil)
	}

	offer, ok := findOfferBlock(row.Blocks(), input.BlockID)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Offer not found on this page", nil)
	}

	account := ""
	if row.StripeAccountID != nil {
		account = *row.StripeAccountID
	}

	pageURL := c.BaseURL()
	url, err := utils.CreateCheckoutSession(utils.CheckoutParams{
		ConnectedAccount: account,
		ProductName:      offer.Str("title", "Offer"),
		AmountCents:      priceCents(offer),
		Currency:         offer.Str("currency_code", "usd"),
		SuccessURL:       pageURL + "?checkout=success",
		CancelURL:        pageURL + "?checkout=cancelled",
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, err.Error(), nil)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"url":     url,
	})
}

func findOfferBlock(blocks models.BlockList, blockID string) (models.Block, bool) {
	for _, b := range blocks {
		t := b.Type()
		if t != models.BlockSingleOffer && t != models.BlockMiniOffer {
			continue
		}
		if b.Str("id", "") == blockID {
			return b, true
		}
	}
	return models.Block{}, false
}

// priceCents reads an offer's display price ("29", "29.99") into
// cents.
func priceCents(b models.Block) int64 {
	if cents := b.Float("price_cents", 0); cents > 0 {
		return int64(cents)
	}
	price := strings.TrimSpace(b.Str("price", ""))
	if price == "" {
		return 0
	}
	value, err := strconv.ParseFloat(price, 64)
	if err != nil || value <= 0 {
		return 0
	}
	return int64(math.Round(value * 100))
}
