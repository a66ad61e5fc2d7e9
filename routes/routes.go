package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"pagenest/config"
	controller "pagenest/controllers"
	"pagenest/middleware"
	"pagenest/utils"
)

// SetupRoutes wires the full HTTP surface: the authenticated builder
// API and the public endpoints hit by rendered pages.
func SetupRoutes(app *fiber.App, db *gorm.DB, mailer utils.Sender) {
	routeLogger := log.New(os.Stdout, "ROUTES: ", log.Ldate|log.Ltime|log.Lshortfile)

	utils.InitStripe()

	landingController := controller.NewLandingController(db, log.New(os.Stdout, "LANDING: ", log.LstdFlags))
	pageController := controller.NewPageController(db, log.New(os.Stdout, "PAGE: ", log.LstdFlags))
	leadController := controller.NewLeadController(db, mailer, log.New(os.Stdout, "LEAD: ", log.LstdFlags))
	templateController := controller.NewTemplateController(db, log.New(os.Stdout, "TEMPLATE: ", log.LstdFlags))
	analyticsController := controller.NewAnalyticsController(db,
		utils.NewGeoLookup(config.AppConfig.GeoLookupURL),
		log.New(os.Stdout, "ANALYTICS: ", log.LstdFlags))
	campaignController := controller.NewCampaignController(db, log.New(os.Stdout, "CAMPAIGN: ", log.LstdFlags))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	protected := middleware.Protected(db)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Builder endpoints (owner-authenticated). These live at the root
	// path, so the auth guard is attached per route.
	app.Get("/builder/:userId", protected, landingController.GetBuilderPage)
	app.Put("/update/:id", protected, landingController.UpdatePage)
	app.Get("/check-username/:username", protected, landingController.CheckUsername)

	// Template versions
	app.Post("/templates", protected, templateController.SaveTemplate)
	app.Get("/templates", protected, templateController.ListTemplates)
	app.Get("/templates/:versionId", protected, templateController.LoadTemplate)
	app.Post("/templates/:versionId/restore", protected, templateController.RestoreTemplate)
	app.Delete("/templates/:versionId", protected, templateController.DeleteTemplate)

	// Owner API
	api := app.Group("/api/v1", protected)
	api.Get("/leads", leadController.GetLeads)
	api.Post("/leads/export", leadController.ExportLeads)
	api.Get("/analytics/stats", analyticsController.GetStats)
	api.Put("/domain", landingController.ConnectDomain)

	campaigns := api.Group("/campaigns")
	campaigns.Post("/", campaignController.CreateCampaign)
	campaigns.Get("/", campaignController.GetCampaigns)
	campaigns.Get("/:id", campaignController.GetCampaign)
	campaigns.Post("/:id/send", campaignController.SendCampaign)
	campaigns.Delete("/:id", campaignController.DeleteCampaign)

	// Public endpoints hit by rendered pages
	app.Post("/landing-leads",
		middleware.PublicRateLimiter(config.AppConfig.RateLimitLeadCapture),
		leadController.CaptureLead)
	app.Post("/events",
		middleware.PublicRateLimiter(config.AppConfig.RateLimitEvents),
		analyticsController.TrackEvent)
	app.Post("/checkout/:pageId", pageController.Checkout)

	// Tenant-resolved page render
	app.Get("/",
		middleware.ResolveTenant(db, config.AppConfig.BaseDomain, log.New(os.Stdout, "TENANT: ", log.LstdFlags)),
		pageController.ServePage)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})

	routeLogger.Println("Routes initialized successfully")
}
