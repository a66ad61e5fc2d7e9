package middleware

import (
	"log"
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pagenest/models"
)

// ResolveTenant maps the request host to a landing page and stores it
// in c.Locals("landingPage"). Subdomains of the base domain resolve by
// username; any other host is tried as a connected custom domain.
// Resolution never fails the request: an unknown host simply leaves
// the local unset and the page handler serves its placeholder.
func ResolveTenant(db *gorm.DB, baseDomain string, logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		host := strings.ToLower(c.Hostname())
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}

		var lp models.LandingPage
		if username, ok := subdomainOf(host, baseDomain); ok {
			if err := db.Where("username = ?", username).First(&lp).Error; err == nil {
				c.Locals("landingPage", &lp)
			}
			return c.Next()
		}

		if err := db.Where("custom_domain = ?", host).First(&lp).Error; err == nil {
			c.Locals("landingPage", &lp)
		}
		return c.Next()
	}
}

// subdomainOf extracts the single subdomain label of base from host,
// e.g. ("alice.pagenest.io", "pagenest.io") -> ("alice", true). The
// apex itself and deeper nesting resolve to nothing.
func subdomainOf(host, base string) (string, bool) {
	if host == base {
		return "", false
	}
	suffix := "." + base
	if !strings.HasSuffix(host, suffix) {
		return "", false
	}
	label := strings.TrimSuffix(host, suffix)
	if label == "" || label == "www" || strings.Contains(label, ".") {
		return "", false
	}
	return label, true
}
