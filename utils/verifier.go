package utils

import (
	"fmt"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/likexian/whois"
)

// ValidateLeadEmail performs syntax and, outside development, MX/host
// checks on a captured lead address. Kept deliberately lighter than a
// full SMTP probe: lead capture is a public endpoint and must stay
// fast.
func ValidateLeadEmail(email string, skipHostCheck bool) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := checkmail.ValidateFormat(email); err != nil {
		return fmt.Errorf("invalid email format")
	}

	if skipHostCheck {
		return nil
	}

	if err := checkmail.ValidateHost(email); err != nil {
		return fmt.Errorf("email domain does not accept mail")
	}
	return nil
}

// CheckDomainRegistered does a whois lookup to confirm a custom domain
// the user wants to connect actually exists and is registered.
func CheckDomainRegistered(domain string) error {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" || !strings.Contains(domain, ".") {
		return fmt.Errorf("invalid domain name")
	}

	info, err := whois.Whois(domain)
	if err != nil {
		return fmt.Errorf("whois lookup failed: %w", err)
	}

	lower := strings.ToLower(info)
	if strings.Contains(lower, "no match for") ||
		strings.Contains(lower, "not found") ||
		strings.Contains(lower, "no data found") {
		return fmt.Errorf("domain %s does not appear to be registered", domain)
	}
	return nil
}
