// Package renderer turns a landing page record and its content blocks
// into one self-contained HTML document. Rendering is pure: no I/O, no
// stored state, and identical input yields identical output (the only
// exception is the footer copyright year, taken from render time).
//
// Text fields are interpolated without escaping. Page content is
// authored by the page owner, who may deliberately embed raw markup;
// any content-safety policy belongs to the validation step upstream.
package renderer

import (
	"fmt"
	"strings"
	"time"

	"pagenest/models"
)

// ComingSoonHTML is served for hosts that resolve to no published page.
const ComingSoonHTML = "<h1>Coming soon</h1>"

// Render assembles the full document for a page and its ordered block
// list. Blocks should already be validated; unknown block types are
// skipped silently.
func Render(lp *models.LandingPage, blocks models.BlockList) string {
	title := str(lp.Title, "Landing Page")

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString(`<meta charset="UTF-8">` + "\n")
	sb.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", title)
	if d := str(lp.Description, ""); d != "" {
		fmt.Fprintf(&sb, `<meta name="description" content="%s">`+"\n", d)
	}
	fmt.Fprintf(&sb, "<style>%s</style>\n", pageStyles(lp))
	sb.WriteString("</head>\n<body>\n")

	sb.WriteString(`<div class="pn-container">` + "\n")

	if logo := str(lp.LogoURL, ""); logo != "" {
		fmt.Fprintf(&sb, `<img class="pn-logo" src="%s" alt="logo">`+"\n", logo)
	}
	if cover := str(lp.CoverImageURL, ""); cover != "" {
		fmt.Fprintf(&sb, `<img class="pn-cover" src="%s" alt="cover">`+"\n", cover)
	}
	if headline := str(lp.Headline, ""); headline != "" {
		fmt.Fprintf(&sb, `<h1 class="pn-h1" style="text-align:center;">%s</h1>`+"\n", headline)
	}
	if desc := str(lp.Description, ""); desc != "" {
		fmt.Fprintf(&sb, `<p class="pn-p" style="text-align:center;">%s</p>`+"\n", desc)
	}

	sb.WriteString(renderBlocks(blocks, 0))

	if lp.ShowDownloadButton {
		sb.WriteString(leadForm(lp))
	}

	fmt.Fprintf(&sb, `<div class="pn-footer">© %d %s</div>`+"\n", time.Now().Year(), title)
	sb.WriteString("</div>\n")

	sb.WriteString(leadFormScript(lp.ID))
	sb.WriteString("\n")
	sb.WriteString(countdownScript)
	sb.WriteString("\n")
	sb.WriteString(analyticsScript(lp.ID))
	sb.WriteString("\n")
	sb.WriteString(checkoutScript(lp.ID))
	sb.WriteString("\n</body>\n</html>\n")
	return sb.String()
}

func leadForm(lp *models.LandingPage) string {
	buttonText := lp.ButtonText
	if buttonText == "" {
		buttonText = "Download"
	}
	thanks := str(lp.EmailThankYouMsg, "Thanks! Check your inbox.")
	return fmt.Sprintf(`<form id="pn-lead-form" class="pn-lead-form" data-thanks="%s">
<input type="email" name="email" placeholder="Your email address" required>
<div class="pn-button-wrap"><button type="submit" class="pn-button" style="background:#1a73e8;color:#ffffff;border-radius:8px;">%s</button></div>
</form>
`, thanks, buttonText)
}

func str(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}
	return *p
}
