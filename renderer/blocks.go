package renderer

import (
	"fmt"
	"strings"

	"pagenest/models"
)

// Per-variant fragment builders. Each takes the block (post-validation)
// and returns one HTML fragment; the page assembler concatenates them
// in array order. User-supplied text is interpolated as-is: owners
// design their own pages and may embed raw markup in text fields.

const maxOfferDepth = 1

func renderBlocks(blocks models.BlockList, depth int) string {
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(renderBlock(b, depth))
	}
	return sb.String()
}

func renderBlock(b models.Block, depth int) string {
	switch b.Type() {
	case models.BlockHeading:
		return renderHeading(b, "h1", "pn-h1")
	case models.BlockSubheading:
		return renderHeading(b, "h2", "pn-h2")
	case models.BlockSubsubheading:
		return renderHeading(b, "h3", "pn-h3")
	case models.BlockParagraph:
		return renderParagraph(b)
	case models.BlockButton:
		return renderButton(b)
	case models.BlockImage:
		return renderImage(b)
	case models.BlockCalendly:
		return renderCalendly(b)
	case models.BlockProfileCard:
		return renderProfileCard(b)
	case models.BlockScrollArrow:
		return renderScrollArrow(b)
	case models.BlockSingleOffer:
		return renderSingleOffer(b, depth)
	case models.BlockMiniOffer:
		return renderMiniOffer(b)
	default:
		// Unknown variants are skipped, never an error: future client
		// block types must not break older rendered pages.
		return ""
	}
}

func padding(b models.Block) float64 {
	return b.Float("padding", models.DefaultBlockPadding)
}

func renderHeading(b models.Block, tag, class string) string {
	text := b.Str("text", "")
	align := b.Str("align", "center")
	return fmt.Sprintf(`<%s class="%s" style="padding:%.0fpx 0;text-align:%s;">%s</%s>`,
		tag, class, padding(b), align, text, tag)
}

func renderParagraph(b models.Block) string {
	text := b.Str("text", "")
	align := b.Str("align", "left")
	size := b.Float("size", 16)
	return fmt.Sprintf(`<p class="pn-p" style="padding:%.0fpx 0;text-align:%s;font-size:%.0fpx;">%s</p>`,
		padding(b), align, size, text)
}

func renderButton(b models.Block) string {
	text := b.Str("text", "Click here")
	url := b.Str("url", "#")
	bg := b.Str("bg_color", "#1a73e8")
	fg := b.Str("text_color", "#ffffff")
	radius := b.Float("radius", 8)
	shadowX := b.Float("shadow_x", 0)
	shadowY := b.Float("shadow_y", 4)
	shadowBlur := b.Float("shadow_blur", 12)
	shadowColor := b.Str("shadow_color", "rgba(0,0,0,0.15)")
	target := ""
	if b.Bool("new_tab", false) {
		target = ` target="_blank" rel="noopener"`
	}
	return fmt.Sprintf(`<div class="pn-button-wrap" style="padding:%.0fpx 0;"><a class="pn-button" href="%s"%s style="background:%s;color:%s;border-radius:%.0fpx;box-shadow:%.0fpx %.0fpx %.0fpx %s;">%s</a></div>`,
		padding(b), url, target, bg, fg, radius, shadowX, shadowY, shadowBlur, shadowColor, text)
}

func renderImage(b models.Block) string {
	url := b.Str("url", "")
	if url == "" {
		return ""
	}
	alt := b.Str("alt", "")
	width := b.Str("width", "100%")
	radius := b.Float("radius", 0)
	return fmt.Sprintf(`<div class="pn-image-wrap" style="padding:%.0fpx 0;"><img class="pn-image" src="%s" alt="%s" style="width:%s;border-radius:%.0fpx;"></div>`,
		padding(b), url, alt, width, radius)
}

func renderCalendly(b models.Block) string {
	url := b.Str("calendly_url", "")
	if url == "" {
		return ""
	}
	height := b.Float("height", 700)
	return fmt.Sprintf(`<div class="pn-calendly" style="padding:%.0fpx 0;"><iframe src="%s" width="100%%" height="%.0f" frameborder="0" title="Schedule a call"></iframe></div>`,
		padding(b), url, height)
}

func renderProfileCard(b models.Block) string {
	name := b.Str("name", "")
	role := b.Str("role", "")
	bio := b.Str("bio", "")
	avatar := b.Str("avatar_url", "")

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="pn-profile" style="padding:%.0fpx 0;">`, padding(b))
	if avatar != "" {
		fmt.Fprintf(&sb, `<img class="pn-profile-avatar" src="%s" alt="%s">`, avatar, name)
	}
	if name != "" {
		fmt.Fprintf(&sb, `<div class="pn-profile-name">%s</div>`, name)
	}
	if role != "" {
		fmt.Fprintf(&sb, `<div class="pn-profile-role">%s</div>`, role)
	}
	if bio != "" {
		fmt.Fprintf(&sb, `<p class="pn-profile-bio">%s</p>`, bio)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

func renderScrollArrow(b models.Block) string {
	color := b.Str("color", "#888888")
	return fmt.Sprintf(`<div class="pn-scroll-arrow" style="padding:%.0fpx 0;"><svg width="32" height="32" viewBox="0 0 24 24" fill="none" stroke="%s" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><polyline points="6 9 12 15 18 9"></polyline></svg></div>`,
		padding(b), color)
}

func renderSingleOffer(b models.Block, depth int) string {
	title := b.Str("title", "")
	price := b.Str("price", "")
	currency := b.Str("currency", "$")
	image := b.Str("image", "")
	description := b.Str("description", "")
	buttonText := b.Str("button_text", "Buy now")
	countdown := b.Str("countdown_target", "")
	blockID := b.Str("id", "")

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="pn-offer" style="padding:%.0fpx 0;">`, padding(b))
	if image != "" {
		fmt.Fprintf(&sb, `<img class="pn-offer-image" src="%s" alt="%s">`, image, title)
	}
	if title != "" {
		fmt.Fprintf(&sb, `<h2 class="pn-offer-title">%s</h2>`, title)
	}
	if price != "" {
		fmt.Fprintf(&sb, `<div class="pn-offer-price">%s%s</div>`, currency, price)
	}
	if description != "" {
		fmt.Fprintf(&sb, `<p class="pn-offer-desc">%s</p>`, description)
	}
	if countdown != "" {
		fmt.Fprintf(&sb, `<div class="pn-countdown" data-target="%s"></div>`, countdown)
	}

	// An offer may carry its own sub-page: more blocks, bullet points
	// and trust items. One extra level only.
	if page, ok := b.Child("offer_page"); ok && depth < maxOfferDepth {
		sb.WriteString(`<div class="pn-offer-page">`)
		sb.WriteString(renderBlocks(page.ChildBlocks("blocks"), depth+1))
		if bullets := page.Strings("bullets"); len(bullets) > 0 {
			sb.WriteString(`<ul class="pn-offer-bullets">`)
			for _, item := range bullets {
				fmt.Fprintf(&sb, `<li>%s</li>`, item)
			}
			sb.WriteString(`</ul>`)
		}
		if trust := page.Strings("trust_items"); len(trust) > 0 {
			sb.WriteString(`<div class="pn-offer-trust">`)
			for _, item := range trust {
				fmt.Fprintf(&sb, `<span class="pn-offer-trust-item">%s</span>`, item)
			}
			sb.WriteString(`</div>`)
		}
		sb.WriteString(`</div>`)
	}

	fmt.Fprintf(&sb, `<button class="pn-button pn-offer-buy" data-checkout="%s">%s</button>`, blockID, buttonText)
	sb.WriteString(`</div>`)
	return sb.String()
}

func renderMiniOffer(b models.Block) string {
	title := b.Str("title", "")
	price := b.Str("price", "")
	currency := b.Str("currency", "$")
	image := b.Str("image", "")
	buttonText := b.Str("button_text", "Buy")
	blockID := b.Str("id", "")

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div class="pn-mini-offer" style="padding:%.0fpx 0;">`, padding(b))
	if image != "" {
		fmt.Fprintf(&sb, `<img class="pn-mini-offer-image" src="%s" alt="%s">`, image, title)
	}
	fmt.Fprintf(&sb, `<div class="pn-mini-offer-body"><div class="pn-mini-offer-title">%s</div><div class="pn-mini-offer-price">%s%s</div></div>`,
		title, currency, price)
	fmt.Fprintf(&sb, `<button class="pn-button pn-offer-buy" data-checkout="%s">%s</button>`, blockID, buttonText)
	sb.WriteString(`</div>`)
	return sb.String()
}
