package renderer

import (
	"fmt"
	"strings"

	"pagenest/models"
)

// Background themes selectable in the builder. Unknown themes fall back
// to light.
var bgThemes = map[string]string{
	"light":    "background:#ffffff;",
	"dark":     "background:#12121a;",
	"sunset":   "background:linear-gradient(160deg,#ff9966 0%,#ff5e62 100%);",
	"ocean":    "background:linear-gradient(160deg,#2193b0 0%,#6dd5ed 100%);",
	"midnight": "background:linear-gradient(160deg,#232526 0%,#414345 100%);",
}

func pageStyles(lp *models.LandingPage) string {
	bg, ok := bgThemes[lp.BgTheme]
	if !ok {
		bg = bgThemes["light"]
	}

	font := lp.Font
	if font == "" {
		font = "Inter"
	}

	var fontFace string
	if lp.FontFile != nil && *lp.FontFile != "" {
		fontFace = fmt.Sprintf(`@font-face{font-family:'%s';src:url('%s');font-display:swap;}`, font, *lp.FontFile)
	}

	var sb strings.Builder
	sb.WriteString(fontFace)
	fmt.Fprintf(&sb, `
*{margin:0;padding:0;box-sizing:border-box;}
body{font-family:'%s',-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;%sline-height:1.6;}
.pn-container{max-width:680px;margin:0 auto;padding:40px 24px;}
.pn-h1{color:%s;font-size:40px;line-height:1.2;}
.pn-h2{color:%s;font-size:28px;line-height:1.3;}
.pn-h3{color:%s;font-size:20px;line-height:1.4;}
.pn-p{color:%s;}
`, font, bg, lp.H1Color, lp.H2Color, lp.H3Color, lp.ParagraphColor)

	sb.WriteString(`
.pn-logo{display:block;margin:0 auto 24px;max-height:64px;}
.pn-cover{width:100%;border-radius:12px;margin-bottom:32px;}
.pn-button-wrap{text-align:center;}
.pn-button{display:inline-block;padding:14px 32px;font-size:17px;font-weight:600;text-decoration:none;border:none;cursor:pointer;}
.pn-image-wrap{text-align:center;}
.pn-calendly iframe{border-radius:8px;}
.pn-profile{text-align:center;}
.pn-profile-avatar{width:96px;height:96px;border-radius:50%;object-fit:cover;margin-bottom:12px;}
.pn-profile-name{font-size:20px;font-weight:700;}
.pn-profile-role{font-size:14px;opacity:0.7;margin-bottom:8px;}
.pn-scroll-arrow{text-align:center;}
.pn-scroll-arrow svg{animation:pn-bounce 1.6s infinite;}
@keyframes pn-bounce{0%,100%{transform:translateY(0);}50%{transform:translateY(8px);}}
.pn-offer{border:1px solid rgba(0,0,0,0.08);border-radius:12px;padding:32px!important;margin:16px 0;text-align:center;background:rgba(255,255,255,0.92);}
.pn-offer-image{max-width:240px;border-radius:8px;margin-bottom:16px;}
.pn-offer-price{font-size:32px;font-weight:700;margin:8px 0;}
.pn-offer-bullets{text-align:left;margin:16px auto;max-width:420px;}
.pn-offer-bullets li{margin:6px 0;}
.pn-offer-trust{display:flex;justify-content:center;gap:16px;flex-wrap:wrap;margin:12px 0;font-size:13px;opacity:0.75;}
.pn-countdown{font-size:24px;font-weight:700;letter-spacing:1px;margin:12px 0;}
.pn-mini-offer{display:flex;align-items:center;gap:16px;border:1px solid rgba(0,0,0,0.08);border-radius:10px;padding:16px!important;margin:8px 0;background:rgba(255,255,255,0.92);}
.pn-mini-offer-image{width:64px;height:64px;border-radius:6px;object-fit:cover;}
.pn-mini-offer-body{flex:1;text-align:left;}
.pn-mini-offer-title{font-weight:600;}
.pn-lead-form{margin:32px 0;text-align:center;}
.pn-lead-form input[type=email]{width:100%;max-width:360px;padding:13px 16px;font-size:16px;border:1px solid #ccc;border-radius:8px;margin-bottom:12px;}
.pn-lead-thanks{font-size:18px;font-weight:600;padding:24px 0;}
.pn-footer{text-align:center;font-size:12px;opacity:0.6;padding:32px 0 8px;}
`)
	return sb.String()
}
