package renderer

import (
	"strings"
	"testing"

	"pagenest/models"
	"pagenest/utils"
)

func testPage() *models.LandingPage {
	lp := &models.LandingPage{
		Headline:    utils.Pointer("My eBook"),
		Description: utils.Pointer("A short pitch."),
		Title:       utils.Pointer("My eBook Page"),
	}
	lp.ID = 42
	return lp
}

func parse(t *testing.T, raw string) models.BlockList {
	t.Helper()
	blocks, err := models.ParseBlocks([]byte(raw))
	if err != nil {
		t.Fatalf("ParseBlocks: %v", err)
	}
	return blocks
}

func TestRenderIsDeterministic(t *testing.T) {
	lp := testPage()
	blocks := parse(t, `[
		{"type":"heading","text":"Welcome"},
		{"type":"paragraph","text":"Read this.","size":18},
		{"type":"button","text":"Get it","url":"https://example.com/file.pdf"}
	]`)

	a := Render(lp, blocks)
	b := Render(lp, blocks)
	if a != b {
		t.Error("Render is not deterministic for identical input")
	}

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>My eBook Page</title>",
		`<h1 class="pn-h1"`,
		">Welcome</h1>",
		"font-size:18px",
		`href="https://example.com/file.pdf"`,
	} {
		if !strings.Contains(a, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderSkipsUnknownBlockTypes(t *testing.T) {
	lp := testPage()
	blocks := parse(t, `[
		{"type":"hologram","text":"from the future"},
		{"type":"paragraph","text":"still here"}
	]`)

	out := Render(lp, blocks)
	if strings.Contains(out, "from the future") {
		t.Error("unknown block type was rendered")
	}
	if !strings.Contains(out, "still here") {
		t.Error("known block after an unknown one was dropped")
	}
}

func TestRenderLeadFormGating(t *testing.T) {
	lp := testPage()
	blocks := models.BlockList{}

	out := Render(lp, blocks)
	if strings.Contains(out, "pn-lead-form") {
		t.Error("lead form rendered without show_download_button")
	}

	lp.ShowDownloadButton = true
	lp.ButtonText = "Grab it"
	out = Render(lp, blocks)
	if !strings.Contains(out, "pn-lead-form") {
		t.Error("lead form missing with show_download_button set")
	}
	if !strings.Contains(out, ">Grab it</button>") {
		t.Error("custom button text not used")
	}
}

func TestRenderButtonDefaults(t *testing.T) {
	lp := testPage()
	blocks := parse(t, `[{"type":"button","text":"Go"}]`)

	out := Render(lp, blocks)
	for _, want := range []string{
		"background:#1a73e8",
		"border-radius:8px",
		"box-shadow:0px 4px 12px rgba(0,0,0,0.15)",
		`href="#"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("button defaults missing %q", want)
		}
	}
}

func TestRenderCalendlyAndEmptyURL(t *testing.T) {
	lp := testPage()
	out := Render(lp, parse(t, `[{"type":"calendly","calendly_url":"https://calendly.com/alice/intro"}]`))
	if !strings.Contains(out, `<iframe src="https://calendly.com/alice/intro"`) {
		t.Error("calendly iframe not rendered")
	}
	if !strings.Contains(out, `height="700"`) {
		t.Error("calendly default height missing")
	}

	out = Render(lp, parse(t, `[{"type":"calendly"}]`))
	if strings.Contains(out, "pn-calendly") {
		t.Error("calendly without a URL should render nothing")
	}
}

func TestRenderOfferNestingIsBounded(t *testing.T) {
	lp := testPage()
	blocks := parse(t, `[{
		"type":"single_offer","id":"offer-1","title":"The Book","price":"29","currency":"€",
		"offer_page":{
			"blocks":[
				{"type":"paragraph","text":"inner copy"},
				{"type":"single_offer","id":"offer-2","title":"Too deep","offer_page":{"blocks":[{"type":"paragraph","text":"forbidden"}]}}
			],
			"bullets":["Fast","Simple"],
			"trust_items":["30-day refund"]
		}
	}]`)

	out := Render(lp, blocks)
	if !strings.Contains(out, "€29") {
		t.Error("offer price not rendered")
	}
	if !strings.Contains(out, "inner copy") {
		t.Error("first-level offer page blocks missing")
	}
	if !strings.Contains(out, "<li>Fast</li>") {
		t.Error("offer bullets missing")
	}
	if !strings.Contains(out, "30-day refund") {
		t.Error("trust items missing")
	}
	if !strings.Contains(out, `data-checkout="offer-1"`) {
		t.Error("buy button missing checkout id")
	}
	// The nested offer still renders its own frame, but its sub-page
	// must be cut off at the depth limit.
	if strings.Contains(out, "forbidden") {
		t.Error("second-level offer page was rendered past the depth limit")
	}
}

func TestRenderComingSoonConstant(t *testing.T) {
	if ComingSoonHTML != "<h1>Coming soon</h1>" {
		t.Errorf("ComingSoonHTML = %q", ComingSoonHTML)
	}
}

func TestRenderEmbedsPageScripts(t *testing.T) {
	lp := testPage()
	out := Render(lp, models.BlockList{})
	for _, want := range []string{
		"/landing-leads",
		"/events",
		"/checkout/42",
		"data-target",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page scripts missing %q", want)
		}
	}
}
