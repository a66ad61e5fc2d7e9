package models

import (
	"encoding/json"
	"testing"
)

func TestBlockRoundTripPreservesUnknownKeys(t *testing.T) {
	raw := []byte(`[{"type":"heading","text":"Hi","future_field":{"nested":[1,2,3]},"collapsed":false,"padding":20}]`)

	blocks, err := ParseBlocks(raw)
	if err != nil {
		t.Fatalf("ParseBlocks: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}

	out, err := blocks.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got, want map[string]any
	if err := json.Unmarshal(out[1:len(out)-1], &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if err := json.Unmarshal(raw[1:len(raw)-1], &want); err != nil {
		t.Fatalf("unmarshal input: %v", err)
	}
	if _, ok := got["future_field"]; !ok {
		t.Error("unknown key future_field was dropped on round trip")
	}
	if got["padding"] != want["padding"] {
		t.Errorf("padding changed: got %v, want %v", got["padding"], want["padding"])
	}
}

func TestBlockAccessorFallbacks(t *testing.T) {
	b := NewBlock(map[string]any{
		"type":    "button",
		"size":    float64(24),
		"visible": true,
		"label":   "Go",
	})

	if got := b.Type(); got != "button" {
		t.Errorf("Type() = %q, want button", got)
	}
	if got := b.Str("missing", "fb"); got != "fb" {
		t.Errorf("Str fallback = %q, want fb", got)
	}
	if got := b.Float("size", 0); got != 24 {
		t.Errorf("Float(size) = %v, want 24", got)
	}
	// Wrong type falls back rather than coercing.
	if got := b.Float("label", 7); got != 7 {
		t.Errorf("Float on string attr = %v, want fallback 7", got)
	}
	if !b.Bool("visible", false) {
		t.Error("Bool(visible) = false, want true")
	}
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	raw := []byte(`[
		{"type":"heading","text":"A"},
		{"type":"paragraph","text":"B","collapsed":false,"padding":4},
		{"type":"single_offer","title":"Book","offer_page":{"blocks":[{"type":"paragraph","text":"inner"}]}}
	]`)
	blocks, err := ParseBlocks(raw)
	if err != nil {
		t.Fatalf("ParseBlocks: %v", err)
	}

	blocks.Normalize()

	if !blocks[0].Bool("collapsed", false) {
		t.Error("missing collapsed should default to true")
	}
	if got := blocks[0].Float("padding", 0); got != DefaultBlockPadding {
		t.Errorf("missing padding should default to %v, got %v", DefaultBlockPadding, got)
	}

	// Explicit values survive.
	if blocks[1].Bool("collapsed", true) {
		t.Error("explicit collapsed=false was overwritten")
	}
	if got := blocks[1].Float("padding", 0); got != 4 {
		t.Errorf("explicit padding=4 was overwritten, got %v", got)
	}

	page, ok := blocks[2].Child("offer_page")
	if !ok {
		t.Fatal("offer_page child missing")
	}
	nested := page.ChildBlocks("blocks")
	if len(nested) != 1 {
		t.Fatalf("expected 1 nested block, got %d", len(nested))
	}
	if !nested[0].Bool("collapsed", false) {
		t.Error("nested block should get collapsed default")
	}
}

func TestValidateCalendlyURL(t *testing.T) {
	tests := []struct {
		url  string
		ok   bool
		name string
	}{
		{"https://calendly.com/alice", true, "user only"},
		{"https://calendly.com/alice/intro-call", true, "user and event"},
		{"https://calendly.com/alice.smith_1/30min", true, "allowed punctuation"},
		{"", true, "empty skipped"},
		{"https://evil.com/alice", false, "foreign host"},
		{"http://calendly.com/alice", false, "plain http"},
		{"https://calendly.com/alice/a/b", false, "too deep"},
		{"https://calendly.com/", false, "missing user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := BlockList{NewBlock(map[string]any{
				"type":         BlockCalendly,
				"calendly_url": tt.url,
			})}
			err := list.Validate()
			if tt.ok && err != nil {
				t.Errorf("url %q: unexpected error %v", tt.url, err)
			}
			if !tt.ok && err == nil {
				t.Errorf("url %q: expected validation error", tt.url)
			}
		})
	}
}

func TestValidateIgnoresNonCalendlyBlocks(t *testing.T) {
	list := BlockList{NewBlock(map[string]any{
		"type":         BlockButton,
		"calendly_url": "not a url at all",
	})}
	if err := list.Validate(); err != nil {
		t.Errorf("calendly_url on a non-calendly block should be ignored: %v", err)
	}
}

func TestParseBlocksOrDegradesOnCorruption(t *testing.T) {
	if got := ParseBlocksOr([]byte(`{"not":"an array"`), nil); len(got) != 0 {
		t.Errorf("corrupted payload should degrade to empty list, got %d blocks", len(got))
	}
	if got := ParseBlocksOr(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("empty payload should yield empty non-nil list, got %#v", got)
	}

	fallback := BlockList{NewBlock(map[string]any{"type": "heading"})}
	if got := ParseBlocksOr([]byte(`broken`), fallback); len(got) != 1 {
		t.Errorf("fallback list should be returned on corruption, got %d blocks", len(got))
	}
}
