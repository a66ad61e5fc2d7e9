package models

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Known block types. The set is open: blocks with types not listed here
// are stored and re-emitted untouched so newer/older clients never lose
// data, the renderer just skips them.
const (
	BlockHeading       = "heading"
	BlockSubheading    = "subheading"
	BlockSubsubheading = "subsubheading"
	BlockParagraph     = "paragraph"
	BlockButton        = "button"
	BlockImage         = "image"
	BlockCalendly      = "calendly"
	BlockProfileCard   = "profile_card"
	BlockScrollArrow   = "scroll_arrow"
	BlockSingleOffer   = "single_offer"
	BlockMiniOffer     = "mini_offer"
)

// DefaultBlockPadding is applied to any block saved without an explicit
// padding value.
const DefaultBlockPadding = float64(16)

var calendlyURLPattern = regexp.MustCompile(`^https://calendly\.com/[A-Za-z0-9._-]+(/[A-Za-z0-9._-]+)?$`)

// Block is one content block: a type tag plus a free-form attribute
// set. All keys, known or not, are kept in the underlying map so a
// block round-trips byte-for-byte through save and load.
type Block struct {
	attrs map[string]any
}

// BlockList is the ordered block sequence of a page.
type BlockList []Block

func NewBlock(attrs map[string]any) Block {
	if attrs == nil {
		attrs = map[string]any{}
	}
	return Block{attrs: attrs}
}

func (b *Block) UnmarshalJSON(data []byte) error {
	m := map[string]any{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	b.attrs = m
	return nil
}

func (b Block) MarshalJSON() ([]byte, error) {
	if b.attrs == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(b.attrs)
}

// Type returns the variant tag, or "" when absent.
func (b Block) Type() string {
	return b.Str("type", "")
}

// Str returns a string attribute, falling back when the key is missing
// or not a string.
func (b Block) Str(key, fallback string) string {
	if v, ok := b.attrs[key].(string); ok {
		return v
	}
	return fallback
}

// Float returns a numeric attribute. JSON numbers decode as float64;
// string-typed numbers coming from older clients are not coerced.
func (b Block) Float(key string, fallback float64) float64 {
	if v, ok := b.attrs[key].(float64); ok {
		return v
	}
	return fallback
}

// Bool returns a boolean attribute.
func (b Block) Bool(key string, fallback bool) bool {
	if v, ok := b.attrs[key].(bool); ok {
		return v
	}
	return fallback
}

// Has reports whether the key is present at all.
func (b Block) Has(key string) bool {
	_, ok := b.attrs[key]
	return ok
}

// Set writes an attribute.
func (b Block) Set(key string, value any) {
	b.attrs[key] = value
}

// Strings returns a []string attribute (offer bullets, trust items).
// Non-string members are skipped.
func (b Block) Strings(key string) []string {
	raw, ok := b.attrs[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Child returns a nested object attribute (an offer block's
// offer_page) as a Block, and whether it was present.
func (b Block) Child(key string) (Block, bool) {
	m, ok := b.attrs[key].(map[string]any)
	if !ok {
		return Block{}, false
	}
	return Block{attrs: m}, true
}

// ChildBlocks returns a nested block-list attribute (offer_page's
// "blocks"). Non-object members are skipped.
func (b Block) ChildBlocks(key string) BlockList {
	raw, ok := b.attrs[key].([]any)
	if !ok {
		return nil
	}
	out := make(BlockList, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]any); ok {
			out = append(out, Block{attrs: m})
		}
	}
	return out
}

// ParseBlocks decodes a serialized block array.
func ParseBlocks(data []byte) (BlockList, error) {
	if len(data) == 0 {
		return BlockList{}, nil
	}
	var list BlockList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse content blocks: %w", err)
	}
	if list == nil {
		list = BlockList{}
	}
	return list, nil
}

// ParseBlocksOr decodes a serialized block array, substituting fallback
// when the payload is corrupted. This is the single degrade-don't-fail
// policy shared by the page store and the template service: a page with
// unparseable stored blocks renders empty, it does not 500.
func ParseBlocksOr(data []byte, fallback BlockList) BlockList {
	list, err := ParseBlocks(data)
	if err != nil {
		if fallback == nil {
			return BlockList{}
		}
		return fallback
	}
	return list
}

// Marshal serializes the list back to JSON, preserving every attribute
// of every block.
func (l BlockList) Marshal() ([]byte, error) {
	if l == nil {
		l = BlockList{}
	}
	return json.Marshal(l)
}

// Normalize applies save-time defaults in place: every block that lacks
// a collapsed hint gets collapsed=true, and missing padding gets the
// shared default. Blocks nested inside an offer_page get the collapsed
// default too.
func (l BlockList) Normalize() {
	for _, b := range l {
		if !b.Has("collapsed") {
			b.Set("collapsed", true)
		}
		if !b.Has("padding") {
			b.Set("padding", DefaultBlockPadding)
		}
		if page, ok := b.Child("offer_page"); ok {
			for _, nested := range page.ChildBlocks("blocks") {
				if !nested.Has("collapsed") {
					nested.Set("collapsed", true)
				}
			}
		}
	}
}

// Validate checks every block's invariants. Today the only hard rule is
// the calendly URL shape; the first violation fails the whole list so
// an update is all-or-nothing.
func (l BlockList) Validate() error {
	for _, b := range l {
		if b.Type() != BlockCalendly {
			continue
		}
		url := b.Str("calendly_url", "")
		if url == "" {
			continue
		}
		if !calendlyURLPattern.MatchString(url) {
			return fmt.Errorf("invalid Calendly URL %q: must look like https://calendly.com/your-name or https://calendly.com/your-name/event", url)
		}
	}
	return nil
}
