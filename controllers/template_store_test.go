package controller

import (
	"strings"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pagenest/models"
	"pagenest/utils"
)

func newTemplateStore(db *gorm.DB) (*TemplateStore, *LandingPageStore) {
	pages := NewLandingPageStore(db, quietLogger())
	return NewTemplateStore(db, pages, quietLogger()), pages
}

func TestSaveTemplateDefaultsName(t *testing.T) {
	db := setupTestDB(t)
	store, pages := newTemplateStore(db)
	user := createTestUser(t, db, "tmpl@example.com", true)
	page, _, _ := pages.GetOrCreate(user.ID)

	id, err := store.Save(user.ID, page.ID, "", models.SnapshotOf(page))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id == "" {
		t.Fatal("Save returned empty id")
	}

	var tmpl models.PageTemplate
	if err := db.First(&tmpl, "id = ?", id).Error; err != nil {
		t.Fatalf("load saved template: %v", err)
	}
	if !strings.HasPrefix(tmpl.Name, "Version ") {
		t.Errorf("auto name = %q, want 'Version <timestamp>' form", tmpl.Name)
	}
}

func TestListTemplatesNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	store, pages := newTemplateStore(db)
	user := createTestUser(t, db, "list@example.com", true)
	page, _, _ := pages.GetOrCreate(user.ID)

	snap := models.SnapshotOf(page)
	oldID, _ := store.Save(user.ID, page.ID, "old", snap)
	// Force distinct created_at ordering; sqlite timestamps can tie
	// within one test run.
	db.Model(&models.PageTemplate{}).Where("id = ?", oldID).
		UpdateColumn("created_at", time.Now().Add(-time.Hour))
	newID, _ := store.Save(user.ID, page.ID, "new", snap)

	items, err := store.ListByPage(page.ID)
	if err != nil {
		t.Fatalf("ListByPage: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != newID || items[1].ID != oldID {
		t.Errorf("listing not newest first: %v", items)
	}
	if items[0].Name != "new" {
		t.Errorf("item name = %q, want new", items[0].Name)
	}
}

func TestLoadMissingTemplateReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	store, _ := newTemplateStore(db)

	snap, err := store.Load("no-such-id")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap != nil {
		t.Errorf("expected nil for missing template, got %+v", snap)
	}
}

func TestLoadDegradesCorruptedSnapshotBlocks(t *testing.T) {
	db := setupTestDB(t)
	store, pages := newTemplateStore(db)
	user := createTestUser(t, db, "corruptsnap@example.com", true)
	page, _, _ := pages.GetOrCreate(user.ID)

	snap := models.SnapshotOf(page)
	// Valid JSON, but not a block array; the load must degrade it.
	snap.ContentBlocks = datatypes.JSON(`{"not":"an array"}`)
	id, err := store.Save(user.ID, page.ID, "damaged", snap)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil for existing template")
	}
	if got := string(loaded.ContentBlocks); got != "[]" {
		t.Errorf("corrupted snapshot blocks should degrade to [], got %s", got)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	store, pages := newTemplateStore(db)
	user := createTestUser(t, db, "restore@example.com", true)
	page, _, _ := pages.GetOrCreate(user.ID)

	res, err := pages.Update(page.ID, UpdateInput{
		Headline:      utils.Pointer("Original headline"),
		ContentBlocks: []byte(`[{"type":"heading","text":"v1"}]`),
	})
	if err != nil || !res.Success {
		t.Fatalf("seed update: err=%v", err)
	}

	versionID, err := store.Save(user.ID, page.ID, "v1", models.SnapshotOf(res.LandingPage))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	res, err = pages.Update(page.ID, UpdateInput{
		Headline:      utils.Pointer("Changed since"),
		ContentBlocks: []byte(`[{"type":"paragraph","text":"v2"}]`),
	})
	if err != nil || !res.Success {
		t.Fatalf("second update: err=%v", err)
	}

	if err := store.Restore(page.ID, versionID, user.ID); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	var fresh models.LandingPage
	db.First(&fresh, page.ID)
	if fresh.Headline == nil || *fresh.Headline != "Original headline" {
		t.Errorf("headline not restored: %v", fresh.Headline)
	}
	blocks := fresh.Blocks()
	if len(blocks) != 1 || blocks[0].Str("text", "") != "v1" {
		t.Errorf("blocks not restored: %s", fresh.ContentBlocks)
	}
}

func TestRestoreForeignTemplateRejected(t *testing.T) {
	db := setupTestDB(t)
	store, pages := newTemplateStore(db)
	owner := createTestUser(t, db, "owner@example.com", true)
	intruder := createTestUser(t, db, "intruder@example.com", true)
	ownerPage, _, _ := pages.GetOrCreate(owner.ID)
	intruderPage, _, _ := pages.GetOrCreate(intruder.ID)

	versionID, err := store.Save(owner.ID, ownerPage.ID, "private", models.SnapshotOf(ownerPage))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Restore(intruderPage.ID, versionID, intruder.ID); err != ErrTemplateNotOwned {
		t.Errorf("foreign restore error = %v, want ErrTemplateNotOwned", err)
	}
}

func TestDeleteTemplateOwnership(t *testing.T) {
	db := setupTestDB(t)
	store, pages := newTemplateStore(db)
	owner := createTestUser(t, db, "delowner@example.com", true)
	intruder := createTestUser(t, db, "delintruder@example.com", true)
	page, _, _ := pages.GetOrCreate(owner.ID)

	versionID, err := store.Save(owner.ID, page.ID, "mine", models.SnapshotOf(page))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Foreign delete and missing-id delete come back as the same error.
	if err := store.Delete(versionID, intruder.ID); err != ErrTemplateNotOwned {
		t.Errorf("foreign delete error = %v, want ErrTemplateNotOwned", err)
	}
	if err := store.Delete("no-such-id", owner.ID); err != ErrTemplateNotOwned {
		t.Errorf("missing delete error = %v, want ErrTemplateNotOwned", err)
	}

	if err := store.Delete(versionID, owner.ID); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}

	var count int64
	db.Model(&models.PageTemplate{}).Where("id = ?", versionID).Count(&count)
	if count != 0 {
		t.Error("template row survived delete")
	}
}
