package controller

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pagenest/models"
)

// ErrTemplateNotOwned is returned for delete/restore against a missing
// or foreign snapshot. One error for both cases on purpose: the
// response must not reveal whether the id exists.
var ErrTemplateNotOwned = errors.New("template not found")

// TemplateStore handles named snapshots of full-page state: save, list,
// load, restore, delete.
type TemplateStore struct {
	DB     *gorm.DB
	Pages  *LandingPageStore
	Logger *log.Logger
}

func NewTemplateStore(db *gorm.DB, pages *LandingPageStore, logger *log.Logger) *TemplateStore {
	return &TemplateStore{DB: db, Pages: pages, Logger: logger}
}

// TemplateListItem is what listing returns: metadata only, no snapshot
// bodies.
type TemplateListItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Save stores a snapshot under a fresh id. A missing name defaults to a
// timestamp-derived label. The snapshot content itself is trusted; it
// was produced by a prior successful update.
func (s *TemplateStore) Save(userID, landingPageID uint, name string, snap models.PageSnapshot) (string, error) {
	if name == "" {
		name = "Version " + time.Now().Format("2006-01-02 15:04:05")
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}

	tmpl := models.PageTemplate{
		ID:            uuid.NewString(),
		UserID:        userID,
		LandingPageID: landingPageID,
		Name:          name,
		Snapshot:      datatypes.JSON(raw),
	}
	if err := s.DB.Create(&tmpl).Error; err != nil {
		return "", err
	}
	return tmpl.ID, nil
}

// ListByPage returns snapshot metadata for a page, newest first.
func (s *TemplateStore) ListByPage(landingPageID uint) ([]TemplateListItem, error) {
	var items []TemplateListItem
	err := s.DB.Model(&models.PageTemplate{}).
		Select("id, name, created_at").
		Where("landing_page_id = ?", landingPageID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Load returns a snapshot's full body. Nested serialized structures are
// re-parsed defensively: corrupted block data inside an old snapshot
// degrades to an empty list instead of failing the load.
func (s *TemplateStore) Load(versionID string) (*models.PageSnapshot, error) {
	var tmpl models.PageTemplate
	err := s.DB.Where("id = ?", versionID).First(&tmpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap models.PageSnapshot
	if err := json.Unmarshal(tmpl.Snapshot, &snap); err != nil {
		s.Logger.Printf("WARN: corrupted snapshot body %s: %v", versionID, err)
		return &models.PageSnapshot{}, nil
	}

	blocks := models.ParseBlocksOr([]byte(snap.ContentBlocks), nil)
	raw, err := blocks.Marshal()
	if err != nil {
		return nil, err
	}
	snap.ContentBlocks = datatypes.JSON(raw)
	return &snap, nil
}

// Restore overwrites the live page with the snapshot's field set. It
// deliberately skips the username-collision and calendly validation
// that Update enforces: snapshots predating a validation rule must
// remain restorable.
func (s *TemplateStore) Restore(landingPageID uint, versionID string, userID uint) error {
	var tmpl models.PageTemplate
	err := s.DB.Where("id = ? AND user_id = ?", versionID, userID).First(&tmpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTemplateNotOwned
	}
	if err != nil {
		return err
	}

	snap, err := s.Load(versionID)
	if err != nil {
		return err
	}
	if snap == nil {
		return ErrTemplateNotOwned
	}
	return s.Pages.Restore(landingPageID, *snap)
}

// Delete removes the snapshot only when userID owns it. Zero affected
// rows means missing or foreign; callers answer both with the same
// generic message.
func (s *TemplateStore) Delete(versionID string, userID uint) error {
	res := s.DB.Where("id = ? AND user_id = ?", versionID, userID).Delete(&models.PageTemplate{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTemplateNotOwned
	}
	return nil
}
