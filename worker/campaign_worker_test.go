package worker

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pagenest/config"
	"pagenest/models"
)

// fakeSender records every send and fails for addresses it was told to
// reject.
type fakeSender struct {
	sent    []string
	failFor map[string]bool
}

func (f *fakeSender) Send(to, subject, html string) error {
	if f.failFor[to] {
		return errors.New("mailbox unavailable")
	}
	f.sent = append(f.sent, to)
	return nil
}

func setupWorkerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.MigrateDB(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedCampaign(t *testing.T, db *gorm.DB, leadEmails []string) *models.Campaign {
	t.Helper()

	user := models.User{Email: "owner@example.com", IsPro: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	page := models.LandingPage{UserID: user.ID}
	if err := db.Create(&page).Error; err != nil {
		t.Fatalf("create page: %v", err)
	}
	for _, email := range leadEmails {
		if err := db.Create(&models.Lead{LandingPageID: page.ID, Email: email}).Error; err != nil {
			t.Fatalf("create lead: %v", err)
		}
	}

	campaign := models.Campaign{
		UserID:        user.ID,
		LandingPageID: page.ID,
		Name:          "launch",
		Subject:       "New chapter out",
		BodyHTML:      "<p>Read it now</p>",
		Status:        models.CampaignQueued,
		TotalLeads:    len(leadEmails),
	}
	if err := db.Create(&campaign).Error; err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	return &campaign
}

func TestProcessQueuedSendsToEveryLead(t *testing.T) {
	db := setupWorkerDB(t)
	sender := &fakeSender{}
	cw := NewCampaignWorker(db, sender, log.New(io.Discard, "", 0))

	campaign := seedCampaign(t, db, []string{"a@example.com", "b@example.com", "c@example.com"})
	cw.ProcessQueued()

	if len(sender.sent) != 3 {
		t.Errorf("sent to %d leads, want 3", len(sender.sent))
	}

	var fresh models.Campaign
	db.First(&fresh, campaign.ID)
	if fresh.Status != models.CampaignSent {
		t.Errorf("status = %q, want %q", fresh.Status, models.CampaignSent)
	}
	if fresh.SentCount != 3 || fresh.FailCount != 0 {
		t.Errorf("counters = %d/%d, want 3/0", fresh.SentCount, fresh.FailCount)
	}
	if fresh.CompletedAt == nil {
		t.Error("completed_at not set")
	}
}

func TestCampaignFailedLeadDoesNotAbortBatch(t *testing.T) {
	db := setupWorkerDB(t)
	sender := &fakeSender{failFor: map[string]bool{"bad@example.com": true}}
	cw := NewCampaignWorker(db, sender, log.New(io.Discard, "", 0))

	campaign := seedCampaign(t, db, []string{"ok1@example.com", "bad@example.com", "ok2@example.com"})
	cw.ProcessQueued()

	if len(sender.sent) != 2 {
		t.Errorf("sent to %d leads, want 2", len(sender.sent))
	}

	var fresh models.Campaign
	db.First(&fresh, campaign.ID)
	// A partial failure still counts as sent.
	if fresh.Status != models.CampaignSent {
		t.Errorf("status = %q, want %q", fresh.Status, models.CampaignSent)
	}
	if fresh.SentCount != 2 || fresh.FailCount != 1 {
		t.Errorf("counters = %d/%d, want 2/1", fresh.SentCount, fresh.FailCount)
	}

	var failedMsg models.CampaignMessage
	if err := db.Where("campaign_id = ? AND status = ?", campaign.ID, "failed").First(&failedMsg).Error; err != nil {
		t.Fatalf("failed message row missing: %v", err)
	}
	if failedMsg.Email != "bad@example.com" || failedMsg.Error == "" {
		t.Errorf("failed message not recorded properly: %+v", failedMsg)
	}
}

func TestCampaignAllFailedMarksFailed(t *testing.T) {
	db := setupWorkerDB(t)
	sender := &fakeSender{failFor: map[string]bool{"x@example.com": true, "y@example.com": true}}
	cw := NewCampaignWorker(db, sender, log.New(io.Discard, "", 0))

	campaign := seedCampaign(t, db, []string{"x@example.com", "y@example.com"})
	cw.ProcessQueued()

	var fresh models.Campaign
	db.First(&fresh, campaign.ID)
	if fresh.Status != models.CampaignFailed {
		t.Errorf("status = %q, want %q", fresh.Status, models.CampaignFailed)
	}
}

func TestProcessQueuedIgnoresDrafts(t *testing.T) {
	db := setupWorkerDB(t)
	sender := &fakeSender{}
	cw := NewCampaignWorker(db, sender, log.New(io.Discard, "", 0))

	campaign := seedCampaign(t, db, []string{"a@example.com"})
	db.Model(campaign).Update("status", models.CampaignDraft)

	cw.ProcessQueued()

	if len(sender.sent) != 0 {
		t.Errorf("draft campaign was processed, %d mails sent", len(sender.sent))
	}
}
