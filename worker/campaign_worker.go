package worker

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pagenest/models"
	"pagenest/utils"
)

// CampaignWorker drains queued campaigns: for each one it walks the
// page's lead list sequentially, sending one mail per lead and
// recording the outcome per message. A failed lead never aborts the
// batch.
type CampaignWorker struct {
	DB     *gorm.DB
	Mailer utils.Sender
	Logger *log.Logger

	// PollInterval defaults to 15s; tests shorten it.
	PollInterval time.Duration
}

func NewCampaignWorker(db *gorm.DB, mailer utils.Sender, logger *log.Logger) *CampaignWorker {
	return &CampaignWorker{
		DB:           db,
		Mailer:       mailer,
		Logger:       logger,
		PollInterval: 15 * time.Second,
	}
}

func (cw *CampaignWorker) Start(ctx context.Context) {
	// Initial delay to let the server start up
	time.Sleep(5 * time.Second)

	cw.Logger.Println("Campaign worker started")

	ticker := time.NewTicker(cw.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			cw.Logger.Println("Campaign worker shutting down...")
			return
		case <-ticker.C:
			cw.ProcessQueued()
		}
	}
}

// ProcessQueued picks up every queued campaign and runs it to
// completion.
func (cw *CampaignWorker) ProcessQueued() {
	var queued []models.Campaign
	if err := cw.DB.Where("status = ?", models.CampaignQueued).Find(&queued).Error; err != nil {
		cw.Logger.Printf("Error fetching queued campaigns: %v", err)
		return
	}

	for _, campaign := range queued {
		cw.runCampaign(campaign)
	}
}

func (cw *CampaignWorker) runCampaign(campaign models.Campaign) {
	now := time.Now()
	if err := cw.DB.Model(&campaign).Updates(map[string]interface{}{
		"status":     models.CampaignSending,
		"started_at": now,
	}).Error; err != nil {
		cw.Logger.Printf("Error marking campaign %d as sending: %v", campaign.ID, err)
		return
	}

	var leads []models.Lead
	if err := cw.DB.Where("landing_page_id = ?", campaign.LandingPageID).
		Order("created_at ASC").
		Find(&leads).Error; err != nil {
		cw.Logger.Printf("Error fetching leads for campaign %d: %v", campaign.ID, err)
		cw.finishCampaign(campaign.ID, models.CampaignFailed, 0, 0)
		return
	}

	sent, failed := 0, 0
	for _, lead := range leads {
		msg := models.CampaignMessage{
			ID:         uuid.NewString(),
			CampaignID: campaign.ID,
			LeadID:     lead.ID,
			Email:      lead.Email,
		}

		if err := cw.Mailer.Send(lead.Email, campaign.Subject, campaign.BodyHTML); err != nil {
			failed++
			msg.Status = "failed"
			msg.Error = err.Error()
			cw.Logger.Printf("Campaign %d: send to %s failed: %v", campaign.ID, lead.Email, err)
		} else {
			sent++
			msg.Status = "sent"
			msg.SentAt = utils.Pointer(time.Now())
		}

		if err := cw.DB.Create(&msg).Error; err != nil {
			cw.Logger.Printf("Campaign %d: recording message for lead %d failed: %v", campaign.ID, lead.ID, err)
		}

		// Keep counters fresh so the dashboard can watch progress.
		cw.DB.Model(&models.Campaign{}).Where("id = ?", campaign.ID).Updates(map[string]interface{}{
			"sent_count": sent,
			"fail_count": failed,
		})
	}

	status := models.CampaignSent
	if sent == 0 && failed > 0 {
		status = models.CampaignFailed
	}
	cw.finishCampaign(campaign.ID, status, sent, failed)
	cw.Logger.Printf("Campaign %d finished: %d sent, %d failed", campaign.ID, sent, failed)
}

func (cw *CampaignWorker) finishCampaign(id uint, status string, sent, failed int) {
	if err := cw.DB.Model(&models.Campaign{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       status,
		"sent_count":   sent,
		"fail_count":   failed,
		"completed_at": time.Now(),
	}).Error; err != nil {
		cw.Logger.Printf("Error finishing campaign %d: %v", id, err)
	}
}
