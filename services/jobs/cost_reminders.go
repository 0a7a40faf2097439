package jobs

import (
	"fmt"
	"lexcase_app_go/config"
	"lexcase_app_go/models"
	"lexcase_app_go/services"
	"log"
	"time"

	"gorm.io/gorm"
)

// SendCostDueReminders finds unpaid legal-cost entries that are overdue
// or fall due within the next 7 days and emails the owning firm's billing
// contact. Each entry is reminded once (reminder_sent_at stamp).
func SendCostDueReminders(database *gorm.DB, cfg *config.Config) {
	log.Println("Starting legal cost reminder job...")

	now := time.Now().UTC()
	horizon := now.Add(7 * 24 * time.Hour)

	var entries []models.LegalCostEntry
	err := database.
		Preload("LegalCost.Honorary.Firm").
		Where("paid = ?", false).
		Where("due_date IS NOT NULL AND due_date <= ?", horizon).
		Where("reminder_sent_at IS NULL").
		Find(&entries).Error
	if err != nil {
		log.Printf("Error fetching cost entries for reminders: %v", err)
		return
	}

	log.Printf("Found %d cost entries to remind", len(entries))

	for i := range entries {
		entry := &entries[i]

		firm := entry.LegalCost.Honorary.Firm
		if firm.BillingEmail == "" {
			log.Printf("Skipping reminder for entry %s: firm has no billing email", entry.ID)
			continue
		}

		ledgerLink := cfg.AppURL + "/api/honoraries/" + entry.LegalCost.HonoraryID + "/legal-cost"
		email := services.BuildCostReminderEmail(firm.BillingEmail, services.CostReminderEmailData{
			FirmName:   firm.Name,
			EntryName:  entry.Name,
			CostType:   models.GetCostTypeDisplayName(entry.CostType),
			Amount:     fmt.Sprintf("$%.2f", entry.Amount),
			DueDate:    entry.DueDate.Format("2006-01-02"),
			Status:     entry.StatusOn(now),
			LedgerLink: ledgerLink,
		})

		if err := services.SendEmail(cfg, email); err != nil {
			log.Printf("Failed to send reminder for cost entry %s: %v", entry.ID, err)
			continue
		}

		sentAt := time.Now().UTC()
		database.Model(entry).Update("reminder_sent_at", sentAt)
		log.Printf("Sent reminder for cost entry %s", entry.ID)
	}

	log.Println("Legal cost reminder job completed")
}
