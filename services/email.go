package services

import (
	"fmt"
	"lexcase_app_go/config"
	"log"
	"strings"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using the Resend API. In test mode the email
// is logged to the console instead of sent.
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}
	if email.HTMLBody == "" && email.TextBody == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	client := resend.NewClient(cfg.ResendAPIKey)
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
	}
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// CostReminderEmailData carries the fields of a cost due-date reminder
type CostReminderEmailData struct {
	FirmName   string
	EntryName  string
	CostType   string
	Amount     string
	DueDate    string
	Status     string
	LedgerLink string
}

// BuildCostReminderEmail builds the reminder sent to the firm's billing
// contact when a legal-cost entry is overdue or about to fall due
func BuildCostReminderEmail(toEmail string, data CostReminderEmailData) *Email {
	subject := fmt.Sprintf("Legal cost due: %s (%s)", data.EntryName, data.DueDate)
	if data.Status == "overdue" {
		subject = fmt.Sprintf("Legal cost OVERDUE: %s", data.EntryName)
	}

	text := fmt.Sprintf(
		"Hello %s,\n\n"+
			"The legal cost entry %q (%s) for %s is %s.\n"+
			"Due date: %s\n\n"+
			"Review the ledger: %s\n",
		data.FirmName, data.EntryName, data.CostType, data.Amount, data.Status, data.DueDate, data.LedgerLink)

	return &Email{
		To:       []string{toEmail},
		Subject:  subject,
		TextBody: text,
	}
}

// logEmailToConsole logs email details in test mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (test mode - not actually sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	if email.TextBody != "" {
		log.Printf("Body:\n%s", email.TextBody)
	}
	log.Println(separator)
}
