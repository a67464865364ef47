package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/lumenjournal/insights/internal/config"
	"github.com/lumenjournal/insights/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Service delivers weekly digests via the configured channels: a JSON webhook
// (consumed by the gateway, which fans out to the user) and/or SMTP email.
type Service struct {
	config *config.Config
	client *resty.Client
}

var _ NotificationInterface = (*Service)(nil)

// webhookDigest is the payload posted to the digest webhook.
type webhookDigest struct {
	UserID       string    `json:"user_id"`
	WeekStart    time.Time `json:"week_start"`
	WeekEnd      time.Time `json:"week_end"`
	Summary      string    `json:"summary"`
	TopThemes    []string  `json:"top_themes"`
	AvgSentiment float64   `json:"avg_sentiment"`
	EntryCount   int       `json:"entry_count"`
}

// NewService creates a new notification service.
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendWeeklyDigest sends the summary through every configured channel. A
// failure on one channel does not stop the others; errors are aggregated.
func (s *Service) SendWeeklyDigest(ctx context.Context, userID string, summary *models.WeeklySummary) error {
	var errs []string

	if s.config.DigestWebhookURL != "" {
		if err := s.sendToWebhook(ctx, userID, summary); err != nil {
			logrus.Errorf("Failed to send digest webhook: %v", err)
			errs = append(errs, fmt.Sprintf("webhook: %v", err))
		} else {
			logrus.Infof("Sent weekly digest webhook for user %s", userID)
		}
	}

	if s.config.DigestEmail != "" {
		if err := s.sendEmail(userID, summary); err != nil {
			logrus.Errorf("Failed to send digest email: %v", err)
			errs = append(errs, fmt.Sprintf("email: %v", err))
		} else {
			logrus.Infof("Sent weekly digest email for user %s", userID)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("digest delivery errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (s *Service) sendToWebhook(ctx context.Context, userID string, summary *models.WeeklySummary) error {
	payload := webhookDigest{
		UserID:       userID,
		WeekStart:    summary.WeekStart,
		WeekEnd:      summary.WeekEnd,
		Summary:      summary.Summary,
		TopThemes:    summary.TopThemes,
		AvgSentiment: summary.AvgSentiment,
		EntryCount:   summary.EntryCount,
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(s.config.DigestWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to post digest: %w", err)
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 202 {
		return fmt.Errorf("digest webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}
	return nil
}

func (s *Service) sendEmail(userID string, summary *models.WeeklySummary) error {
	subject := fmt.Sprintf("Weekly Journal Digest - %s (%d entries)",
		summary.WeekStart.Format("Jan 2"), summary.EntryCount)

	htmlBody, err := s.buildEmailHTML(summary)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.DigestEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", s.buildEmailText(userID, summary))
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *Service) buildEmailHTML(summary *models.WeeklySummary) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Weekly Journal Digest</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #5b8a72; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .themes { color: #444; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Your Week in Review</h1>
        <p>{{.WeekStart.Format "January 2"}} to {{.WeekEnd.Format "January 2, 2006"}}</p>
    </div>

    <div class="summary">
        <p>{{.Summary}}</p>
        <p><strong>Entries this week:</strong> {{.EntryCount}}</p>
        <p><strong>Average sentiment:</strong> {{printf "%.2f" .AvgSentiment}}</p>
        {{if .TopThemes}}
        <p class="themes"><strong>Top themes:</strong> {{join .TopThemes ", "}}</p>
        {{end}}
    </div>

    <hr>
    <p><small>This digest was generated from aggregated journaling data only.</small></p>
</body>
</html>
`

	t := template.New("digest").Funcs(template.FuncMap{
		"join": strings.Join,
	})
	t, err := t.Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, summary); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Service) buildEmailText(userID string, summary *models.WeeklySummary) string {
	var text strings.Builder

	text.WriteString("Your Week in Review\n")
	text.WriteString(fmt.Sprintf("%s to %s\n\n",
		summary.WeekStart.Format("Jan 2"), summary.WeekEnd.Format("Jan 2, 2006")))
	text.WriteString(summary.Summary)
	text.WriteString("\n\n")
	text.WriteString(fmt.Sprintf("Entries this week: %d\n", summary.EntryCount))
	text.WriteString(fmt.Sprintf("Average sentiment: %.2f\n", summary.AvgSentiment))
	if len(summary.TopThemes) > 0 {
		text.WriteString(fmt.Sprintf("Top themes: %s\n", strings.Join(summary.TopThemes, ", ")))
	}
	text.WriteString(fmt.Sprintf("\nUser: %s\n", userID))
	text.WriteString("\n---\nThis digest was generated from aggregated journaling data only.\n")

	return text.String()
}
