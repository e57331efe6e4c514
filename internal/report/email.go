package report

import (
	"context"
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"peakscan/internal/scan"
	"peakscan/pkg/config"
)

// dialer lets tests substitute the SMTP transport
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailSink sends a plain-text digest of the scan result. An empty
// result still produces a message with an explicit "no matches" body.
type EmailSink struct {
	cfg    config.SMTPConfig
	dialer dialer
}

// NewEmailSink creates an email sink from SMTP configuration
func NewEmailSink(cfg config.SMTPConfig) *EmailSink {
	return &EmailSink{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Name returns the sink name
func (s *EmailSink) Name() string {
	return "email"
}

// Publish composes and sends the digest
func (s *EmailSink) Publish(ctx context.Context, result *scan.Result) error {
	recipients := splitRecipients(s.cfg.To)
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", fmt.Sprintf("Scan results %s — %d match(es)",
		result.Timestamp.Format("2006-01-02"), len(result.Records)))
	m.SetBody("text/plain", Digest(result))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	return nil
}

// Digest renders the plain-text body shared with the console summary
func Digest(result *scan.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Scan run %s\n", result.Timestamp.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Thresholds: min market cap %.0f, min avg volume %.0f, max pct to high %.4f\n",
		result.Thresholds.MinMarketCap, result.Thresholds.MinAvgVolume, result.Thresholds.MaxPctToHigh)
	fmt.Fprintf(&b, "Attempted %d, succeeded %d, accepted %d\n\n",
		result.Attempted, result.Succeeded, result.Accepted)

	if len(result.Records) == 0 {
		b.WriteString("No matches today.\n")
		return b.String()
	}

	b.WriteString(strings.Join(Columns, "\t"))
	b.WriteString("\n")
	for _, rec := range result.Records {
		b.WriteString(strings.Join(renderRow(rec), "\t"))
		b.WriteString("\n")
	}

	return b.String()
}

// splitRecipients parses the comma-separated recipient list
func splitRecipients(to string) []string {
	parts := strings.Split(to, ",")
	recipients := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			recipients = append(recipients, p)
		}
	}
	return recipients
}
