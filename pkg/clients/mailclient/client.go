// Package mailclient sends capacity reports over SMTP.
package mailclient

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/finaspirants/sprintcap/internal/config"
)

// sendThrottle is the minimum gap between consecutive sends, to stay well
// under provider rate limits.
const sendThrottle = 3 * time.Second

// Client wraps an SMTP connection for report delivery.
type Client struct {
	settings     config.EmailSettings
	logger       *zap.Logger
	lastSendTime time.Time
	sendMutex    sync.Mutex
}

// NewClient creates a mail client from the email settings. Settings are
// validated at send time, not here, so a client can always be constructed.
func NewClient(settings config.EmailSettings, logger *zap.Logger) *Client {
	return &Client{
		settings: settings,
		logger:   logger,
	}
}

// Recipients builds the recipient list: the scrum master plus any
// comma-separated addresses in ADDITIONAL_RECIPIENTS, deduplicated in order.
func (c *Client) Recipients() []string {
	var recipients []string
	if c.settings.ScrumMasterEmail != "" {
		recipients = append(recipients, c.settings.ScrumMasterEmail)
	}
	for _, addr := range strings.Split(os.Getenv("ADDITIONAL_RECIPIENTS"), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}

	seen := make(map[string]bool)
	out := recipients[:0]
	for _, addr := range recipients {
		if !seen[addr] {
			seen[addr] = true
			out = append(out, addr)
		}
	}
	return out
}

// SendReport sends the capacity report: the email body as HTML with a plain
// text alternative, and the full HTML report as an attachment.
func (c *Client) SendReport(ctx context.Context, subject, textBody, htmlBody, attachmentHTML string, recipients []string) error {
	if c.settings.SenderEmail == "" || len(recipients) == 0 {
		return fmt.Errorf("email configuration incomplete: sender and at least one recipient required")
	}

	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if wait := sendThrottle - time.Since(c.lastSendTime); wait > 0 && !c.lastSendTime.IsZero() {
		c.logger.Debug("Throttling email send", zap.Duration("wait", wait))
		time.Sleep(wait)
	}

	msg := mail.NewMsg()
	if err := msg.From(c.settings.SenderEmail); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", c.settings.SenderEmail, err)
	}
	if err := msg.To(recipients...); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, textBody)
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)

	if attachmentHTML != "" {
		name := fmt.Sprintf("sprint_capacity_report_%s.html", time.Now().Format("20060102"))
		msg.AttachReadSeeker(name, strings.NewReader(attachmentHTML))
	}

	client, err := c.newSMTPClient()
	if err != nil {
		return err
	}

	c.logger.Info("Sending capacity report",
		zap.String("subject", subject),
		zap.Strings("recipients", recipients),
	)

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.lastSendTime = time.Now()
	return nil
}

func (c *Client) newSMTPClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(c.settings.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	// DONOTREPLY-style relays accept unauthenticated mail from inside the
	// network; only authenticate when a password is configured.
	if c.settings.SenderPassword != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(c.settings.SenderEmail),
			mail.WithPassword(c.settings.SenderPassword),
		)
	}

	client, err := mail.NewClient(c.settings.SMTPServer, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return client, nil
}
