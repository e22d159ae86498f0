package mailer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"screenhub/internal/config"

	"gopkg.in/gomail.v2"
)

var ErrNotConfigured = errors.New("mailer not configured")

// Notifier delivers a screening invitation. Implementations block on the
// network; callers run sends off the request path with their own timeout.
type Notifier interface {
	SendInvitation(ctx context.Context, recipientEmail, candidateName, testLink string) error
}

type SMTPNotifier struct {
	cfg    config.SMTPConfig
	logger *log.Logger
}

func NewSMTPNotifier(cfg config.SMTPConfig, logger *log.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, logger: logger}
}

func (n *SMTPNotifier) SendInvitation(ctx context.Context, recipientEmail, candidateName, testLink string) error {
	recipientEmail = strings.TrimSpace(recipientEmail)
	if recipientEmail == "" || !strings.Contains(recipientEmail, "@") {
		return fmt.Errorf("invalid recipient email %q", recipientEmail)
	}
	if n == nil || strings.TrimSpace(n.cfg.Host) == "" || strings.TrimSpace(n.cfg.FromEmail) == "" {
		return ErrNotConfigured
	}

	name := strings.TrimSpace(candidateName)
	if name == "" {
		name = "there"
	}

	htmlBody := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>You have been invited to complete a short screening questionnaire.</p>
<p><a href="%s" style="display:inline-block;padding:10px 20px;text-decoration:none;border-radius:5px;background-color:#007bff;color:#fff;">Start screening</a></p>
<p>The link is personal; please do not share it.</p>`,
		name, testLink,
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("%s <%s>", n.cfg.FromName, n.cfg.FromEmail))
	msg.SetHeader("To", recipientEmail)
	msg.SetHeader("Subject", "Your screening questionnaire")
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.Username, n.cfg.Password)

	// gomail has no context support; run the dial in a goroutine so the
	// caller's deadline still bounds the attempt.
	errCh := make(chan error, 1)
	go func() {
		errCh <- dialer.DialAndSend(msg)
	}()

	select {
	case err := <-errCh:
		if err != nil && n.logger != nil {
			n.logger.Printf("[Mailer] send failed to=%s err=%v", recipientEmail, err)
		}
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
