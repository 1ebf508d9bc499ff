package digest

import (
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"github.com/chaofiber/ai-news-bot/internal/config"
)

// Sender delivers rendered digests over SMTP with STARTTLS
type Sender struct {
	cfg      config.EmailConfig
	password string
}

// NewSender creates a sender. The password comes from the caller
// (typically the EMAIL_PASSWORD environment variable).
func NewSender(cfg config.EmailConfig, password string) *Sender {
	return &Sender{cfg: cfg, password: password}
}

// Send renders the digest and delivers it to the configured recipient as a
// multipart/alternative message with plain text and HTML parts
func (s *Sender) Send(d *Digest) error {
	if !s.cfg.Configured() {
		return fmt.Errorf("email is not configured")
	}
	if s.password == "" {
		return fmt.Errorf("email password is not set")
	}

	html, err := d.RenderHTML()
	if err != nil {
		return err
	}

	msg, err := buildMessage(s.cfg.Sender, s.cfg.Recipient, d.Subject(), d.RenderText(), html)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPServer, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.Sender, s.password, s.cfg.SMTPServer)

	if err := smtp.SendMail(addr, auth, s.cfg.Sender, []string{s.cfg.Recipient}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildMessage assembles a multipart/alternative MIME message. The plain
// text part comes first so HTML-capable clients prefer the HTML part.
func buildMessage(from, to, subject, text, html string) ([]byte, error) {
	var body strings.Builder
	mw := multipart.NewWriter(&body)

	headers := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: multipart/alternative; boundary=%q\r\n\r\n",
		from, to, subject, mw.Boundary(),
	)

	textPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(text)); err != nil {
		return nil, err
	}

	htmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=UTF-8"},
	})
	if err != nil {
		return nil, err
	}
	if _, err := htmlPart.Write([]byte(html)); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}

	return []byte(headers + body.String()), nil
}
