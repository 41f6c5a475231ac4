package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"gopkg.in/gomail.v2"
)

type Attachment struct {
	Filename string
	Content  []byte
}

type Message struct {
	To          []string
	Subject     string
	BodyHTML    string
	BodyText    string
	Attachments []Attachment
}

type EmailSender interface {
	Send(ctx context.Context, msg Message) error
}

type smtpSender struct {
	from string
	log  logger.Logger
	d    *gomail.Dialer
}

func NewSMTPSender(cfg config.SMTPConfig, log logger.Logger) (EmailSender, error) {
	if cfg.Host == "" || cfg.Port == 0 || cfg.SenderEmail == "" {
		return nil, errors.New("SMTP host, port, and sender email must be configured")
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	serverName := cfg.ServerName
	if serverName == "" {
		serverName = cfg.Host
	}
	switch strings.ToLower(cfg.Encryption) {
	case "ssl":
		dialer.SSL = true
		dialer.TLSConfig = &tls.Config{ServerName: serverName, MinVersion: tls.VersionTLS12}
	case "tls", "starttls":
		dialer.TLSConfig = &tls.Config{ServerName: serverName, MinVersion: tls.VersionTLS12}
	}

	return &smtpSender{from: cfg.SenderEmail, log: log, d: dialer}, nil
}

func buildMessage(from string, msg Message) (*gomail.Message, error) {
	if len(msg.To) == 0 {
		return nil, errors.New("no recipients provided for email")
	}
	if msg.BodyHTML == "" && msg.BodyText == "" {
		return nil, errors.New("email body (HTML or Text) must be provided")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)

	if msg.BodyHTML != "" {
		m.SetBody("text/html", msg.BodyHTML)
		if msg.BodyText != "" {
			m.AddAlternative("text/plain", msg.BodyText)
		}
	} else {
		m.SetBody("text/plain", msg.BodyText)
	}

	for _, a := range msg.Attachments {
		content := a.Content
		m.Attach(a.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}
	return m, nil
}

func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	m, err := buildMessage(s.from, msg)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- s.d.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		s.log.Warnf("Email sending to %v (subject: %s) cancelled or timed out by context: %v", msg.To, msg.Subject, ctx.Err())
		return fmt.Errorf("email sending cancelled or timed out: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			s.log.Errorf("Failed to send email to %v, subject '%s': %v", msg.To, msg.Subject, err)
			return fmt.Errorf("failed to send email: %w", err)
		}
	}

	s.log.Infof("Email sent successfully to %v, subject: %s", msg.To, msg.Subject)
	return nil
}

// NoopSender logs instead of sending. Used when SMTP is disabled.
type NoopSender struct {
	Log logger.Logger
}

func (n NoopSender) Send(_ context.Context, msg Message) error {
	n.Log.Infof("SMTP disabled, skipping email to %v: %s", msg.To, msg.Subject)
	return nil
}
