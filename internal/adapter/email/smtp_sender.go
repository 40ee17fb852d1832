package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/app/config"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/logger"
)

type EmailSender interface {
	Send(ctx context.Context, to []string, subject, bodyHTML, bodyText string) error
}

// Message is a composed e-mail, kept separate from sending so it can be
// checked without an SMTP server.
type Message struct {
	From     string
	To       []string
	Subject  string
	BodyHTML string
	BodyText string
}

func buildMessage(msg Message) (*gomail.Message, error) {
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("no recipients provided for email")
	}
	if msg.BodyHTML == "" && msg.BodyText == "" {
		return nil, fmt.Errorf("email body (HTML or Text) must be provided")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
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
	return m, nil
}

type smtpSender struct {
	cfg config.SMTPConfig
	log logger.Logger
	d   *gomail.Dialer
}

func NewSMTPSender(cfg config.SMTPConfig, log logger.Logger) (EmailSender, error) {
	if cfg.Host == "" || cfg.Port == 0 || cfg.SenderEmail == "" {
		return nil, fmt.Errorf("SMTP host, port, and sender email must be configured")
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	encryptionLower := strings.ToLower(cfg.Encryption)
	serverName := cfg.ServerName
	if serverName == "" {
		serverName = cfg.Host
	}

	if encryptionLower == "ssl" {
		dialer.SSL = true
		dialer.TLSConfig = &tls.Config{ServerName: serverName, MinVersion: tls.VersionTLS12}
	} else if encryptionLower == "tls" || encryptionLower == "starttls" {
		if dialer.TLSConfig == nil {
			dialer.TLSConfig = &tls.Config{ServerName: serverName, MinVersion: tls.VersionTLS12}
		} else {
			dialer.TLSConfig.ServerName = serverName
			dialer.TLSConfig.MinVersion = tls.VersionTLS12
		}
	}

	return &smtpSender{
		cfg: cfg,
		log: log,
		d:   dialer,
	}, nil
}

func (s *smtpSender) Send(ctx context.Context, to []string, subject, bodyHTML, bodyText string) error {
	m, err := buildMessage(Message{
		From:     s.cfg.SenderEmail,
		To:       to,
		Subject:  subject,
		BodyHTML: bodyHTML,
		BodyText: bodyText,
	})
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- s.d.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		s.log.Warnf("Email sending to %v (subject: %s) cancelled or timed out by context: %v", to, subject, ctx.Err())
		return fmt.Errorf("email sending cancelled or timed out: %w", ctx.Err())
	case err = <-done:
		if err != nil {
			s.log.Errorf("Failed to send email to %v, subject '%s': %v", to, subject, err)
			return fmt.Errorf("failed to send email: %w", err)
		}
	}

	s.log.Infof("Email sent successfully to %v, subject: %s", to, subject)
	return nil
}
