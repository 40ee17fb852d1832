package email

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/app/config"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/platform/logger"
)

func TestNewSMTPSender_RequiresHost(t *testing.T) {
	_, err := NewSMTPSender(config.SMTPConfig{Port: 587, SenderEmail: "a@b.co"}, logger.NewNopLogger())
	assert.Error(t, err)
}

func TestNewSMTPSender_SSL(t *testing.T) {
	sender, err := NewSMTPSender(config.SMTPConfig{
		Host: "smtp.example.com", Port: 465, SenderEmail: "bookings@example.com", Encryption: "SSL",
	}, logger.NewNopLogger())
	require.NoError(t, err)

	s := sender.(*smtpSender)
	assert.True(t, s.d.SSL)
	assert.Equal(t, "smtp.example.com", s.d.TLSConfig.ServerName)
}

func TestBuildMessage(t *testing.T) {
	m, err := buildMessage(Message{
		From:     "bookings@example.com",
		To:       []string{"jane@example.com"},
		Subject:  "Booking confirmed",
		BodyHTML: "<p>See you soon</p>",
		BodyText: "See you soon",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Subject: Booking confirmed")
	assert.Contains(t, out, "text/plain")
	assert.Contains(t, out, "text/html")
}

func TestBuildMessage_Invalid(t *testing.T) {
	_, err := buildMessage(Message{Subject: "x", BodyText: "y"})
	assert.Error(t, err)

	_, err = buildMessage(Message{To: []string{"a@b.co"}, Subject: "x"})
	assert.Error(t, err)
}

func TestSend_CancelledContext(t *testing.T) {
	sender, err := NewSMTPSender(config.SMTPConfig{
		Host: "127.0.0.1", Port: 1, SenderEmail: "bookings@example.com", Encryption: "none",
	}, logger.NewNopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = sender.Send(ctx, []string{"jane@example.com"}, "Hi", "", "Hello")
	assert.Error(t, err)
}
