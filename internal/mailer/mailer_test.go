package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srirupaul05/foodbridge/internal/app/config"
)

func TestNewSMTPMailer(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{
		Host:        "smtp.example.com",
		Port:        587,
		SenderEmail: "noreply@foodbridge.org",
		Password:    "secret",
	})

	assert.NotNil(t, m)
	assert.Equal(t, "noreply@foodbridge.org", m.sender)
	assert.Equal(t, "smtp.example.com", m.host)
	assert.Equal(t, 587, m.port)
}
