package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/srirupaul05/foodbridge/internal/app/config"
)

// SMTPMailer sends transactional mail over plain SMTP.
type SMTPMailer struct {
	host   string
	port   int
	sender string
	dialer *gomail.Dialer
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		host:   cfg.Host,
		port:   cfg.Port,
		sender: cfg.SenderEmail,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.SenderEmail, cfg.Password),
	}
}

func (m *SMTPMailer) SendVerificationEmail(toEmail, name, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Verify your FoodBridge email")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour FoodBridge verification code is %s. It expires in 15 minutes.\n\nIf you didn't sign up, ignore this email.\n",
		name, code))

	return m.dialer.DialAndSend(msg)
}
