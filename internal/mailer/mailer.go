package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// Config holds SMTP settings, loaded from the app configuration.
type Config struct {
	Host     string
	Port     string
	From     string
	Password string
}

func (c Config) addr() string {
	return c.Host + ":" + c.Port
}

// SendContributionEmail notifies a contributor about their gift
// contribution: the pending hold, the receipt, or the lapsed hold.
func SendContributionEmail(log *zerolog.Logger, cfg Config, status, recipientEmail, recipientName string, timeoutMinutes int) error {
	var subject, body string
	switch status {
	case "pending":
		subject = "Your gift contribution is reserved"
		body = fmt.Sprintf("Hi %s,\n\nWe reserved your gift contribution. Please complete the payment within %d minutes, otherwise the reservation lapses.", recipientName, timeoutMinutes)
	case "paid":
		subject = "Thank you for your gift!"
		body = fmt.Sprintf("Hi %s,\n\nYour gift contribution went through. The couple thanks you from the bottom of their hearts!", recipientName)
	case "expired":
		subject = "Your gift reservation lapsed"
		body = fmt.Sprintf("Hi %s,\n\nYour gift contribution was not paid within the confirmation window and has been released. Feel free to try again.", recipientName)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		cfg.From, recipientEmail, subject, body,
	)

	auth := smtp.PlainAuth("", cfg.From, cfg.Password, cfg.Host)

	if err := smtp.SendMail(cfg.addr(), auth, cfg.From, []string{recipientEmail}, []byte(msg)); err != nil {
		log.Warn().Msgf("failed to send email to %s: %v", recipientEmail, err)
		return fmt.Errorf("send email: %w", err)
	}

	log.Info().Msgf("email sent to %s (status: %s)", recipientEmail, status)
	return nil
}
