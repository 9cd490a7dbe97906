// Package mailer delivers account-verification emails through a pluggable
// transport, selected by configuration.
package mailer

import (
	"fmt"
	"net/smtp"
	"net/url"

	"github.com/charadle/charadle-backend/internal/platform/config"
	"github.com/rs/zerolog/log"
)

// Sender delivers a single email.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// Default is the process-wide sender, wired by Init.
var Default Sender = consoleSender{}

// Init selects the transport from configuration.
func Init(cfg config.MailConfig) {
	switch cfg.Transport {
	case "smtp":
		Default = &smtpSender{cfg: cfg}
	default:
		Default = consoleSender{}
	}
}

// SendEmailVerification sends the verification link for a pending account.
func SendEmailVerification(to, tokenValue string) error {
	verifyURL := fmt.Sprintf(
		"%s/api/auth/verify-email?token=%s&email=%s",
		config.Cfg.AppBaseURL, tokenValue, url.QueryEscape(to),
	)
	body := fmt.Sprintf(
		"<p>Confirme seu e-mail clicando no link abaixo:</p>"+
			"<p><a href=%q target=\"_blank\">Verificar e-mail</a></p>"+
			"<p>Link expira em 24 horas.</p>",
		verifyURL,
	)
	return Default.Send(to, "Verifique seu e-mail", body)
}

// consoleSender writes mail to the log. Used in development and tests.
type consoleSender struct{}

func (consoleSender) Send(to, subject, htmlBody string) error {
	log.Info().Str("to", to).Str("subject", subject).Msg("mailer: console delivery")
	log.Debug().Str("body", htmlBody).Msg("mailer: message body")
	return nil
}

// smtpSender delivers through a plain SMTP relay.
type smtpSender struct {
	cfg config.MailConfig
}

func (s *smtpSender) Send(to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	msg := []byte(
		"From: " + s.cfg.From + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
			"\r\n" + htmlBody + "\r\n",
	)
	var auth smtp.Auth
	if s.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	}
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg)
}
