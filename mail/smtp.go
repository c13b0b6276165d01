// Package mail delivers OTP codes over SMTP.
package mail

import (
	"fmt"
	"net/smtp"

	"restohub-api/config"

	log "github.com/sirupsen/logrus"
)

// SMTPSender implements otp.Sender over plain-auth SMTP.
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender returns nil when no SMTP host is configured so callers
// can report the transport as unavailable.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	if cfg.Host == "" {
		return nil
	}
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) SendOTP(email, code string) error {
	body := fmt.Sprintf(
		"Your RestoHub verification code is %s.\r\n\r\n"+
			"It expires in 10 minutes. If you did not request this, ignore this email.\r\n",
		code)
	msg := []byte("To: " + email + "\r\n" +
		"From: " + s.cfg.From + "\r\n" +
		"Subject: Your verification code\r\n" +
		"\r\n" + body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := s.cfg.Host + ":" + s.cfg.Port
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{email}, msg); err != nil {
		log.WithError(err).WithField("to", email).Warn("OTP mail dispatch failed")
		return err
	}
	return nil
}
