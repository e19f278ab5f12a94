package service

import (
	"fmt"
	"net/smtp"

	"github.com/hiresphere/api/internal/config"
	"go.uber.org/zap"
)

// EmailSender delivers one plain-text message. Delivery is best-effort
// everywhere it is used; callers log errors and move on.
type EmailSender interface {
	Send(to, subject, body string) error
}

type SMTPEmailService struct {
	cfg    *config.SMTPConfig
	logger *zap.Logger
}

func NewSMTPEmailService(logger *zap.Logger) *SMTPEmailService {
	return &SMTPEmailService{cfg: config.LoadSMTPConfig(), logger: logger}
}

func (s *SMTPEmailService) Send(to, subject, body string) error {
	if !s.cfg.Configured() {
		return fmt.Errorf("smtp not configured")
	}

	addr := s.cfg.Host + ":" + s.cfg.Port
	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}

	msg := []byte("From: " + s.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n")

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	s.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// InvitationEmail renders the interview invitation sent on link creation and
// resend.
func InvitationEmail(candidateName, position, company, interviewURL string, expiresInDays int) (subject, body string) {
	subject = fmt.Sprintf("Your Interview Link for %s at %s", position, company)
	body = fmt.Sprintf(`Dear %s,

You have been invited to complete an online interview for the %s position at %s.

Please click the following link to start your interview:
%s

This link will expire in %d days. Please complete your interview before then.

Best regards,
%s Hiring Team`, candidateName, position, company, interviewURL, expiresInDays, company)
	return subject, body
}
