package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Amanisai/Emart/internal/config"
	"github.com/Amanisai/Emart/pkg/logger"
)

// Service sends transactional mail over SMTP. When no host is
// configured it degrades to logging the message, which keeps local
// development working without a mail relay.
type Service struct {
	cfg config.EmailConfig
}

func NewService(cfg config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

func (s *Service) Enabled() bool {
	return s.cfg.Host != ""
}

// Send delivers a plain-text message to a single recipient
func (s *Service) Send(to, subject, body string) error {
	if !s.Enabled() {
		logger.Info("Email delivery skipped (SMTP not configured)", map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
		return nil
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Email sent", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})
	return nil
}
