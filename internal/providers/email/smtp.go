package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPProvider struct {
	cfg SMTPConfig
	log *zap.Logger
}

func NewSMTP(cfg SMTPConfig, log *zap.Logger) *SMTPProvider {
	return &SMTPProvider{cfg: cfg, log: log.Named("email.smtp")}
}

func (p *SMTPProvider) Send(ctx context.Context, msg Message) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", p.cfg.From)
	fmt.Fprintf(&sb, "To: %s\r\n", msg.To)
	fmt.Fprintf(&sb, "Subject: %s\r\n", msg.Subject)
	sb.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")
	sb.WriteString(msg.Body)

	addr := fmt.Sprintf("%s:%d", p.cfg.Host, p.cfg.Port)
	var auth smtp.Auth
	if p.cfg.Username != "" {
		auth = smtp.PlainAuth("", p.cfg.Username, p.cfg.Password, p.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, p.cfg.From, []string{msg.To}, []byte(sb.String())); err != nil {
		p.log.Warn("smtp send failed", zap.String("to", msg.To), zap.Error(err))
		return err
	}
	return nil
}
