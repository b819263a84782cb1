// Package email envía notificaciones transaccionales via SMTP.
// Todo es best-effort: un fallo de envío se loguea y no afecta la operación.
package email

import (
	"context"
	"fmt"

	mail "github.com/go-mail/mail"

	"github.com/dropDatabas3/tienda/internal/observability/logger"
)

// SMTPConfig son los parámetros de conexión SMTP.
type SMTPConfig struct {
	Host string
	Port int
	From string
	User string
	Pass string
}

// SMTPSender envía emails usando SMTP.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender crea un sender SMTP. Host vacío => nil (deshabilitado).
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Host == "" {
		return nil
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPSender{cfg: cfg}
}

// SendWelcome envía el email de bienvenida post-registro.
func (s *SMTPSender) SendWelcome(ctx context.Context, to, username string) error {
	log := logger.From(ctx).With(
		logger.Component("email.smtp"),
		logger.Op("SendWelcome"),
	)

	m := mail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Bienvenido a tu tienda")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hola %s,\n\nTu cuenta y tu tienda ya están listas.\n", username))

	d := mail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Pass)
	if err := d.DialAndSend(m); err != nil {
		log.Warn("smtp send failed", logger.Err(err))
		return fmt.Errorf("smtp send: %w", err)
	}

	log.Debug("welcome email sent")
	return nil
}
