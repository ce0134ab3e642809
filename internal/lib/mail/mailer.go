// Package mail sends the registration confirmation e-mails over SMTP
// with STARTTLS.
package mail

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"

	"github.com/NikolaMax/ticketing-backend/internal/config"
	"github.com/NikolaMax/ticketing-backend/internal/lib/sl"
)

// Mailer delivers confirmation links to freshly registered users.
type Mailer struct {
	cfg     config.SMTP
	baseURL string
	log     *slog.Logger
}

// NewMailer creates a Mailer. baseURL is the public prefix of the
// confirmation endpoint, e.g. "https://host/auth/confirmRegistration".
func NewMailer(cfg config.SMTP, baseURL string, log *slog.Logger) *Mailer {
	return &Mailer{cfg: cfg, baseURL: baseURL, log: log}
}

// SendConfirmation mails the activation link for the encoded user id.
func (m *Mailer) SendConfirmation(to, username, encodedID string) error {
	const op = "mail.SendConfirmation"

	link := strings.TrimSuffix(m.baseURL, "/") + "/" + encodedID
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Confirm your registration\r\n\r\n"+
			"Hello %s,\r\n\r\nFollow the link to activate your account:\r\n%s\r\n",
		m.cfg.SMTPFrom, to, username, link)

	client, err := m.connect()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if quitErr := client.Quit(); quitErr != nil {
			m.log.Error("failed to quit SMTP session", sl.Err(quitErr))
		}
	}()

	if err = client.Mail(m.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (m *Mailer) connect() (*smtp.Client, error) {
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		m.log.Error("failed to dial SMTP server", sl.Err(err))
		return nil, fmt.Errorf("failed to dial SMTP server: %w", err)
	}

	client, err := smtp.NewClient(conn, m.cfg.SMTPHost)
	if err != nil {
		m.log.Error("failed to create SMTP client", sl.Err(err))
		if closeErr := conn.Close(); closeErr != nil {
			m.log.Error("failed to close connection", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if ok, _ := client.Extension("STARTTLS"); !ok {
		if closeErr := client.Close(); closeErr != nil {
			m.log.Error("failed to close client", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("smtp server does not support STARTTLS")
	}
	tlsConfig := &tls.Config{
		ServerName: m.cfg.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		m.log.Error("failed to start TLS", sl.Err(err))
		if closeErr := client.Close(); closeErr != nil {
			m.log.Error("failed to close client", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	if err = client.Auth(auth); err != nil {
		m.log.Error("failed to authenticate", sl.Err(err))
		if closeErr := client.Close(); closeErr != nil {
			m.log.Error("failed to close client", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	return client, nil
}
