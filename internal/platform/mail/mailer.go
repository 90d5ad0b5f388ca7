package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	netmail "net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/phrazzld/lexilearn-api/internal/config"
	"github.com/phrazzld/lexilearn-api/internal/platform/logger"
)

// VerificationSubject is the subject line of verification emails.
const VerificationSubject = "LexiLearn verification code"

const defaultTimeout = 30 * time.Second

var verificationTemplate = template.Must(template.New("verification").Parse(
	`Your {{.AppName}} verification code is: {{.Code}}

The code is valid for {{.Minutes}} minutes. Do not share it with anyone.
`))

type verificationData struct {
	AppName string
	Code    string
	Minutes int
}

// SMTPMailer sends mail through a single configured SMTP server.
// Each call opens its own connection.
type SMTPMailer struct {
	cfg    config.MailConfig
	from   string
	logger *slog.Logger
}

// NewSMTPMailer creates a mailer for cfg. The envelope sender is cfg.Username.
func NewSMTPMailer(cfg config.MailConfig, logger *slog.Logger) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("mail host cannot be empty")
	}
	if cfg.Username == "" {
		return nil, fmt.Errorf("mail username cannot be empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	from := (&netmail.Address{Name: cfg.FromName, Address: cfg.Username}).String()

	return &SMTPMailer{
		cfg:    cfg,
		from:   from,
		logger: logger.With(slog.String("component", "mailer")),
	}, nil
}

// SendVerificationCode emails code to the given address with its validity window.
func (m *SMTPMailer) SendVerificationCode(ctx context.Context, to, code string, ttl time.Duration) error {
	var body bytes.Buffer
	err := verificationTemplate.Execute(&body, verificationData{
		AppName: "LexiLearn",
		Code:    code,
		Minutes: int(ttl.Minutes()),
	})
	if err != nil {
		return fmt.Errorf("failed to render verification email: %w", err)
	}

	return m.Send(ctx, to, VerificationSubject, body.String())
}

// Send delivers a plain-text message to a single recipient.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	log := logger.FromContextOrDefault(ctx, m.logger)
	start := time.Now()

	err := m.deliver(ctx, to, buildMessage(m.from, to, subject, body, start))
	if err != nil {
		log.Error("failed to send email",
			slog.String("to", to),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return err
	}

	log.Info("email sent",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (m *SMTPMailer) deliver(ctx context.Context, to string, message []byte) error {
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))

	dialer := &net.Dialer{Timeout: m.cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server %s: %w", addr, err)
	}

	deadline := time.Now().Add(m.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	if m.cfg.UseSSL {
		tlsConn := tls.Client(conn, &tls.Config{ServerName: m.cfg.Host})
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			_ = conn.Close()
			return fmt.Errorf("failed TLS handshake with %s: %w", addr, err)
		}
		conn = tlsConn
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() { _ = c.Close() }()

	if err := c.Hello("localhost"); err != nil {
		return fmt.Errorf("failed to send HELO: %w", err)
	}

	if !m.cfg.UseSSL {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
				return fmt.Errorf("failed to start TLS: %w", err)
			}
		}
	}

	if m.cfg.Password != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
			if err := c.Auth(auth); err != nil {
				return fmt.Errorf("failed to authenticate (user: %s): %w", m.cfg.Username, err)
			}
		}
	}

	if err := c.Mail(m.cfg.Username); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient (%s): %w", to, err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return c.Quit()
}

// buildMessage renders RFC 5322 headers followed by a CRLF-normalized body.
func buildMessage(from, to, subject, body string, now time.Time) []byte {
	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("Date: " + now.Format(time.RFC1123Z) + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(strings.ReplaceAll(strings.ReplaceAll(body, "\r\n", "\n"), "\n", "\r\n"))
	return []byte(msg.String())
}
