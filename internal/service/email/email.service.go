package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"time"

	"auth-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Config struct {
	SMTPHost    string
	SMTPPort    string
	Username    string
	Password    string
	SenderEmail string
	SenderName  string
}

// Sender delivers OTP and confirmation mail over SMTP (implicit TLS). Every
// attempt is recorded in the email log; delivery failures are returned to the
// caller but never retried here.
type Sender struct {
	cfg    Config
	repo   *repository.EmailLogRepo
	logger *zap.Logger
}

func NewSender(cfg Config, repo *repository.EmailLogRepo, logger *zap.Logger) *Sender {
	return &Sender{cfg: cfg, repo: repo, logger: logger}
}

// SendOTP mails a one-time code for the given purpose.
func (s *Sender) SendOTP(ctx context.Context, userID, to, purpose, code string) error {
	body, err := renderOTPBody(purpose, to, code)
	if err != nil {
		return err
	}
	return s.send(ctx, userID, to, subjectFor(purpose), body, purpose)
}

// SendWelcome mails the post-registration confirmation.
func (s *Sender) SendWelcome(ctx context.Context, userID, to, name string) error {
	body, err := renderWelcomeBody(to, name)
	if err != nil {
		return err
	}
	return s.send(ctx, userID, to, "Welcome to "+s.cfg.SenderName, body, PurposeWelcome)
}

func (s *Sender) send(ctx context.Context, userID, to, subject, body, emailType string) error {
	start := time.Now()
	err := s.deliver(to, subject, body)
	duration := time.Since(start)

	status := "sent"
	errorMessage := ""
	if err != nil {
		status = "failed"
		errorMessage = err.Error()
		s.logger.Error("email send failed",
			zap.String("recipient", to),
			zap.String("subject", subject),
			zap.String("type", emailType),
			zap.String("user_id", userID),
			zap.Duration("duration", duration),
			zap.Error(err))
	} else {
		s.logger.Info("email sent",
			zap.String("recipient", to),
			zap.String("subject", subject),
			zap.String("type", emailType),
			zap.String("user_id", userID),
			zap.Duration("duration", duration))
	}

	if s.repo != nil {
		entry := repository.EmailLog{
			ID:             uuid.NewString(),
			UserID:         userID,
			Subject:        subject,
			RecipientEmail: to,
			Type:           emailType,
			Status:         status,
			ErrorMessage:   errorMessage,
			SentAt:         time.Now(),
		}
		// async so delivery latency never blocks on the audit write
		go func() {
			logCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if logErr := s.repo.LogEmail(logCtx, entry); logErr != nil {
				s.logger.Warn("email log insert failed", zap.Error(logErr))
			}
		}()
	}

	return err
}

// deliver speaks SMTP over implicit TLS (port 465 style relays).
func (s *Sender) deliver(to, subject, body string) error {
	msg := buildMessage(s.cfg.SenderName, s.cfg.SenderEmail, to, subject, body)

	serverAddr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort

	tlsConfig := &tls.Config{
		ServerName: s.cfg.SMTPHost,
	}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		return err
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	if err := client.Auth(auth); err != nil {
		return err
	}

	if err := client.Mail(s.cfg.SenderEmail); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func buildMessage(fromName, from, to, subject, body string) []byte {
	return []byte(
		fmt.Sprintf("From: %s <%s>\r\n", fromName, from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" + // required for HTML
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)
}
