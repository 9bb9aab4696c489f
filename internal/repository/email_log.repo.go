package repository

import (
	"context"
	"time"
)

type EmailLog struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id,omitempty"`
	Subject        string    `json:"subject,omitempty"`
	RecipientEmail string    `json:"recipient_email"`
	Type           string    `json:"email_type"`      // account_verification, password_reset, welcome
	Status         string    `json:"delivery_status"` // sent, failed
	ErrorMessage   string    `json:"error_message,omitempty"`
	SentAt         time.Time `json:"sent_at"`
}

type EmailLogRepo struct {
	db DB
}

func NewEmailLogRepo(db DB) *EmailLogRepo {
	return &EmailLogRepo{db: db}
}

func (r *EmailLogRepo) LogEmail(ctx context.Context, log EmailLog) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO email_logs (id, user_id, subject, recipient_email, type, status, error_message, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, log.ID, log.UserID, log.Subject, log.RecipientEmail, log.Type, log.Status, log.ErrorMessage, log.SentAt)
	return err
}
