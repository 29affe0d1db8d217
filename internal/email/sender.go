// Package email delivers transactional mail for the review workflow.
package email

import "context"

// Sender is the outbound email interface. Implementations render HTML
// templates and deliver over SMTP; NoopSender is used when email is
// disabled in the environment.
type Sender interface {
	// SendReviewPendingEmail notifies a manager that a won sale awaits its
	// post-sale review.
	SendReviewPendingEmail(ctx context.Context, toEmail, managerName, customerName, invoiceNo string, salePrice int64) error

	// SendReviewReminderEmail nudges a manager about a win whose review is
	// still open after the configured delay.
	SendReviewReminderEmail(ctx context.Context, toEmail, customerName, invoiceNo string) error
}

// NoopSender silently drops all mail.
type NoopSender struct{}

func (NoopSender) SendReviewPendingEmail(context.Context, string, string, string, string, int64) error {
	return nil
}

func (NoopSender) SendReviewReminderEmail(context.Context, string, string, string) error {
	return nil
}

var _ Sender = NoopSender{}
