// Package notification subscribes to domain events and fans them out to
// email and the review-reminder scheduler. Domain modules publish events
// and never touch mail or queue infrastructure directly.
package notification

import (
	"context"
	"fmt"
	"time"

	"leadtrack_backend/internal/email"
	"leadtrack_backend/internal/events"
	"leadtrack_backend/internal/rbac"
	"leadtrack_backend/internal/scheduler"
	usersrepo "leadtrack_backend/internal/users/repository"
	"leadtrack_backend/platform/config"
	"leadtrack_backend/platform/logger"

	"github.com/google/uuid"
)

// OrganizationMemberLister provides the members of an organization so the
// handlers can pick out the managers to notify.
type OrganizationMemberLister interface {
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]usersrepo.User, error)
}

// Module wires event subscriptions for outbound notifications.
type Module struct {
	users     OrganizationMemberLister
	mail      email.Sender
	reminders scheduler.ReminderScheduler
	cfg       config.ReviewConfig
	log       *logger.Logger
}

// NewModule registers the notification handlers on the bus. The reminder
// scheduler may be nil when no redis is configured; reminders are then
// skipped and only the immediate emails go out.
func NewModule(bus events.Bus, users OrganizationMemberLister, mail email.Sender, reminders scheduler.ReminderScheduler, cfg config.ReviewConfig, log *logger.Logger) *Module {
	m := &Module{
		users:     users,
		mail:      mail,
		reminders: reminders,
		cfg:       cfg,
		log:       log,
	}

	bus.Subscribe(events.LeadWon{}.EventName(), events.HandlerFunc(m.handleLeadWon))

	return m
}

// handleLeadWon emails every manager that a sale awaits its review and
// schedules a reminder in case it is still unreviewed later.
func (m *Module) handleLeadWon(ctx context.Context, event events.Event) error {
	won, ok := event.(events.LeadWon)
	if !ok {
		return fmt.Errorf("unexpected event type %T for %s", event, event.EventName())
	}

	members, err := m.users.ListByOrganization(ctx, won.OrganizationID)
	if err != nil {
		return fmt.Errorf("list organization members: %w", err)
	}

	for _, member := range members {
		role, err := rbac.ParseRole(member.Role)
		if err != nil || !rbac.CanViewOrgLeads(role) {
			continue
		}
		if err := m.mail.SendReviewPendingEmail(ctx, member.Email, member.Name, won.CustomerName, won.InvoiceNo, won.SalePrice); err != nil {
			m.log.Error("review pending email failed", "error", err, "to", member.Email, "lead_id", won.LeadID)
		}
	}

	if m.reminders != nil {
		runAt := time.Now().Add(m.cfg.GetReviewReminderDelay())
		err := m.reminders.ScheduleReviewReminder(ctx, scheduler.ReviewReminderPayload{
			LeadID:         won.LeadID.String(),
			OrganizationID: won.OrganizationID.String(),
		}, runAt)
		if err != nil {
			m.log.Error("review reminder scheduling failed", "error", err, "lead_id", won.LeadID)
		}
	}

	return nil
}
