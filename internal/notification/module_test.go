package notification

import (
	"context"
	"testing"
	"time"

	"leadtrack_backend/internal/events"
	"leadtrack_backend/internal/scheduler"
	usersrepo "leadtrack_backend/internal/users/repository"
	"leadtrack_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeMemberLister struct {
	members []usersrepo.User
}

func (f fakeMemberLister) ListByOrganization(_ context.Context, _ uuid.UUID) ([]usersrepo.User, error) {
	return f.members, nil
}

type sentEmail struct {
	to        string
	invoiceNo string
}

type fakeSender struct {
	pending   []sentEmail
	reminders []sentEmail
}

func (f *fakeSender) SendReviewPendingEmail(_ context.Context, toEmail, _, _, invoiceNo string, _ int64) error {
	f.pending = append(f.pending, sentEmail{to: toEmail, invoiceNo: invoiceNo})
	return nil
}

func (f *fakeSender) SendReviewReminderEmail(_ context.Context, toEmail, _, invoiceNo string) error {
	f.reminders = append(f.reminders, sentEmail{to: toEmail, invoiceNo: invoiceNo})
	return nil
}

type fakeReminderScheduler struct {
	payloads []scheduler.ReviewReminderPayload
	runAts   []time.Time
}

func (f *fakeReminderScheduler) ScheduleReviewReminder(_ context.Context, payload scheduler.ReviewReminderPayload, runAt time.Time) error {
	f.payloads = append(f.payloads, payload)
	f.runAts = append(f.runAts, runAt)
	return nil
}

type staticReviewConfig struct {
	delay time.Duration
}

func (c staticReviewConfig) GetReviewFloorRole() string          { return "staff" }
func (c staticReviewConfig) GetReviewReminderDelay() time.Duration { return c.delay }

func member(role, email string) usersrepo.User {
	return usersrepo.User{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		Name:           "Member",
		Email:          email,
		Role:           role,
	}
}

func TestLeadWonNotifiesManagersOnly(t *testing.T) {
	log := logger.New("error")
	bus := events.NewInMemoryBus(log)

	sender := &fakeSender{}
	reminders := &fakeReminderScheduler{}
	lister := fakeMemberLister{members: []usersrepo.User{
		member("manager", "manager@example.com"),
		member("super_admin", "owner@example.com"),
		member("staff", "staff@example.com"),
		member("sales_rep", "rep@example.com"),
	}}

	NewModule(bus, lister, sender, reminders, staticReviewConfig{delay: 48 * time.Hour}, log)

	leadID := uuid.New()
	orgID := uuid.New()
	err := bus.PublishSync(context.Background(), events.LeadWon{
		BaseEvent:      events.NewBaseEvent(),
		LeadID:         leadID,
		OrganizationID: orgID,
		CustomerName:   "Asha",
		InvoiceNo:      "INV-1001",
		SalePrice:      45000,
	})
	if err != nil {
		t.Fatalf("PublishSync() error = %v", err)
	}

	if len(sender.pending) != 2 {
		t.Fatalf("pending emails = %d, want 2 (manager and super_admin)", len(sender.pending))
	}
	recipients := map[string]bool{}
	for _, e := range sender.pending {
		recipients[e.to] = true
		if e.invoiceNo != "INV-1001" {
			t.Errorf("invoice = %s, want INV-1001", e.invoiceNo)
		}
	}
	if !recipients["manager@example.com"] || !recipients["owner@example.com"] {
		t.Errorf("recipients = %v, want manager and owner", recipients)
	}
	if recipients["staff@example.com"] || recipients["rep@example.com"] {
		t.Errorf("staff and sales reps must not receive review emails: %v", recipients)
	}

	if len(reminders.payloads) != 1 {
		t.Fatalf("scheduled reminders = %d, want 1", len(reminders.payloads))
	}
	if reminders.payloads[0].LeadID != leadID.String() {
		t.Errorf("reminder lead = %s, want %s", reminders.payloads[0].LeadID, leadID)
	}
	if until := time.Until(reminders.runAts[0]); until < 47*time.Hour {
		t.Errorf("reminder scheduled %v out, want ~48h", until)
	}
}

func TestLeadWonWithoutSchedulerStillEmails(t *testing.T) {
	log := logger.New("error")
	bus := events.NewInMemoryBus(log)

	sender := &fakeSender{}
	lister := fakeMemberLister{members: []usersrepo.User{
		member("manager", "manager@example.com"),
	}}

	NewModule(bus, lister, sender, nil, staticReviewConfig{delay: time.Hour}, log)

	err := bus.PublishSync(context.Background(), events.LeadWon{
		BaseEvent:      events.NewBaseEvent(),
		LeadID:         uuid.New(),
		OrganizationID: uuid.New(),
		CustomerName:   "Ravi",
		InvoiceNo:      "INV-2",
		SalePrice:      1,
	})
	if err != nil {
		t.Fatalf("PublishSync() error = %v", err)
	}
	if len(sender.pending) != 1 {
		t.Fatalf("pending emails = %d, want 1", len(sender.pending))
	}
}
