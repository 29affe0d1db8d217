package scheduler

import (
	"context"
	"fmt"

	"leadtrack_backend/internal/email"
	leadsrepo "leadtrack_backend/internal/leads/repository"
	"leadtrack_backend/internal/rbac"
	usersrepo "leadtrack_backend/internal/users/repository"
	"leadtrack_backend/platform/config"
	"leadtrack_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	leads  leadsrepo.LeadRepository
	users  usersrepo.UserRepository
	mail   email.Sender
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, mail email.Sender, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		leads:  leadsrepo.New(pool),
		users:  usersrepo.New(pool),
		mail:   mail,
		log:    log,
	}

	mux.HandleFunc(TaskReviewReminder, w.handleReviewReminder)

	return w, nil
}

// handleReviewReminder nudges the organization's managers when a won lead
// is still unreviewed at the scheduled time. A lead that was reviewed in
// the meantime, or lost its win status, is silently skipped.
func (w *Worker) handleReviewReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseReviewReminderPayload(task)
	if err != nil {
		return err
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return err
	}
	orgID, err := uuid.Parse(payload.OrganizationID)
	if err != nil {
		return err
	}

	lead, err := w.leads.GetByID(ctx, orgID, leadID)
	if err != nil {
		return err
	}

	if lead.Status != "win" || lead.ReviewStatus == nil || *lead.ReviewStatus == "reviewed" {
		return nil
	}
	if lead.InvoiceNo == nil {
		return nil
	}

	members, err := w.users.ListByOrganization(ctx, orgID)
	if err != nil {
		return err
	}

	for _, member := range members {
		role, err := rbac.ParseRole(member.Role)
		if err != nil || !rbac.CanViewOrgLeads(role) {
			continue
		}
		if err := w.mail.SendReviewReminderEmail(ctx, member.Email, lead.CustomerName, *lead.InvoiceNo); err != nil {
			w.log.Error("review reminder email failed", "error", err, "to", member.Email, "lead_id", lead.ID)
		}
	}

	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
