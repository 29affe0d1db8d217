// Package service implements the lead lifecycle engine: creation,
// categorization, outcome recording, and the post-sale review sub-machine.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"leadtrack_backend/internal/events"
	"leadtrack_backend/internal/leads/domain"
	"leadtrack_backend/internal/leads/repository"
	"leadtrack_backend/internal/leads/transport"
	"leadtrack_backend/internal/rbac"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/config"
	"leadtrack_backend/platform/httpkit"
	"leadtrack_backend/platform/logger"
	"leadtrack_backend/platform/phone"
	"leadtrack_backend/platform/validator"
)

// Service orchestrates lead lifecycle operations. Every operation takes the
// acting identity explicitly and enforces the tenant boundary before any
// state is touched.
type Service struct {
	repo        repository.LeadRepository
	validator   *validator.Validator
	bus         events.Bus
	log         *logger.Logger
	reviewFloor rbac.Role
}

// NewService creates a lead service. An unparseable review floor role in the
// configuration falls back to staff, the most permissive documented floor.
func NewService(repo repository.LeadRepository, v *validator.Validator, bus events.Bus, log *logger.Logger, cfg config.ReviewConfig) *Service {
	floor, err := rbac.ParseRole(cfg.GetReviewFloorRole())
	if err != nil {
		log.Warn("invalid review floor role, defaulting to staff", "configured", cfg.GetReviewFloorRole())
		floor = rbac.RoleStaff
	}

	return &Service{
		repo:        repo,
		validator:   v,
		bus:         bus,
		log:         log,
		reviewFloor: floor,
	}
}

// Create opens a new lead in stage "created". The organization is taken from
// the acting session, never from client input, and the phone number is
// canonicalized before storage so customer grouping stays stable.
func (s *Service) Create(ctx context.Context, actor httpkit.Identity, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindValidation, "invalid lead payload", err)
	}
	if !phone.IsPlausible(req.CustomerPhone) {
		return transport.LeadResponse{}, apperr.Validation("customer phone is not a plausible phone number")
	}

	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		OrganizationID: actor.OrgID(),
		CustomerName:   strings.TrimSpace(req.CustomerName),
		CustomerPhone:  phone.Canonical(req.CustomerPhone),
		SalesRepID:     actor.UserID(),
	})
	if err != nil {
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindInternal, "failed to create lead", err)
	}

	return transport.ToLeadResponse(lead), nil
}

// Get fetches a lead within the actor's organization. A lead belonging to
// another organization surfaces as not found.
func (s *Service) Get(ctx context.Context, actor httpkit.Identity, leadID uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, actor.OrgID(), leadID)
	if err != nil {
		return transport.LeadResponse{}, s.mapRepoErr(err, "fetch lead")
	}
	return transport.ToLeadResponse(lead), nil
}

// Categorize moves a lead from "created" to "categorized", attaching the
// category, optional model, deal-size estimate, and purchase timeline.
func (s *Service) Categorize(ctx context.Context, actor httpkit.Identity, leadID uuid.UUID, req transport.CategorizeLeadRequest) (transport.LeadResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindValidation, "invalid categorization payload", err)
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return transport.LeadResponse{}, apperr.Validation("categoryId is not a valid identifier")
	}

	var modelID *uuid.UUID
	if req.ModelID != nil {
		parsed, err := uuid.Parse(*req.ModelID)
		if err != nil {
			return transport.LeadResponse{}, apperr.Validation("modelId is not a valid identifier")
		}
		modelID = &parsed
	}

	current, err := s.repo.GetByID(ctx, actor.OrgID(), leadID)
	if err != nil {
		return transport.LeadResponse{}, s.mapRepoErr(err, "categorize lead")
	}
	if !domain.CanCategorize(domain.Stage(current.Stage)) {
		return transport.LeadResponse{}, apperr.Conflict("lead is already categorized")
	}

	lead, err := s.repo.Categorize(ctx, repository.CategorizeParams{
		LeadID:           leadID,
		OrganizationID:   actor.OrgID(),
		CategoryID:       categoryID,
		ModelID:          modelID,
		DealSize:         *req.DealSize,
		PurchaseTimeline: req.PurchaseTimeline,
		ExpectedVersion:  current.Version,
	})
	if err != nil {
		return transport.LeadResponse{}, s.mapRepoErr(err, "categorize lead")
	}

	return transport.ToLeadResponse(lead), nil
}

// RecordOutcome commits a lead's outcome as a win or a lost opportunity.
// The whole payload is validated before any state is touched, so a request
// that is half-valid never leaves a partially updated lead behind. The
// conditional update in the repository guarantees that of two concurrent
// submissions exactly one succeeds and the other reports a state conflict.
func (s *Service) RecordOutcome(ctx context.Context, actor httpkit.Identity, leadID uuid.UUID, req transport.RecordOutcomeRequest) (transport.LeadResponse, error) {
	if err := s.validateOutcome(req); err != nil {
		return transport.LeadResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, actor.OrgID(), leadID)
	if err != nil {
		return transport.LeadResponse{}, s.mapRepoErr(err, "record outcome")
	}
	if !domain.CanRecordOutcome(domain.Stage(current.Stage), domain.Status(current.Status)) {
		if current.Stage == string(domain.StageCreated) {
			return transport.LeadResponse{}, apperr.Conflict("lead must be categorized before its outcome is recorded")
		}
		return transport.LeadResponse{}, apperr.Conflict("lead outcome is already recorded")
	}

	if req.Win != nil {
		return s.recordWin(ctx, actor, current, *req.Win)
	}
	return s.recordNotToday(ctx, actor, current, *req.NotToday)
}

func (s *Service) validateOutcome(req transport.RecordOutcomeRequest) error {
	if (req.Win == nil) == (req.NotToday == nil) {
		return apperr.Validation("outcome payload must carry exactly one of win or notToday")
	}

	if req.Win != nil {
		if err := s.validator.Struct(*req.Win); err != nil {
			return apperr.Wrap(apperr.KindValidation, "invalid win payload", err)
		}
		if strings.TrimSpace(req.Win.InvoiceNo) == "" {
			return apperr.Validation("invoiceNo must not be blank")
		}
		return nil
	}

	if err := s.validator.Struct(*req.NotToday); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid notToday payload", err)
	}
	reason := domain.NotTodayReason(req.NotToday.Reason)
	if !domain.IsKnownReason(reason) {
		return apperr.Validation("reason is not a recognized lost-opportunity reason")
	}
	if reason == domain.ReasonOther {
		if req.NotToday.OtherReason == nil || strings.TrimSpace(*req.NotToday.OtherReason) == "" {
			return apperr.Validation("reason 'other' requires an elaboration")
		}
	}
	return nil
}

func (s *Service) recordWin(ctx context.Context, actor httpkit.Identity, current repository.Lead, req transport.WinOutcomeRequest) (transport.LeadResponse, error) {
	invoiceNo := strings.TrimSpace(req.InvoiceNo)

	// Pre-commit check for a friendly error; the partial unique index on
	// (organization_id, invoice_no) remains the authority under concurrency.
	exists, err := s.repo.InvoiceExists(ctx, actor.OrgID(), invoiceNo)
	if err != nil {
		return transport.LeadResponse{}, apperr.Wrap(apperr.KindInternal, "failed to check invoice number", err)
	}
	if exists {
		return transport.LeadResponse{}, apperr.Conflict("invoice number already used in this organization")
	}

	lead, err := s.repo.RecordWin(ctx, repository.RecordWinParams{
		LeadID:          current.ID,
		OrganizationID:  actor.OrgID(),
		InvoiceNo:       invoiceNo,
		SalePrice:       req.SalePrice,
		ExpectedVersion: current.Version,
	})
	if err != nil {
		return transport.LeadResponse{}, s.mapRepoErr(err, "record win")
	}

	s.bus.Publish(ctx, events.LeadWon{
		BaseEvent:      events.NewBaseEvent(),
		LeadID:         lead.ID,
		OrganizationID: lead.OrganizationID,
		CustomerName:   lead.CustomerName,
		InvoiceNo:      invoiceNo,
		SalePrice:      req.SalePrice,
		SalesRepID:     lead.SalesRepID,
	})

	return transport.ToLeadResponse(lead), nil
}

func (s *Service) recordNotToday(ctx context.Context, actor httpkit.Identity, current repository.Lead, req transport.NotTodayOutcomeRequest) (transport.LeadResponse, error) {
	// The elaboration accompanies reason "other" only; anything supplied
	// alongside a coded reason is dropped.
	var other *string
	if domain.NotTodayReason(req.Reason) == domain.ReasonOther && req.OtherReason != nil {
		trimmed := strings.TrimSpace(*req.OtherReason)
		if trimmed != "" {
			other = &trimmed
		}
	}

	lead, err := s.repo.RecordNotToday(ctx, repository.RecordNotTodayParams{
		LeadID:          current.ID,
		OrganizationID:  actor.OrgID(),
		Reason:          req.Reason,
		OtherReason:     other,
		ExpectedVersion: current.Version,
	})
	if err != nil {
		return transport.LeadResponse{}, s.mapRepoErr(err, "record not_today")
	}

	return transport.ToLeadResponse(lead), nil
}

// AdvanceReview moves a won lead's review status one step forward. The
// reviewer is recorded on the first advance and never overwritten. The
// minimum role required is configurable with staff as the documented floor.
func (s *Service) AdvanceReview(ctx context.Context, actor httpkit.Identity, leadID uuid.UUID) (transport.LeadResponse, error) {
	actorRole, err := rbac.ParseRole(actor.Role())
	if err != nil {
		return transport.LeadResponse{}, apperr.Forbidden("unknown actor role")
	}
	if !rbac.AtLeast(actorRole, s.reviewFloor) {
		return transport.LeadResponse{}, apperr.Forbidden("role may not advance review status")
	}

	current, err := s.repo.GetByID(ctx, actor.OrgID(), leadID)
	if err != nil {
		return transport.LeadResponse{}, s.mapRepoErr(err, "advance review")
	}
	if current.Status != string(domain.StatusWin) || current.ReviewStatus == nil {
		return transport.LeadResponse{}, apperr.Conflict("review tracking applies to won leads only")
	}

	next, ok := domain.NextReviewStatus(domain.ReviewStatus(*current.ReviewStatus))
	if !ok {
		return transport.LeadResponse{}, apperr.Conflict("review is already complete")
	}

	lead, err := s.repo.AdvanceReview(ctx, repository.AdvanceReviewParams{
		LeadID:          leadID,
		OrganizationID:  actor.OrgID(),
		FromStatus:      *current.ReviewStatus,
		ToStatus:        string(next),
		ReviewerID:      actor.UserID(),
		ExpectedVersion: current.Version,
	})
	if err != nil {
		return transport.LeadResponse{}, s.mapRepoErr(err, "advance review")
	}

	s.bus.Publish(ctx, events.LeadReviewAdvanced{
		BaseEvent:      events.NewBaseEvent(),
		LeadID:         lead.ID,
		OrganizationID: lead.OrganizationID,
		ReviewStatus:   string(next),
		ReviewerID:     actor.UserID(),
	})

	return transport.ToLeadResponse(lead), nil
}

// ListOrganizationLeads returns every lead of the actor's organization with
// display labels, most recent first. Only manager and super_admin hold the
// org-wide listing capability.
func (s *Service) ListOrganizationLeads(ctx context.Context, actor httpkit.Identity) ([]transport.LeadWithLabelsResponse, error) {
	actorRole, err := rbac.ParseRole(actor.Role())
	if err != nil {
		return nil, apperr.Forbidden("unknown actor role")
	}
	if !rbac.CanViewOrgLeads(actorRole) {
		return nil, apperr.Forbidden("role may not view organization-wide leads")
	}

	leads, err := s.repo.ListByOrganization(ctx, actor.OrgID())
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list leads", err)
	}

	out := make([]transport.LeadWithLabelsResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, transport.ToLeadWithLabelsResponse(l))
	}
	return out, nil
}

func (s *Service) mapRepoErr(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("lead not found").WithOp(op)
	case errors.Is(err, repository.ErrStaleState):
		return apperr.Conflict("lead state changed, reload and retry").WithOp(op)
	case errors.Is(err, repository.ErrDuplicateInvoice):
		return apperr.Conflict("invoice number already used in this organization").WithOp(op)
	default:
		return apperr.Wrap(apperr.KindInternal, "lead store failure", err).WithOp(op)
	}
}
