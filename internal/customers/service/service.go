// Package service implements the customer history aggregator. Customers are
// derived by grouping leads per organization and canonical phone number.
package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"leadtrack_backend/internal/customers/repository"
	"leadtrack_backend/internal/customers/transport"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/httpkit"
	"leadtrack_backend/platform/phone"
)

// Service orchestrates customer aggregation queries. Every lookup is scoped
// to the actor's organization; the same phone number in two organizations is
// two unrelated customers.
type Service struct {
	repo repository.CustomerRepository
}

// NewService creates a customer service.
func NewService(repo repository.CustomerRepository) *Service {
	return &Service{repo: repo}
}

// List returns every customer of the actor's organization, most recently
// visited first.
func (s *Service) List(ctx context.Context, actor httpkit.Identity) ([]transport.CustomerResponse, error) {
	stats, err := s.repo.List(ctx, actor.OrgID())
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list customers", err)
	}

	out := make([]transport.CustomerResponse, 0, len(stats))
	for _, st := range stats {
		out = append(out, transport.ToCustomerResponse(st))
	}
	return out, nil
}

// Profile returns the aggregate stats and the full visit timeline of one
// customer. The two queries are independent, so they run concurrently.
func (s *Service) Profile(ctx context.Context, actor httpkit.Identity, rawPhone string) (transport.ProfileResponse, error) {
	canonical := phone.Canonical(rawPhone)
	if canonical == "" {
		return transport.ProfileResponse{}, apperr.Validation("phone number is required")
	}

	var (
		stats    repository.CustomerStats
		timeline []repository.TimelineEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.repo.Stats(gctx, actor.OrgID(), canonical)
		return err
	})
	g.Go(func() error {
		var err error
		timeline, err = s.repo.Timeline(gctx, actor.OrgID(), canonical)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrNoHistory) {
			return transport.ProfileResponse{}, apperr.NotFound("customer not found")
		}
		return transport.ProfileResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load customer profile", err)
	}

	entries := make([]transport.TimelineEntryResponse, 0, len(timeline))
	for _, e := range timeline {
		entries = append(entries, transport.ToTimelineEntryResponse(e))
	}

	return transport.ProfileResponse{
		Customer: transport.ToCustomerResponse(stats),
		Timeline: entries,
	}, nil
}

// CheckPhone answers the tri-state lookup used during lead intake: no
// prior lead, exactly one prior lead, or multiple prior leads, with the
// latest visit riding along on the known states. An unknown number is an
// answer, never an error; a structurally invalid number short-circuits
// before the lookup.
func (s *Service) CheckPhone(ctx context.Context, actor httpkit.Identity, rawPhone string) (transport.CheckPhoneResponse, error) {
	if !phone.IsPlausible(rawPhone) {
		return transport.CheckPhoneResponse{Status: transport.PhoneCheckInvalid}, nil
	}
	canonical := phone.Canonical(rawPhone)

	stats, err := s.repo.Stats(ctx, actor.OrgID(), canonical)
	if errors.Is(err, repository.ErrNoHistory) {
		return transport.CheckPhoneResponse{Status: transport.PhoneCheckNew}, nil
	}
	if err != nil {
		return transport.CheckPhoneResponse{}, apperr.Wrap(apperr.KindInternal, "failed to check phone", err)
	}

	timeline, err := s.repo.Timeline(ctx, actor.OrgID(), canonical)
	if err != nil {
		return transport.CheckPhoneResponse{}, apperr.Wrap(apperr.KindInternal, "failed to check phone", err)
	}

	status := transport.PhoneCheckSingle
	if stats.LeadCount > 1 {
		status = transport.PhoneCheckRepeat
	}
	resp := transport.CheckPhoneResponse{Status: status}
	customer := transport.ToCustomerResponse(stats)
	resp.Customer = &customer
	if len(timeline) > 0 {
		latest := transport.ToTimelineEntryResponse(timeline[0])
		resp.LatestLead = &latest
	}
	return resp, nil
}
