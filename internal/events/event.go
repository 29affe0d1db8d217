// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"leadtrack_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// LeadWon is published when a lead's outcome is committed as a win.
// The notification module uses it to alert the organization's managers
// that the sale awaits review, and to schedule a review reminder.
type LeadWon struct {
	BaseEvent
	LeadID         uuid.UUID `json:"leadId"`
	OrganizationID uuid.UUID `json:"organizationId"`
	CustomerName   string    `json:"customerName"`
	InvoiceNo      string    `json:"invoiceNo"`
	SalePrice      int64     `json:"salePrice"`
	SalesRepID     uuid.UUID `json:"salesRepId"`
}

func (e LeadWon) EventName() string { return "leads.won" }

// LeadReviewAdvanced is published when a won lead's review status moves
// one step forward.
type LeadReviewAdvanced struct {
	BaseEvent
	LeadID         uuid.UUID `json:"leadId"`
	OrganizationID uuid.UUID `json:"organizationId"`
	ReviewStatus   string    `json:"reviewStatus"`
	ReviewerID     uuid.UUID `json:"reviewerId"`
}

func (e LeadReviewAdvanced) EventName() string { return "leads.review.advanced" }
