// Package transport defines the HTTP shapes for the customers module.
package transport

import (
	"time"

	"github.com/google/uuid"

	"leadtrack_backend/internal/customers/repository"
)

// CustomerResponse is the aggregate view of one customer. IsRepeat is
// derived, never stored: a customer with more than one visit is a repeat.
type CustomerResponse struct {
	Phone         string    `json:"phone"`
	DisplayName   string    `json:"displayName"`
	LeadCount     int       `json:"leadCount"`
	WinCount      int       `json:"winCount"`
	LostCount     int       `json:"lostCount"`
	TotalValue    int64     `json:"totalValue"`
	PipelineValue int64     `json:"pipelineValue"`
	FirstVisit    time.Time `json:"firstVisit"`
	LatestVisit   time.Time `json:"latestVisit"`
	IsRepeat      bool      `json:"isRepeat"`
}

// TimelineEntryResponse is one visit in a customer's history.
type TimelineEntryResponse struct {
	LeadID         uuid.UUID `json:"leadId"`
	CustomerName   string    `json:"customerName"`
	Stage          string    `json:"stage"`
	Status         string    `json:"status"`
	CategoryName   string    `json:"categoryName"`
	ModelName      string    `json:"modelName"`
	SalesRepName   string    `json:"salesRepName"`
	DealSize       *int64    `json:"dealSize,omitempty"`
	SalePrice      *int64    `json:"salePrice,omitempty"`
	InvoiceNo      *string   `json:"invoiceNo,omitempty"`
	NotTodayReason *string   `json:"notTodayReason,omitempty"`
	OtherReason    *string   `json:"otherReason,omitempty"`
	ReviewStatus   *string   `json:"reviewStatus,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ProfileResponse combines the aggregate stats with the visit timeline.
type ProfileResponse struct {
	Customer CustomerResponse        `json:"customer"`
	Timeline []TimelineEntryResponse `json:"timeline"`
}

// Phone check states. A check never fails on an unknown number: unknown is
// an answer, not an error. Known numbers distinguish exactly one prior lead
// from several, matching the derived repeat-customer flag.
const (
	PhoneCheckInvalid = "invalid"
	PhoneCheckNew     = "new"
	PhoneCheckSingle  = "single"
	PhoneCheckRepeat  = "repeat"
)

// CheckPhoneResponse is the tri-state answer to a phone lookup: no prior
// lead, exactly one prior lead, or multiple prior leads, with the latest
// lead summary attached to the known states. A structurally invalid number
// short-circuits before the lookup.
type CheckPhoneResponse struct {
	Status     string                 `json:"status"`
	Customer   *CustomerResponse      `json:"customer,omitempty"`
	LatestLead *TimelineEntryResponse `json:"latestLead,omitempty"`
}

// ToCustomerResponse converts aggregate stats to the wire shape.
func ToCustomerResponse(s repository.CustomerStats) CustomerResponse {
	return CustomerResponse{
		Phone:         s.Phone,
		DisplayName:   s.DisplayName,
		LeadCount:     s.LeadCount,
		WinCount:      s.WinCount,
		LostCount:     s.LostCount,
		TotalValue:    s.TotalValue,
		PipelineValue: s.PipelineValue,
		FirstVisit:    s.FirstVisit,
		LatestVisit:   s.LatestVisit,
		IsRepeat:      s.LeadCount > 1,
	}
}

// ToTimelineEntryResponse converts a timeline row to the wire shape.
func ToTimelineEntryResponse(e repository.TimelineEntry) TimelineEntryResponse {
	return TimelineEntryResponse{
		LeadID:         e.LeadID,
		CustomerName:   e.CustomerName,
		Stage:          e.Stage,
		Status:         e.Status,
		CategoryName:   e.CategoryName,
		ModelName:      e.ModelName,
		SalesRepName:   e.SalesRepName,
		DealSize:       e.DealSize,
		SalePrice:      e.SalePrice,
		InvoiceNo:      e.InvoiceNo,
		NotTodayReason: e.NotTodayReason,
		OtherReason:    e.OtherReason,
		ReviewStatus:   e.ReviewStatus,
		CreatedAt:      e.CreatedAt,
	}
}
