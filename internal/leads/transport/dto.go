// Package transport defines the HTTP request/response shapes for the leads module.
package transport

import (
	"time"

	"github.com/google/uuid"

	"leadtrack_backend/internal/leads/repository"
)

// CreateLeadRequest opens a new lead with customer identity only.
type CreateLeadRequest struct {
	CustomerName  string `json:"customerName" validate:"required,min=1,max=120"`
	CustomerPhone string `json:"customerPhone" validate:"required,min=4,max=20"`
}

// CategorizeLeadRequest attaches a category and deal-size estimate. The
// estimate must be present and non-negative; a pointer keeps an absent
// field distinguishable from a genuine zero.
type CategorizeLeadRequest struct {
	CategoryID       string  `json:"categoryId" validate:"required,uuid"`
	ModelID          *string `json:"modelId" validate:"omitempty,uuid"`
	DealSize         *int64  `json:"dealSize" validate:"required,gte=0"`
	PurchaseTimeline *string `json:"purchaseTimeline" validate:"omitempty,max=60"`
}

// WinOutcomeRequest records a completed sale.
type WinOutcomeRequest struct {
	InvoiceNo string `json:"invoiceNo" validate:"required,min=1,max=64"`
	SalePrice int64  `json:"salePrice" validate:"required,gt=0"`
}

// NotTodayOutcomeRequest records a lost opportunity with a reason code.
type NotTodayOutcomeRequest struct {
	Reason      string  `json:"reason" validate:"required,max=40"`
	OtherReason *string `json:"otherReason" validate:"omitempty,max=500"`
}

// RecordOutcomeRequest carries exactly one outcome variant. The service
// rejects payloads with zero or both variants before touching any state.
type RecordOutcomeRequest struct {
	Win      *WinOutcomeRequest      `json:"win,omitempty"`
	NotToday *NotTodayOutcomeRequest `json:"notToday,omitempty"`
}

// LeadResponse is the wire representation of a lead.
type LeadResponse struct {
	ID               uuid.UUID  `json:"id"`
	OrganizationID   uuid.UUID  `json:"organizationId"`
	CustomerName     string     `json:"customerName"`
	CustomerPhone    string     `json:"customerPhone"`
	Stage            string     `json:"stage"`
	CategoryID       *uuid.UUID `json:"categoryId,omitempty"`
	ModelID          *uuid.UUID `json:"modelId,omitempty"`
	DealSize         *int64     `json:"dealSize,omitempty"`
	PurchaseTimeline *string    `json:"purchaseTimeline,omitempty"`
	SalesRepID       uuid.UUID  `json:"salesRepId"`
	Status           string     `json:"status"`
	InvoiceNo        *string    `json:"invoiceNo,omitempty"`
	SalePrice        *int64     `json:"salePrice,omitempty"`
	ReviewStatus     *string    `json:"reviewStatus,omitempty"`
	ReviewedBy       *uuid.UUID `json:"reviewedBy,omitempty"`
	NotTodayReason   *string    `json:"notTodayReason,omitempty"`
	OtherReason      *string    `json:"otherReason,omitempty"`
	Version          int        `json:"version"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// LeadWithLabelsResponse extends LeadResponse with display labels resolved
// at read time for the admin listing.
type LeadWithLabelsResponse struct {
	LeadResponse
	CategoryName string `json:"categoryName"`
	ModelName    string `json:"modelName"`
	SalesRepName string `json:"salesRepName"`
}

// ToLeadResponse converts a persisted lead to its wire shape.
func ToLeadResponse(l repository.Lead) LeadResponse {
	return LeadResponse{
		ID:               l.ID,
		OrganizationID:   l.OrganizationID,
		CustomerName:     l.CustomerName,
		CustomerPhone:    l.CustomerPhone,
		Stage:            l.Stage,
		CategoryID:       l.CategoryID,
		ModelID:          l.ModelID,
		DealSize:         l.DealSize,
		PurchaseTimeline: l.PurchaseTimeline,
		SalesRepID:       l.SalesRepID,
		Status:           l.Status,
		InvoiceNo:        l.InvoiceNo,
		SalePrice:        l.SalePrice,
		ReviewStatus:     l.ReviewStatus,
		ReviewedBy:       l.ReviewedBy,
		NotTodayReason:   l.NotTodayReason,
		OtherReason:      l.OtherReason,
		Version:          l.Version,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

// ToLeadWithLabelsResponse converts a joined lead row to its wire shape.
func ToLeadWithLabelsResponse(l repository.LeadWithLabels) LeadWithLabelsResponse {
	return LeadWithLabelsResponse{
		LeadResponse: ToLeadResponse(l.Lead),
		CategoryName: l.CategoryName,
		ModelName:    l.ModelName,
		SalesRepName: l.SalesRepName,
	}
}
