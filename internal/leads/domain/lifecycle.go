// Package domain provides core business rules for the leads bounded context.
package domain

// Stage is the lifecycle stage of a lead. A lead starts at StageCreated
// with customer identity only, gains a category and deal-size estimate at
// StageCategorized, and reaches StageOutcomeRecorded when the visit is
// classified as a win or a lost opportunity.
type Stage string

const (
	StageCreated         Stage = "created"
	StageCategorized     Stage = "categorized"
	StageOutcomeRecorded Stage = "outcome_recorded"
)

// Status is the outcome classification of a lead.
type Status string

const (
	StatusOpen     Status = "open"
	StatusWin      Status = "win"
	StatusNotToday Status = "not_today"
)

// ReviewStatus is the post-sale audit state of a won lead. It is meaningful
// only when the outcome is StatusWin.
type ReviewStatus string

const (
	ReviewPending     ReviewStatus = "pending"
	ReviewYetToReview ReviewStatus = "yet_to_review"
	ReviewReviewed    ReviewStatus = "reviewed"
)

// NotTodayReason is the fixed enumeration of lost-opportunity reasons.
type NotTodayReason string

const (
	ReasonPriceHigh          NotTodayReason = "price_high"
	ReasonNeedFamilyApproval NotTodayReason = "need_family_approval"
	ReasonWantMoreOptions    NotTodayReason = "want_more_options"
	ReasonJustBrowsing       NotTodayReason = "just_browsing"
	ReasonOther              NotTodayReason = "other"
)

var knownReasons = map[NotTodayReason]struct{}{
	ReasonPriceHigh:          {},
	ReasonNeedFamilyApproval: {},
	ReasonWantMoreOptions:    {},
	ReasonJustBrowsing:       {},
	ReasonOther:              {},
}

// IsKnownReason reports whether the reason belongs to the enumeration.
func IsKnownReason(reason NotTodayReason) bool {
	_, ok := knownReasons[reason]
	return ok
}

// CanCategorize reports whether a lead in the given stage may receive a
// category and deal-size estimate.
func CanCategorize(stage Stage) bool {
	return stage == StageCreated
}

// CanRecordOutcome reports whether a lead in the given stage and status may
// have its outcome recorded. Outcome recording is not idempotent: a lead
// whose outcome is already committed is rejected, never silently accepted.
func CanRecordOutcome(stage Stage, status Status) bool {
	return stage == StageCategorized && status == StatusOpen
}

// NextReviewStatus returns the single permitted next step of the review
// sub-machine. The sequence is strictly monotonic: pending → yet_to_review
// → reviewed, one step at a time, no backward moves, no skipping.
func NextReviewStatus(current ReviewStatus) (ReviewStatus, bool) {
	switch current {
	case ReviewPending:
		return ReviewYetToReview, true
	case ReviewYetToReview:
		return ReviewReviewed, true
	default:
		return "", false
	}
}

// IsTerminalReview reports whether the review sub-machine is complete.
func IsTerminalReview(status ReviewStatus) bool {
	return status == ReviewReviewed
}
