package domain

import "testing"

func TestCanCategorizeOnlyFromCreated(t *testing.T) {
	if !CanCategorize(StageCreated) {
		t.Fatal("created leads must be categorizable")
	}
	if CanCategorize(StageCategorized) {
		t.Fatal("categorized leads must not be re-categorized")
	}
	if CanCategorize(StageOutcomeRecorded) {
		t.Fatal("outcome-recorded leads must not be categorized")
	}
}

func TestCanRecordOutcomeRequiresCategorizedOpenLead(t *testing.T) {
	if !CanRecordOutcome(StageCategorized, StatusOpen) {
		t.Fatal("categorized open lead must accept an outcome")
	}
	if CanRecordOutcome(StageCreated, StatusOpen) {
		t.Fatal("uncategorized lead must not accept an outcome")
	}
	if CanRecordOutcome(StageOutcomeRecorded, StatusWin) {
		t.Fatal("outcome recording must not be repeatable")
	}
	if CanRecordOutcome(StageOutcomeRecorded, StatusNotToday) {
		t.Fatal("outcome recording must not be repeatable for lost leads")
	}
}

func TestReviewAdvancesOneStepAtATime(t *testing.T) {
	next, ok := NextReviewStatus(ReviewPending)
	if !ok || next != ReviewYetToReview {
		t.Fatalf("pending should advance to yet_to_review, got %q ok=%v", next, ok)
	}

	next, ok = NextReviewStatus(ReviewYetToReview)
	if !ok || next != ReviewReviewed {
		t.Fatalf("yet_to_review should advance to reviewed, got %q ok=%v", next, ok)
	}

	if _, ok := NextReviewStatus(ReviewReviewed); ok {
		t.Fatal("reviewed is terminal; no further advance permitted")
	}

	if _, ok := NextReviewStatus(ReviewStatus("")); ok {
		t.Fatal("absent review status must not advance")
	}
}

func TestReviewSequenceCannotJump(t *testing.T) {
	// The only path from pending to reviewed passes through yet_to_review.
	step1, _ := NextReviewStatus(ReviewPending)
	if step1 == ReviewReviewed {
		t.Fatal("pending must not jump directly to reviewed")
	}
	step2, _ := NextReviewStatus(step1)
	if step2 != ReviewReviewed {
		t.Fatalf("two steps from pending should land on reviewed, got %q", step2)
	}
}

func TestIsKnownReason(t *testing.T) {
	for _, reason := range []NotTodayReason{
		ReasonPriceHigh, ReasonNeedFamilyApproval, ReasonWantMoreOptions, ReasonJustBrowsing, ReasonOther,
	} {
		if !IsKnownReason(reason) {
			t.Errorf("reason %q should be known", reason)
		}
	}

	if IsKnownReason(NotTodayReason("changed_mind")) {
		t.Error("unknown reason must be rejected")
	}
}
