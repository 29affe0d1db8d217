package email

const (
	subjectReviewPending  = "Sale recorded - review pending"
	subjectReviewReminder = "Reminder: a sale is still awaiting review"
)
