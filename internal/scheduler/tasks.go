// Package scheduler defines delayed background tasks backed by asynq.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskReviewReminder = "leads.review.reminder"

// ReviewReminderPayload identifies the won lead whose review follow-up is
// due for a nudge.
type ReviewReminderPayload struct {
	LeadID         string `json:"leadId"`
	OrganizationID string `json:"organizationId"`
}

func NewReviewReminderTask(payload ReviewReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReviewReminder, data), nil
}

func ParseReviewReminderPayload(task *asynq.Task) (ReviewReminderPayload, error) {
	var payload ReviewReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ReviewReminderPayload{}, err
	}
	return payload, nil
}
