package events

import (
	"time"

	"github.com/civic-portal/appeal-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAppealSubmitted       EventType = "appeal_submitted"
	EventAppealStatusChanged   EventType = "appeal_status_changed"
	EventAppealPriorityChanged EventType = "appeal_priority_changed"
	EventAppealAssigned        EventType = "appeal_assigned"
)

// Event represents a domain event emitted by services. Citizens are
// anonymous, so the actor is either a staff ID or absent.
type Event struct {
	ID             string      `json:"id"`
	Type           EventType   `json:"type"`
	TrackingNumber string      `json:"tracking_number"`
	StaffID        *string     `json:"staff_id,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
	Payload        interface{} `json:"payload"`
}

// AppealSubmittedPayload payload.
type AppealSubmittedPayload struct {
	Category domain.AppealCategory `json:"category"`
	Subject  string                `json:"subject"`
	Priority domain.AppealPriority `json:"priority"`
}

// AppealStatusChangedPayload payload.
type AppealStatusChangedPayload struct {
	OldStatus domain.AppealStatus `json:"old_status"`
	NewStatus domain.AppealStatus `json:"new_status"`
	Comment   string              `json:"comment,omitempty"`
}

// AppealPriorityChangedPayload payload.
type AppealPriorityChangedPayload struct {
	OldPriority domain.AppealPriority `json:"old_priority"`
	NewPriority domain.AppealPriority `json:"new_priority"`
}

// AppealAssignedPayload payload.
type AppealAssignedPayload struct {
	AssigneeStaffID *string `json:"assignee_staff_id,omitempty"`
}
