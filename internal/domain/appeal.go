package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// AppealStatus enumerates lifecycle states for citizen appeals.
type AppealStatus string

const (
	StatusNew        AppealStatus = "new"
	StatusInProgress AppealStatus = "in_progress"
	StatusCompleted  AppealStatus = "completed"
	StatusRejected   AppealStatus = "rejected"
)

// Valid reports whether the value is a known status.
func (s AppealStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further status change is permitted.
func (s AppealStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// AppealCategory enumerates the fixed set of complaint topics.
type AppealCategory string

const (
	CategoryHealthcare AppealCategory = "healthcare"
	CategoryHousing    AppealCategory = "housing"
	CategoryTransport  AppealCategory = "transport"
	CategoryGovernment AppealCategory = "government"
	CategoryEducation  AppealCategory = "education"
	CategorySocial     AppealCategory = "social"
	CategoryOther      AppealCategory = "other"
)

// Valid reports whether the value is a known category.
func (c AppealCategory) Valid() bool {
	switch c {
	case CategoryHealthcare, CategoryHousing, CategoryTransport,
		CategoryGovernment, CategoryEducation, CategorySocial, CategoryOther:
		return true
	}
	return false
}

// AppealPriority enumerates triage urgency, independent of status.
type AppealPriority string

const (
	PriorityLow    AppealPriority = "low"
	PriorityMedium AppealPriority = "medium"
	PriorityHigh   AppealPriority = "high"
)

// Valid reports whether the value is a known priority.
func (p AppealPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Appeal is the aggregate for citizen-submitted complaints.
type Appeal struct {
	ID             string
	TrackingNumber string
	CitizenName    string
	Email          string
	Phone          string
	Address        string
	Category       AppealCategory
	Subject        string
	Description    string
	Status         AppealStatus
	Priority       AppealPriority
	AssignedTo     *string
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	History        []HistoryEntry
}

// SubmissionInput carries the citizen-supplied fields of a new appeal.
type SubmissionInput struct {
	CitizenName string
	Email       string
	Phone       string
	Address     string
	Category    AppealCategory
	Subject     string
	Description string
}

// ValidationError reports the submission fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid submission: %s", strings.Join(names, ", "))
}

// Validate checks mandatory fields and enum membership. Whitespace-only
// values count as missing. Returns *ValidationError listing every offending
// field, or nil.
func (in SubmissionInput) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(in.CitizenName) == "" {
		fields["citizen_name"] = "required"
	}
	if strings.TrimSpace(in.Subject) == "" {
		fields["subject"] = "required"
	}
	if strings.TrimSpace(in.Description) == "" {
		fields["description"] = "required"
	}
	if !in.Category.Valid() {
		fields["category"] = "unknown category"
	}
	if strings.TrimSpace(in.Email) == "" && strings.TrimSpace(in.Phone) == "" {
		fields["contact"] = "email or phone required"
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
