package dto

import (
	"github.com/civic-portal/appeal-service/internal/domain"
)

// Timestamps are rendered the way the portal displays them.
const displayTimeLayout = "02.01.2006 15:04"

// SubmitAppealRequest payload.
type SubmitAppealRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Category    string `json:"category"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

// SubmitAppealResponse confirms registration with the tracking number.
type SubmitAppealResponse struct {
	Success      bool   `json:"success"`
	AppealNumber string `json:"appealNumber"`
	Message      string `json:"message"`
}

// AppealStatusResponse is the citizen-facing status lookup view.
type AppealStatusResponse struct {
	Number      string                 `json:"number"`
	Status      domain.AppealStatus    `json:"status"`
	StatusLabel string                 `json:"statusLabel"`
	Category    string                 `json:"category"`
	Subject     string                 `json:"subject"`
	CreatedAt   string                 `json:"createdAt"`
	UpdatedAt   string                 `json:"updatedAt"`
	AssignedTo  *string                `json:"assignedTo"`
	History     []HistoryEntryResponse `json:"history"`
}

// HistoryEntryResponse is one audit trail row.
type HistoryEntryResponse struct {
	Date    string              `json:"date"`
	Status  domain.AppealStatus `json:"status"`
	Comment string              `json:"comment"`
}

// AppealSummary is the staff listing row.
type AppealSummary struct {
	ID         string                `json:"id"`
	Number     string                `json:"number"`
	Status     domain.AppealStatus   `json:"status"`
	Category   domain.AppealCategory `json:"category"`
	Subject    string                `json:"subject"`
	FullName   string                `json:"fullName"`
	Priority   domain.AppealPriority `json:"priority"`
	AssignedTo *string               `json:"assignedTo"`
	CreatedAt  string                `json:"createdAt"`
}

// AppealDetail is the staff single-appeal view.
type AppealDetail struct {
	ID          string                 `json:"id"`
	Number      string                 `json:"number"`
	Status      domain.AppealStatus    `json:"status"`
	Category    domain.AppealCategory  `json:"category"`
	Subject     string                 `json:"subject"`
	Description string                 `json:"description"`
	FullName    string                 `json:"fullName"`
	Email       string                 `json:"email"`
	Phone       string                 `json:"phone"`
	Address     string                 `json:"address"`
	Priority    domain.AppealPriority  `json:"priority"`
	AssignedTo  *string                `json:"assignedTo"`
	CreatedAt   string                 `json:"createdAt"`
	UpdatedAt   string                 `json:"updatedAt"`
	History     []HistoryEntryResponse `json:"history"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// UpdatePriorityRequest payload.
type UpdatePriorityRequest struct {
	Priority string `json:"priority"`
}

// AssignRequest payload. An empty staff ID self-assigns the caller.
type AssignRequest struct {
	StaffID string `json:"staffId"`
}

// NewAppealStatusResponse maps an appeal to the citizen-facing view, using
// the portal's display labels for the category.
func NewAppealStatusResponse(appeal *domain.Appeal) AppealStatusResponse {
	return AppealStatusResponse{
		Number:      appeal.TrackingNumber,
		Status:      appeal.Status,
		StatusLabel: StatusLabel(appeal.Status),
		Category:    CategoryLabel(appeal.Category),
		Subject:     appeal.Subject,
		CreatedAt:   appeal.CreatedAt.Format(displayTimeLayout),
		UpdatedAt:   appeal.UpdatedAt.Format(displayTimeLayout),
		AssignedTo:  appeal.AssignedTo,
		History:     NewHistoryResponses(appeal.History),
	}
}

// NewHistoryResponses maps audit entries newest-first for display.
func NewHistoryResponses(entries []domain.HistoryEntry) []HistoryEntryResponse {
	result := make([]HistoryEntryResponse, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		result = append(result, HistoryEntryResponse{
			Date:    entries[i].CreatedAt.Format(displayTimeLayout),
			Status:  entries[i].Status,
			Comment: entries[i].Comment,
		})
	}
	return result
}

// NewAppealSummary maps an appeal to the staff listing row.
func NewAppealSummary(appeal *domain.Appeal) AppealSummary {
	return AppealSummary{
		ID:         appeal.ID,
		Number:     appeal.TrackingNumber,
		Status:     appeal.Status,
		Category:   appeal.Category,
		Subject:    appeal.Subject,
		FullName:   appeal.CitizenName,
		Priority:   appeal.Priority,
		AssignedTo: appeal.AssignedTo,
		CreatedAt:  appeal.CreatedAt.Format(displayTimeLayout),
	}
}

// NewAppealDetail maps an appeal to the staff detail view.
func NewAppealDetail(appeal *domain.Appeal) AppealDetail {
	return AppealDetail{
		ID:          appeal.ID,
		Number:      appeal.TrackingNumber,
		Status:      appeal.Status,
		Category:    appeal.Category,
		Subject:     appeal.Subject,
		Description: appeal.Description,
		FullName:    appeal.CitizenName,
		Email:       appeal.Email,
		Phone:       appeal.Phone,
		Address:     appeal.Address,
		Priority:    appeal.Priority,
		AssignedTo:  appeal.AssignedTo,
		CreatedAt:   appeal.CreatedAt.Format(displayTimeLayout),
		UpdatedAt:   appeal.UpdatedAt.Format(displayTimeLayout),
		History:     NewHistoryResponses(appeal.History),
	}
}
