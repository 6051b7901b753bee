package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/civic-portal/appeal-service/internal/analytics"
	"github.com/civic-portal/appeal-service/internal/domain"
	"github.com/civic-portal/appeal-service/internal/events"
	"github.com/civic-portal/appeal-service/internal/lifecycle"
	"github.com/civic-portal/appeal-service/internal/query"
	"github.com/civic-portal/appeal-service/internal/repository"
	"github.com/civic-portal/appeal-service/internal/tracknum"
	apperrors "github.com/civic-portal/appeal-service/pkg/util"
)

const submissionComment = "Appeal submitted"

// AppealService coordinates appeal intake, triage and analytics workflows.
type AppealService struct {
	appeals    repository.AppealRepository
	history    repository.AppealHistoryRepository
	tracknums  tracknum.Generator
	engine     *lifecycle.Engine
	dispatcher events.Dispatcher
	classifier analytics.Classifier

	defaultPriority domain.AppealPriority
	analyticsTopN   int
	snapshotLimit   int
	now             func() time.Time
}

// AppealDependencies bundles collaborators for the appeal service.
type AppealDependencies struct {
	AppealRepo  repository.AppealRepository
	HistoryRepo repository.AppealHistoryRepository
	Tracknums   tracknum.Generator
	Dispatcher  events.Dispatcher
	// Classifier overrides the top-problems grouping heuristic; nil uses
	// analytics.SubjectClassifier.
	Classifier analytics.Classifier
	// DefaultPriority applies to new submissions; empty means medium.
	DefaultPriority domain.AppealPriority
	AnalyticsTopN   int
	SnapshotLimit   int
	// Now overrides the clock for tests.
	Now func() time.Time
}

// NewAppealService constructs the service.
func NewAppealService(deps AppealDependencies) *AppealService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	defaultPriority := deps.DefaultPriority
	if !defaultPriority.Valid() {
		defaultPriority = domain.PriorityMedium
	}
	return &AppealService{
		appeals:         deps.AppealRepo,
		history:         deps.HistoryRepo,
		tracknums:       deps.Tracknums,
		engine:          lifecycle.NewEngine(now),
		dispatcher:      deps.Dispatcher,
		classifier:      deps.Classifier,
		defaultPriority: defaultPriority,
		analyticsTopN:   deps.AnalyticsTopN,
		snapshotLimit:   deps.SnapshotLimit,
		now:             now,
	}
}

// SearchFilter describes staff listing parameters.
type SearchFilter struct {
	Category string
	Text     string
}

// Submit validates a citizen submission, assigns a tracking number and
// creates the initial record with a seeded history entry.
func (s *AppealService) Submit(ctx context.Context, input domain.SubmissionInput) (*domain.Appeal, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	number, err := s.tracknums.Next(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	appeal := &domain.Appeal{
		TrackingNumber: number,
		CitizenName:    input.CitizenName,
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
		Category:       input.Category,
		Subject:        input.Subject,
		Description:    input.Description,
		Status:         domain.StatusNew,
		Priority:       s.defaultPriority,
	}
	entry := domain.HistoryEntry{
		Status:  domain.StatusNew,
		Comment: submissionComment,
	}
	if err := s.appeals.CreateWithHistory(ctx, appeal, &entry); err != nil {
		return nil, apperrors.MapError(err)
	}
	appeal.History = append(appeal.History, entry)

	s.publishEvent(ctx, events.Event{
		Type:           events.EventAppealSubmitted,
		TrackingNumber: appeal.TrackingNumber,
		Payload: events.AppealSubmittedPayload{
			Category: appeal.Category,
			Subject:  appeal.Subject,
			Priority: appeal.Priority,
		},
	})
	return appeal, nil
}

// GetByTrackingNumber fetches a single appeal with its full history.
func (s *AppealService) GetByTrackingNumber(ctx context.Context, number string) (*domain.Appeal, error) {
	appeal, err := s.appeals.GetByTrackingNumber(ctx, number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("appeal", map[string]any{"tracking_number": number})
		}
		return nil, apperrors.MapError(err)
	}
	history, err := s.history.ListByAppeal(ctx, appeal.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	appeal.History = history
	return appeal, nil
}

// ListAppeals returns the filtered staff view over a stored snapshot.
func (s *AppealService) ListAppeals(ctx context.Context, filter SearchFilter) ([]domain.Appeal, error) {
	snapshot, err := s.appeals.List(ctx, s.snapshotLimit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return query.Search(snapshot, query.Filter{Category: filter.Category, Text: filter.Text}), nil
}

// UpdateStatus applies a staff status transition, appending to the audit
// history and notifying on real status changes.
func (s *AppealService) UpdateStatus(ctx context.Context, staff *domain.StaffMember, number string, newStatus domain.AppealStatus, comment string) (*domain.Appeal, error) {
	if staff == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	appeal, err := s.GetByTrackingNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	oldStatus := appeal.Status
	if comment == "" {
		comment = fmt.Sprintf("Status changed to: %s", newStatus)
	}
	result, err := s.engine.Transition(appeal, newStatus, comment, &staff.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	entry := result.Entry
	if err := s.appeals.UpdateWithHistory(ctx, appeal, &entry); err != nil {
		return nil, apperrors.MapError(err)
	}
	appeal.History[len(appeal.History)-1] = entry

	if result.Changed {
		s.publishEvent(ctx, events.Event{
			Type:           events.EventAppealStatusChanged,
			TrackingNumber: appeal.TrackingNumber,
			StaffID:        &staff.ID,
			Payload: events.AppealStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: newStatus,
				Comment:   comment,
			},
		})
	}
	return appeal, nil
}

// UpdatePriority changes triage priority, recording a history-only entry.
func (s *AppealService) UpdatePriority(ctx context.Context, staff *domain.StaffMember, number string, newPriority domain.AppealPriority) (*domain.Appeal, error) {
	if staff == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	if !newPriority.Valid() {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": newPriority})
	}
	appeal, err := s.GetByTrackingNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	oldPriority := appeal.Priority
	appeal.Priority = newPriority
	comment := fmt.Sprintf("Priority changed to: %s", newPriority)
	if err := s.annotate(ctx, appeal, comment, &staff.ID); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:           events.EventAppealPriorityChanged,
		TrackingNumber: appeal.TrackingNumber,
		StaffID:        &staff.ID,
		Payload: events.AppealPriorityChangedPayload{
			OldPriority: oldPriority,
			NewPriority: newPriority,
		},
	})
	return appeal, nil
}

// Assign sets the responsible staff member, recording a history-only entry.
func (s *AppealService) Assign(ctx context.Context, staff *domain.StaffMember, number, assigneeID string) (*domain.Appeal, error) {
	if staff == nil {
		return nil, apperrors.NewUnauthorized("staff required")
	}
	if assigneeID == "" {
		assigneeID = staff.ID
	}
	appeal, err := s.GetByTrackingNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	appeal.AssignedTo = &assigneeID
	if err := s.annotate(ctx, appeal, "Appeal assigned", &staff.ID); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:           events.EventAppealAssigned,
		TrackingNumber: appeal.TrackingNumber,
		StaffID:        &staff.ID,
		Payload: events.AppealAssignedPayload{
			AssigneeStaffID: appeal.AssignedTo,
		},
	})
	return appeal, nil
}

// Analytics aggregates the stored collection for the staff dashboard.
func (s *AppealService) Analytics(ctx context.Context) (analytics.Summary, error) {
	snapshot, err := s.appeals.List(ctx, 0)
	if err != nil {
		return analytics.Summary{}, apperrors.MapError(err)
	}
	return analytics.Summarize(snapshot, analytics.Options{
		TopCategories: s.analyticsTopN,
		TopProblems:   s.analyticsTopN,
		Classifier:    s.classifier,
	}), nil
}

// annotate persists a same-status audit entry alongside the field change.
func (s *AppealService) annotate(ctx context.Context, appeal *domain.Appeal, comment string, actorID *string) error {
	now := s.now()
	appeal.UpdatedAt = now
	entry := domain.HistoryEntry{
		Status:    appeal.Status,
		Comment:   comment,
		ActorID:   actorID,
		CreatedAt: now,
	}
	if err := s.appeals.UpdateWithHistory(ctx, appeal, &entry); err != nil {
		return apperrors.MapError(err)
	}
	appeal.History = append(appeal.History, entry)
	return nil
}

func (s *AppealService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
