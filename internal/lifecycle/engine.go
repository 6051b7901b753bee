package lifecycle

import (
	"fmt"
	"time"

	"github.com/civic-portal/appeal-service/internal/domain"
)

// IllegalTransitionError signals a status change forbidden by the state
// machine. The appeal is left unmodified.
type IllegalTransitionError struct {
	From domain.AppealStatus
	To   domain.AppealStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition from %s to %s", e.From, e.To)
}

var allowedTransitions = map[domain.AppealStatus][]domain.AppealStatus{
	domain.StatusNew:        {domain.StatusInProgress, domain.StatusCompleted, domain.StatusRejected},
	domain.StatusInProgress: {domain.StatusCompleted, domain.StatusRejected},
	domain.StatusCompleted:  {},
	domain.StatusRejected:   {},
}

// CanTransition reports whether the move is legal. Same-status calls are
// always permitted as history-only updates, including from terminal states.
func CanTransition(current, next domain.AppealStatus) bool {
	if current == next {
		return true
	}
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// Result describes the outcome of a successful transition.
type Result struct {
	// Changed is false for idempotent same-status updates; callers skip
	// notification dispatch for those.
	Changed bool
	Entry   domain.HistoryEntry
}

// Engine applies status transitions and maintains the audit history.
type Engine struct {
	now func() time.Time
}

// NewEngine builds an engine. A nil clock defaults to time.Now.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Transition validates the requested status change and applies it in place:
// appends a history entry, sets Status and UpdatedAt, and records the acting
// staff member as assignee when provided. On error the appeal is untouched.
// History length grows by exactly one per successful call.
func (e *Engine) Transition(appeal *domain.Appeal, next domain.AppealStatus, comment string, actorID *string) (Result, error) {
	if !next.Valid() {
		return Result{}, &domain.ValidationError{Fields: map[string]string{"status": "unknown status"}}
	}
	if !CanTransition(appeal.Status, next) {
		return Result{}, &IllegalTransitionError{From: appeal.Status, To: next}
	}

	now := e.now()
	entry := domain.HistoryEntry{
		AppealID:  appeal.ID,
		Status:    next,
		Comment:   comment,
		ActorID:   actorID,
		CreatedAt: now,
	}

	changed := appeal.Status != next
	appeal.Status = next
	appeal.UpdatedAt = now
	if actorID != nil {
		appeal.AssignedTo = actorID
	}
	appeal.History = append(appeal.History, entry)

	return Result{Changed: changed, Entry: entry}, nil
}
