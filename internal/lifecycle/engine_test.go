package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civic-portal/appeal-service/internal/domain"
)

func newAppeal(status domain.AppealStatus) *domain.Appeal {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Appeal{
		ID:             "appeal-1",
		TrackingNumber: "AP-2024-000001",
		Status:         status,
		CreatedAt:      created,
		UpdatedAt:      created,
		History: []domain.HistoryEntry{
			{AppealID: "appeal-1", Status: domain.StatusNew, Comment: "Appeal submitted", CreatedAt: created},
		},
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to domain.AppealStatus
		want     bool
	}{
		{domain.StatusNew, domain.StatusInProgress, true},
		{domain.StatusNew, domain.StatusCompleted, true},
		{domain.StatusNew, domain.StatusRejected, true},
		{domain.StatusInProgress, domain.StatusCompleted, true},
		{domain.StatusInProgress, domain.StatusRejected, true},
		{domain.StatusInProgress, domain.StatusInProgress, true},
		{domain.StatusCompleted, domain.StatusCompleted, true},
		{domain.StatusRejected, domain.StatusRejected, true},
		{domain.StatusInProgress, domain.StatusNew, false},
		{domain.StatusCompleted, domain.StatusInProgress, false},
		{domain.StatusCompleted, domain.StatusRejected, false},
		{domain.StatusRejected, domain.StatusNew, false},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTransitionAppendsHistory(t *testing.T) {
	now := time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)
	engine := NewEngine(fixedClock(now))
	appeal := newAppeal(domain.StatusNew)
	actor := "staff-1"

	result, err := engine.Transition(appeal, domain.StatusInProgress, "assigned", &actor)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Equal(t, domain.StatusInProgress, appeal.Status)
	assert.Equal(t, now, appeal.UpdatedAt)
	require.Len(t, appeal.History, 2)
	last := appeal.History[len(appeal.History)-1]
	assert.Equal(t, domain.StatusInProgress, last.Status)
	assert.Equal(t, "assigned", last.Comment)
	require.NotNil(t, appeal.AssignedTo)
	assert.Equal(t, "staff-1", *appeal.AssignedTo)
}

func TestTransitionFromTerminalFails(t *testing.T) {
	engine := NewEngine(nil)
	for _, terminal := range []domain.AppealStatus{domain.StatusCompleted, domain.StatusRejected} {
		appeal := newAppeal(terminal)
		before := len(appeal.History)

		_, err := engine.Transition(appeal, domain.StatusInProgress, "reopen", nil)

		var transitionErr *IllegalTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, terminal, transitionErr.From)
		assert.Equal(t, terminal, appeal.Status, "status must be unchanged")
		assert.Len(t, appeal.History, before, "history must be unchanged")
	}
}

func TestTransitionSameStatusIsHistoryOnly(t *testing.T) {
	engine := NewEngine(nil)
	appeal := newAppeal(domain.StatusInProgress)

	result, err := engine.Transition(appeal, domain.StatusInProgress, "reassigned", nil)
	require.NoError(t, err)

	assert.False(t, result.Changed)
	assert.Equal(t, domain.StatusInProgress, appeal.Status)
	assert.Len(t, appeal.History, 2)
}

func TestTransitionSameStatusAllowedFromTerminal(t *testing.T) {
	engine := NewEngine(nil)
	appeal := newAppeal(domain.StatusCompleted)

	result, err := engine.Transition(appeal, domain.StatusCompleted, "closing note", nil)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Len(t, appeal.History, 2)
}

func TestTransitionUnknownStatusRejected(t *testing.T) {
	engine := NewEngine(nil)
	appeal := newAppeal(domain.StatusNew)

	_, err := engine.Transition(appeal, "archived", "", nil)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "status")
	assert.Equal(t, domain.StatusNew, appeal.Status)
	assert.Len(t, appeal.History, 1)
}

func TestFullLifecycleScenario(t *testing.T) {
	engine := NewEngine(nil)
	appeal := newAppeal(domain.StatusNew)

	_, err := engine.Transition(appeal, domain.StatusInProgress, "assigned", nil)
	require.NoError(t, err)
	_, err = engine.Transition(appeal, domain.StatusCompleted, "resolved", nil)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, appeal.Status)
	assert.Len(t, appeal.History, 3)
	assert.Equal(t, appeal.Status, appeal.History[len(appeal.History)-1].Status)

	_, err = engine.Transition(appeal, domain.StatusRejected, "x", nil)
	var transitionErr *IllegalTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Len(t, appeal.History, 3)
}
