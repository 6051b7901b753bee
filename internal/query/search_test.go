package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civic-portal/appeal-service/internal/domain"
)

func sampleAppeals() []domain.Appeal {
	return []domain.Appeal{
		{TrackingNumber: "AP-2024-000123", Subject: "No hot water", Category: domain.CategoryHousing},
		{TrackingNumber: "AP-2024-000124", Subject: "Bus 12 always late", Category: domain.CategoryTransport},
		{TrackingNumber: "AP-2025-000001", Subject: "Clinic waiting times", Category: domain.CategoryHealthcare},
		{TrackingNumber: "AP-2025-000002", Subject: "Hot water pressure", Category: domain.CategoryHousing},
	}
}

func TestSearchIdentityFilter(t *testing.T) {
	appeals := sampleAppeals()
	result := Search(appeals, Filter{Category: CategoryAll, Text: ""})

	require.Len(t, result, len(appeals))
	for i := range appeals {
		assert.Equal(t, appeals[i].TrackingNumber, result[i].TrackingNumber, "order must be preserved")
	}
}

func TestSearchByCategory(t *testing.T) {
	result := Search(sampleAppeals(), Filter{Category: "housing"})

	require.Len(t, result, 2)
	assert.Equal(t, "AP-2024-000123", result[0].TrackingNumber)
	assert.Equal(t, "AP-2025-000002", result[1].TrackingNumber)
}

func TestSearchUnknownCategoryMatchesNothing(t *testing.T) {
	result := Search(sampleAppeals(), Filter{Category: "plumbing"})
	assert.Empty(t, result)
	assert.NotNil(t, result)
}

func TestSearchTextIsCaseInsensitive(t *testing.T) {
	result := Search(sampleAppeals(), Filter{Text: "ap-2024"})
	require.Len(t, result, 2)

	result = Search(sampleAppeals(), Filter{Text: "HOT WATER"})
	require.Len(t, result, 2)
	assert.Equal(t, "No hot water", result[0].Subject)
	assert.Equal(t, "Hot water pressure", result[1].Subject)
}

func TestSearchMatchesSubjectOrTrackingNumber(t *testing.T) {
	result := Search(sampleAppeals(), Filter{Text: "000124"})
	require.Len(t, result, 1)
	assert.Equal(t, "Bus 12 always late", result[0].Subject)
}

func TestSearchCombinesFiltersWithAnd(t *testing.T) {
	result := Search(sampleAppeals(), Filter{Category: "housing", Text: "pressure"})
	require.Len(t, result, 1)
	assert.Equal(t, "AP-2025-000002", result[0].TrackingNumber)

	result = Search(sampleAppeals(), Filter{Category: "transport", Text: "pressure"})
	assert.Empty(t, result)
}

func TestSearchEmptyInput(t *testing.T) {
	assert.Empty(t, Search(nil, Filter{}))
	assert.Empty(t, Search([]domain.Appeal{}, Filter{Text: "anything"}))
}

func TestSearchDoesNotMutateInput(t *testing.T) {
	appeals := sampleAppeals()
	_ = Search(appeals, Filter{Category: "housing", Text: "water"})
	assert.Equal(t, sampleAppeals(), appeals)
}
