package query

import (
	"strings"

	"github.com/civic-portal/appeal-service/internal/domain"
)

// CategoryAll matches every category.
const CategoryAll = "all"

// Filter describes staff search parameters over an appeal snapshot.
type Filter struct {
	// Category is "all", empty, or one exact enum value. An unknown value
	// matches nothing rather than failing.
	Category string
	// Text is matched case-insensitively as a substring of the subject or
	// the tracking number. Empty matches everything.
	Text string
}

// Search returns the stable sub-sequence of appeals matching the filter,
// preserving the original relative order. No records are mutated; the result
// for no matches is an empty slice.
func Search(appeals []domain.Appeal, filter Filter) []domain.Appeal {
	text := strings.ToLower(strings.TrimSpace(filter.Text))

	result := make([]domain.Appeal, 0, len(appeals))
	for _, appeal := range appeals {
		if !matchCategory(appeal.Category, filter.Category) {
			continue
		}
		if text != "" && !matchText(appeal, text) {
			continue
		}
		result = append(result, appeal)
	}
	return result
}

func matchCategory(category domain.AppealCategory, wanted string) bool {
	if wanted == "" || wanted == CategoryAll {
		return true
	}
	return domain.AppealCategory(wanted).Valid() && category == domain.AppealCategory(wanted)
}

func matchText(appeal domain.Appeal, loweredText string) bool {
	return strings.Contains(strings.ToLower(appeal.Subject), loweredText) ||
		strings.Contains(strings.ToLower(appeal.TrackingNumber), loweredText)
}
