package dto

import "github.com/civic-portal/appeal-service/internal/analytics"

// CategoryCountResponse pairs a display label with its count.
type CategoryCountResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ProblemCountResponse pairs a recurring problem label with its count.
type ProblemCountResponse struct {
	Problem string `json:"problem"`
	Count   int    `json:"count"`
}

// AnalyticsResponse mirrors the dashboard payload. The rejected count is
// tracked internally but not surfaced here.
type AnalyticsResponse struct {
	TotalAppeals  int                     `json:"totalAppeals"`
	NewAppeals    int                     `json:"newAppeals"`
	InProgress    int                     `json:"inProgress"`
	Completed     int                     `json:"completed"`
	TopCategories []CategoryCountResponse `json:"topCategories"`
	TopProblems   []ProblemCountResponse  `json:"topProblems"`
}

// NewAnalyticsResponse maps a summary to the dashboard payload.
func NewAnalyticsResponse(summary analytics.Summary) AnalyticsResponse {
	categories := make([]CategoryCountResponse, 0, len(summary.TopCategories))
	for _, entry := range summary.TopCategories {
		categories = append(categories, CategoryCountResponse{
			Category: CategoryLabel(entry.Category),
			Count:    entry.Count,
		})
	}
	problems := make([]ProblemCountResponse, 0, len(summary.TopProblems))
	for _, entry := range summary.TopProblems {
		problems = append(problems, ProblemCountResponse{
			Problem: entry.Problem,
			Count:   entry.Count,
		})
	}
	return AnalyticsResponse{
		TotalAppeals:  summary.TotalAppeals,
		NewAppeals:    summary.NewAppeals,
		InProgress:    summary.InProgress,
		Completed:     summary.Completed,
		TopCategories: categories,
		TopProblems:   problems,
	}
}
