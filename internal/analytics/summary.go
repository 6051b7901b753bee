package analytics

import (
	"sort"

	"github.com/civic-portal/appeal-service/internal/domain"
)

// CategoryCount pairs a category with its occurrence count.
type CategoryCount struct {
	Category domain.AppealCategory
	Count    int
}

// ProblemCount pairs a recurring problem label with its occurrence count.
type ProblemCount struct {
	Problem string
	Count   int
}

// Summary aggregates an appeal collection for the staff dashboard.
type Summary struct {
	TotalAppeals  int
	NewAppeals    int
	InProgress    int
	Completed     int
	Rejected      int
	TopCategories []CategoryCount
	TopProblems   []ProblemCount
}

// Options tunes the aggregation. Zero caps return full lists; a nil
// classifier falls back to SubjectClassifier.
type Options struct {
	TopCategories int
	TopProblems   int
	Classifier    Classifier
}

// Summarize computes status counters and rankings in one pass over the
// snapshot. Status counters always sum to len(appeals). Rankings are sorted
// descending by count with ties kept in first-seen order. An empty snapshot
// yields zero counters and empty lists.
func Summarize(appeals []domain.Appeal, opts Options) Summary {
	classifier := opts.Classifier
	if classifier == nil {
		classifier = SubjectClassifier{}
	}

	summary := Summary{
		TotalAppeals:  len(appeals),
		TopCategories: []CategoryCount{},
		TopProblems:   []ProblemCount{},
	}

	categoryIndex := map[domain.AppealCategory]int{}
	problemIndex := map[string]int{}

	for _, appeal := range appeals {
		switch appeal.Status {
		case domain.StatusNew:
			summary.NewAppeals++
		case domain.StatusInProgress:
			summary.InProgress++
		case domain.StatusCompleted:
			summary.Completed++
		case domain.StatusRejected:
			summary.Rejected++
		}

		if idx, seen := categoryIndex[appeal.Category]; seen {
			summary.TopCategories[idx].Count++
		} else {
			categoryIndex[appeal.Category] = len(summary.TopCategories)
			summary.TopCategories = append(summary.TopCategories, CategoryCount{Category: appeal.Category, Count: 1})
		}

		label := classifier.Classify(appeal.Subject, appeal.Description)
		if label == "" {
			continue
		}
		key := normalizeKey(label)
		if idx, seen := problemIndex[key]; seen {
			summary.TopProblems[idx].Count++
		} else {
			problemIndex[key] = len(summary.TopProblems)
			summary.TopProblems = append(summary.TopProblems, ProblemCount{Problem: label, Count: 1})
		}
	}

	// Only problems seen more than once count as recurring.
	recurring := summary.TopProblems[:0]
	for _, problem := range summary.TopProblems {
		if problem.Count > 1 {
			recurring = append(recurring, problem)
		}
	}
	summary.TopProblems = recurring

	sort.SliceStable(summary.TopCategories, func(i, j int) bool {
		return summary.TopCategories[i].Count > summary.TopCategories[j].Count
	})
	sort.SliceStable(summary.TopProblems, func(i, j int) bool {
		return summary.TopProblems[i].Count > summary.TopProblems[j].Count
	})

	if opts.TopCategories > 0 && len(summary.TopCategories) > opts.TopCategories {
		summary.TopCategories = summary.TopCategories[:opts.TopCategories]
	}
	if opts.TopProblems > 0 && len(summary.TopProblems) > opts.TopProblems {
		summary.TopProblems = summary.TopProblems[:opts.TopProblems]
	}
	return summary
}
