package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civic-portal/appeal-service/internal/domain"
)

func appeal(status domain.AppealStatus, category domain.AppealCategory, subject string) domain.Appeal {
	return domain.Appeal{Status: status, Category: category, Subject: subject}
}

func TestSummarizeEmptyInput(t *testing.T) {
	summary := Summarize(nil, Options{})

	assert.Zero(t, summary.TotalAppeals)
	assert.Zero(t, summary.NewAppeals)
	assert.Zero(t, summary.InProgress)
	assert.Zero(t, summary.Completed)
	assert.Zero(t, summary.Rejected)
	assert.Empty(t, summary.TopCategories)
	assert.Empty(t, summary.TopProblems)
	assert.NotNil(t, summary.TopCategories)
	assert.NotNil(t, summary.TopProblems)
}

func TestSummarizeStatusCountersSumToTotal(t *testing.T) {
	appeals := []domain.Appeal{
		appeal(domain.StatusNew, domain.CategoryHousing, "a"),
		appeal(domain.StatusNew, domain.CategoryTransport, "b"),
		appeal(domain.StatusInProgress, domain.CategoryHousing, "c"),
		appeal(domain.StatusCompleted, domain.CategorySocial, "d"),
		appeal(domain.StatusRejected, domain.CategoryOther, "e"),
	}

	summary := Summarize(appeals, Options{})

	assert.Equal(t, len(appeals), summary.TotalAppeals)
	assert.Equal(t, summary.TotalAppeals,
		summary.NewAppeals+summary.InProgress+summary.Completed+summary.Rejected)
	assert.Equal(t, 2, summary.NewAppeals)
	assert.Equal(t, 1, summary.InProgress)
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 1, summary.Rejected)

	categoryTotal := 0
	for _, entry := range summary.TopCategories {
		categoryTotal += entry.Count
	}
	assert.Equal(t, len(appeals), categoryTotal)
}

func TestSummarizeTopCategories(t *testing.T) {
	appeals := []domain.Appeal{
		appeal(domain.StatusNew, domain.CategoryHousing, "a"),
		appeal(domain.StatusNew, domain.CategoryTransport, "b"),
		appeal(domain.StatusNew, domain.CategoryHousing, "c"),
	}

	summary := Summarize(appeals, Options{})

	require.Len(t, summary.TopCategories, 2)
	assert.Equal(t, CategoryCount{Category: domain.CategoryHousing, Count: 2}, summary.TopCategories[0])
	assert.Equal(t, CategoryCount{Category: domain.CategoryTransport, Count: 1}, summary.TopCategories[1])
}

func TestSummarizeCategoryTiesKeepFirstSeenOrder(t *testing.T) {
	appeals := []domain.Appeal{
		appeal(domain.StatusNew, domain.CategoryEducation, "a"),
		appeal(domain.StatusNew, domain.CategoryHealthcare, "b"),
		appeal(domain.StatusNew, domain.CategoryHousing, "c"),
		appeal(domain.StatusNew, domain.CategoryHousing, "d"),
	}

	summary := Summarize(appeals, Options{})

	require.Len(t, summary.TopCategories, 3)
	assert.Equal(t, domain.CategoryHousing, summary.TopCategories[0].Category)
	assert.Equal(t, domain.CategoryEducation, summary.TopCategories[1].Category)
	assert.Equal(t, domain.CategoryHealthcare, summary.TopCategories[2].Category)
}

func TestSummarizeTopCategoriesCap(t *testing.T) {
	appeals := []domain.Appeal{
		appeal(domain.StatusNew, domain.CategoryHousing, "a"),
		appeal(domain.StatusNew, domain.CategoryTransport, "b"),
		appeal(domain.StatusNew, domain.CategorySocial, "c"),
	}

	summary := Summarize(appeals, Options{TopCategories: 2})
	assert.Len(t, summary.TopCategories, 2)
}

func TestSummarizeTopProblemsGroupsRecurringSubjects(t *testing.T) {
	appeals := []domain.Appeal{
		appeal(domain.StatusNew, domain.CategoryHousing, "No hot water"),
		appeal(domain.StatusNew, domain.CategoryHousing, "no hot  water"),
		appeal(domain.StatusNew, domain.CategoryTransport, "Bus always late"),
		appeal(domain.StatusNew, domain.CategoryTransport, "Bus always late"),
		appeal(domain.StatusNew, domain.CategoryHealthcare, "Unique one-off complaint"),
	}

	summary := Summarize(appeals, Options{})

	// One-off subjects are not recurring problems. The default classifier
	// folds case and collapses whitespace, keeping the first spelling.
	require.Len(t, summary.TopProblems, 2)
	assert.Equal(t, ProblemCount{Problem: "No hot water", Count: 2}, summary.TopProblems[0])
	assert.Equal(t, ProblemCount{Problem: "Bus always late", Count: 2}, summary.TopProblems[1])
}

func TestSummarizeTopProblemsTiesStableAndCapped(t *testing.T) {
	appeals := []domain.Appeal{
		appeal(domain.StatusNew, domain.CategoryHousing, "first"),
		appeal(domain.StatusNew, domain.CategoryHousing, "first"),
		appeal(domain.StatusNew, domain.CategoryHousing, "second"),
		appeal(domain.StatusNew, domain.CategoryHousing, "second"),
		appeal(domain.StatusNew, domain.CategoryHousing, "third"),
		appeal(domain.StatusNew, domain.CategoryHousing, "third"),
		appeal(domain.StatusNew, domain.CategoryHousing, "third"),
	}

	summary := Summarize(appeals, Options{TopProblems: 2})

	require.Len(t, summary.TopProblems, 2)
	assert.Equal(t, "third", summary.TopProblems[0].Problem)
	assert.Equal(t, "first", summary.TopProblems[1].Problem, "tie broken by first occurrence")
}

type categoryClassifier struct{}

func (categoryClassifier) Classify(subject, _ string) string {
	if subject == "" {
		return ""
	}
	return "generic"
}

func TestSummarizeCustomClassifier(t *testing.T) {
	appeals := []domain.Appeal{
		appeal(domain.StatusNew, domain.CategoryHousing, "a"),
		appeal(domain.StatusNew, domain.CategoryTransport, "b"),
		appeal(domain.StatusNew, domain.CategorySocial, ""),
	}

	summary := Summarize(appeals, Options{Classifier: categoryClassifier{}})

	require.Len(t, summary.TopProblems, 1)
	assert.Equal(t, ProblemCount{Problem: "generic", Count: 2}, summary.TopProblems[0])
}

func TestSubjectClassifierTruncatesLongSubjects(t *testing.T) {
	long := "This subject line is deliberately far longer than the fifty rune limit applied to labels"
	label := SubjectClassifier{}.Classify(long, "")

	assert.Len(t, []rune(label), 53)
	assert.Contains(t, label, "...")
}
