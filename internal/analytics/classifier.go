package analytics

import "strings"

// Classifier groups free-text appeal content into a recurring problem label.
// An empty label excludes the appeal from the top-problems ranking.
type Classifier interface {
	Classify(subject, description string) string
}

const maxProblemLabelRunes = 50

// SubjectClassifier groups appeals by their normalized subject line:
// whitespace is collapsed and case is folded for grouping, while the label
// keeps the original spelling of the first occurrence, truncated to 50 runes.
type SubjectClassifier struct{}

func (SubjectClassifier) Classify(subject, _ string) string {
	subject = strings.Join(strings.Fields(subject), " ")
	if subject == "" {
		return ""
	}
	runes := []rune(subject)
	if len(runes) > maxProblemLabelRunes {
		return string(runes[:maxProblemLabelRunes]) + "..."
	}
	return subject
}

// normalizeKey is the grouping key for SubjectClassifier labels.
func normalizeKey(label string) string {
	return strings.ToLower(label)
}
