package dto

import "github.com/civic-portal/appeal-service/internal/domain"

// Display label maps for the portal UI. Kept as plain data in the
// presentation layer; the core works with enum values only.

var categoryLabels = map[domain.AppealCategory]string{
	domain.CategoryHealthcare: "Здравоохранение",
	domain.CategoryHousing:    "ЖКХ",
	domain.CategoryTransport:  "Транспорт",
	domain.CategoryGovernment: "Госуслуги",
	domain.CategoryEducation:  "Образование",
	domain.CategorySocial:     "Социальная защита",
	domain.CategoryOther:      "Другое",
}

var statusLabels = map[domain.AppealStatus]string{
	domain.StatusNew:        "Новое",
	domain.StatusInProgress: "В работе",
	domain.StatusCompleted:  "Выполнено",
	domain.StatusRejected:   "Отклонено",
}

// CategoryLabel returns the display label, falling back to the raw value.
func CategoryLabel(category domain.AppealCategory) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return string(category)
}

// StatusLabel returns the display label, falling back to the raw value.
func StatusLabel(status domain.AppealStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}
