package plex

import (
	"strconv"
	"time"

	"github.com/mcrews/plexkit/internal/domain"
)

// MapItems converts server metadata records to domain items
func MapItems(metadata []Metadata) []domain.Item {
	items := make([]domain.Item, 0, len(metadata))
	for _, m := range metadata {
		items = append(items, MapItem(m))
	}
	return items
}

// MapItem converts a single metadata record to a domain item
func MapItem(m Metadata) domain.Item {
	ratingKey, _ := strconv.Atoi(m.RatingKey)
	item := domain.Item{
		RatingKey: ratingKey,
		Key:       m.Key,
		Type:      m.Type,
		Title:     m.Title,
		Year:      m.Year,
		Thumb:     m.Thumb,
		Art:       m.Art,
	}
	if m.AddedAt > 0 {
		item.AddedAt = time.Unix(m.AddedAt, 0)
	}
	if m.UpdatedAt > 0 {
		item.UpdatedAt = time.Unix(m.UpdatedAt, 0)
	}
	return item
}

// MapFields converts field tags to domain fields
func MapFields(tags []FieldTag) []domain.Field {
	fields := make([]domain.Field, 0, len(tags))
	for _, t := range tags {
		fields = append(fields, domain.Field{Name: t.Name, Locked: t.Locked})
	}
	return fields
}

// MapLabels converts label tags to domain labels
func MapLabels(tags []LabelTag) []domain.Label {
	labels := make([]domain.Label, 0, len(tags))
	for _, t := range tags {
		labels = append(labels, domain.Label{ID: t.ID, Tag: t.Tag})
	}
	return labels
}
