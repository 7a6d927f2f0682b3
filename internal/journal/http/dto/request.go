// Package dto provides data transfer objects for the journal HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/dheeverse/dheeverse/internal/journal/domain"
)

// CreateEntryRequest creates a journal entry. Mood is optional; when omitted it is detected.
type CreateEntryRequest struct {
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Mood    *string  `json:"mood"`
	Tags    []string `json:"tags"`
}

// Validate checks the request shape. Content rules are enforced by the use case.
func (r *CreateEntryRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Type, validation.Required),
	)
}

// ToDomain converts the request to a domain input.
func (r *CreateEntryRequest) ToDomain() *domain.CreateEntryInput {
	return &domain.CreateEntryInput{
		Type:    domain.EntryType(r.Type),
		Title:   r.Title,
		Content: r.Content,
		Mood:    moodPtr(r.Mood),
		Tags:    r.Tags,
	}
}

// UpdateEntryRequest changes an entry. Omitted fields are left untouched.
type UpdateEntryRequest struct {
	Title   *string  `json:"title"`
	Content *string  `json:"content"`
	Mood    *string  `json:"mood"`
	Tags    []string `json:"tags"`
}

// Validate rejects an update that changes nothing.
func (r *UpdateEntryRequest) Validate() error {
	if r.Title == nil && r.Content == nil && r.Mood == nil && r.Tags == nil {
		return validation.NewError("validation_empty_update", "at least one field must be provided")
	}
	return nil
}

// ToDomain converts the request to a domain input.
func (r *UpdateEntryRequest) ToDomain() *domain.UpdateEntryInput {
	return &domain.UpdateEntryInput{
		Title:   r.Title,
		Content: r.Content,
		Mood:    moodPtr(r.Mood),
		Tags:    r.Tags,
	}
}

func moodPtr(mood *string) *domain.Mood {
	if mood == nil {
		return nil
	}
	m := domain.Mood(*mood)
	return &m
}
