// Package dto provides data transfer objects for the activity HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/dheeverse/dheeverse/internal/activity/domain"
)

// CompleteActivityRequest records a finished activity.
type CompleteActivityRequest struct {
	Type            string  `json:"type"`
	DurationSeconds int     `json:"duration_seconds"`
	Note            *string `json:"note"`
}

// Validate checks the request shape. Allowed values are enforced by the use case.
func (r *CompleteActivityRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Type, validation.Required),
		validation.Field(&r.DurationSeconds, validation.Min(0)),
	)
}

// ToDomain converts the request to a domain input.
func (r *CompleteActivityRequest) ToDomain() *domain.CompleteInput {
	return &domain.CompleteInput{
		Type:            domain.Type(r.Type),
		DurationSeconds: r.DurationSeconds,
		Note:            r.Note,
	}
}
