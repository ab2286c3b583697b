package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SpotStatus string

const (
	SpotStatusDraft     SpotStatus = "draft"
	SpotStatusPublished SpotStatus = "published"
	SpotStatusDeleted   SpotStatus = "deleted"
)

func (s SpotStatus) Valid() bool {
	switch s {
	case SpotStatusDraft, SpotStatusPublished, SpotStatusDeleted:
		return true
	}
	return false
}

// TemporarySpot is a time-limited point of interest that photos can be linked to.
type TemporarySpot struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Slug        string     `json:"slug" db:"slug"`
	StartsAt    time.Time  `json:"starts_at" db:"starts_at"`
	EndsAt      time.Time  `json:"ends_at" db:"ends_at"`
	Status      SpotStatus `json:"status" db:"status"`
	Description string     `json:"description,omitempty" db:"description"`
	CategoryID  *string    `json:"category_id,omitempty" db:"category_id"`
	Latitude    *float64   `json:"latitude,omitempty" db:"latitude"`
	Longitude   *float64   `json:"longitude,omitempty" db:"longitude"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	Photos []Photo `json:"photos,omitempty" db:"-"`
}

// Validate checks the spot fields and returns a validation DomainError listing every problem
func (s *TemporarySpot) Validate() error {
	var errs []string

	if strings.TrimSpace(s.Title) == "" {
		errs = append(errs, "title is required")
	}
	if len(s.Title) > 255 {
		errs = append(errs, "title must be 255 characters or less")
	}
	if s.Slug == "" {
		errs = append(errs, "slug is required")
	}
	if s.StartsAt.IsZero() || s.EndsAt.IsZero() {
		errs = append(errs, "starts_at and ends_at are required")
	} else if s.EndsAt.Before(s.StartsAt) {
		errs = append(errs, "ends_at must not be before starts_at")
	}
	if !s.Status.Valid() {
		errs = append(errs, fmt.Sprintf("invalid status '%s', must be one of: draft, published, deleted", s.Status))
	}
	if s.Latitude != nil && (*s.Latitude < -90 || *s.Latitude > 90) {
		errs = append(errs, "latitude must be between -90 and 90")
	}
	if s.Longitude != nil && (*s.Longitude < -180 || *s.Longitude > 180) {
		errs = append(errs, "longitude must be between -180 and 180")
	}

	if len(errs) > 0 {
		return &DomainError{Kind: KindValidation, Message: strings.Join(errs, "; ")}
	}

	return nil
}

// IsActive reports whether the spot is published and t falls inside its date range.
func (s *TemporarySpot) IsActive(t time.Time) bool {
	return s.Status == SpotStatusPublished && !t.Before(s.StartsAt) && !t.After(s.EndsAt)
}
