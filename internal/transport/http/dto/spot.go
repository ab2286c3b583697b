package dto

import (
	"time"

	"spotguide/internal/domain/models"

	"github.com/google/uuid"
)

type CreateSpotRequest struct {
	Title       string    `json:"title" validate:"required,min=3,max=255"`
	Slug        string    `json:"slug,omitempty" validate:"omitempty,max=255"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required"`
	Status      string    `json:"status,omitempty" validate:"omitempty,oneof=draft published deleted"`
	Description string    `json:"description,omitempty"`
	CategoryID  *string   `json:"category_id,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude   *float64  `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

type UpdateSpotRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=3,max=255"`
	Slug        *string    `json:"slug,omitempty" validate:"omitempty,max=255"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=draft published deleted"`
	Description *string    `json:"description,omitempty"`
	CategoryID  *string    `json:"category_id,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude   *float64   `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

type SetSpotStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft published deleted"`
}

type SpotResponse struct {
	ID          uuid.UUID      `json:"id" swaggertype:"string" format:"uuid"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	StartsAt    time.Time      `json:"starts_at"`
	EndsAt      time.Time      `json:"ends_at"`
	Status      string         `json:"status"`
	Description string         `json:"description,omitempty"`
	CategoryID  *string        `json:"category_id,omitempty"`
	Latitude    *float64       `json:"latitude,omitempty"`
	Longitude   *float64       `json:"longitude,omitempty"`
	Active      bool           `json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Photos      []models.Photo `json:"photos,omitempty"`
}

type SpotListResponse struct {
	Spots      []SpotResponse `json:"spots"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
}
