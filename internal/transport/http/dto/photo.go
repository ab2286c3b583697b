package dto

import (
	"mime/multipart"

	"spotguide/internal/domain/models"
)

// PhotoUploadInput is the multipart create request.
type PhotoUploadInput struct {
	File            *multipart.FileHeader `form:"file"`
	Name            string                `form:"name"`
	FileHash        string                `form:"file_hash"`
	TemporarySpotID string                `form:"temporary_spot_id"`
	Caption         string                `form:"caption"`
}

// legacyPhotoFields maps the field names older admin clients send onto the
// current ones. Legacy names never leave this package.
var legacyPhotoFields = map[string]string{
	"name": "file_path",
	"url":  "public_url",
}

// PhotoFields is the JSON body shared by the create and update requests.
type PhotoFields struct {
	FilePath        *string `json:"file_path,omitempty" validate:"omitempty,max=1024"`
	FileHash        *string `json:"file_hash,omitempty" validate:"omitempty,max=256"`
	TemporarySpotID *string `json:"temporary_spot_id,omitempty" validate:"omitempty,max=255"`
	PublicURL       *string `json:"public_url,omitempty" validate:"omitempty,max=2048"`
	Caption         *string `json:"caption,omitempty" validate:"omitempty,max=1000"`

	Name *string `json:"name,omitempty" swaggerignore:"true"`
	URL  *string `json:"url,omitempty" swaggerignore:"true"`
}

func (f *PhotoFields) byName() map[string]**string {
	return map[string]**string{
		"file_path":         &f.FilePath,
		"file_hash":         &f.FileHash,
		"temporary_spot_id": &f.TemporarySpotID,
		"public_url":        &f.PublicURL,
		"caption":           &f.Caption,
		"name":              &f.Name,
		"url":               &f.URL,
	}
}

// ToPatch remaps legacy names and returns the typed patch. A current field
// name wins over its legacy alias when both are sent.
func (f PhotoFields) ToPatch() models.PhotoPatch {
	fields := f.byName()

	for legacy, current := range legacyPhotoFields {
		if *fields[current] == nil {
			*fields[current] = *fields[legacy]
		}
		*fields[legacy] = nil
	}

	return models.PhotoPatch{
		FilePath:        f.FilePath,
		FileHash:        f.FileHash,
		PublicURL:       f.PublicURL,
		Caption:         f.Caption,
		TemporarySpotID: f.TemporarySpotID,
	}
}

type CreatePhotoRequest struct {
	PhotoFields
}

type UpdatePhotoRequest struct {
	ID string `json:"id" format:"uuid"`
	PhotoFields
}

type AssignPhotoRequest struct {
	TemporarySpotID string `json:"temporary_spot_id" validate:"required,max=255"`
}
