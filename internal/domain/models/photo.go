package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	// Values the URL-registration path fills in when the caller omits them.
	PlaceholderFilePath = "no_file_path"
	PlaceholderFileHash = "hash_placeholder"
	PlaceholderSpotID   = "temp_spot_id"
)

// Photo is a stored image blob plus its metadata row.
type Photo struct {
	ID              uuid.UUID `json:"id" db:"id"`
	FilePath        string    `json:"file_path" db:"file_path"`
	FileHash        string    `json:"file_hash" db:"file_hash"`
	PublicURL       string    `json:"public_url" db:"public_url"`
	Caption         *string   `json:"caption,omitempty" db:"caption"`
	TemporarySpotID *string   `json:"temporary_spot_id" db:"temporary_spot_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// NewPhoto returns a photo with a fresh id and creation time
func NewPhoto(filePath, fileHash, publicURL string, spotID *string) *Photo {
	return &Photo{
		ID:              uuid.New(),
		FilePath:        filePath,
		FileHash:        fileHash,
		PublicURL:       publicURL,
		TemporarySpotID: spotID,
		CreatedAt:       time.Now().UTC(),
	}
}

// PhotoPatch carries the fields an update may touch. A nil field is left as is.
type PhotoPatch struct {
	FilePath        *string
	FileHash        *string
	PublicURL       *string
	Caption         *string
	TemporarySpotID *string
}

func (p PhotoPatch) IsEmpty() bool {
	return p.FilePath == nil &&
		p.FileHash == nil &&
		p.PublicURL == nil &&
		p.Caption == nil &&
		p.TemporarySpotID == nil
}

// Apply returns a copy of photo with the patch fields written over it.
func (p PhotoPatch) Apply(photo Photo) Photo {
	if p.FilePath != nil {
		photo.FilePath = *p.FilePath
	}
	if p.FileHash != nil {
		photo.FileHash = *p.FileHash
	}
	if p.PublicURL != nil {
		photo.PublicURL = *p.PublicURL
	}
	if p.Caption != nil {
		photo.Caption = p.Caption
	}
	if p.TemporarySpotID != nil {
		if *p.TemporarySpotID == "" {
			photo.TemporarySpotID = nil
		} else {
			photo.TemporarySpotID = p.TemporarySpotID
		}
	}
	return photo
}

// PhotoFilter narrows ListPhotos. The zero value lists everything.
type PhotoFilter struct {
	TemporarySpotID string
}
