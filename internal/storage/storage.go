package storage

import "errors"

var (
	ErrPhotoNotFound   = errors.New("photo not found")
	ErrPhotoHashExists = errors.New("photo with this file hash already exists")
	ErrPhotoPathExists = errors.New("photo with this file path already exists")
	ErrSpotNotFound    = errors.New("temporary spot not found")
	ErrSpotSlugExists  = errors.New("temporary spot with this slug already exists")
	ErrNoFieldsUpdate  = errors.New("no fields to update")
)

var (
	ErrObjectExists   = errors.New("object already exists")
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidKey     = errors.New("invalid object key")
	ErrFileTooLarge   = errors.New("file size exceeds limit")
	ErrLockNotHeld    = errors.New("reservation is held by another request")
)
