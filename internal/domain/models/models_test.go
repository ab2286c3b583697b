package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestPhotoPatch_Apply(t *testing.T) {
	base := Photo{
		FilePath:        "sunset.jpg",
		FileHash:        "abc123",
		PublicURL:       "http://cdn.local/sunset.jpg",
		TemporarySpotID: strPtr(PlaceholderSpotID),
	}

	t.Run("only spot changes", func(t *testing.T) {
		got := PhotoPatch{TemporarySpotID: strPtr("spot-42")}.Apply(base)

		require.NotNil(t, got.TemporarySpotID)
		assert.Equal(t, "spot-42", *got.TemporarySpotID)
		assert.Equal(t, base.FilePath, got.FilePath)
		assert.Equal(t, base.FileHash, got.FileHash)
		assert.Equal(t, base.PublicURL, got.PublicURL)
	})

	t.Run("empty spot id unassigns", func(t *testing.T) {
		got := PhotoPatch{TemporarySpotID: strPtr("")}.Apply(base)
		assert.Nil(t, got.TemporarySpotID)
	})

	t.Run("empty patch", func(t *testing.T) {
		assert.True(t, PhotoPatch{}.IsEmpty())
		assert.Equal(t, base, PhotoPatch{}.Apply(base))
	})
}

func TestTemporarySpot_Validate(t *testing.T) {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	lat := 95.0

	tests := []struct {
		name    string
		spot    TemporarySpot
		wantErr string
	}{
		{
			name: "valid",
			spot: TemporarySpot{Title: "Jazz night", Slug: "jazz-night", StartsAt: start, EndsAt: start.Add(time.Hour), Status: SpotStatusDraft},
		},
		{
			name:    "reversed range",
			spot:    TemporarySpot{Title: "Jazz night", Slug: "jazz-night", StartsAt: start, EndsAt: start.Add(-time.Hour), Status: SpotStatusDraft},
			wantErr: "ends_at must not be before starts_at",
		},
		{
			name:    "bad status",
			spot:    TemporarySpot{Title: "Jazz night", Slug: "jazz-night", StartsAt: start, EndsAt: start, Status: "archived"},
			wantErr: "invalid status 'archived'",
		},
		{
			name:    "latitude out of range",
			spot:    TemporarySpot{Title: "Jazz night", Slug: "jazz-night", StartsAt: start, EndsAt: start, Status: SpotStatusPublished, Latitude: &lat},
			wantErr: "latitude must be between -90 and 90",
		},
		{
			name:    "missing title",
			spot:    TemporarySpot{Slug: "x", StartsAt: start, EndsAt: start, Status: SpotStatusDraft},
			wantErr: "title is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spot.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, IsKind(err, KindValidation))
		})
	}
}

func TestTemporarySpot_IsActive(t *testing.T) {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	spot := TemporarySpot{StartsAt: start, EndsAt: start.Add(48 * time.Hour), Status: SpotStatusPublished}

	assert.True(t, spot.IsActive(start.Add(time.Hour)))
	assert.False(t, spot.IsActive(start.Add(-time.Hour)))

	spot.Status = SpotStatusDraft
	assert.False(t, spot.IsActive(start.Add(time.Hour)))
}

func TestKindOf(t *testing.T) {
	root := errors.New("db down")
	err := fmt.Errorf("photo_service.CreatePhoto: %w", NewPersistenceError(root))

	assert.Equal(t, KindPersistence, KindOf(err))
	assert.ErrorIs(t, err, root)
	assert.Equal(t, "db down", NewPersistenceError(root).Error())
	assert.Equal(t, ErrorKind(""), KindOf(root))
}
