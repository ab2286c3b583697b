package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoFields_ToPatch(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantPath *string
		wantURL  *string
	}{
		{
			name:     "legacy names are remapped",
			body:     `{"name":"a.jpg","url":"https://x/a.jpg"}`,
			wantPath: strPtr("a.jpg"),
			wantURL:  strPtr("https://x/a.jpg"),
		},
		{
			name:     "current names win over legacy ones",
			body:     `{"name":"old.jpg","file_path":"new.jpg","url":"https://x/old.jpg","public_url":"https://x/new.jpg"}`,
			wantPath: strPtr("new.jpg"),
			wantURL:  strPtr("https://x/new.jpg"),
		},
		{
			name: "absent fields stay nil",
			body: `{"caption":"c"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdatePhotoRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			patch := req.ToPatch()

			assert.Equal(t, tt.wantPath, patch.FilePath)
			assert.Equal(t, tt.wantURL, patch.PublicURL)
		})
	}
}

func TestCreatePhotoRequest_ToPatch(t *testing.T) {
	var req CreatePhotoRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"a.jpg","file_hash":"h"}`), &req))

	patch := req.ToPatch()

	require.NotNil(t, patch.FilePath)
	assert.Equal(t, "a.jpg", *patch.FilePath)
	assert.Equal(t, "h", *patch.FileHash)
	assert.Nil(t, patch.Caption)
	assert.Nil(t, patch.TemporarySpotID)
}

func strPtr(s string) *string {
	return &s
}
