package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		size         int64
		expectedCode string
	}{
		{name: "PNG accepted", filename: "cover.png", size: 1024},
		{name: "JPG accepted", filename: "cover.jpg", size: 1024},
		{name: "JPEG accepted", filename: "cover.jpeg", size: 1024},
		{name: "WEBP accepted", filename: "cover.webp", size: 1024},
		{name: "Uppercase extension accepted", filename: "COVER.PNG", size: 1024},
		{name: "Exactly at the size limit accepted", filename: "cover.png", size: MaxFileSize},
		{name: "Over the size limit rejected", filename: "cover.png", size: MaxFileSize + 1, expectedCode: "FILE_TOO_LARGE"},
		{name: "Text file rejected", filename: "notes.txt", size: 1024, expectedCode: "INVALID_FILE_FORMAT"},
		{name: "GIF rejected", filename: "anim.gif", size: 1024, expectedCode: "INVALID_FILE_FORMAT"},
		{name: "No extension rejected", filename: "cover", size: 1024, expectedCode: "INVALID_FILE_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileHeader := &multipart.FileHeader{Filename: tt.filename, Size: tt.size}
			err := ValidateImageFile(fileHeader)

			if tt.expectedCode == "" {
				assert.NoError(t, err)
				return
			}

			var uploadErr *FileUploadError
			assert.ErrorAs(t, err, &uploadErr)
			assert.Equal(t, tt.expectedCode, uploadErr.Code)
		})
	}
}

func TestImageContentType(t *testing.T) {
	assert.Equal(t, "image/png", ImageContentType("cover.png"))
	assert.Equal(t, "image/jpeg", ImageContentType("cover.jpg"))
	assert.Equal(t, "image/jpeg", ImageContentType("cover.JPEG"))
	assert.Equal(t, "image/webp", ImageContentType("cover.webp"))
	assert.Equal(t, "application/octet-stream", ImageContentType("notes.txt"))
}
