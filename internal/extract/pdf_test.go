package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joe123-crypto/recruiter/internal/types"
)

func TestIsResumeAttachment(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		filename    string
		want        bool
	}{
		{"pdf content type", "application/pdf", "resume.bin", true},
		{"pdf content type mixed case", "Application/PDF", "data", true},
		{"pdf extension", "application/octet-stream", "resume.pdf", true},
		{"pdf extension upper case", "application/octet-stream", "RESUME.PDF", true},
		{"neither", "image/png", "photo.png", false},
		{"pdf substring in name only", "text/plain", "pdf-notes.txt", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsResumeAttachment(tt.contentType, tt.filename))
		})
	}
}

func TestExtractTextCorruptData(t *testing.T) {
	_, err := ExtractText([]byte("this is not a pdf"))
	assert.Error(t, err)

	_, err = ExtractText(nil)
	assert.Error(t, err)

	// A bogus header with garbage structure must fail, not panic.
	_, err = ExtractText([]byte("%PDF-1.4\ngarbage"))
	assert.Error(t, err)
}

func TestFirstResumeText(t *testing.T) {
	t.Run("no attachments", func(t *testing.T) {
		assert.Equal(t, "", FirstResumeText(nil))
	})

	t.Run("no pdf attachments", func(t *testing.T) {
		attachments := []types.Attachment{
			{Filename: "photo.png", ContentType: "image/png", Data: []byte{1, 2}},
			{Filename: "notes.txt", ContentType: "text/plain", Data: []byte("hi")},
		}
		assert.Equal(t, "", FirstResumeText(attachments))
	})

	t.Run("corrupt pdf yields no text", func(t *testing.T) {
		attachments := []types.Attachment{
			{Filename: "resume.pdf", ContentType: "application/pdf", Data: []byte("broken")},
		}
		assert.Equal(t, "", FirstResumeText(attachments))
	})

	t.Run("only first pdf is considered", func(t *testing.T) {
		// The first matching attachment is corrupt; later ones are ignored.
		attachments := []types.Attachment{
			{Filename: "resume.pdf", ContentType: "application/pdf", Data: []byte("broken")},
			{Filename: "resume2.pdf", ContentType: "application/pdf", Data: []byte("also broken")},
		}
		assert.Equal(t, "", FirstResumeText(attachments))
	})
}
