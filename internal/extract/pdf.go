// Package extract pulls plain text out of resume attachments.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dslipak/pdf"

	"github.com/joe123-crypto/recruiter/internal/types"
)

// IsResumeAttachment reports whether an attachment looks like a PDF resume,
// by declared content type or by filename extension.
func IsResumeAttachment(contentType, filename string) bool {
	if strings.EqualFold(strings.TrimSpace(contentType), "application/pdf") {
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}

// ExtractText extracts plain text from PDF bytes. The underlying parser
// panics on some malformed files, so recovery converts that into an error.
func ExtractText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", fmt.Errorf("pdf contains no extractable text")
	}
	return result, nil
}

// FirstResumeText returns the text of the first PDF attachment, or "" when
// there is none or extraction fails. Only the first match is considered, and
// a broken attachment never aborts a scan.
func FirstResumeText(attachments []types.Attachment) string {
	for _, att := range attachments {
		if !IsResumeAttachment(att.ContentType, att.Filename) {
			continue
		}
		text, err := ExtractText(att.Data)
		if err != nil {
			return ""
		}
		return text
	}
	return ""
}
