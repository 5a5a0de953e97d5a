package mailbox

import (
	"bytes"
	"io"
	"strings"

	"github.com/emersion/go-message/mail"

	"github.com/joe123-crypto/recruiter/internal/types"
)

// ParseMessage decodes a raw RFC 5322 message into its subject, sender,
// plain-text body, and attachments. A message that cannot be parsed as MIME
// is treated as one big plain-text body rather than failing the scan.
func ParseMessage(raw []byte) *types.ParsedMessage {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return &types.ParsedMessage{PlainTextBody: string(raw)}
	}
	defer mr.Close()

	parsed := &types.ParsedMessage{}

	if subject, err := mr.Header.Subject(); err == nil {
		parsed.Subject = subject
	}
	if addrs, err := mr.Header.AddressList("From"); err == nil && len(addrs) > 0 {
		parsed.From = addrs[0].Address
		if addrs[0].Name != "" {
			parsed.From = addrs[0].Name + " <" + addrs[0].Address + ">"
		}
	}

	for {
		part, err := mr.NextPart()
		if err != nil {
			break
		}

		switch h := part.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, _ := h.ContentType()
			if !strings.HasPrefix(contentType, "text/plain") {
				continue
			}
			body, readErr := io.ReadAll(part.Body)
			if readErr != nil {
				continue
			}
			if parsed.PlainTextBody != "" {
				parsed.PlainTextBody += "\n"
			}
			parsed.PlainTextBody += string(body)

		case *mail.AttachmentHeader:
			filename, _ := h.Filename()
			contentType, _, _ := h.ContentType()
			data, readErr := io.ReadAll(part.Body)
			if readErr != nil {
				continue
			}
			parsed.Attachments = append(parsed.Attachments, types.Attachment{
				Filename:    filename,
				ContentType: contentType,
				Data:        data,
			})
		}
	}

	return parsed
}
