package mailbox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crlf(s string) []byte {
	return []byte(strings.ReplaceAll(s, "\n", "\r\n"))
}

func TestParseMessagePlainText(t *testing.T) {
	raw := crlf(`From: Ada Lovelace <ada@example.com>
Subject: Application for Backend Engineer
Content-Type: text/plain

Hello,

I would like to apply for the position.
`)

	msg := ParseMessage(raw)

	assert.Equal(t, "Application for Backend Engineer", msg.Subject)
	assert.Equal(t, "Ada Lovelace <ada@example.com>", msg.From)
	assert.Contains(t, msg.PlainTextBody, "I would like to apply")
	assert.Empty(t, msg.Attachments)
}

func TestParseMessageWithAttachment(t *testing.T) {
	raw := crlf(`From: ada@example.com
Subject: Application
MIME-Version: 1.0
Content-Type: multipart/mixed; boundary="BOUNDARY"

--BOUNDARY
Content-Type: text/plain

Please find my resume attached.
--BOUNDARY
Content-Type: application/pdf
Content-Disposition: attachment; filename="resume.pdf"
Content-Transfer-Encoding: base64

JVBERi0=
--BOUNDARY--
`)

	msg := ParseMessage(raw)

	assert.Equal(t, "Application", msg.Subject)
	assert.Contains(t, msg.PlainTextBody, "resume attached")

	require.Len(t, msg.Attachments, 1)
	att := msg.Attachments[0]
	assert.Equal(t, "resume.pdf", att.Filename)
	assert.Equal(t, "application/pdf", att.ContentType)
	assert.Equal(t, []byte("%PDF-"), att.Data)
}

func TestParseMessageIgnoresHTMLPart(t *testing.T) {
	raw := crlf(`From: ada@example.com
Subject: Application
MIME-Version: 1.0
Content-Type: multipart/alternative; boundary="ALT"

--ALT
Content-Type: text/plain

plain version
--ALT
Content-Type: text/html

<p>html version</p>
--ALT--
`)

	msg := ParseMessage(raw)

	assert.Contains(t, msg.PlainTextBody, "plain version")
	assert.NotContains(t, msg.PlainTextBody, "html version")
}

func TestParseMessageUnparseableFallsBack(t *testing.T) {
	raw := []byte("completely unstructured bytes, no headers")

	msg := ParseMessage(raw)

	// The whole payload becomes the body so scoring still has something.
	assert.Equal(t, string(raw), msg.PlainTextBody)
	assert.Empty(t, msg.Attachments)
}
