package scan

import (
	"github.com/joe123-crypto/recruiter/internal/mailbox"
	"github.com/joe123-crypto/recruiter/internal/types"
)

// IMAPDialer opens real IMAP sessions.
type IMAPDialer struct{}

func (IMAPDialer) Open(creds types.MailboxCredentials) (MailboxSession, error) {
	session, err := mailbox.Open(creds)
	if err != nil {
		return nil, err
	}
	return session, nil
}
