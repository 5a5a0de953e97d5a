// Package mailbox wraps go-imap v2 for connecting to and scanning an IMAP
// mailbox. A Session covers one connection to one folder; it is not safe for
// concurrent use.
package mailbox

import (
	"crypto/tls"
	"fmt"
	"slices"
	"strconv"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/joe123-crypto/recruiter/internal/logger"
	"github.com/joe123-crypto/recruiter/internal/types"
)

// Session is an authenticated IMAP connection with INBOX selected.
type Session struct {
	client *imapclient.Client
	user   string
}

// Open dials the IMAP server, authenticates, and selects INBOX.
// Certificate verification is on unless the credentials explicitly opt out.
func Open(creds types.MailboxCredentials) (*Session, error) {
	addr := creds.Host + ":" + strconv.Itoa(creds.Port)
	tlsConfig := &tls.Config{
		ServerName:         creds.Host,
		InsecureSkipVerify: creds.AllowInsecureTLS,
	}

	var client *imapclient.Client
	var err error
	if creds.UseTLS() {
		client, err = imapclient.DialTLS(addr, &imapclient.Options{TLSConfig: tlsConfig})
	} else {
		client, err = imapclient.DialStartTLS(addr, &imapclient.Options{TLSConfig: tlsConfig})
	}
	if err != nil {
		return nil, &ConnectionError{Op: "dial " + addr, Cause: err}
	}

	if err := client.Login(creds.User, creds.Secret).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, &AuthError{User: creds.User, Cause: err}
	}

	if _, err := client.Select("INBOX", nil).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, &ConnectionError{Op: "select INBOX", Cause: err}
	}

	log := logger.With("mailbox")
	log.Debug().Str("host", creds.Host).Str("user", creds.User).Msg("mailbox session opened")

	return &Session{client: client, user: creds.User}, nil
}

// Search runs a UID search with the given filter and checkpoint and returns
// the matching UIDs in ascending order.
func (s *Session) Search(filter *types.SearchFilter, checkpoint uint32) ([]uint32, error) {
	criteria := BuildSearchCriteria(filter, checkpoint)

	searchData, err := s.client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, &ConnectionError{Op: "search", Cause: err}
	}

	raw := searchData.AllUIDs()
	uids := make([]uint32, 0, len(raw))
	for _, uid := range raw {
		uids = append(uids, uint32(uid))
	}
	slices.Sort(uids)
	return uids, nil
}

// FetchFull fetches the complete raw message for a UID. The body section is
// fetched with Peek so the scan never flips the \Seen flag.
func (s *Session) FetchFull(uid uint32) ([]byte, error) {
	uidSet := imap.UIDSetNum(imap.UID(uid))
	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchOpts := &imap.FetchOptions{
		UID:         true,
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	}

	fetchCmd := s.client.Fetch(uidSet, fetchOpts)
	defer fetchCmd.Close()

	msg := fetchCmd.Next()
	if msg == nil {
		return nil, fmt.Errorf("message UID %d not found", uid)
	}

	buf, err := msg.Collect()
	if err != nil {
		return nil, &ConnectionError{Op: fmt.Sprintf("fetch UID %d", uid), Cause: err}
	}

	raw := buf.FindBodySection(bodySection)
	if raw == nil {
		return nil, fmt.Errorf("message UID %d has no body", uid)
	}

	if err := fetchCmd.Close(); err != nil {
		return nil, &ConnectionError{Op: fmt.Sprintf("fetch UID %d", uid), Cause: err}
	}

	return raw, nil
}

// Close logs out and drops the connection.
func (s *Session) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Logout().Wait()
	s.client = nil
	return err
}
