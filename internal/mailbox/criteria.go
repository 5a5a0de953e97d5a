package mailbox

import (
	"github.com/emersion/go-imap/v2"

	"github.com/joe123-crypto/recruiter/internal/types"
)

// BuildSearchCriteria translates a filter and checkpoint into IMAP search
// criteria. All predicates are conjunctive. Exactly one of three policies
// applies:
//
//   - resumed scan: checkpoint > 0 adds "UID checkpoint+1:*", so already
//     processed messages are excluded regardless of their \Seen flag;
//   - filtered scan: subject and sender predicates are AND-ed header matches;
//   - default scan: no checkpoint and no filter falls back to UNSEEN only.
func BuildSearchCriteria(filter *types.SearchFilter, checkpoint uint32) *imap.SearchCriteria {
	criteria := &imap.SearchCriteria{}

	if checkpoint > 0 {
		criteria.UID = []imap.UIDSet{{
			imap.UIDRange{Start: imap.UID(checkpoint + 1), Stop: 0},
		}}
	}

	if !filter.IsZero() {
		if filter.SubjectContains != "" {
			criteria.Header = append(criteria.Header, imap.SearchCriteriaHeaderField{
				Key:   "Subject",
				Value: filter.SubjectContains,
			})
		}
		if filter.SenderContains != "" {
			criteria.Header = append(criteria.Header, imap.SearchCriteriaHeaderField{
				Key:   "From",
				Value: filter.SenderContains,
			})
		}
	}

	if checkpoint == 0 && filter.IsZero() {
		criteria.NotFlag = []imap.Flag{imap.FlagSeen}
	}

	return criteria
}
