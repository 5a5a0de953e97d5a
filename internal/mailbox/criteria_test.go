package mailbox

import (
	"testing"

	"github.com/emersion/go-imap/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joe123-crypto/recruiter/internal/types"
)

func TestBuildSearchCriteriaDefault(t *testing.T) {
	// No checkpoint, no filter: unseen messages only.
	criteria := BuildSearchCriteria(nil, 0)

	assert.Equal(t, []imap.Flag{imap.FlagSeen}, criteria.NotFlag)
	assert.Empty(t, criteria.UID)
	assert.Empty(t, criteria.Header)
}

func TestBuildSearchCriteriaResumed(t *testing.T) {
	criteria := BuildSearchCriteria(nil, 120)

	require.Len(t, criteria.UID, 1)
	require.Len(t, criteria.UID[0], 1)
	assert.Equal(t, imap.UID(121), criteria.UID[0][0].Start)
	assert.Equal(t, imap.UID(0), criteria.UID[0][0].Stop) // open-ended range

	// A resumed scan must not be narrowed to unseen messages.
	assert.Empty(t, criteria.NotFlag)
}

func TestBuildSearchCriteriaFiltered(t *testing.T) {
	filter := &types.SearchFilter{
		SubjectContains: "application",
		SenderContains:  "careers@",
	}
	criteria := BuildSearchCriteria(filter, 0)

	require.Len(t, criteria.Header, 2)
	assert.Equal(t, "Subject", criteria.Header[0].Key)
	assert.Equal(t, "application", criteria.Header[0].Value)
	assert.Equal(t, "From", criteria.Header[1].Key)
	assert.Equal(t, "careers@", criteria.Header[1].Value)

	// Filters replace the unseen default.
	assert.Empty(t, criteria.NotFlag)
	assert.Empty(t, criteria.UID)
}

func TestBuildSearchCriteriaFilteredAndResumed(t *testing.T) {
	filter := &types.SearchFilter{SubjectContains: "resume"}
	criteria := BuildSearchCriteria(filter, 50)

	require.Len(t, criteria.UID, 1)
	assert.Equal(t, imap.UID(51), criteria.UID[0][0].Start)
	require.Len(t, criteria.Header, 1)
	assert.Equal(t, "Subject", criteria.Header[0].Key)
	assert.Empty(t, criteria.NotFlag)
}

func TestBuildSearchCriteriaSubjectOnly(t *testing.T) {
	filter := &types.SearchFilter{SubjectContains: "engineer"}
	criteria := BuildSearchCriteria(filter, 0)

	require.Len(t, criteria.Header, 1)
	assert.Equal(t, "Subject", criteria.Header[0].Key)
	assert.Empty(t, criteria.NotFlag)
}
