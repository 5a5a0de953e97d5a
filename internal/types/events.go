package types

// EventType identifies the kind of a ScanEvent.
type EventType string

// Event types emitted by the scan pipeline, in the order operations
// complete. A stream ends with exactly one complete or error event.
const (
	EventStatus    EventType = "status"
	EventProgress  EventType = "progress"
	EventCandidate EventType = "candidate"
	EventProcessed EventType = "processed"
	EventError     EventType = "error"
	EventComplete  EventType = "complete"
)

// ScanEvent is one element of the ordered event stream a scan produces.
// Only the fields relevant to the event type are populated.
type ScanEvent struct {
	Type EventType `json:"type"`

	Message string `json:"message,omitempty"`

	Current int `json:"current,omitempty"`
	Total   int `json:"total,omitempty"`

	Candidate *CandidateRecord `json:"record,omitempty"`

	UID uint32 `json:"uid,omitempty"`

	ScannedCount   int `json:"scannedCount,omitempty"`
	CandidateCount int `json:"candidateCount,omitempty"`
}

// EventSink receives scan events in emission order. Implementations decide
// the transport: HTTP streaming, CLI stdout, test capture.
type EventSink interface {
	Emit(event ScanEvent)
}

// StatusEvent builds a status event with a human-readable message.
func StatusEvent(message string) ScanEvent {
	return ScanEvent{Type: EventStatus, Message: message}
}

// ProgressEvent builds a progress event. Current is 1-based.
func ProgressEvent(current, total int) ScanEvent {
	return ScanEvent{Type: EventProgress, Current: current, Total: total}
}

// CandidateEvent builds a candidate event carrying a scored record.
func CandidateEvent(record CandidateRecord) ScanEvent {
	return ScanEvent{Type: EventCandidate, Candidate: &record}
}

// ProcessedEvent builds a processed event for a message that yielded no
// candidate but still advanced the checkpoint.
func ProcessedEvent(uid uint32) ScanEvent {
	return ScanEvent{Type: EventProcessed, UID: uid}
}

// ErrorEvent builds a terminal error event.
func ErrorEvent(message string) ScanEvent {
	return ScanEvent{Type: EventError, Message: message}
}

// CompleteEvent builds the terminal completion event.
func CompleteEvent(scanned, candidates int) ScanEvent {
	return ScanEvent{Type: EventComplete, ScannedCount: scanned, CandidateCount: candidates}
}
