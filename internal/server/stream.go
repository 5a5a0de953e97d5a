package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/joe123-crypto/recruiter/internal/types"
)

// StreamWriter emits scan events as newline-delimited JSON over a chunked
// HTTP response. It implements types.EventSink.
type StreamWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	encoder *json.Encoder
}

// NewStreamWriter prepares an NDJSON stream response.
func NewStreamWriter(w http.ResponseWriter) (*StreamWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &StreamWriter{w: w, flusher: flusher, encoder: json.NewEncoder(w)}, nil
}

// Emit writes one event line and flushes it to the client immediately.
// Encoding failures are unrecoverable mid-stream and are dropped.
func (s *StreamWriter) Emit(event types.ScanEvent) {
	if err := s.encoder.Encode(event); err != nil {
		return
	}
	s.flusher.Flush()
}
