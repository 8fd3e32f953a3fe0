package logging

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const maxSourceLen = 256

// Event is written as a single JSON object per processed listing.
type Event struct {
	Timestamp  time.Time `json:"ts"`
	RequestID  string    `json:"request_id,omitempty"`
	ClientIP   string    `json:"client_ip,omitempty"`
	Source     string    `json:"source"`
	Format     string    `json:"format"`
	Path       string    `json:"path"`
	Inference  string    `json:"inference"`
	Criteria   string    `json:"criteria"`
	Order      string    `json:"order"`
	DirsFirst  bool      `json:"directories_first"`
	Entries    int       `json:"entries"`
	Dirs       int       `json:"dirs"`
	HasParent  bool      `json:"has_parent"`
	StatusCode int       `json:"status_code,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationUS int64     `json:"duration_us"`
}

type EventLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func NewEventLogger(w io.Writer) *EventLogger {
	return &EventLogger{w: w}
}

func OpenEventLog(path string) (*EventLogger, func() error, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return NewEventLogger(file), file.Close, nil
}

// Write appends one line. A nil logger discards the event.
func (l *EventLogger) Write(event Event) error {
	if l == nil {
		return nil
	}
	if len(event.Source) > maxSourceLen {
		event.Source = event.Source[:maxSourceLen]
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, err = l.w.Write(append(data, '\n'))
	return err
}
