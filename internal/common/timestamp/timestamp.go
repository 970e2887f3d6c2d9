// Package timestamp decodes the time values returned by the remote gateway.
// The service serializes datetimes with str(), so both RFC 3339 and
// "2006-01-02 15:04:05.999999-07:00" shapes have to be accepted.
package timestamp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// Timestamp wraps time.Time with lenient JSON decoding. null decodes to the zero value.
type Timestamp struct {
	time.Time
}

func New(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// Parse accepts any of the supported layouts. Values without a zone are taken as UTC.
func Parse(s string) (Timestamp, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unsupported timestamp %q", s)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// Clock formats the local wall time as HH:MM, empty for the zero value.
func (t Timestamp) Clock() string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("15:04")
}

// Date formats the local date as DD.MM.YYYY, empty for the zero value.
func (t Timestamp) Date() string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("02.01.2006")
}
