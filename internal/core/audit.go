package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the UTC layout used for audit timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// FormatTimestamp renders t in UTC with microsecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

type AuditEntry struct {
	// TimestampUTC is the time the entry was generated
	TimestampUTC string `json:"timestamp_utc"`

	// MatrixID identifies the evaluated test case
	MatrixID string `json:"matrix_id"`
	// MatrixTitle is optional and omitted when empty
	MatrixTitle string `json:"matrix_title,omitempty"`

	// Decision details
	Decision Decision `json:"decision"`
	Reason   string   `json:"reason"`
	Signals  Signals  `json:"signals"`

	// HarnessVersion is the version of the tool that wrote the entry
	HarnessVersion string `json:"harness_version"`
}

// Record returns the decision part of the entry.
func (e AuditEntry) Record() DecisionRecord {
	return DecisionRecord{
		Decision: e.Decision,
		Reason:   e.Reason,
		Signals:  e.Signals,
	}
}

type Auditor interface {
	Log(entry AuditEntry) error
	Close() error
}

// Signals is a list of policy categories. It always encodes as a JSON
// array and accepts null or a bare string when decoding.
type Signals []string

func (s Signals) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

func (s *Signals) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = SignalsFrom(raw)
	return nil
}

// SignalsFrom coerces a decoded JSON value into Signals: null becomes empty,
// a scalar becomes a single signal and array items are stringified.
func SignalsFrom(raw any) Signals {
	switch v := raw.(type) {
	case nil:
		return Signals{}
	case string:
		return Signals{v}
	case []any:
		out := make(Signals, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			if str, ok := item.(string); ok {
				out = append(out, str)
			} else {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	default:
		return Signals{fmt.Sprint(v)}
	}
}
