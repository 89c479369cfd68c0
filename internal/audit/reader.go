package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/darmiel/gatecheck/internal/core"
)

// ErrLogNotFound is returned by ReadLog when the log file does not exist.
var ErrLogNotFound = errors.New("audit log not found")

// ReadResult holds the entries read from a log and how many lines were skipped.
type ReadResult struct {
	Entries []core.AuditEntry
	Skipped int
}

// ReadLog reads the log line by line. Blank lines are ignored and lines
// that are not JSON objects are skipped and counted, never fatal.
func ReadLog(path string) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrLogNotFound, path)
		}
		return nil, fmt.Errorf("opening audit log '%s': %w", path, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	res := &ReadResult{Entries: make([]core.AuditEntry, 0)}

	r := bufio.NewReader(f)
	for {
		raw, readErr := r.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("reading audit log '%s': %w", path, readErr)
		}
		if e, ok := parseLine(raw); ok {
			res.Entries = append(res.Entries, e)
		} else if len(bytes.TrimSpace(raw)) > 0 {
			res.Skipped++
		}
		if readErr != nil { // EOF
			break
		}
	}
	return res, nil
}

// parseLine accepts any JSON object. Fields of an unexpected type are
// stringified rather than dropping the whole entry.
func parseLine(raw []byte) (core.AuditEntry, bool) {
	var e core.AuditEntry
	line := bytes.TrimSpace(raw)
	if len(line) == 0 || line[0] != '{' {
		return e, false
	}

	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return e, false
	}

	e.TimestampUTC = textField(fields, "timestamp_utc")
	e.MatrixID = textField(fields, "matrix_id")
	e.MatrixTitle = textField(fields, "matrix_title")
	e.Decision = core.Decision(textField(fields, "decision"))
	e.Reason = textField(fields, "reason")
	e.Signals = core.SignalsFrom(fields["signals"])
	e.HarnessVersion = textField(fields, "harness_version")
	return e, true
}

func textField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
