package actor

import (
	"fmt"
	"strconv"
	"strings"
)

// Message is the payload exchanged between synthesized actors. Readings
// carry a comma-separated Content of "<id>, <timestamp>, <value>"; commands
// carry a Command word; gateways wrap what they forward in a processed
// envelope.
type Message struct {
	Labels    []string
	Content   string
	Command   string
	Timestamp float64
	Processed bool
	Original  any
}

// NewReading builds a sensor reading.
func NewReading(id string, timestamp, value float64) *Message {
	return &Message{
		Labels:    []string{"Device-Type", id, "V1.0.0"},
		Content:   fmt.Sprintf("%s, %d, %s", id, int64(timestamp), strconv.FormatFloat(value, 'f', 2, 64)),
		Timestamp: timestamp,
	}
}

// NewEnvelope wraps payload as processed by a gateway at timestamp.
func NewEnvelope(payload any, timestamp float64) *Message {
	return &Message{Processed: true, Original: payload, Timestamp: timestamp}
}

// Unwrap follows processed envelopes down to the innermost payload.
func Unwrap(payload any) any {
	for {
		m, ok := payload.(*Message)
		if !ok || !m.Processed || m.Original == nil {
			return payload
		}
		payload = m.Original
	}
}

func (m *Message) String() string {
	switch {
	case m == nil:
		return "<nil>"
	case m.Processed:
		return fmt.Sprintf("processed{%v @%g}", m.Original, m.Timestamp)
	case m.Command != "":
		return fmt.Sprintf("command{%s @%g}", m.Command, m.Timestamp)
	default:
		return fmt.Sprintf("reading{%s}", m.Content)
	}
}

// ExtractValue parses the numeric value at position field of a payload's
// comma-separated content. Numbers and strings are accepted directly.
func ExtractValue(payload any, field int) (float64, error) {
	switch v := Unwrap(payload).(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		return valueAt(v, field)
	case *Message:
		if v == nil {
			return 0, fmt.Errorf("nil message")
		}
		return valueAt(v.Content, field)
	default:
		return 0, fmt.Errorf("unsupported payload %T", payload)
	}
}

func valueAt(content string, field int) (float64, error) {
	parts := strings.Split(content, ",")
	if field < 0 || field >= len(parts) {
		return 0, fmt.Errorf("content %q has no field %d", content, field)
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(parts[field]), 64)
	if err != nil {
		return 0, fmt.Errorf("content %q field %d: %w", content, field, err)
	}
	return val, nil
}
