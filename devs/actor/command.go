package actor

import (
	"fmt"
	"strings"
)

var commandWords = map[string]bool{
	"true": true, "on": true, "open": true, "1": true, "yes": true, "activate": true,
	"false": false, "off": false, "close": false, "0": false, "no": false, "deactivate": false,
}

// ParseCommand interprets a payload as a boolean-like actuation command.
// A processed envelope with no inner command toggles current.
func ParseCommand(payload any, current bool) (bool, error) {
	switch v := payload.(type) {
	case bool:
		return v, nil
	case int:
		return v != 0, nil
	case float64:
		return v != 0, nil
	case string:
		return parseCommandWord(v)
	case *Message:
		if v == nil {
			return current, fmt.Errorf("nil message")
		}
		if v.Processed {
			if inner, ok := Unwrap(v).(*Message); ok && inner.Command != "" {
				return parseCommandWord(inner.Command)
			}
			return !current, nil
		}
		if v.Command != "" {
			return parseCommandWord(v.Command)
		}
		return parseCommandWord(v.Content)
	default:
		return current, fmt.Errorf("unsupported command payload %T", payload)
	}
}

func parseCommandWord(s string) (bool, error) {
	val, ok := commandWords[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return false, fmt.Errorf("unrecognised command %q", s)
	}
	return val, nil
}
