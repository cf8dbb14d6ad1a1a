package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Texter is implemented by payloads that have a human-readable rendering.
type Texter interface {
	WriteText(w io.Writer) error
}

// Names lists the accepted values of --format.
var Names = []string{"json", "edn", "text"}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - edn
// - text (payloads implementing Texter; anything else falls back to indented JSON)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "text":
		if t, ok := v.(Texter); ok {
			return t.WriteText(w)
		}
		return WriteJSON(w, v, true)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// Valid reports whether format is one of Names (or empty, meaning json).
func Valid(format string) bool {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		return true
	}
	for _, n := range Names {
		if n == f {
			return true
		}
	}
	return false
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
