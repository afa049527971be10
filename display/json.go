package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/teranos/mamdani/errors"
)

// MarshalJSON marshals with two-space indentation, or compact when
// MAMDANI_COMPACT_JSON is set (for piping into other tools).
func MarshalJSON(v interface{}) ([]byte, error) {
	if os.Getenv("MAMDANI_COMPACT_JSON") != "" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", "  ")
}

// WriteJSON marshals v and writes it to w followed by a newline
func WriteJSON(w io.Writer, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
