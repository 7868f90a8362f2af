// internal/calls/flex.go
package calls

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Flex is a JSON scalar that may arrive as a number or as a string.
// The upstream API is not consistent about quoting.
type Flex struct {
	raw   string
	valid bool
}

func (f *Flex) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = Flex{}
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Flex{raw: s, valid: true}
	case '{', '[':
		return fmt.Errorf("calls: expected scalar, got %s", string(b[:1]))
	default:
		// number or bool literal, kept verbatim
		*f = Flex{raw: string(b), valid: true}
	}
	return nil
}

// String returns the raw text; empty when absent or null.
func (f Flex) String() string { return f.raw }

// Int parses an integer-like value ("1", 1, "1.0").
func (f Flex) Int() (int, bool) {
	if !f.valid {
		return 0, false
	}
	s := strings.TrimSpace(f.raw)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != float64(int(v)) {
		return 0, false
	}
	return int(v), true
}

// NewFlex builds a Flex from text. Used by tests and fixtures.
func NewFlex(s string) Flex { return Flex{raw: s, valid: true} }
