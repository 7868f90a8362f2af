// internal/frame/encode.go
package frame

import (
	"fmt"
	"strconv"

	"github.com/tamzrod/brink-callerid/internal/lines"
)

// Encode converts one display action into an exact line-protocol frame.
// Layout is protocol-locked.
// No IO. No side effects.
//
//	Assign:  +1,<phone>,<name>,<line>\r\n
//	Release: +2,0,<line>\r\n
func Encode(a lines.Action) ([]byte, error) {
	if a.Line < 1 || a.Line > lines.MaxLines {
		return nil, fmt.Errorf("frame: line %d out of range 1..%d", a.Line, lines.MaxLines)
	}

	line := strconv.Itoa(a.Line)

	switch a.Kind {
	case lines.Assign:
		b := make([]byte, 0, 32+len(a.Call.CallerName)+len(a.Call.CallerPhone))
		b = append(b, CmdAssign...)
		b = append(b, FieldSep)
		b = appendField(b, a.Call.CallerPhone)
		b = append(b, FieldSep)
		b = appendField(b, a.Call.CallerName)
		b = append(b, FieldSep)
		b = append(b, line...)
		b = append(b, Terminator...)
		return b, nil

	case lines.Release:
		b := make([]byte, 0, 16)
		b = append(b, CmdRelease...)
		b = append(b, FieldSep)
		b = append(b, ReleaseArg...)
		b = append(b, FieldSep)
		b = append(b, line...)
		b = append(b, Terminator...)
		return b, nil

	default:
		return nil, fmt.Errorf("frame: unsupported action kind %d", a.Kind)
	}
}

// appendField writes s as one ASCII field.
// Separators become spaces; each rune outside printable ASCII becomes '?'.
func appendField(dst []byte, s string) []byte {
	for _, r := range s {
		switch {
		case r == FieldSep:
			dst = append(dst, SepReplacement)
		case r < 0x20 || r > 0x7E:
			dst = append(dst, Unprintable)
		default:
			dst = append(dst, byte(r))
		}
	}
	return dst
}
