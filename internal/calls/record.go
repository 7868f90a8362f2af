// internal/calls/record.go
package calls

import (
	"math"
	"strconv"
	"strings"
)

// CallID is the canonical form of an upstream uniqueid.
// Numeric ids compare by value: "12.50" and 12.5 are the same call.
type CallID string

// ParseCallID canonicalizes a numeric uniqueid.
func ParseCallID(raw string) (CallID, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return CallID(strconv.FormatFloat(f, 'f', -1, 64)), true
}

// Record is one call as reported by the calls API.
// Value type: no references to the decoded response are kept.
type Record struct {
	UniqueID     CallID
	CalledNumber string
	Extension    string
	CallerName   string
	CallerPhone  string
	SourceType   string
	Answered     int
}

// Live reports whether the call is answered.
func (r Record) Live() bool { return r.Answered > 0 }

// NormalizeName strips the delimiter the line protocol cannot carry.
func NormalizeName(name string) string {
	return strings.ReplaceAll(name, ",", " ")
}
