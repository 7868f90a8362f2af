// internal/calls/admit.go
package calls

import "strings"

// Admit filters a snapshot down to the eligible calls for one store.
//
// A non-200 snapshot is rejected as a whole with *RejectedError.
// Records that are unanswered, belong to another number, or cannot be
// parsed are dropped silently. Arrival order is preserved.
func Admit(resp Response, store string) ([]Record, error) {
	if code := resp.Code(); code != StatusOK {
		return nil, &RejectedError{Code: code, Raw: resp.Raw}
	}

	store = strings.TrimSpace(store)
	out := make([]Record, 0, len(resp.Data))

	for _, raw := range resp.Data {
		rec, ok := parseRecord(raw)
		if !ok {
			continue
		}
		if !rec.Live() || rec.CalledNumber != store {
			continue
		}
		out = append(out, rec)
	}

	return out, nil
}

// parseRecord converts one raw entry. ok=false marks a malformed record.
func parseRecord(raw RawRecord) (Record, bool) {
	answered, ok := raw.Answered.Int()
	if !ok {
		return Record{}, false
	}
	id, ok := ParseCallID(raw.UniqueID.String())
	if !ok {
		return Record{}, false
	}

	return Record{
		UniqueID:     id,
		CalledNumber: strings.TrimSpace(raw.CalledNumber.String()),
		Extension:    raw.Extension.String(),
		CallerName:   NormalizeName(raw.CallerName.String()),
		CallerPhone:  raw.CallerPhone.String(),
		SourceType:   raw.SourceType.String(),
		Answered:     answered,
	}, true
}
