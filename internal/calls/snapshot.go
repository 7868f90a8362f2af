// internal/calls/snapshot.go
package calls

import (
	"encoding/json"
	"fmt"
)

// StatusOK is the only response code that admits a snapshot.
const StatusOK = 200

// ResponseStatus is one entry of the top-level "responses" array.
type ResponseStatus struct {
	Code Flex `json:"code"`
}

// RawRecord is one entry of "data", exactly as the API sends it.
type RawRecord struct {
	Answered     Flex `json:"answered"`
	CalledNumber Flex `json:"cnumber"`
	Extension    Flex `json:"dnumber"`
	CallerName   Flex `json:"callername_external"`
	CallerPhone  Flex `json:"callerid_external"`
	UniqueID     Flex `json:"uniqueid"`
	SourceType   Flex `json:"stype"`
}

// Response is one decoded API poll (a snapshot).
type Response struct {
	Responses []ResponseStatus `json:"responses"`
	Data      []RawRecord      `json:"data"`

	// Raw is the undecoded body, kept for logging rejections.
	Raw []byte `json:"-"`
}

// Decode parses an API body. It does not judge the status code.
func Decode(body []byte) (Response, error) {
	var r Response
	if err := json.Unmarshal(body, &r); err != nil {
		return Response{}, fmt.Errorf("calls: decode response: %w", err)
	}
	r.Raw = body
	return r, nil
}

// Code returns the first response code, or 0 when none is usable.
func (r Response) Code() int {
	if len(r.Responses) == 0 {
		return 0
	}
	code, ok := r.Responses[0].Code.Int()
	if !ok {
		return 0
	}
	return code
}

// RejectedError means the API answered with a non-200 status code.
// The whole snapshot is discarded.
type RejectedError struct {
	Code int
	Raw  []byte
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("calls: snapshot rejected: code=%d", e.Code)
}
