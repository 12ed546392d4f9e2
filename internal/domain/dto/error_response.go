package dto

import "time"

// ErrorResponse is the JSON body of every failed request.
//
// Fields:
//   - Message: short human readable description.
//   - ErrorDetails: underlying error text, if any.
//   - Kind: error taxonomy bucket (precondition, range, semantic, not_implemented, internal).
//   - Timestamp: when the error response was built (UTC).
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid frequency"`
	ErrorDetails string    `json:"error,omitempty" example:"precondition violation: invalid frequency \"XYZ\""`
	Kind         string    `json:"kind,omitempty" example:"precondition"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
