// Package response defines the JSON envelope every API endpoint answers
// with, success or failure.
package response

// Statuses carried in the envelope's status field.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the standard API envelope. Data is present on success, Error
// on failure; StatusCode mirrors the HTTP status for clients that only look
// at the body.
type Response struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Success wraps a payload in a success envelope.
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     StatusSuccess,
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error wraps an error message in an error envelope.
func Error(statusCode int, err string) Response {
	return Response{
		Status:     StatusError,
		StatusCode: statusCode,
		Error:      err,
	}
}
