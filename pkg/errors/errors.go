// Package errors holds the sentinel errors of knapsack and maps driver errors onto them.
package errors

var (
	// ErrTimeoutExceeded is returned when the graceful shutdown takes longer than allowed.
	ErrTimeoutExceeded = New("Timeout exceeded")
	// ErrInvalidQueuePayload is returned when a queue producer receives a payload of the wrong type.
	ErrInvalidQueuePayload = New("Invalid Queue Payload")
	// GenericErrorMessage is the body of every unexpected API failure.
	GenericErrorMessage = New("Unexpected error. Please try again later.")
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New("Not Found")
	// ErrInvalidLoggerInstance is returned when logger instance is not supported.
	ErrInvalidLoggerInstance = New("Invalid logger instance")
)

// Error is an error with a json body, returned as is by the API.
type Error struct {
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// New returns a new error message.
func New(text string) error {
	return &Error{Message: text}
}
