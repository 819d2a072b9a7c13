package contract

// ErrorCode classifies an API failure.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrValidation     ErrorCode = "VALIDATION_FAILED"
	ErrNoDestination  ErrorCode = "NO_DESTINATION"
	ErrOriginalTodo   ErrorCode = "ORIGINAL_TODO"
	ErrUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrForbidden      ErrorCode = "FORBIDDEN"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrInternal       ErrorCode = "INTERNAL"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"error"`
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}
