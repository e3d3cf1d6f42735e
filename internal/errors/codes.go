package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeAborted            Code = "ABORTED"
	CodeOutOfRange         Code = "OUT_OF_RANGE"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeDataLoss           Code = "DATA_LOSS"
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Category groups codes by how the caller is expected to present them
type Category string

const (
	// CategoryValidation is rejected input, surfaced before any mutation
	CategoryValidation Category = "validation"
	// CategoryConflict is a uniqueness clash, surfaced as a user-facing message
	CategoryConflict Category = "conflict"
	// CategoryResource is a storage failure; the caller may offer a retry
	CategoryResource Category = "resource"
	// CategoryState is a caller contract violation
	CategoryState Category = "state"
)

// Category returns the category the code belongs to
func (c Code) Category() Category {
	switch c {
	case CodeInvalidArgument, CodeUnauthenticated:
		return CategoryValidation
	case CodeAlreadyExists:
		return CategoryConflict
	case CodeFailedPrecondition, CodeOutOfRange, CodeNotFound:
		return CategoryState
	default:
		return CategoryResource
	}
}

// Retryable reports whether the user can reasonably try the operation again
func (c Code) Retryable() bool {
	return c.Category() == CategoryResource
}
