package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "Invalid request format.",
		Details: "the request body could not be decoded",
	}

	ErrMissingDeleteID = ErrorResponse{
		Status: "error",
		Error:  "Missing 'id' for delete.",
	}

	ErrMissingUpdateID = ErrorResponse{
		Status: "error",
		Error:  "Missing 'id' for update.",
	}

	ErrInvalidID = ErrorResponse{
		Status: "error",
		Error:  "Invalid 'id', expected a UUID.",
	}

	ErrInternal = ErrorResponse{
		Status: "error",
		Error:  "Internal server error.",
	}
)

// Error builds the standard error body.
func Error(message string) ErrorResponse {
	return ErrorResponse{
		Status: "error",
		Error:  message,
	}
}
