// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInvalidRequest,
//	    "failed to decode upgrade",
//	    decodeErr,
//	    map[string]any{
//	        "motorcycle": id,
//	    },
//	)
//
// Sentinel errors created with New compare equal to any StructuredError
// carrying the same code, so callers can match with errors.Is:
//
//	if errors.Is(err, motorcycle.ErrCapacityExceeded) { ... }
package errors
