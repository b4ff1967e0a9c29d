// Package errors provides structured error types for the lotus-script SDK and host.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the Go type involved, the message identity when dispatching,
// a human readable detail and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDispatch, errors.KindTypeMismatch).
//		GoType("main.DoorCommand").
//		Meta("doors:command").
//		Detail("message carries a different type").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.DecodeFailed(errors.PhaseDecode, "[]message.Message", cause)
//	err := errors.OutOfBounds(errors.PhaseHost, ptr, size, memSize)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when their Phase and Kind are equal.
package errors
