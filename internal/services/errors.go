package services

import "errors"

// Pipeline error kinds. Services wrap these with fmt.Errorf("...: %w", ...)
// so callers can classify failures with errors.Is; handlers map them to
// HTTP status codes.
var (
	// ErrGeneration means a model call failed or returned output that could
	// not be parsed into the required shape. The interview orchestrator and
	// the ranker surface it to the caller; skill inference absorbs it with a
	// default profile.
	ErrGeneration = errors.New("generation failed")

	// ErrRetrieval means the vector index was unreachable or timed out.
	// Absorbed locally with the built-in fallback candidate list.
	ErrRetrieval = errors.New("candidate retrieval failed")

	// ErrValidation means the caller supplied malformed input.
	ErrValidation = errors.New("invalid input")

	// ErrPersistence means a storage transaction failed and was rolled back.
	ErrPersistence = errors.New("persistence failed")
)
