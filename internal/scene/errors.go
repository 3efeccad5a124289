package scene

import "errors"

var (
	// ErrInvalidPayload indicates a payload that failed validation at construction.
	ErrInvalidPayload = errors.New("scene: invalid payload")

	// ErrCountMismatch indicates payloads and positions of different lengths.
	ErrCountMismatch = errors.New("scene: payload and position counts differ")

	// ErrReleased indicates use of a scene after Release.
	ErrReleased = errors.New("scene: scene released")
)
