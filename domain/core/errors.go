package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrTemplateNotFound = fmt.Errorf("%w: active template", ErrNotFound)
	ErrClauseNotFound   = fmt.Errorf("%w: clause", ErrNotFound)

	// Resolution errors
	ErrClauseSetEmpty = errors.New("resolved clause set is empty")

	// Rendering errors
	ErrRenderDelegate = errors.New("rendering delegate failed")
	ErrRenderTimeout  = fmt.Errorf("%w: timed out", ErrRenderDelegate)

	// Ingestion errors
	ErrSourceUndecodable = errors.New("source document could not be decoded")
)

// Error constructors with context
func NewTemplateNotFoundError(contractType string) error {
	return fmt.Errorf("%w for contract type %s", ErrTemplateNotFound, contractType)
}

func NewClauseSetEmptyError(contractType string) error {
	return fmt.Errorf("%w for contract type %s", ErrClauseSetEmpty, contractType)
}

func NewRenderDelegateError(cause error) error {
	return fmt.Errorf("%w: %v", ErrRenderDelegate, cause)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsRenderError(err error) bool {
	return errors.Is(err, ErrRenderDelegate)
}
