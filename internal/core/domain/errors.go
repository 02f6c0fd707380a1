package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInput            = errors.New("invalid input")
	ErrExtraction       = errors.New("extraction failed")
	ErrGeneration       = errors.New("generation failed")
	ErrStorage          = errors.New("storage failure")
	ErrDocumentNotFound = errors.New("document not found")
	ErrTemporary        = errors.New("temporary failure")
)

// Sub-kinds keep their parent in the chain so callers can match either level.
var (
	ErrEmptyInput        = fmt.Errorf("%w: empty input", ErrInput)
	ErrFileTooLarge      = fmt.Errorf("%w: file too large", ErrInput)
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported format", ErrInput)

	ErrCorruptFile         = fmt.Errorf("%w: corrupt file", ErrExtraction)
	ErrMissingDocumentBody = fmt.Errorf("%w: missing document body", ErrCorruptFile)
	ErrMalformedDocument   = fmt.Errorf("%w: unparsable document markup", ErrCorruptFile)
	ErrNoExtractableText   = fmt.Errorf("%w: no extractable text", ErrExtraction)
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

// Fail builds a kinded error without an underlying cause.
func Fail(kind error, operation, message string) error {
	return fmt.Errorf("%s: %w: %s", operation, kind, message)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
