package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kirillkom/docsense/internal/core/domain"
)

// DefaultMaxUploadBytes is 50 MiB.
const DefaultMaxUploadBytes int64 = 50 << 20

type Validator struct {
	maxBytes int64
}

func NewValidator(maxBytes int64) *Validator {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &Validator{maxBytes: maxBytes}
}

// ValidateUpload checks an upload with the default size limit.
func ValidateUpload(data []byte, filename string) domain.ValidationResult {
	return NewValidator(DefaultMaxUploadBytes).ValidateUpload(data, filename)
}

func (v *Validator) ValidateUpload(data []byte, filename string) domain.ValidationResult {
	result, _ := v.check(data, filename)
	return result
}

// check returns the validation result together with the error kind of the
// first failed rule.
func (v *Validator) check(data []byte, filename string) (domain.ValidationResult, error) {
	if len(data) == 0 {
		return invalid("No file contents provided", 0), domain.ErrEmptyInput
	}
	if strings.TrimSpace(filename) == "" {
		return invalid("No filename provided", 0), domain.ErrInput
	}

	size := len(data)
	if int64(size) > v.maxBytes {
		return invalid(fmt.Sprintf("File size exceeds %s limit", formatLimit(v.maxBytes)), size), domain.ErrFileTooLarge
	}

	fileType, ok := domain.FileTypeFromName(filename)
	if !ok {
		return invalid("Unsupported file format. Only PDF and DOCX files are allowed.", size), domain.ErrUnsupportedFormat
	}

	return domain.ValidationResult{IsValid: true, FileSize: size, FileType: fileType}, nil
}

// formatLimit picks the largest binary unit that keeps the value at or above one.
func formatLimit(n int64) string {
	switch {
	case n >= 1<<20:
		return strconv.FormatFloat(float64(n)/(1<<20), 'f', -1, 64) + "MB"
	case n >= 1<<10:
		return strconv.FormatFloat(float64(n)/(1<<10), 'f', -1, 64) + "KB"
	default:
		return strconv.FormatInt(n, 10) + " bytes"
	}
}

func invalid(message string, size int) domain.ValidationResult {
	return domain.ValidationResult{ErrorMessage: message, FileSize: size}
}
