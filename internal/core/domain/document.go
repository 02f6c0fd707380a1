package domain

import (
	"strings"
	"time"
)

type FileType string

const (
	FileTypePDF  FileType = "PDF"
	FileTypeDOCX FileType = "DOCX"
)

// FileTypeFromName matches the filename suffix case-insensitively.
func FileTypeFromName(filename string) (FileType, bool) {
	lower := strings.ToLower(strings.TrimSpace(filename))
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return FileTypePDF, true
	case strings.HasSuffix(lower, ".docx"):
		return FileTypeDOCX, true
	default:
		return "", false
	}
}

// MetadataName is the lower-case form stored in DocumentMetadata.FileType.
func (t FileType) MetadataName() string {
	if t == "" {
		return "unknown"
	}
	return strings.ToLower(string(t))
}

type ValidationResult struct {
	IsValid      bool     `json:"is_valid"`
	ErrorMessage string   `json:"error_message"`
	FileSize     int      `json:"file_size"`
	FileType     FileType `json:"file_type"`
}

type Document struct {
	ID          string           `json:"id"`
	OwnerID     string           `json:"owner_id"`
	Filename    string           `json:"filename"`
	ContentType string           `json:"content_type"`
	FileType    FileType         `json:"file_type"`
	StorageKey  string           `json:"storage_key"`
	Content     string           `json:"content,omitempty"`
	Metadata    DocumentMetadata `json:"metadata"`
	Stored      bool             `json:"stored"`
	CreatedAt   time.Time        `json:"created_at"`
}

// DocumentAnalyzedEvent is published once a document has been extracted and stored.
type DocumentAnalyzedEvent struct {
	DocumentID   string    `json:"document_id"`
	OwnerID      string    `json:"owner_id"`
	Filename     string    `json:"filename"`
	FileType     FileType  `json:"file_type"`
	DocumentType string    `json:"document_type"`
	Language     string    `json:"language"`
	WordCount    int       `json:"word_count"`
	Confidence   float64   `json:"confidence"`
	OccurredAt   time.Time `json:"occurred_at"`
}
