package domain

import (
	"context"
	"time"
)

// SessionStore is the process-wide mapping from session identifier to file
// paths and metadata. Implementations must be safe for concurrent use;
// concurrent mutations of the same session are last-write-wins per field.
type SessionStore interface {
	Create(sess *Session) error
	Get(id string) (*Session, error)
	SetEditedPath(id, path string) error
	SetTranslatedPath(id, path string) error
	// Delete removes the session record and returns it so the caller can
	// release the files it references. Unknown id yields ErrSessionNotFound.
	Delete(id string) (*Session, error)
	List() []SessionSummary
	Count() int
}

// PDFValidator checks that a file on disk is a usable PDF. A validation
// failure is a client error, never a server fault.
type PDFValidator interface {
	Validate(path string) error
}

// TextExtractor produces positioned text segments from a PDF on disk.
type TextExtractor interface {
	ExtractSegments(path string) ([]TextSegment, error)
}

// DocumentTranslator wraps a document-translation provider's
// upload/poll/download protocol. Failures are reported in the result rather
// than raised; ctx cancels the polling loop.
type DocumentTranslator interface {
	Translate(ctx context.Context, inputPath, outputPath, sourceLang, targetLang string) TranslationResult
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetTempDir() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetDeepLAPIKey() string
	GetDeepLAPIURL() string
	GetPollInterval() time.Duration
	StrictValidation() bool
}
