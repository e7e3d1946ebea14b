package service

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"pdf-translate-server/internal/domain"

	"github.com/gen2brain/go-fitz"
)

// pdfMagic is the ASCII header every PDF file starts with.
var pdfMagic = []byte("%PDF")

// HeaderValidator checks the first 4 bytes of the file against the PDF
// magic header. Any read failure counts as invalid.
type HeaderValidator struct {
	logger domain.Logger
}

// NewHeaderValidator creates the minimal magic-byte validator
func NewHeaderValidator(logger domain.Logger) *HeaderValidator {
	return &HeaderValidator{logger: logger}
}

// Validate reports domain.ErrInvalidPDF when the file does not start with
// the PDF magic header.
func (v *HeaderValidator) Validate(path string) error {
	f, err := os.Open(path)
	if err != nil {
		v.logger.Warn("pdf validation could not open file", "path", path, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrInvalidPDF, err)
	}
	defer f.Close()

	header := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(f, header); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidPDF, err)
	}
	if !bytes.Equal(header, pdfMagic) {
		return domain.ErrInvalidPDF
	}
	return nil
}

// StrictValidator opens the document with MuPDF and requires at least one
// page. Slower than the header check, but catches truncated files.
type StrictValidator struct {
	logger domain.Logger
}

// NewStrictValidator creates the document-opening validator
func NewStrictValidator(logger domain.Logger) *StrictValidator {
	return &StrictValidator{logger: logger}
}

// Validate reports domain.ErrInvalidPDF when the document cannot be opened
// or has no pages.
func (v *StrictValidator) Validate(path string) error {
	doc, err := fitz.New(path)
	if err != nil {
		v.logger.Warn("pdf validation failed to open document", "path", path, "error", err)
		return fmt.Errorf("%w: %v", domain.ErrInvalidPDF, err)
	}
	defer doc.Close()

	if doc.NumPage() <= 0 {
		return fmt.Errorf("%w: document has no pages", domain.ErrInvalidPDF)
	}
	return nil
}
