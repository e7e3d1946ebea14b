package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdf-translate-server/internal/domain"
	apperrors "pdf-translate-server/pkg/errors"

	"github.com/google/uuid"
)

// SessionService orchestrates the upload → edit → translate → download →
// cleanup workflow on top of the session store, the validator, the extractor
// and the translation gateway.
type SessionService struct {
	store      domain.SessionStore
	validator  domain.PDFValidator
	extractor  domain.TextExtractor
	translator domain.DocumentTranslator
	tempDir    string
	logger     domain.Logger
}

// NewSessionService creates a new session service instance
func NewSessionService(
	store domain.SessionStore,
	validator domain.PDFValidator,
	extractor domain.TextExtractor,
	translator domain.DocumentTranslator,
	tempDir string,
	logger domain.Logger,
) *SessionService {
	return &SessionService{
		store:      store,
		validator:  validator,
		extractor:  extractor,
		translator: translator,
		tempDir:    tempDir,
		logger:     logger,
	}
}

// Upload saves the incoming file, validates it and creates a session. The
// partial file is deleted when validation or the save itself fails.
func (s *SessionService) Upload(filename string, file io.Reader) (*domain.Session, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return nil, apperrors.NewValidationError("Only PDF files are allowed")
	}

	// The service owns identifier generation so the file can be named
	// before the record exists.
	id := uuid.New().String()
	path := filepath.Join(s.tempDir, id+"_original.pdf")

	if err := s.saveFile(path, file); err != nil {
		s.removeQuietly(path)
		return nil, apperrors.NewInternalError(fmt.Sprintf("Upload failed: %v", err), err)
	}
	s.logger.Info("upload saved", "session_id", id, "path", path)

	if err := s.validator.Validate(path); err != nil {
		s.removeQuietly(path)
		s.logger.Warn("upload rejected", "filename", name, "error", err)
		return nil, apperrors.NewValidationError("Invalid or corrupted PDF file")
	}

	sess := &domain.Session{
		ID:           id,
		Filename:     name,
		OriginalPath: path,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(sess); err != nil {
		s.removeQuietly(path)
		return nil, apperrors.NewInternalError(fmt.Sprintf("Upload failed: %v", err), err)
	}

	s.logger.Info("session created", "session_id", id, "filename", name)
	return sess, nil
}

// ExtractText returns positioned text segments from the original upload.
// Extraction always reads the original file, never the edited replacement.
func (s *SessionService) ExtractText(id string) ([]domain.TextSegment, error) {
	sess, err := s.getSession(id)
	if err != nil {
		return nil, err
	}

	segments, err := s.extractor.ExtractSegments(sess.OriginalPath)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("Text extraction failed: %v", err), err)
	}
	return segments, nil
}

// Update stores a user-edited replacement for the session. Any previous
// edited file reference is overwritten without deleting the file.
func (s *SessionService) Update(id string, file io.Reader) error {
	if _, err := s.getSession(id); err != nil {
		return err
	}

	path := filepath.Join(s.tempDir, id+"_edited.pdf")
	if err := s.saveFile(path, file); err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("Failed to update PDF: %v", err), err)
	}
	if err := s.store.SetEditedPath(id, path); err != nil {
		return s.mapStoreErr(err)
	}

	s.logger.Info("session updated with edited PDF", "session_id", id, "path", path)
	return nil
}

// Translate submits the session's active input to the translation gateway
// and records the result path on success. Gateway failures surface as server
// errors carrying the provider's message.
func (s *SessionService) Translate(ctx context.Context, id, sourceLang, targetLang string) (*domain.TranslationResult, error) {
	sess, err := s.getSession(id)
	if err != nil {
		return nil, err
	}

	input := sess.InputPath()
	if sess.EditedPath != "" {
		s.logger.Info("translating edited PDF", "session_id", id)
	} else {
		s.logger.Info("translating original PDF", "session_id", id)
	}
	output := filepath.Join(s.tempDir, id+"_translated.pdf")

	result := s.translator.Translate(ctx, input, output, sourceLang, targetLang)
	if !result.Success {
		return nil, apperrors.NewInternalError(result.Error, nil)
	}

	if err := s.store.SetTranslatedPath(id, output); err != nil {
		return nil, s.mapStoreErr(err)
	}
	s.logger.Info("translation recorded", "session_id", id, "output", output)
	return &result, nil
}

// ResolveDownload validates the requested variant and returns the file path
// together with the client-facing download name {basename}_{variant}.pdf.
func (s *SessionService) ResolveDownload(id string, variant string) (path, downloadName string, err error) {
	sess, getErr := s.getSession(id)
	if getErr != nil {
		return "", "", getErr
	}

	switch domain.DownloadVariant(variant) {
	case domain.DownloadOriginal:
		path = sess.OriginalPath
	case domain.DownloadTranslated:
		if !sess.HasTranslation() {
			return "", "", apperrors.NewNotFoundError("Translated PDF not found. Please translate first.")
		}
		path = sess.TranslatedPath
	default:
		return "", "", apperrors.NewValidationError("Invalid PDF type. Use 'original' or 'translated'")
	}

	if path == "" {
		return "", "", apperrors.NewNotFoundError("PDF file not found")
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return "", "", apperrors.NewNotFoundError("PDF file not found")
	}

	base := strings.TrimSuffix(sess.Filename, filepath.Ext(sess.Filename))
	return path, fmt.Sprintf("%s_%s.pdf", base, variant), nil
}

// Cleanup removes the session record and every file it references, and
// reports how many files were actually removed. The record is claimed first
// so a concurrent second cleanup observes not-found.
func (s *SessionService) Cleanup(id string) (int, error) {
	sess, err := s.store.Delete(id)
	if err != nil {
		return 0, s.mapStoreErr(err)
	}

	removed := 0
	for _, path := range sess.FilePaths() {
		if err := os.Remove(path); err != nil {
			if !os.IsNotExist(err) {
				s.logger.Warn("failed to remove session file", "session_id", id, "path", path, "error", err)
			}
			continue
		}
		removed++
	}

	s.logger.Info("session cleaned up", "session_id", id, "files_removed", removed)
	return removed, nil
}

// List returns the number of active sessions and a summary for each one.
func (s *SessionService) List() (int, []domain.SessionSummary) {
	return s.store.Count(), s.store.List()
}

func (s *SessionService) getSession(id string) (*domain.Session, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, s.mapStoreErr(err)
	}
	return sess, nil
}

func (s *SessionService) mapStoreErr(err error) error {
	if errors.Is(err, domain.ErrSessionNotFound) {
		return apperrors.NewNotFoundError("Session not found")
	}
	return apperrors.NewInternalError(err.Error(), err)
}

func (s *SessionService) saveFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}
	return nil
}

func (s *SessionService) removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove partial file", "path", path, "error", err)
	}
}
