// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"pdf-translate-server/internal/domain"
	"pdf-translate-server/internal/service"

	"github.com/gorilla/mux"
)

// PDFHandler handles the PDF translation workflow endpoints
type PDFHandler struct {
	sessions    *service.SessionService
	maxFileSize int64
	logger      domain.Logger
}

// NewPDFHandler creates a new PDF handler
func NewPDFHandler(sessions *service.SessionService, maxFileSize int64, logger domain.Logger) *PDFHandler {
	return &PDFHandler{
		sessions:    sessions,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

type uploadResponse struct {
	SessionID string `json:"session_id"`
	Filename  string `json:"filename"`
	Message   string `json:"message"`
}

type extractTextResponse struct {
	Segments      []domain.TextSegment `json:"segments"`
	TotalSegments int                  `json:"total_segments"`
}

type updateResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type translateRequest struct {
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	// ManualEdits is accepted for API compatibility; applying edits during
	// translation requires the XLIFF reflow pipeline, which this service
	// delegates entirely to the provider.
	ManualEdits map[string]string `json:"manual_edits,omitempty"`
}

type translateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	PDFURL  string `json:"pdf_url,omitempty"`
}

type sessionsResponse struct {
	ActiveSessions int                     `json:"active_sessions"`
	Sessions       []domain.SessionSummary `json:"sessions"`
}

// UploadPDF handles upload and validation of a new PDF
func (h *PDFHandler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("File too large. Maximum size is %d bytes.", h.maxFileSize))
		return
	}

	h.logger.Info("upload request", "filename", header.Filename, "size", header.Size)

	sess, err := h.sessions.Upload(header.Filename, file)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		SessionID: sess.ID,
		Filename:  sess.Filename,
		Message:   "PDF uploaded and validated successfully",
	})
}

// ExtractText returns the positioned text segments of the original upload
func (h *PDFHandler) ExtractText(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	segments, err := h.sessions.ExtractText(sessionID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, extractTextResponse{
		Segments:      segments,
		TotalSegments: len(segments),
	})
}

// UpdatePDF replaces the session input with an externally edited file
func (h *PDFHandler) UpdatePDF(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	h.logger.Info("update request", "session_id", sessionID, "filename", header.Filename)

	if err := h.sessions.Update(sessionID, file); err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updateResponse{
		Message:   "PDF updated successfully",
		SessionID: sessionID,
	})
}

// TranslatePDF submits the session's active input to the translation
// provider and blocks until the provider resolves
func (h *PDFHandler) TranslatePDF(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.TargetLang) == "" {
		writeError(w, http.StatusBadRequest, "target_lang is required")
		return
	}
	if len(req.ManualEdits) > 0 {
		h.logger.Warn("manual_edits ignored", "session_id", sessionID, "edits", len(req.ManualEdits))
	}

	h.logger.Info("translate request",
		"session_id", sessionID, "source_lang", req.SourceLang, "target_lang", req.TargetLang)

	result, err := h.sessions.Translate(r.Context(), sessionID, req.SourceLang, req.TargetLang)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, translateResponse{
		Success: result.Success,
		Message: result.Message,
		PDFURL:  fmt.Sprintf("/api/v1/download/%s/translated", sessionID),
	})
}

// DownloadPDF streams the original or translated file back to the client
func (h *PDFHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]
	pdfType := vars["type"]

	path, downloadName, err := h.sessions.ResolveDownload(sessionID, pdfType)
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.logger.Info("serving file", "session_id", sessionID, "type", pdfType, "filename", downloadName)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	http.ServeFile(w, r, path)
}

// CleanupSession removes the session record and its files
func (h *PDFHandler) CleanupSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	removed, err := h.sessions.Cleanup(sessionID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session cleaned up successfully. %d file(s) removed.", removed),
	})
}

// ListSessions returns every active session
func (h *PDFHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	count, sessions := h.sessions.List()
	writeJSON(w, http.StatusOK, sessionsResponse{
		ActiveSessions: count,
		Sessions:       sessions,
	})
}
