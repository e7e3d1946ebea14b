package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdf-translate-server/internal/domain"
)

// DeepLTranslator drives the DeepL Document Translation API: upload the
// file, poll the job status until the provider reports done, download the
// result. Language codes are passed through verbatim.
type DeepLTranslator struct {
	apiKey       string
	baseURL      string
	pollInterval time.Duration
	client       *http.Client
	logger       domain.Logger
}

// NewDeepLTranslator creates a gateway against the configured DeepL API
func NewDeepLTranslator(cfg domain.Config, logger domain.Logger) *DeepLTranslator {
	return &DeepLTranslator{
		apiKey:       cfg.GetDeepLAPIKey(),
		baseURL:      strings.TrimRight(cfg.GetDeepLAPIURL(), "/"),
		pollInterval: cfg.GetPollInterval(),
		client:       &http.Client{},
		logger:       logger,
	}
}

// documentStatus is the provider's answer to a status poll.
type documentStatus struct {
	DocumentID       string `json:"document_id"`
	Status           string `json:"status"`
	SecondsRemaining int    `json:"seconds_remaining"`
	ErrorMessage     string `json:"error_message"`
}

// Translate runs the full upload/poll/download protocol. Every failure is
// converted into a result rather than returned as an error; no provider-side
// cleanup of the uploaded document is attempted.
func (t *DeepLTranslator) Translate(ctx context.Context, inputPath, outputPath, sourceLang, targetLang string) domain.TranslationResult {
	t.logger.Info("starting document translation",
		"input", inputPath, "source_lang", sourceLang, "target_lang", targetLang)

	handle, err := t.uploadDocument(ctx, inputPath, sourceLang, targetLang)
	if err != nil {
		return t.failure(err)
	}
	t.logger.Info("document uploaded", "document_id", handle.DocumentID)

	if err := t.waitForCompletion(ctx, handle); err != nil {
		return t.failure(err)
	}

	if err := t.downloadResult(ctx, handle, outputPath); err != nil {
		return t.failure(err)
	}
	t.logger.Info("translated document saved", "output", outputPath)

	return domain.TranslationResult{
		Success: true,
		Message: "Translation completed successfully using DeepL Document API",
	}
}

func (t *DeepLTranslator) failure(err error) domain.TranslationResult {
	t.logger.Error("document translation failed", err)
	return domain.TranslationResult{
		Success: false,
		Message: fmt.Sprintf("Translation failed: %v", err),
		Error:   err.Error(),
	}
}

// uploadDocument submits the file and receives the document handle used by
// all subsequent calls.
func (t *DeepLTranslator) uploadDocument(ctx context.Context, inputPath, sourceLang, targetLang string) (*domain.DocumentHandle, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if sourceLang != "" {
		if err := writer.WriteField("source_lang", sourceLang); err != nil {
			return nil, err
		}
	}
	if err := writer.WriteField("target_lang", targetLang); err != nil {
		return nil, err
	}
	part, err := writer.CreateFormFile("file", filepath.Base(inputPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/v2/document", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+t.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("document upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("document upload", resp)
	}

	var handle domain.DocumentHandle
	if err := json.NewDecoder(resp.Body).Decode(&handle); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	if handle.DocumentID == "" || handle.DocumentKey == "" {
		return nil, fmt.Errorf("provider returned an incomplete document handle")
	}
	return &handle, nil
}

// waitForCompletion polls the job status at a fixed interval until the
// provider reports done or an error. There is no retry cap; cancelling ctx
// is the only other way out of the loop.
func (t *DeepLTranslator) waitForCompletion(ctx context.Context, handle *domain.DocumentHandle) error {
	for {
		status, err := t.getStatus(ctx, handle)
		if err != nil {
			return err
		}
		t.logger.Debug("translation status", "document_id", handle.DocumentID, "status", status.Status)

		if status.ErrorMessage != "" {
			return fmt.Errorf("translation failed: %s", status.ErrorMessage)
		}
		if status.Status == "done" {
			return nil
		}
		if status.Status == "error" {
			return fmt.Errorf("translation failed: provider reported error status")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(t.pollInterval):
		}
	}
}

func (t *DeepLTranslator) getStatus(ctx context.Context, handle *domain.DocumentHandle) (*documentStatus, error) {
	resp, err := t.postDocumentKey(ctx, t.baseURL+"/v2/document/"+handle.DocumentID, handle.DocumentKey)
	if err != nil {
		return nil, fmt.Errorf("status poll failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("status poll", resp)
	}

	var status documentStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode status response: %w", err)
	}
	return &status, nil
}

// downloadResult streams the translated document to outputPath.
func (t *DeepLTranslator) downloadResult(ctx context.Context, handle *domain.DocumentHandle, outputPath string) error {
	resp, err := t.postDocumentKey(ctx, t.baseURL+"/v2/document/"+handle.DocumentID+"/result", handle.DocumentKey)
	if err != nil {
		return fmt.Errorf("result download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError("result download", resp)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func (t *DeepLTranslator) postDocumentKey(ctx context.Context, endpoint, documentKey string) (*http.Response, error) {
	form := url.Values{"document_key": {documentKey}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+t.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return t.client.Do(req)
}

// apiError folds a non-200 provider response into an error, keeping a short
// snippet of the body for diagnostics.
func apiError(operation string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	detail := strings.TrimSpace(string(snippet))
	if detail == "" {
		return fmt.Errorf("%s returned status %d", operation, resp.StatusCode)
	}
	return fmt.Errorf("%s returned status %d: %s", operation, resp.StatusCode, detail)
}
