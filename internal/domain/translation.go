package domain

// DocumentHandle is the opaque identifier + key pair returned by the
// translation provider to reference an in-progress translation job.
type DocumentHandle struct {
	DocumentID  string `json:"document_id"`
	DocumentKey string `json:"document_key"`
}

// TranslationResult is the structured outcome of a translation attempt. The
// gateway never raises; the caller decides how failures surface.
type TranslationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
