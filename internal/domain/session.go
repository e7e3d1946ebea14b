package domain

import "time"

// Session links an uploaded PDF and its derived artifacts to an opaque
// client-visible identifier. Sessions live in process memory only and are
// lost on restart.
type Session struct {
	ID       string `json:"session_id"`
	Filename string `json:"filename"`

	// OriginalPath is set once at upload and never changes.
	OriginalPath string `json:"-"`
	// EditedPath points at a user-replaced file. A later update overwrites
	// the reference without deleting the prior file.
	EditedPath string `json:"-"`
	// TranslatedPath is set only after a translation attempt succeeded.
	TranslatedPath string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// InputPath returns the active input for translation: the edited file when
// one was uploaded, otherwise the original.
func (s *Session) InputPath() string {
	if s.EditedPath != "" {
		return s.EditedPath
	}
	return s.OriginalPath
}

// HasTranslation reports whether a translation attempt has succeeded for
// this session.
func (s *Session) HasTranslation() bool {
	return s.TranslatedPath != ""
}

// FilePaths returns every file path the session references, in the order
// original, edited, translated. Empty references are skipped.
func (s *Session) FilePaths() []string {
	paths := make([]string, 0, 3)
	for _, p := range []string{s.OriginalPath, s.EditedPath, s.TranslatedPath} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// SessionSummary is the per-session entry returned by the session listing.
type SessionSummary struct {
	SessionID      string `json:"session_id"`
	Filename       string `json:"filename"`
	HasTranslation bool   `json:"has_translation"`
}
