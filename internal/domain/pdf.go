package domain

import "fmt"

// TextSegment is a piece of extracted text with its bounding box in page
// coordinate space. Segments are derived on demand and never stored.
type TextSegment struct {
	Text      string  `json:"text"`
	Page      int     `json:"page"`
	X0        float64 `json:"x0"`
	Y0        float64 `json:"y0"`
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	SegmentID string  `json:"segment_id,omitempty"`
}

// SegmentID builds the opaque identifier for a segment, scoped to a page.
func SegmentID(page, index int) string {
	return fmt.Sprintf("seg_%d_%d", page, index)
}

// DownloadVariant selects which file of a session to serve.
type DownloadVariant string

const (
	DownloadOriginal   DownloadVariant = "original"
	DownloadTranslated DownloadVariant = "translated"
)
