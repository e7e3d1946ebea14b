package service

import (
	"fmt"
	"strings"

	"pdf-translate-server/internal/domain"

	"github.com/ledongthuc/pdf"
)

// PositionExtractor extracts text segments with bounding boxes so the
// frontend can build clickable overlays. One segment per text row, in
// extraction order (not sorted by position).
type PositionExtractor struct {
	logger domain.Logger
}

// NewPositionExtractor creates a new positioned text extractor
func NewPositionExtractor(logger domain.Logger) *PositionExtractor {
	return &PositionExtractor{logger: logger}
}

// ExtractSegments reads the PDF at path and returns every text row with its
// page number and bounding box in page coordinates.
func (e *PositionExtractor) ExtractSegments(path string) ([]domain.TextSegment, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	segments := make([]domain.TextSegment, 0)
	totalPages := r.NumPage()

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			e.logger.Warn("failed to read text rows", "page", pageNum, "error", err)
			continue
		}

		segmentIndex := 0
		for _, row := range rows {
			seg, ok := e.rowToSegment(row, pageNum, segmentIndex)
			if !ok {
				continue
			}
			segments = append(segments, seg)
			segmentIndex++
		}
	}

	e.logger.Info("extracted text segments", "segments", len(segments), "pages", totalPages)
	return segments, nil
}

// rowToSegment merges a row's characters into one segment and computes its
// bounding box from the character positions.
func (e *PositionExtractor) rowToSegment(row *pdf.Row, pageNum, index int) (domain.TextSegment, bool) {
	var builder strings.Builder
	var minX, minY, maxX, maxY float64
	var lastX, lastWidth float64
	first := true

	for _, text := range row.Content {
		if text.S == "" {
			continue
		}

		// Insert a space when there is a horizontal gap between runs.
		if !first && text.X > lastX+lastWidth+2 {
			builder.WriteString(" ")
		}
		builder.WriteString(text.S)

		lastX = text.X
		lastWidth = float64(len(text.S)) * text.FontSize * 0.5

		right := text.X + lastWidth
		top := text.Y + text.FontSize
		if first {
			minX, maxX = text.X, right
			minY, maxY = text.Y, top
			first = false
			continue
		}
		if text.X < minX {
			minX = text.X
		}
		if right > maxX {
			maxX = right
		}
		if text.Y < minY {
			minY = text.Y
		}
		if top > maxY {
			maxY = top
		}
	}

	content := strings.TrimSpace(builder.String())
	if content == "" {
		return domain.TextSegment{}, false
	}

	return domain.TextSegment{
		Text:      content,
		Page:      pageNum,
		X0:        minX,
		Y0:        minY,
		X1:        maxX,
		Y1:        maxY,
		SegmentID: domain.SegmentID(pageNum, index),
	}, true
}
