// Package ocr defines the contract for plugging text-recognition engines into
// the transcription pipeline. Engines consume an encoded bitmap and report the
// top candidate string per detected text region; callers never see
// engine-specific types.
package ocr

import (
	"context"
	"strings"
)

// Input is a single bitmap submitted for recognition.
type Input struct {
	// Image is the PNG-encoded page raster.
	Image []byte
	// DPI is the effective resolution of the raster; zero means unknown.
	DPI int
	// Languages holds trained-data hints such as "eng".
	Languages []string
	// Variables passes engine-specific knobs (e.g. tesseract variables)
	// without widening the API surface.
	Variables map[string]string
}

// Result holds the recognized text for one bitmap.
type Result struct {
	// Lines contains the single highest-ranked candidate per detected text
	// region, in the engine's reported detection order.
	Lines []string
}

// Text joins the candidate lines with newlines. Empty when nothing was
// detected.
func (r Result) Text() string {
	return strings.Join(r.Lines, "\n")
}

// Engine is the recognition capability: one bitmap in, one result out. The
// call blocks until recognition has fully completed.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (Result, error)
}

// SplitLines converts a block of engine output into per-region lines,
// dropping blank regions while preserving order.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
