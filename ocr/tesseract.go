package ocr

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"
)

// TesseractEngine recognizes text with a local Tesseract install via
// gosseract. Each call uses a fresh client so engines can be shared across
// goroutines.
type TesseractEngine struct {
	logger *zap.Logger
}

func NewTesseractEngine(logger *zap.Logger) *TesseractEngine {
	return &TesseractEngine{logger: logger}
}

func (e *TesseractEngine) Name() string { return "tesseract" }

func (e *TesseractEngine) Recognize(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	// Fast recognition tier: LSTM engine only, fully automatic page
	// segmentation, spacing preserved for readable transcripts.
	client.SetVariable("tessedit_ocr_engine_mode", "1")
	client.SetVariable("tessedit_pageseg_mode", "3")
	client.SetVariable("preserve_interword_spaces", "1")

	if len(in.Languages) > 0 {
		if err := client.SetLanguage(in.Languages...); err != nil {
			return Result{}, fmt.Errorf("set languages: %w", err)
		}
	}
	if in.DPI > 0 {
		client.SetVariable("user_defined_dpi", strconv.Itoa(in.DPI))
	}
	for k, v := range in.Variables {
		if err := client.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return Result{}, fmt.Errorf("set variable %s: %w", k, err)
		}
	}

	if err := client.SetImageFromBytes(in.Image); err != nil {
		return Result{}, fmt.Errorf("set image: %w", err)
	}

	// Per-region candidates in detection order. Falls back to the plain
	// text dump when the iterator yields nothing.
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err == nil && len(boxes) > 0 {
		lines := make([]string, 0, len(boxes))
		for _, b := range boxes {
			if line := strings.TrimSpace(b.Word); line != "" {
				lines = append(lines, line)
			}
		}
		return Result{Lines: lines}, nil
	}
	if err != nil {
		e.logger.Debug("Text line iteration failed, falling back to plain text",
			zap.Error(err))
	}

	text, err := client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("recognize text: %w", err)
	}
	return Result{Lines: SplitLines(text)}, nil
}
