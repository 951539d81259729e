package document

import (
	"image"
	"testing"
)

func TestFallbackLabel(t *testing.T) {
	testCases := []struct {
		index int
		want  string
	}{
		{0, "Page 1"},
		{1, "Page 2"},
		{41, "Page 42"},
	}
	for _, tc := range testCases {
		if got := FallbackLabel(tc.index); got != tc.want {
			t.Errorf("FallbackLabel(%d): expected %q, got %q", tc.index, tc.want, got)
		}
	}
}

func TestRenderDPI(t *testing.T) {
	testCases := []struct {
		scale float64
		want  float64
	}{
		{0.5, 150},
		{1.0, 300},
		{0.25, 75},
	}
	for _, tc := range testCases {
		if got := RenderDPI(tc.scale); got != tc.want {
			t.Errorf("RenderDPI(%v): expected %v, got %v", tc.scale, tc.want, got)
		}
	}
}

func TestEnhancePreservesDimensions(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 12, 8))
	out := Enhance(src)
	if out.Bounds().Dx() != 12 || out.Bounds().Dy() != 8 {
		t.Errorf("expected 12x8 output, got %dx%d", out.Bounds().Dx(), out.Bounds().Dy())
	}
}
