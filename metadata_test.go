package wastesort

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
)

func TestExtractImageMetadataGraceful(t *testing.T) {
	t.Parallel()

	if got := ExtractImageMetadata(nil); got != nil {
		t.Errorf("nil data: got %+v, want nil", got)
	}
	if got := ExtractImageMetadata([]byte{}); got != nil {
		t.Errorf("empty data: got %+v, want nil", got)
	}
	if got := ExtractImageMetadata([]byte("definitely not an image")); got != nil {
		t.Errorf("garbage data: got %+v, want nil", got)
	}
}

func TestExtractImageMetadataNoEXIF(t *testing.T) {
	t.Parallel()

	// A freshly encoded PNG carries no EXIF block at all.
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(4, 4, color.RGBA{R: 1, G: 2, B: 3, A: 255})); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := ExtractImageMetadata(buf.Bytes()); got != nil {
		t.Errorf("EXIF-less PNG: got %+v, want nil", got)
	}
}

func TestTagValueString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "string", in: "Canon", want: "Canon"},
		{name: "string slice", in: []string{"a", "b"}, want: "a"},
		{name: "empty slice", in: []string{}, want: ""},
		{name: "any slice", in: []any{"x", 2}, want: "x"},
		{name: "any slice non-string head", in: []any{42}, want: ""},
		{name: "unsupported", in: 42, want: ""},
	}
	for _, tc := range tests {
		if got := tagValueString(tc.in); got != tc.want {
			t.Errorf("%s: tagValueString(%v) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}
