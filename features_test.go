package wastesort

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"
)

// solidImage returns a w×h image filled with one color.
func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// splitImage returns a w×h image, left half one color, right half another.
func splitImage(w, h int, left, right color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.SetRGBA(x, y, left)
			} else {
				img.SetRGBA(x, y, right)
			}
		}
	}
	return img
}

func TestExtractFeaturesSolidColor(t *testing.T) {
	t.Parallel()

	img := solidImage(40, 30, color.RGBA{R: 128, G: 128, B: 128, A: 255})
	feat, err := ExtractFeatures(img, "png")
	if err != nil {
		t.Fatalf("ExtractFeatures: %v", err)
	}

	if feat.Width != 40 || feat.Height != 30 {
		t.Errorf("dimensions = %d×%d, want 40×30", feat.Width, feat.Height)
	}
	if feat.Format != "png" {
		t.Errorf("format = %q, want png", feat.Format)
	}
	if feat.DominantColor != (RGB{128, 128, 128}) {
		t.Errorf("dominant color = %v, want {128 128 128}", feat.DominantColor)
	}
	if want := 128.0 / 255; math.Abs(feat.Brightness-want) > 1e-9 {
		t.Errorf("brightness = %v, want %v", feat.Brightness, want)
	}
	// Float luminance of a uniform grid leaves sub-epsilon variance residue.
	if feat.Contrast > 1e-9 {
		t.Errorf("contrast = %v, want ~0 for a uniform image", feat.Contrast)
	}
	if feat.EdgeDensity != 0 {
		t.Errorf("edge density = %v, want 0 for a uniform image", feat.EdgeDensity)
	}
	if len(feat.Palette) != 1 {
		t.Fatalf("palette has %d entries, want 1", len(feat.Palette))
	}
	if feat.Palette[0].Color != (RGB{128, 128, 128}) || feat.Palette[0].Count != sampleSize*sampleSize {
		t.Errorf("palette[0] = %+v", feat.Palette[0])
	}
}

func TestExtractFeaturesSplitImage(t *testing.T) {
	t.Parallel()

	img := splitImage(100, 100,
		color.RGBA{A: 255},                         // black
		color.RGBA{R: 255, G: 255, B: 255, A: 255}, // white
	)
	feat, err := ExtractFeatures(img, "png")
	if err != nil {
		t.Fatalf("ExtractFeatures: %v", err)
	}

	// Half black, half white: brightness near 0.5, contrast near the
	// population std-dev of a two-point distribution (0.5).
	if math.Abs(feat.Brightness-0.5) > 0.02 {
		t.Errorf("brightness = %v, want ≈0.5", feat.Brightness)
	}
	if math.Abs(feat.Contrast-0.5) > 0.02 {
		t.Errorf("contrast = %v, want ≈0.5", feat.Contrast)
	}
	// One vertical boundary: roughly 99 transitions of 255 over the
	// 100×100×510 normalizer.
	wantEdges := 99 * 255.0 / (100 * 100 * 510)
	if math.Abs(feat.EdgeDensity-wantEdges) > wantEdges/2 {
		t.Errorf("edge density = %v, want ≈%v", feat.EdgeDensity, wantEdges)
	}
	if len(feat.Palette) != 2 {
		t.Errorf("palette has %d entries, want 2", len(feat.Palette))
	}
}

func TestExtractFeaturesNilImage(t *testing.T) {
	t.Parallel()

	if _, err := ExtractFeatures(nil, "png"); err == nil {
		t.Fatal("ExtractFeatures(nil) succeeded, want error")
	}
}

func TestPerceptualHashSolidColor(t *testing.T) {
	t.Parallel()

	// Every sample equals the mean; the strict "greater than" rule turns
	// every bit off. If the comparison were ">=" this would be all-f instead,
	// so the two assertions below pin the tie-break direction.
	for _, c := range []color.RGBA{
		{R: 255, G: 255, B: 255, A: 255},
		{R: 7, G: 7, B: 7, A: 255},
	} {
		hash := PerceptualHash(solidImage(16, 16, c))
		if hash != "0000000000000000" {
			t.Errorf("solid %v hash = %q, want all zeros", c, hash)
		}
		if hash == "ffffffffffffffff" {
			t.Errorf("solid %v hashed to all-f: tie-break flipped to >=", c)
		}
	}
}

func TestPerceptualHashSplitImage(t *testing.T) {
	t.Parallel()

	img := splitImage(8, 8,
		color.RGBA{A: 255},
		color.RGBA{R: 255, G: 255, B: 255, A: 255},
	)
	hash := PerceptualHash(img)
	if hash != "0f0f0f0f0f0f0f0f" {
		t.Errorf("hash = %q, want 0f0f0f0f0f0f0f0f", hash)
	}
}

func TestPerceptualHashDeterministic(t *testing.T) {
	t.Parallel()

	// Encode once, decode twice: byte-identical input must hash identically.
	src := splitImage(60, 40,
		color.RGBA{R: 40, G: 90, B: 10, A: 255},
		color.RGBA{R: 220, G: 220, B: 240, A: 255},
	)
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encode: %v", err)
	}
	data := buf.Bytes()

	img1, _, err := DecodeImage(data)
	if err != nil {
		t.Fatalf("first decode: %v", err)
	}
	img2, _, err := DecodeImage(data)
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}

	h1 := PerceptualHash(img1)
	h2 := PerceptualHash(img2)
	if h1 != h2 {
		t.Errorf("hashes differ across decodes: %q vs %q", h1, h2)
	}
	if len(h1) != 16 {
		t.Errorf("hash length = %d, want 16", len(h1))
	}
	if strings.Trim(h1, "0123456789abcdef") != "" {
		t.Errorf("hash %q contains non-hex characters", h1)
	}
}

func TestHashDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		a, b    string
		want    int
		wantErr bool
	}{
		{name: "identical", a: "0f0f0f0f0f0f0f0f", b: "0f0f0f0f0f0f0f0f", want: 0},
		{name: "one nibble fully flipped", a: "0000000000000000", b: "f000000000000000", want: 4},
		{name: "all bits", a: "0000000000000000", b: "ffffffffffffffff", want: 64},
		{name: "single bit", a: "0000000000000000", b: "0000000000000001", want: 1},
		{name: "length mismatch", a: "00", b: "000", wantErr: true},
		{name: "bad digit", a: "g000000000000000", b: "0000000000000000", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := HashDistance(tc.a, tc.b)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("HashDistance(%q, %q) succeeded, want error", tc.a, tc.b)
				}
				return
			}
			if err != nil {
				t.Fatalf("HashDistance: %v", err)
			}
			if got != tc.want {
				t.Errorf("HashDistance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestDecodeImage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(5, 5, color.RGBA{R: 9, G: 9, B: 9, A: 255})); err != nil {
		t.Fatalf("encode: %v", err)
	}

	img, format, err := DecodeImage(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 5 {
		t.Errorf("bounds = %v, want 5×5", img.Bounds())
	}

	if _, _, err := DecodeImage([]byte("not an image")); err == nil {
		t.Error("DecodeImage(garbage) succeeded, want error")
	}
}
