package wastesort

import (
	"errors"
	"image"
	"math"
	"sort"

	"github.com/nfnt/resize"
)

const (
	// sampleSize is the fixed sampling grid for color/texture statistics.
	// Extraction cost is bounded by it regardless of input resolution.
	sampleSize = 100
	// hashSize is the perceptual-hash thumbnail edge (8×8 = 64 bits).
	hashSize = 8
	// maxPixelDelta is the largest per-pixel edge contribution (2×255).
	maxPixelDelta = 510
	// paletteSize is how many dominant colors to report.
	paletteSize = 5
)

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// PaletteEntry is one dominant color with its sample count.
type PaletteEntry struct {
	Color RGB
	Count int
}

// ImageFeatures holds the heuristic features extracted from one decoded image.
type ImageFeatures struct {
	Width  int // original pixel width
	Height int // original pixel height

	DominantColor RGB            // channel-wise mean over the sampling grid
	Palette       []PaletteEntry // top-5 most frequent exact colors
	Brightness    float64        // [0,1]
	Contrast      float64        // [0,1], population std-dev of luminance
	EdgeDensity   float64        // [0,1]

	PerceptualHash string // 16 hex chars, 64-bit average hash
	Format         string // decoder-reported format tag ("jpeg", "png", ...)
}

// ErrNoPixels is returned when the input image has no decodable pixel area.
var ErrNoPixels = errors.New("wastesort: image has no pixels")

// ExtractFeatures computes color, texture and hash features from an
// already-decoded image. Decoding and decode failures are the caller's
// business (see DecodeImage); this function only fails on a nil or empty
// image.
func ExtractFeatures(img image.Image, format string) (*ImageFeatures, error) {
	if img == nil {
		return nil, ErrNoPixels
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, ErrNoPixels
	}

	grid := samplePixels(resize.Resize(sampleSize, sampleSize, img, resize.NearestNeighbor))

	feat := &ImageFeatures{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
	}

	var sumR, sumG, sumB int
	counts := make(map[RGB]int)
	luma := make([]float64, len(grid))
	for i, px := range grid {
		sumR += int(px.R)
		sumG += int(px.G)
		sumB += int(px.B)
		counts[px]++
		luma[i] = luminance(px)
	}
	n := len(grid)
	feat.DominantColor = RGB{
		R: uint8(sumR / n),
		G: uint8(sumG / n),
		B: uint8(sumB / n),
	}
	feat.Palette = topColors(counts, paletteSize)

	meanR := float64(sumR) / float64(n)
	meanG := float64(sumG) / float64(n)
	meanB := float64(sumB) / float64(n)
	feat.Brightness = (0.299*meanR + 0.587*meanG + 0.114*meanB) / 255

	feat.Contrast = contrastOf(luma)
	feat.EdgeDensity = edgeDensity(luma, sampleSize, sampleSize)
	feat.PerceptualHash = PerceptualHash(img)

	return feat, nil
}

// samplePixels flattens an image into row-major 8-bit RGB samples.
func samplePixels(img image.Image) []RGB {
	bounds := img.Bounds()
	out := make([]RGB, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			out = append(out, RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)})
		}
	}
	return out
}

// luminance converts a color to ITU-R 601 luma, range [0,255].
func luminance(px RGB) float64 {
	return 0.299*float64(px.R) + 0.587*float64(px.G) + 0.114*float64(px.B)
}

// contrastOf returns the population standard deviation of the luminance
// samples, scaled to [0,1]. Fewer than 2 samples → 0.
func contrastOf(luma []float64) float64 {
	if len(luma) < 2 {
		return 0
	}
	var sum float64
	for _, l := range luma {
		sum += l
	}
	mean := sum / float64(len(luma))

	var variance float64
	for _, l := range luma {
		d := l - mean
		variance += d * d
	}
	variance /= float64(len(luma))

	contrast := math.Sqrt(variance) / 255
	if contrast > 1 {
		contrast = 1
	}
	return contrast
}

// edgeDensity sums the absolute horizontal and vertical luminance deltas of
// every interior pixel, normalized by width × height × 510 so the result
// stays in [0,1].
func edgeDensity(luma []float64, width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	var total float64
	for y := 0; y < height-1; y++ {
		for x := 0; x < width-1; x++ {
			l := luma[y*width+x]
			total += math.Abs(l - luma[y*width+x+1])
			total += math.Abs(l - luma[(y+1)*width+x])
		}
	}
	return total / float64(width*height*maxPixelDelta)
}

// topColors returns the n most frequent colors. Count descending; equal
// counts break on packed RGB value so the palette is deterministic.
func topColors(counts map[RGB]int, n int) []PaletteEntry {
	entries := make([]PaletteEntry, 0, len(counts))
	for c, count := range counts {
		entries = append(entries, PaletteEntry{Color: c, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return packRGB(entries[i].Color) < packRGB(entries[j].Color)
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func packRGB(c RGB) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// PerceptualHash computes a 64-bit average hash: the image is reduced to an
// 8×8 grayscale thumbnail, each sample emits 1 iff it is strictly greater
// than the thumbnail mean, and the bits are packed MSB-first into 16 hex
// digits. A solid-color image hashes to all zeros (no sample exceeds the
// mean). Coarse similarity fingerprint only, nothing cryptographic.
func PerceptualHash(img image.Image) string {
	tiny := samplePixels(resize.Resize(hashSize, hashSize, img, resize.NearestNeighbor))

	var sum float64
	luma := make([]float64, len(tiny))
	for i, px := range tiny {
		luma[i] = luminance(px)
		sum += luma[i]
	}
	mean := sum / float64(len(luma))

	const hexDigits = "0123456789abcdef"
	out := make([]byte, 0, len(luma)/4)
	var nibble byte
	for i, l := range luma {
		nibble <<= 1
		if l > mean {
			nibble |= 1
		}
		if i%4 == 3 {
			out = append(out, hexDigits[nibble])
			nibble = 0
		}
	}
	return string(out)
}

// HashDistance returns the Hamming distance between two perceptual hashes in
// bits. Hashes of different lengths or with non-hex digits are an error.
func HashDistance(a, b string) (int, error) {
	if len(a) != len(b) {
		return 0, errors.New("wastesort: hash length mismatch")
	}
	dist := 0
	for i := 0; i < len(a); i++ {
		na, err := hexNibble(a[i])
		if err != nil {
			return 0, err
		}
		nb, err := hexNibble(b[i])
		if err != nil {
			return 0, err
		}
		dist += popcount4(na ^ nb)
	}
	return dist, nil
}

func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	}
	return 0, errors.New("wastesort: invalid hash digit")
}

func popcount4(n byte) int {
	count := 0
	for ; n != 0; n >>= 1 {
		count += int(n & 1)
	}
	return count
}
