package wastesort

import (
	"bytes"
	"time"

	"github.com/bep/imagemeta"
)

// ImageMetadata holds the few EXIF fields kept alongside stored image
// analyses: where the photo came from and when it was taken.
type ImageMetadata struct {
	CameraMake  string
	CameraModel string
	TakenAt     time.Time
}

// exifTimeLayout is the EXIF DateTimeOriginal format.
const exifTimeLayout = "2006:01:02 15:04:05"

// wantedEXIFTags lists the EXIF tags worth persisting with an upload record.
var wantedEXIFTags = map[string]bool{
	"Make":             true,
	"Model":            true,
	"DateTimeOriginal": true,
	"DateTime":         true,
}

// ExtractImageMetadata parses camera EXIF metadata from raw image bytes.
// Returns nil if the data is empty, carries no wanted tags, or cannot be
// parsed. Graceful degradation: never returns an error, metadata is a
// nice-to-have on upload records.
func ExtractImageMetadata(data []byte) *ImageMetadata {
	if len(data) == 0 {
		return nil
	}

	meta := &ImageMetadata{}
	found := false

	err := imagemeta.Decode(imagemeta.Options{
		R:       bytes.NewReader(data),
		Sources: imagemeta.EXIF,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			return wantedEXIFTags[ti.Tag]
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			handleEXIFTag(meta, ti, &found)
			return nil
		},
	})

	if err != nil || !found {
		return nil
	}
	return meta
}

func handleEXIFTag(meta *ImageMetadata, ti imagemeta.TagInfo, found *bool) {
	s := tagValueString(ti.Value)
	if s == "" {
		return
	}

	switch ti.Tag {
	case "Make":
		meta.CameraMake = s
	case "Model":
		meta.CameraModel = s
	case "DateTimeOriginal":
		if t, err := time.Parse(exifTimeLayout, s); err == nil {
			meta.TakenAt = t
		}
	case "DateTime":
		// DateTimeOriginal wins when both are present.
		if meta.TakenAt.IsZero() {
			if t, err := time.Parse(exifTimeLayout, s); err == nil {
				meta.TakenAt = t
			}
		}
	default:
		return
	}

	*found = true
}

// tagValueString extracts a string from a tag value. EXIF values are usually
// plain strings but may arrive as lists.
func tagValueString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		if len(val) > 0 {
			return val[0]
		}
		return ""
	case []any:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return s
			}
		}
		return ""
	default:
		return ""
	}
}
