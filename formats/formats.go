package formats

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Extension is the container extension this tool operates on,
// matched case-insensitively.
const Extension = ".mp4"

const (
	// DefaultPreset is the x264 preset used when none is specified.
	DefaultPreset = "medium"
	// DefaultCRF is the x264 constant rate factor used when none is specified.
	DefaultCRF = 23
	// DefaultAudioBitrate is the AAC bitrate used when none is specified.
	DefaultAudioBitrate = "128k"
)

// Presets are the x264 speed/efficiency trade-off levels, fastest first.
var Presets = []string{
	"ultrafast",
	"superfast",
	"veryfast",
	"faster",
	"fast",
	"medium",
	"slow",
	"slower",
	"veryslow",
}

var ErrInvalidPercent = errors.New("reduction percent must be between 1 and 99")

// ThumbnailPoint is a single extraction point on a video timeline.
// Fraction is strictly within (0, 1) so the exact first and last frames
// are never picked.
type ThumbnailPoint struct {
	Index    int
	Fraction float64
}

// ScaleFactor converts a size reduction percent into the factor applied
// to both output dimensions. 50% smaller means a factor of 0.5.
func ScaleFactor(percent int) (float64, error) {
	if percent <= 0 || percent >= 100 {
		return 0, ErrInvalidPercent
	}
	return float64(100-percent) / 100, nil
}

// ThumbnailPoints spreads count points evenly across a timeline as
// index/(count+1) fractions. Three points land at 25%, 50% and 75%.
func ThumbnailPoints(count int) []ThumbnailPoint {
	points := make([]ThumbnailPoint, count)
	for i := 1; i <= count; i++ {
		points[i-1] = ThumbnailPoint{Index: i, Fraction: float64(i) / float64(count+1)}
	}
	return points
}

// ValidPreset tells if p is one of the known x264 presets.
func ValidPreset(p string) bool {
	for _, known := range Presets {
		if p == known {
			return true
		}
	}
	return false
}

// MatchesExtension tells if path carries the target media extension,
// ignoring case (".mp4", ".MP4" and ".Mp4" all match).
func MatchesExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// ScaleFilter returns the ffmpeg -vf expression shrinking both dimensions
// by factor while keeping them even, as required by libx264.
func ScaleFilter(factor float64) string {
	f := strconv.FormatFloat(factor, 'g', -1, 64)
	return fmt.Sprintf("scale=trunc(iw*%s/2)*2:trunc(ih*%s/2)*2", f, f)
}
