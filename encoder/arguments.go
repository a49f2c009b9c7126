package encoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OdyseeTeam/videoshrink/formats"
)

const (
	videoCodec = "libx264"
	audioCodec = "aac"

	// Near-maximum JPEG quality for extracted frames.
	thumbnailQuality = "2"
)

type Argument [2]string

// Arguments is a serializable set of ffmpeg options plus the output path,
// which ffmpeg expects as the trailing positional argument.
type Arguments struct {
	args []Argument
	out  string
}

// ConversionArguments creates the full ffmpeg argument set for shrinking
// a video by scaleFactor while keeping both dimensions even.
func ConversionArguments(source, destination string, scaleFactor float64, crf int, preset, audioBitrate string, overwrite bool) Arguments {
	return Arguments{
		args: []Argument{
			{"hide_banner", ""},
			{"loglevel", "error"},
			{overwriteArg(overwrite), ""},
			{"i", source},
			{"vf", formats.ScaleFilter(scaleFactor)},
			{"c:v", videoCodec},
			{"preset", preset},
			{"crf", strconv.Itoa(crf)},
			{"c:a", audioCodec},
			{"b:a", audioBitrate},
			{"movflags", "+faststart"},
		},
		out: destination,
	}
}

// ThumbnailArguments creates the ffmpeg argument set for extracting a single
// frame at timestamp (seconds, millisecond precision) into a still image.
func ThumbnailArguments(source, destination string, timestamp float64, overwrite bool) Arguments {
	return Arguments{
		args: []Argument{
			{"hide_banner", ""},
			{"loglevel", "error"},
			{overwriteArg(overwrite), ""},
			{"ss", fmt.Sprintf("%.3f", timestamp)},
			{"i", source},
			{"frames:v", "1"},
			{"q:v", thumbnailQuality},
		},
		out: destination,
	}
}

// GetStrArguments serializes ffmpeg arguments in a format suitable for cmd.Start.
func (a Arguments) GetStrArguments() []string {
	strArgs := []string{}
	for _, v := range a.args {
		if v[1] != "" {
			strArgs = append(strArgs, fmt.Sprintf("-%v", v[0]), v[1])
		} else {
			strArgs = append(strArgs, fmt.Sprintf("-%v", v[0]))
		}
	}
	return append(strArgs, a.out)
}

// Destination returns the output path the invocation will write to.
func (a Arguments) Destination() string {
	return a.out
}

// String renders the invocation the way it would appear on a shell command
// line, without the binary name.
func (a Arguments) String() string {
	return strings.Join(a.GetStrArguments(), " ")
}

func overwriteArg(overwrite bool) string {
	if overwrite {
		return "y"
	}
	return "n"
}
