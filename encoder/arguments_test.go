package encoder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversionArguments(t *testing.T) {
	tests := []struct {
		name      string
		overwrite bool
		wantArgs  []string
	}{
		{
			"NoOverwrite",
			false,
			[]string{
				"-hide_banner",
				"-loglevel", "error",
				"-n",
				"-i", "/in/a.mp4",
				"-vf", "scale=trunc(iw*0.5/2)*2:trunc(ih*0.5/2)*2",
				"-c:v", "libx264",
				"-preset", "medium",
				"-crf", "23",
				"-c:a", "aac",
				"-b:a", "128k",
				"-movflags", "+faststart",
				"/out/a.mp4",
			},
		},
		{
			"Overwrite",
			true,
			[]string{
				"-hide_banner",
				"-loglevel", "error",
				"-y",
				"-i", "/in/a.mp4",
				"-vf", "scale=trunc(iw*0.5/2)*2:trunc(ih*0.5/2)*2",
				"-c:v", "libx264",
				"-preset", "medium",
				"-crf", "23",
				"-c:a", "aac",
				"-b:a", "128k",
				"-movflags", "+faststart",
				"/out/a.mp4",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			args := ConversionArguments("/in/a.mp4", "/out/a.mp4", 0.5, 23, "medium", "128k", test.overwrite)
			assert.Equal(t, test.wantArgs, args.GetStrArguments())
			assert.Equal(t, "/out/a.mp4", args.Destination())
			assert.Equal(t, strings.Join(test.wantArgs, " "), args.String())
		})
	}
}

func TestThumbnailArguments(t *testing.T) {
	args := ThumbnailArguments("/in/a.mp4", "/out/thumbnails/a_thumb_01.jpg", 25, false)
	assert.Equal(t, []string{
		"-hide_banner",
		"-loglevel", "error",
		"-n",
		"-ss", "25.000",
		"-i", "/in/a.mp4",
		"-frames:v", "1",
		"-q:v", "2",
		"/out/thumbnails/a_thumb_01.jpg",
	}, args.GetStrArguments())

	args = ThumbnailArguments("/in/a.mp4", "/out/thumbnails/a_thumb_02.jpg", 33.3333, true)
	strArgs := args.GetStrArguments()
	assert.Contains(t, strArgs, "-y")
	assert.Contains(t, strArgs, "33.333")
}
