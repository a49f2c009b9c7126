package encoder

import (
	"bytes"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrDurationUnavailable covers every way ffprobe can fail to report
// a usable duration: non-zero exit, empty output, unparseable output.
var ErrDurationUnavailable = errors.New("duration unavailable")

// Prober reads container-level metadata through an external ffprobe binary.
type Prober struct {
	path string
}

// NewProber creates a Prober around the ffprobe binary at binPath,
// locating one automatically when binPath is empty.
func NewProber(binPath string) (*Prober, error) {
	if binPath == "" {
		binPath = LookupTool("ffprobe")
	}
	if binPath == "" {
		return nil, errors.Wrap(ErrToolNotFound, "ffprobe")
	}
	logger.Debugw("ffprobe configured", "path", binPath)
	return &Prober{path: binPath}, nil
}

// Duration asks ffprobe for the playback duration of file in seconds.
func (p *Prober) Duration(file string) (float64, error) {
	var outb, errb bytes.Buffer

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		file,
	}

	cmd := exec.Command(p.path, args...)
	cmd.Stdout = &outb
	cmd.Stderr = &errb

	if err := cmd.Run(); err != nil {
		logger.Debugw("ffprobe failed", "file", file, "err", err, "stderr", errb.String())
		return 0, ErrDurationUnavailable
	}
	return parseDuration(outb.String())
}

func parseDuration(out string) (float64, error) {
	value := strings.TrimSpace(out)
	if value == "" {
		return 0, ErrDurationUnavailable
	}
	duration, err := strconv.ParseFloat(value, 64)
	if err != nil || duration <= 0 {
		return 0, ErrDurationUnavailable
	}
	return duration, nil
}
