package encoder

import (
	"bytes"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

var ErrToolNotFound = errors.New("tool not found")

var fallbackDirs = []string{"/usr/local/bin", "/usr/bin", "/opt/homebrew/bin"}

// Encoder drives a single external ffmpeg binary, one invocation at a time.
type Encoder struct {
	path string
}

// LookupTool finds an external binary on $PATH, falling back to well-known
// install locations. Returns an empty string if the tool is nowhere to be found.
func LookupTool(name string) string {
	if p, err := exec.LookPath(name); err == nil {
		return p
	}
	for _, dir := range fallbackDirs {
		p := dir + "/" + name
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			return p
		}
	}
	return ""
}

// NewEncoder creates an Encoder around the ffmpeg binary at binPath,
// locating one automatically when binPath is empty.
func NewEncoder(binPath string) (*Encoder, error) {
	if binPath == "" {
		binPath = LookupTool("ffmpeg")
	}
	if binPath == "" {
		return nil, errors.Wrap(ErrToolNotFound, "ffmpeg")
	}
	logger.Debugw("ffmpeg configured", "path", binPath)
	return &Encoder{path: binPath}, nil
}

// Path returns the configured ffmpeg binary path.
func (e *Encoder) Path() string {
	return e.path
}

// Run executes a single ffmpeg invocation and waits for it to exit.
// Captured stderr is returned in both outcomes since ffmpeg reports
// errors there.
func (e *Encoder) Run(args Arguments) (string, error) {
	var outb, errb bytes.Buffer

	cmd := exec.Command(e.path, args.GetStrArguments()...)
	cmd.Stdout = &outb
	cmd.Stderr = &errb

	err := cmd.Run()
	stderr := strings.TrimSpace(errb.String())
	if err != nil {
		return stderr, errors.Wrapf(err, "error executing %s", e.path)
	}
	return stderr, nil
}

// CommandLine renders the full invocation for display, as used in dry runs.
func (e *Encoder) CommandLine(args Arguments) string {
	return e.path + " " + args.String()
}
