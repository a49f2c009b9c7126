package pipeline

import (
	"os"
	"path/filepath"

	"github.com/OdyseeTeam/videoshrink/encoder"
	"github.com/OdyseeTeam/videoshrink/formats"

	"github.com/pkg/errors"
)

var (
	ErrInvalidOption   = errors.New("invalid option")
	ErrInvalidInputDir = errors.New("input directory does not exist")
)

// Config carries raw options as supplied on the command line.
type Config struct {
	InputDir       string
	OutputDir      string
	Smaller        int
	Recursive      bool
	Suffix         string
	CRF            int
	Preset         string
	AudioBitrate   string
	Overwrite      bool
	DryRun         bool
	Thumbnails     bool
	ThumbnailsOnly bool
	ThumbnailCount int

	// Explicit tool locations, both found on $PATH when empty.
	FfmpegPath  string
	FfprobePath string
}

// RunConfig is the validated, fully resolved configuration for one run.
// It is never mutated after Resolve returns it.
type RunConfig struct {
	InputDir      string
	OutputDir     string
	ThumbnailsDir string

	Recursive    bool
	Suffix       string
	CRF          int
	Preset       string
	AudioBitrate string
	Overwrite    bool
	DryRun       bool

	Convert        bool
	Smaller        int
	ScaleFactor    float64
	Thumbnails     bool
	ThumbnailCount int

	FfmpegPath  string
	FfprobePath string
}

// Resolve validates options and produces an immutable RunConfig.
// Every failure here is a configuration error: nothing has been
// processed yet and the process should exit with status 2.
func (c Config) Resolve() (*RunConfig, error) {
	thumbnails := c.Thumbnails || c.ThumbnailsOnly
	convert := !c.ThumbnailsOnly

	ffmpegPath, err := resolveTool("ffmpeg", c.FfmpegPath)
	if err != nil {
		return nil, err
	}

	var ffprobePath string
	if thumbnails {
		ffprobePath, err = resolveTool("ffprobe", c.FfprobePath)
		if err != nil {
			return nil, err
		}
		if c.ThumbnailCount < 1 {
			return nil, errors.Wrap(ErrInvalidOption, "thumbnail count must be at least 1")
		}
	}

	inputDir, err := filepath.Abs(c.InputDir)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidInputDir, c.InputDir)
	}
	fi, err := os.Stat(inputDir)
	if err != nil || !fi.IsDir() {
		return nil, errors.Wrap(ErrInvalidInputDir, inputDir)
	}

	outputDir := c.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(inputDir, "converted")
	}
	outputDir, err = filepath.Abs(outputDir)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidOption, c.OutputDir)
	}

	var scaleFactor float64
	if convert {
		scaleFactor, err = formats.ScaleFactor(c.Smaller)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidOption, err.Error())
		}
		if !formats.ValidPreset(c.Preset) {
			return nil, errors.Wrapf(ErrInvalidOption, "unknown preset %q", c.Preset)
		}
	}

	return &RunConfig{
		InputDir:      inputDir,
		OutputDir:     outputDir,
		ThumbnailsDir: filepath.Join(outputDir, "thumbnails"),

		Recursive:    c.Recursive,
		Suffix:       c.Suffix,
		CRF:          c.CRF,
		Preset:       c.Preset,
		AudioBitrate: c.AudioBitrate,
		Overwrite:    c.Overwrite,
		DryRun:       c.DryRun,

		Convert:        convert,
		Smaller:        c.Smaller,
		ScaleFactor:    scaleFactor,
		Thumbnails:     thumbnails,
		ThumbnailCount: c.ThumbnailCount,

		FfmpegPath:  ffmpegPath,
		FfprobePath: ffprobePath,
	}, nil
}

func resolveTool(name, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrap(encoder.ErrToolNotFound, explicit)
		}
		return explicit, nil
	}
	if p := encoder.LookupTool(name); p != "" {
		return p, nil
	}
	return "", errors.Wrap(encoder.ErrToolNotFound, name)
}
