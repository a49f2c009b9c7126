package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/OdyseeTeam/videoshrink/encoder"
	"github.com/OdyseeTeam/videoshrink/formats"
	"github.com/OdyseeTeam/videoshrink/library"
	"github.com/OdyseeTeam/videoshrink/pkg/logging"
	"github.com/OdyseeTeam/videoshrink/pkg/timer"

	"github.com/c2h5oh/datasize"
)

// CommandRunner executes a single external tool invocation, blocking until
// it exits, and returns its captured stderr.
type CommandRunner interface {
	Run(args encoder.Arguments) (string, error)
	CommandLine(args encoder.Arguments) string
}

// DurationProber reads a source's playback duration in seconds.
type DurationProber interface {
	Duration(file string) (float64, error)
}

// Params configures a Pipeline. Encoder is required; Prober is required
// when thumbnails are enabled.
type Params struct {
	Config  *RunConfig
	Encoder CommandRunner
	Prober  DurationProber
	Out     io.Writer
	ErrOut  io.Writer
	Log     logging.KVLogger
}

// Pipeline processes discovered files strictly sequentially, one external
// process at a time, accumulating per-operation failures instead of
// aborting the run.
type Pipeline struct {
	cfg    *RunConfig
	enc    CommandRunner
	prober DurationProber
	out    io.Writer
	errOut io.Writer
	log    logging.KVLogger
}

// Result holds the aggregate counters for one run.
type Result struct {
	Found              int
	Converted          int
	ThumbnailsWritten  int
	ConversionFailures int
	ThumbnailFailures  int
	BytesWritten       uint64
}

func (r *Result) TotalFailures() int {
	return r.ConversionFailures + r.ThumbnailFailures
}

// ExitCode maps the run outcome to the process exit status:
// 0 for a clean (or empty) run, 1 when any per-file operation failed.
func (r *Result) ExitCode() int {
	if r.TotalFailures() > 0 {
		return 1
	}
	return 0
}

func New(params Params) *Pipeline {
	p := &Pipeline{
		cfg:    params.Config,
		enc:    params.Encoder,
		prober: params.Prober,
		out:    params.Out,
		errOut: params.ErrOut,
		log:    params.Log,
	}
	if p.out == nil {
		p.out = os.Stdout
	}
	if p.errOut == nil {
		p.errOut = os.Stderr
	}
	if p.log == nil {
		p.log = logging.NoopKVLogger{}
	}
	return p
}

// Run discovers source files and processes them in sorted order.
// The returned error covers discovery problems only; per-file failures
// are reported through the Result counters.
func (p *Pipeline) Run() (*Result, error) {
	res := &Result{}

	files, err := library.Discover(p.cfg.InputDir, p.cfg.OutputDir, p.cfg.Recursive)
	if err != nil {
		return nil, err
	}
	res.Found = len(files)
	if len(files) == 0 {
		fmt.Fprintln(p.out, "No MP4 files found.")
		return res, nil
	}

	if err := os.MkdirAll(p.cfg.OutputDir, os.ModePerm); err != nil {
		return nil, err
	}
	if p.cfg.Thumbnails {
		if err := os.MkdirAll(p.cfg.ThumbnailsDir, os.ModePerm); err != nil {
			return nil, err
		}
	}

	fmt.Fprintf(p.out, "Found %v MP4 file(s). Running: %v.\n", len(files), p.modeLine())
	t := timer.Start()

	for i, f := range files {
		fmt.Fprintf(p.out, "[%v/%v] %v\n", i+1, len(files), filepath.Base(f.Path))
		ll := p.log.With("file", f.RelPath)
		relParent := filepath.Dir(f.RelPath)

		if p.cfg.Convert {
			p.convert(f, relParent, res, ll)
		}
		if p.cfg.Thumbnails {
			p.thumbnail(f, relParent, res, ll)
		}
	}

	fmt.Fprintf(
		p.out, "Completed in %vs. Conversion failures: %v, Thumbnail failures: %v.\n",
		t, res.ConversionFailures, res.ThumbnailFailures,
	)
	if res.BytesWritten > 0 {
		fmt.Fprintf(p.out, "Wrote %v of converted video.\n", datasize.ByteSize(res.BytesWritten).HumanReadable())
	}
	p.log.Info(
		"run complete",
		"found", res.Found,
		"converted", res.Converted,
		"thumbnails", res.ThumbnailsWritten,
		"failures", res.TotalFailures(),
		"duration", t.String(),
	)
	return res, nil
}

func (p *Pipeline) modeLine() string {
	parts := []string{}
	if p.cfg.Convert {
		parts = append(parts, fmt.Sprintf(
			"video conversion at scale factor %.2f (%v%% smaller)",
			p.cfg.ScaleFactor, p.cfg.Smaller,
		))
	}
	if p.cfg.Thumbnails {
		parts = append(parts, fmt.Sprintf("%v evenly spaced thumbnails per video", p.cfg.ThumbnailCount))
	}
	return strings.Join(parts, ", ")
}

func (p *Pipeline) convert(f library.SourceFile, relParent string, res *Result, ll logging.KVLogger) {
	targetParent := filepath.Join(p.cfg.OutputDir, relParent)
	if err := os.MkdirAll(targetParent, os.ModePerm); err != nil {
		res.ConversionFailures++
		fmt.Fprintf(p.errOut, "  convert failed (%v)\n", err)
		return
	}

	base := filepath.Base(f.Path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	destination := filepath.Join(targetParent, stem+p.cfg.Suffix+ext)

	args := encoder.ConversionArguments(
		f.Path, destination, p.cfg.ScaleFactor,
		p.cfg.CRF, p.cfg.Preset, p.cfg.AudioBitrate, p.cfg.Overwrite,
	)

	fmt.Fprintf(p.out, "  convert -> %v\n", destination)
	if p.cfg.DryRun {
		fmt.Fprintf(p.out, "  %v\n", p.enc.CommandLine(args))
		return
	}

	stderr, err := p.enc.Run(args)
	if err != nil {
		res.ConversionFailures++
		ll.Error("conversion failed", "err", err, "stderr", stderr)
		fmt.Fprintf(p.errOut, "  convert failed (%v)\n", err)
		if stderr != "" {
			fmt.Fprintf(p.errOut, "  %v\n", stderr)
		}
		return
	}

	res.Converted++
	if fi, err := os.Stat(destination); err == nil {
		res.BytesWritten += uint64(fi.Size())
	}
	ll.Debug("conversion done", "destination", destination)
}

func (p *Pipeline) thumbnail(f library.SourceFile, relParent string, res *Result, ll logging.KVLogger) {
	duration, err := p.prober.Duration(f.Path)
	if err != nil {
		res.ThumbnailFailures++
		ll.Error("thumbnail failed", "err", err)
		fmt.Fprintln(p.errOut, "  thumbnail failed (could not read duration)")
		return
	}

	thumbParent := filepath.Join(p.cfg.ThumbnailsDir, relParent)
	if err := os.MkdirAll(thumbParent, os.ModePerm); err != nil {
		res.ThumbnailFailures++
		fmt.Fprintf(p.errOut, "  thumbnail failed (%v)\n", err)
		return
	}

	base := filepath.Base(f.Path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	for _, point := range formats.ThumbnailPoints(p.cfg.ThumbnailCount) {
		timestamp := duration * point.Fraction
		destination := filepath.Join(thumbParent, fmt.Sprintf("%s_thumb_%02d.jpg", stem, point.Index))

		args := encoder.ThumbnailArguments(f.Path, destination, timestamp, p.cfg.Overwrite)
		fmt.Fprintf(
			p.out, "  thumb %v/%v (%.1f%%) -> %v\n",
			point.Index, p.cfg.ThumbnailCount, point.Fraction*100, destination,
		)
		if p.cfg.DryRun {
			fmt.Fprintf(p.out, "  %v\n", p.enc.CommandLine(args))
			continue
		}

		stderr, err := p.enc.Run(args)
		if err != nil {
			res.ThumbnailFailures++
			ll.Error("thumbnail failed", "index", point.Index, "err", err, "stderr", stderr)
			fmt.Fprintf(p.errOut, "  thumbnail %v failed (%v)\n", point.Index, err)
			if stderr != "" {
				fmt.Fprintf(p.errOut, "  %v\n", stderr)
			}
			continue
		}
		res.ThumbnailsWritten++
	}
}
