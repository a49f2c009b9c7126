package main

import (
	"fmt"
	"os"

	"github.com/OdyseeTeam/videoshrink/encoder"
	"github.com/OdyseeTeam/videoshrink/internal/config"
	"github.com/OdyseeTeam/videoshrink/library"
	"github.com/OdyseeTeam/videoshrink/pipeline"
	"github.com/OdyseeTeam/videoshrink/pkg/logging"
	"github.com/OdyseeTeam/videoshrink/pkg/logging/zapadapter"

	"github.com/alecthomas/kong"
)

var CLI struct {
	InputDir       string `arg:"" name:"input_dir" help:"Directory that contains source MP4 files." type:"path"`
	OutputDir      string `optional:"" short:"o" help:"Where converted files go. Default: <input_dir>/converted." type:"path"`
	Smaller        int    `optional:"" default:"50" help:"How much to reduce width/height by, in percent (1-99). 50 = half size."`
	Recursive      bool   `optional:"" help:"Include MP4 files in subfolders."`
	Suffix         string `optional:"" help:"Suffix added to output filenames. Default: empty (keep name)."`
	Crf            int    `optional:"" default:"23" help:"Video quality for x264 (lower is higher quality)."`
	Preset         string `optional:"" default:"medium" help:"x264 speed/efficiency preset."`
	AudioBitrate   string `optional:"" default:"128k" help:"Audio bitrate for AAC output."`
	Overwrite      bool   `optional:"" help:"Overwrite output files if they already exist."`
	DryRun         bool   `optional:"" help:"Print planned commands without running ffmpeg."`
	Thumbnails     bool   `optional:"" help:"Also extract evenly spaced thumbnail JPGs per video."`
	ThumbnailsOnly bool   `optional:"" help:"Extract thumbnails only (skip converted MP4 outputs)."`
	ThumbnailCount int    `optional:"" default:"10" help:"Number of evenly spaced thumbnails per video."`
	Ffmpeg         string `optional:"" help:"Path to the ffmpeg binary. Default: found on $PATH."`
	Ffprobe        string `optional:"" help:"Path to the ffprobe binary. Default: found on $PATH."`
	Debug          bool   `optional:"" help:"Enable debug logging."`
}

func main() {
	resolver, err := config.Resolver()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	kong.Parse(
		&CLI,
		kong.Description("Batch-convert MP4 videos to smaller versions and extract evenly spaced thumbnails using ffmpeg."),
		kong.Resolvers(resolver),
	)

	logCfg := logging.Prod
	if CLI.Debug {
		logCfg = logging.Dev
	}
	log := logging.Create("videoshrink", logCfg)
	encoder.SetLogger(logging.Create("encoder", logCfg))
	library.SetLogger(logging.Create("library", logCfg))

	runCfg, err := pipeline.Config{
		InputDir:       CLI.InputDir,
		OutputDir:      CLI.OutputDir,
		Smaller:        CLI.Smaller,
		Recursive:      CLI.Recursive,
		Suffix:         CLI.Suffix,
		CRF:            CLI.Crf,
		Preset:         CLI.Preset,
		AudioBitrate:   CLI.AudioBitrate,
		Overwrite:      CLI.Overwrite,
		DryRun:         CLI.DryRun,
		Thumbnails:     CLI.Thumbnails,
		ThumbnailsOnly: CLI.ThumbnailsOnly,
		ThumbnailCount: CLI.ThumbnailCount,
		FfmpegPath:     CLI.Ffmpeg,
		FfprobePath:    CLI.Ffprobe,
	}.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	enc, err := encoder.NewEncoder(runCfg.FfmpegPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	var prober pipeline.DurationProber
	if runCfg.Thumbnails {
		p, err := encoder.NewProber(runCfg.FfprobePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		prober = p
	}

	res, err := pipeline.New(pipeline.Params{
		Config:  runCfg,
		Encoder: enc,
		Prober:  prober,
		Out:     os.Stdout,
		ErrOut:  os.Stderr,
		Log:     zapadapter.NewKV(log.Desugar()),
	}).Run()
	if err != nil {
		log.Errorw("run aborted", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(res.ExitCode())
}
