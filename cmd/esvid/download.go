package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"esvid/internal/config"
	"esvid/internal/deps"
	"esvid/internal/logging"
	"esvid/internal/media"
	"esvid/internal/plan"
	"esvid/internal/selection"
	"esvid/internal/services"
	"esvid/internal/services/ytdlp"
)

type downloadOptions struct {
	quality     string
	output      string
	interactive bool
	verbose     bool
}

// youtubeURLPattern catches obviously invalid URLs before any external call.
var youtubeURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/watch\?v=|youtu\.be/|youtube\.com/shorts/|youtube\.com/live/)[\w-]+`)

func runDownload(cmd *cobra.Command, cctx *commandContext, url string, opts downloadOptions) error {
	cfg, err := cctx.ensureConfig()
	if err != nil {
		return err
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	if !youtubeURLPattern.MatchString(url) {
		return services.Wrap(services.ErrValidation, "download", "url", fmt.Sprintf("%q does not look like a YouTube URL", url), nil)
	}

	ctx := cmd.Context()

	ytdlpPath := cfg.Fetch.YtdlpCommand
	if ytdlpPath == "" {
		ytdlpPath, err = deps.EnsureYtdlp(ctx, cfg.BinDir())
		if err != nil {
			return services.Wrap(services.ErrConfiguration, "deps", "yt-dlp", "", err)
		}
	}
	ffmpegPath := cfg.Fetch.FFmpegCommand
	if ffmpegPath == "" {
		ffmpegPath, err = deps.EnsureFFmpeg(ctx, cfg.BinDir())
		if err != nil {
			return services.Wrap(services.ErrConfiguration, "deps", "ffmpeg", "", err)
		}
	}
	logger.Debug("external binaries resolved", "ytdlp", ytdlpPath, "ffmpeg", ffmpegPath)

	client := ytdlp.NewCLI(ytdlp.WithBinary(ytdlpPath), ytdlp.WithLogger(logger))

	logger.Info("fetching video metadata", "url", url)
	info, cookieSource, err := client.FetchInfo(ctx, url, cfg.Fetch.Browsers)
	if err != nil {
		return err
	}
	catalog := media.Normalize(info)

	sel, err := buildSelection(cfg, catalog, info, opts, logger)
	if err != nil {
		return err
	}

	outputOverride := opts.output
	if outputOverride != "" {
		if outputOverride, err = config.ExpandPath(outputOverride); err != nil {
			return err
		}
	}

	ffmpegLocation := ""
	if filepath.IsAbs(ffmpegPath) {
		ffmpegLocation = filepath.Dir(ffmpegPath)
	}

	compiled, err := plan.Compile(sel, plan.Request{
		URL:            url,
		Title:          info.Title,
		OutputOverride: outputOverride,
		OutputDir:      cfg.Paths.OutputDir,
		CookieSource:   cookieSource,
		FFmpegLocation: ffmpegLocation,
		Verbose:        opts.verbose,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\n--- Download Plan ---")
	for _, line := range plan.Summary(sel) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, "---------------------")
	fmt.Fprintln(out)

	logger.Info("starting download", "format", compiled.FormatExpr, "output", compiled.OutputPath)
	if err := client.Download(ctx, compiled.Args, func(line string) {
		fmt.Fprintln(out, line)
	}); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nSuccess! Video saved to: %s\n", compiled.OutputPath)
	return nil
}

// buildSelection runs the per-track selectors in the requested mode.
func buildSelection(cfg *config.Config, catalog media.Catalog, info *media.Info, opts downloadOptions, logger *slog.Logger) (selection.Selection, error) {
	var sel selection.Selection

	quality := opts.quality
	if quality == "" {
		quality = cfg.Selection.DefaultQuality
	}
	video, err := selection.SelectVideo(catalog, quality, logger)
	if err != nil {
		return sel, err
	}
	sel.Video = video

	interactive := opts.interactive
	if interactive && !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		logger.Warn("stdin is not a terminal, falling back to automatic selection")
		interactive = false
	}

	if interactive {
		return selectInteractively(sel, catalog)
	}

	lang := cfg.Selection.PreferredLanguage
	audio, note := selection.SelectAudioAuto(catalog, lang)
	sel.AudioNote = note
	if audio != nil {
		sel.AudioID = audio.ID
		sel.AudioLang = audio.Language
	}

	// Under the automatic policy subtitles substitute for missing audio,
	// they are not an addition to it.
	if !sel.HasAudio() {
		if sub := selection.SelectSubtitleAuto(info.AutomaticCaptions, cfg.Selection.SubtitleTags); sub != nil {
			sel.SubtitleLang = sub.Lang
			sel.SubtitleExt = sub.Ext
			sel.SubtitleOrigin = sub.Origin
		}
	}
	return sel, nil
}

func selectInteractively(sel selection.Selection, catalog media.Catalog) (selection.Selection, error) {
	chooser := selection.NewChooser(os.Stdin, os.Stdout)

	audio, err := chooser.ChooseAudio(catalog.AudioOnly)
	if err != nil {
		return sel, err
	}
	if audio != nil {
		sel.AudioID = audio.ID
		sel.AudioLang = audio.Language
		sel.AudioNote = "Selected interactively."
	} else {
		sel.AudioNote = "Skipped interactively."
	}

	// Interactive subtitles are an independent choice, offered whether or
	// not audio was picked.
	sub, err := chooser.ChooseSubtitle(catalog.Subtitles)
	if err != nil {
		return sel, err
	}
	if sub != nil {
		sel.SubtitleLang = sub.Lang
		sel.SubtitleExt = sub.Ext
		sel.SubtitleOrigin = sub.Origin
	}
	return sel, nil
}
