package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var opts downloadOptions

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "esvid <url>",
		Short: "Download YouTube videos with a preference for Spanish audio or subtitles",
		Long: `esvid picks the best video track and a preferred-language audio track
(or subtitle) from a video's available streams, then drives yt-dlp and
ffmpeg to produce a single playable MP4.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runDownload(cmd, ctx, args[0], opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVarP(&opts.quality, "quality", "q", "", "Desired video quality (e.g. \"1080p\"); defaults to best available")
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output path and filename (e.g. \"~/videos/movie.mp4\")")
	rootCmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Choose audio and subtitle tracks by hand")
	rootCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output for debugging")

	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
