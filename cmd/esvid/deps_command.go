package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"esvid/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	depsCmd := &cobra.Command{
		Use:   "deps",
		Short: "Show the status of external dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg.BinDir()))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = "missing"
				}
				rows = append(rows, []string{status.Name, status.Command, state, status.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Dependency", "Command", "Status", "Detail"},
				rows,
			))
			return nil
		},
	}

	depsCmd.AddCommand(newDepsInstallCommand(ctx))
	return depsCmd
}

func newDepsInstallCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install missing dependencies into the cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ytdlpPath, err := deps.EnsureYtdlp(cmd.Context(), cfg.BinDir())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "yt-dlp: %s\n", ytdlpPath)

			ffmpegPath, err := deps.EnsureFFmpeg(cmd.Context(), cfg.BinDir())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "ffmpeg: %s\n", ffmpegPath)
			return nil
		},
	}
}
