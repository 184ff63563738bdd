package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pawfetch/pkg/card"
	"github.com/matzehuels/pawfetch/pkg/download"
)

// cardCommand creates the card command, the interactive terminal card.
func (c *CLI) cardCommand() *cobra.Command {
	var (
		logFile string
		dir     string
	)

	cmd := &cobra.Command{
		Use:   "card",
		Short: "Show the dog card in the terminal",
		Long: `Show the dog card in the terminal.

A random dog is fetched when the card opens. Press n for a new dog, t to
switch between light and dark, d to save the image, and q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dir") {
				cfg.DownloadDir = dir
			}

			logger, closeLog, err := fileLogger(logFile, c.Logger.GetLevel())
			if err != nil {
				return err
			}
			defer closeLog()

			svc := newServices(cfg, logger)
			save := func(ctx context.Context, url, filename string) (string, error) {
				path, err := download.Save(ctx, svc.images, url, cfg.DownloadDir, filename)
				if err != nil {
					logger.Warn("download failed", "url", url, "err", err)
					return "", err
				}
				logger.Info("saved image", "path", path)
				return path, nil
			}

			ctx := cmd.Context()
			model := NewCardModel(ctx, svc.fetcher, save, card.ThemeFromDark(cfg.Dark))
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
					return ctx.Err()
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "write diagnostics to this file (default: discard)")
	cmd.Flags().StringVar(&dir, "dir", "", "download directory (default from config)")

	return cmd
}
