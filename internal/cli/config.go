package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pawfetch/pkg/config"
)

// configCommand creates the config command and its subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the configuration pawfetch runs with: the config file merged over the
built-in defaults, with any flags applied on top.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			source := cfg.Source
			if source == "" {
				source = "built-in defaults"
			}
			fmt.Fprintln(w, StyleTitle.Render("PawFetch configuration"))
			printInfo(w, "Loaded from %s", source)

			timeout := cfg.HTTPTimeout.String()
			if cfg.HTTPTimeout.Duration == 0 {
				timeout = "none"
			}
			theme := "light"
			if cfg.Dark {
				theme = "dark"
			}
			userAgent := cfg.UserAgent
			if userAgent == "" {
				userAgent = "(default)"
			}

			printKeyValue(w, "image_url", cfg.ImageURL)
			printKeyValue(w, "name_url", cfg.NameURL)
			printKeyValue(w, "user_agent", userAgent)
			printKeyValue(w, "http_timeout", timeout)
			printKeyValue(w, "theme", theme)
			printKeyValue(w, "download_dir", cfg.DownloadDir)
			printKeyValue(w, "listen", cfg.Listen)
			if cfg.SessionTTL.Duration > 0 {
				printKeyValue(w, "session_ttl", cfg.SessionTTL.String())
			} else {
				printKeyValue(w, "session_ttl", "none")
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the default config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printFile(w, path)
			printDetail(w, "override with --config")
			return nil
		},
	})

	return cmd
}
