package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pawfetch/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Running pawfetch without a subcommand opens the terminal card.
func (c *CLI) RootCommand() *cobra.Command {
	cardCmd := c.cardCommand()

	root := &cobra.Command{
		Use:   appName,
		Short: "PawFetch shows a random dog with a random name",
		Long: `PawFetch is an animated random dog generator. It fetches random dog images,
names, and breeds from public APIs and shows them as a card in your terminal
or your browser, with dark/light mode and download support.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         cardCmd.RunE,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pawfetch/config.toml)")
	pf.StringVar(&c.opts.imageURL, "image-url", "", "random dog image endpoint")
	pf.StringVar(&c.opts.nameURL, "name-url", "", "random name endpoint")
	pf.DurationVar(&c.opts.timeout, "timeout", 0, "per-request timeout (0 waits indefinitely)")
	pf.BoolVar(&c.opts.dark, "dark", false, "start in dark mode")

	// The bare command shares the card command's local flags.
	root.Flags().AddFlagSet(cardCmd.Flags())

	root.AddCommand(cardCmd)
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}
