// Package cli implements the pawfetch command-line interface.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pawfetch/pkg/buildinfo"
	"github.com/matzehuels/pawfetch/pkg/card"
	"github.com/matzehuels/pawfetch/pkg/config"
	"github.com/matzehuels/pawfetch/pkg/integrations"
	"github.com/matzehuels/pawfetch/pkg/integrations/dogceo"
	"github.com/matzehuels/pawfetch/pkg/integrations/randomuser"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "pawfetch"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	opts globalOptions
}

// globalOptions are the persistent flags that override config file values.
type globalOptions struct {
	configPath string
	imageURL   string
	nameURL    string
	timeout    time.Duration
	dark       bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Config & Services
// =============================================================================

// loadConfig reads the config file and applies flags the user set explicitly.
func (c *CLI) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(c.opts.configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("image-url") {
		cfg.ImageURL = c.opts.imageURL
	}
	if flags.Changed("name-url") {
		cfg.NameURL = c.opts.nameURL
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = config.Duration{Duration: c.opts.timeout}
	}
	if flags.Changed("dark") {
		cfg.Dark = c.opts.dark
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	if cfg.Source != "" {
		c.Logger.Debug("loaded config", "path", cfg.Source)
	}
	return cfg, nil
}

// services wires the two service clients into a fetcher.
// The image client doubles as the opener used to download images.
type services struct {
	fetcher *card.Fetcher
	images  *dogceo.Client
}

func newServices(cfg config.Config, logger *log.Logger) services {
	hc := integrations.NewHTTPClient(cfg.HTTPTimeout.Duration)
	ua := cfg.UserAgent
	if ua == "" {
		ua = integrations.UserAgent(buildinfo.Version)
	}

	images := dogceo.NewClient(cfg.ImageURL, hc, ua)
	names := randomuser.NewClient(cfg.NameURL, hc, ua)
	return services{
		fetcher: card.NewFetcher(images, names, logger),
		images:  images,
	}
}
