package cli

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pawfetch/pkg/config"
	"github.com/matzehuels/pawfetch/pkg/web"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// serveCommand creates the serve command, the browser card.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dog card to your browser",
		Long: `Serve the dog card as a web page.

Every browser gets its own card, kept in memory until it has been idle for
session_ttl or pawfetch exits.
The download button hands the image URL to the browser's own save-as.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.Listen = listen
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			svc := newServices(cfg, logger)
			srv := web.NewServer(ctx, svc.fetcher, web.Options{
				Dark:       cfg.Dark,
				Logger:     logger,
				SessionTTL: cfg.SessionTTL.Duration,
			})

			ln, err := net.Listen("tcp", cfg.Listen)
			if err != nil {
				return err
			}
			err = serve(ctx, ln, srv.Handler(), cmd.OutOrStdout(), logger)
			srv.Wait()
			return err
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "address to listen on (default from config, "+config.DefaultListen+")")

	return cmd
}

// serve runs h on ln until ctx ends, then shuts down gracefully.
func serve(ctx context.Context, ln net.Listener, h http.Handler, out io.Writer, logger *log.Logger) error {
	hs := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	printInfo(out, "Serving the dog card on %s", StyleLink.Render("http://"+ln.Addr().String()))

	errc := make(chan error, 1)
	go func() { errc <- hs.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	}
}
