package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/pawfetch/pkg/card"
	"github.com/matzehuels/pawfetch/pkg/download"
)

// fetchOutput is the JSON form of a fetched card.
type fetchOutput struct {
	Image    string `json:"image"`
	Breed    string `json:"breed"`
	Name     string `json:"name"`
	Filename string `json:"filename"`
	Saved    string `json:"saved,omitempty"`
}

// fetchCommand creates the fetch command: one fetch cycle, printed once.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		asJSON bool
		save   bool
		dir    string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch one dog and print its card",
		Long: `Fetch one random dog and print its name, breed and image URL.

A failed fetch is not an error: the card falls back to the name "Buddy",
exactly as the interactive views do. Use -v to see why it failed.`,
		Example: `  pawfetch fetch
  pawfetch fetch --json
  pawfetch fetch --save --dir ~/Pictures/dogs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dir") {
				cfg.DownloadDir = dir
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			svc := newServices(cfg, logger)

			state := card.State{Theme: card.ThemeFromDark(cfg.Dark)}
			seq := state.Begin()

			var sp *Spinner
			if !asJSON && isTerminal(os.Stderr) {
				sp = newSpinner(ctx, cmd.ErrOrStderr(), "Fetching a dog...")
				sp.Start()
			}
			prog := newProgress(logger)
			res := svc.fetcher.Fetch(ctx, seq)
			if sp != nil {
				if res.Err != nil {
					sp.StopWithError("Fetch failed, showing the fallback card")
				} else {
					sp.Stop()
				}
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			state.Finish(res)
			prog.done("Fetched card")

			out := fetchOutput{
				Image:    state.Image,
				Breed:    state.Breed,
				Name:     state.Name,
				Filename: state.DownloadFilename(),
			}
			if save && state.Image != "" {
				path, err := download.Save(ctx, svc.images, state.Image, cfg.DownloadDir, out.Filename)
				if err != nil {
					return err
				}
				out.Saved = path
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			printCard(w, state, out.Saved, save)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the card as JSON")
	cmd.Flags().BoolVarP(&save, "save", "s", false, "download the image")
	cmd.Flags().StringVar(&dir, "dir", "", "download directory (default from config)")

	return cmd
}

func printCard(w io.Writer, s card.State, saved string, wantSave bool) {
	printKeyValue(w, "Name", s.NameLabel())
	printKeyValue(w, "Breed", s.BreedLabel())
	if s.Image != "" {
		printKeyValue(w, "Image", StyleLink.Render(s.Image))
	}
	printKeyValue(w, "Download as", s.DownloadFilename())

	switch {
	case saved != "":
		printSuccess(w, "Saved image")
		printFile(w, saved)
	case wantSave:
		printInfo(w, "No image to save")
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
