// Package download saves a card's image to disk.
//
// It is the terminal counterpart of a browser's native save-as: the remote
// bytes are streamed to the target file as they arrive, with no decoding
// or re-encoding.
package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/pawfetch/pkg/errors"
)

// Opener opens a remote resource for reading.
// [integrations.Client] satisfies it.
type Opener interface {
	Open(ctx context.Context, url string) (io.ReadCloser, error)
}

// Save streams url into dir/filename and returns the written path.
//
// filename is sanitized first, so a name taken from an external service
// cannot escape dir. The file is written to a temporary sibling and
// renamed into place, so a failed transfer never leaves a partial image
// under the final name.
func Save(ctx context.Context, opener Opener, url, dir, filename string) (string, error) {
	if url == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "no image to download")
	}
	name := errors.SanitizeFilename(filename, "dog.jpg")
	if err := errors.ValidateFilename(name); err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	body, err := opener.Open(ctx, url)
	if err != nil {
		return "", fmt.Errorf("open image: %w", err)
	}
	defer body.Close()

	tmp, err := os.CreateTemp(dir, ".pawfetch-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close image: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("move image into place: %w", err)
	}
	return path, nil
}
