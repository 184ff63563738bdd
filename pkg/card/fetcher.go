package card

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pawfetch/pkg/errors"
	"github.com/matzehuels/pawfetch/pkg/integrations"
	"github.com/matzehuels/pawfetch/pkg/observability"
)

// ImageSource returns the URL of a random dog image.
type ImageSource interface {
	RandomImage(ctx context.Context) (string, error)
}

// NameSource returns a random first name.
type NameSource interface {
	RandomFirstName(ctx context.Context) (string, error)
}

// Fetcher runs fetch cycles against an image and a name service.
// It holds no per-cycle state and is safe for concurrent use when its
// sources are.
type Fetcher struct {
	images ImageSource
	names  NameSource
	logger *log.Logger
}

// NewFetcher creates a Fetcher. A nil logger discards diagnostics.
func NewFetcher(images ImageSource, names NameSource, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Fetcher{images: images, names: names, logger: logger}
}

// Fetch runs fetch cycle seq: the image request, breed extraction, then the
// name request. The name request does not start until the image body has
// been read.
//
// Fetch always returns a Result for seq. On failure Result.Err is a
// FETCH_CYCLE_FAILED error and the failure is logged; callers only need to
// hand the Result to [State.Finish].
func (f *Fetcher) Fetch(ctx context.Context, seq uint64) (res Result) {
	res.Seq = seq
	start := time.Now()
	hooks := observability.Cycle()
	hooks.OnCycleStart(ctx, seq)
	defer func() {
		hooks.OnCycleComplete(ctx, seq, time.Since(start), res.Err)
		if res.Err != nil {
			f.logger.Warn("fetch cycle failed", "seq", seq, "err", res.Err)
			return
		}
		f.logger.Debug("fetch cycle complete", "seq", seq, "breed", res.Breed, "name", res.Name,
			"elapsed", time.Since(start).Round(time.Millisecond))
	}()

	image, breed, err := f.fetchImage(ctx)
	if err != nil {
		res.Err = cycleError(seq, "image", err)
		return res
	}
	res.Image, res.Breed = image, breed

	name, err := f.names.RandomFirstName(ctx)
	if err != nil {
		res.Err = cycleError(seq, "name", err)
		return res
	}
	res.Name = name
	return res
}

// cycleError collapses a failed step into FETCH_CYCLE_FAILED, keeping the
// service-level code of the cause underneath for diagnostics.
func cycleError(seq uint64, step string, err error) error {
	cause := errors.Wrap(integrations.Code(err), err, "%s request", step)
	return errors.Wrap(errors.ErrCodeFetchCycleFailed, cause, "cycle %d", seq)
}

func (f *Fetcher) fetchImage(ctx context.Context) (string, string, error) {
	image, err := f.images.RandomImage(ctx)
	if err != nil {
		return "", "", err
	}
	breed, err := BreedFromURL(image)
	if err != nil {
		return "", "", fmt.Errorf("breed: %w", err)
	}
	f.logger.Debug("image fetched", "url", image, "breed", breed)
	return image, breed, nil
}
