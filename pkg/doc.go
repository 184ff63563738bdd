// Package pkg provides the libraries behind PawFetch, an animated random dog
// generator.
//
// # Overview
//
// PawFetch shows a "dog card": a random dog image from Dog CEO, the breed
// taken from the image URL, and a random first name from Random User. The
// pkg directory is organized into four areas:
//
//  1. [card] - Domain logic (card state, fetch cycle, breed formatting)
//  2. [integrations] - HTTP clients for the image and name services
//  3. [web] and [download] - Outer surfaces (browser card, image saving)
//  4. [config], [errors], [observability], [session] - Infrastructure
//
// # Architecture
//
// One fetch cycle flows through the packages like this:
//
//	view event (mount, "New Dog")
//	         ↓
//	    [card.State.Begin]            Loading = true, cycle seq issued
//	         ↓
//	    [card.Fetcher.Fetch]          request A (dogceo), then request B (randomuser)
//	         ↓
//	    [card.State.Finish]           applied atomically, or discarded if stale
//	         ↓
//	    terminal (internal/cli) or browser ([web]) render
//
// # Quick Start
//
// Run one fetch cycle by hand:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/pawfetch/pkg/card"
//	    "github.com/matzehuels/pawfetch/pkg/integrations"
//	    "github.com/matzehuels/pawfetch/pkg/integrations/dogceo"
//	    "github.com/matzehuels/pawfetch/pkg/integrations/randomuser"
//	)
//
//	hc := integrations.NewHTTPClient(0)
//	f := card.NewFetcher(
//	    dogceo.NewClient(dogceo.DefaultURL, hc, ""),
//	    randomuser.NewClient(randomuser.DefaultURL, hc, ""),
//	    nil,
//	)
//
//	var st card.State
//	st.Finish(f.Fetch(context.Background(), st.Begin()))
//	fmt.Println(st.NameLabel(), st.BreedLabel(), st.DownloadFilename())
//
// # Failure Handling
//
// A failed cycle never surfaces as an error to the user. Network errors,
// non-OK statuses and malformed bodies from either service all collapse
// into one FETCH_CYCLE_FAILED error that is logged, and the card shows the
// fallback name "Buddy". See [card] for what happens to the image.
//
// [card]: https://pkg.go.dev/github.com/matzehuels/pawfetch/pkg/card
// [card.State.Begin]: https://pkg.go.dev/github.com/matzehuels/pawfetch/pkg/card#State.Begin
// [card.Fetcher.Fetch]: https://pkg.go.dev/github.com/matzehuels/pawfetch/pkg/card#Fetcher.Fetch
// [card.State.Finish]: https://pkg.go.dev/github.com/matzehuels/pawfetch/pkg/card#State.Finish
// [integrations]: https://pkg.go.dev/github.com/matzehuels/pawfetch/pkg/integrations
// [web]: https://pkg.go.dev/github.com/matzehuels/pawfetch/pkg/web
// [download]: https://pkg.go.dev/github.com/matzehuels/pawfetch/pkg/download
// [config]: https://pkg.go.dev/github.com/matzehuels/pawfetch/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/pawfetch/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/pawfetch/pkg/observability
// [session]: https://pkg.go.dev/github.com/matzehuels/pawfetch/pkg/session
package pkg
