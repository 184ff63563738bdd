// Package integrations provides HTTP clients for the public APIs a dog card
// is assembled from.
//
// # Overview
//
// Each service has its own subpackage:
//
//   - [dogceo]: random dog image URLs (https://dog.ceo)
//   - [randomuser]: random human first names (https://randomuser.me)
//
// # Client Pattern
//
// Service clients embed the shared [Client] and expose one narrow method:
//
//	images := dogceo.NewClient(dogceo.DefaultURL, integrations.NewHTTPClient(0), "pawfetch/dev")
//	url, err := images.RandomImage(ctx)
//
// Clients handle:
//   - JSON decoding and response shape checks
//   - Status code mapping to [ErrNotFound] and [ErrNetwork]
//   - HTTP observability hooks
//
// Clients never retry and never cache: a failed request surfaces
// immediately so the caller can fall back.
//
// [dogceo]: github.com/matzehuels/pawfetch/pkg/integrations/dogceo
// [randomuser]: github.com/matzehuels/pawfetch/pkg/integrations/randomuser
package integrations
