// Package card implements the dog card: its presentation state and the
// fetch cycle that fills it.
//
// A fetch cycle issues two requests in order, a random dog image and then
// a random first name, derives the breed from the image URL and produces
// a [Result]. The view that owns a [State] applies results through
// [State.Finish]; nothing else writes Image, Breed or Name.
//
// # Lifecycle
//
//	seq := st.Begin()               // Loading = true
//	res := fetcher.Fetch(ctx, seq)  // request A, then request B
//	st.Finish(res)                  // apply atomically, Loading = false
//
// Every cycle carries the sequence number [State.Begin] issued. Results of
// a cycle that has since been superseded are discarded, so an old slow
// response can never overwrite a newer one and cannot clear Loading while
// the newer cycle is still in flight.
//
// # Failure
//
// Any failure (network, non-OK status, malformed body) sets Name to
// [FallbackName]. Image and Breed keep their previous values unless the
// image request had already succeeded when the name request failed.
package card
