// Package web serves the dog card as an HTML page.
//
// Each browser gets its own card state, keyed by a session cookie and kept
// in memory for the life of the process. The first visit starts a fetch
// cycle; "New Dog" and the theme toggle are plain form posts that redirect
// back to the card. While a cycle is in flight the page shows a spinner and
// refreshes itself.
//
// The download control is an anchor whose href is the remote image URL and
// whose download attribute is the suggested filename, so saving is left to
// the browser.
//
// # Routes
//
//	GET  /           card page
//	POST /dog        start a new fetch cycle
//	POST /theme      toggle light/dark
//	GET  /card.json  current card state
//	GET  /healthz    liveness
package web
