// Package services implements HTTP clients for the StockHub DAM backend.
//
// [Service] is the interface the rest of the client programs against;
// [StockHubService] is its production implementation. Authenticated calls
// ride an oauth2 transport built from a static token source so the bearer
// header is attached uniformly. [APIService] exposes raw GET/POST for the
// `damx api` debugging commands.
//
// Session persistence (token file in the user config dir) and display-only
// JWT claim decoding live in session.go.
package services
