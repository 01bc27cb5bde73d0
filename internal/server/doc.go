// Package server provides HTTP routing, middleware, and the local preview server.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Preview Server
//
// [PreviewHandler] renders server-side HTML for a catalog snapshot: a
// library index at /, a per-item page at /preview/{id}, and a health
// endpoint at /healthz.
//
// Each preview page embeds the element the item's resolved strategy calls
// for (video, audio, image, document viewer, 3D model viewer, or a static
// icon placeholder), sourced from the resolved byte URL. Because browsers
// carry no session state here, the server is bound to localhost and serves
// public CDN URLs only.
//
// # Current Usage
//
// When the user runs the preview serve command, an HTTP server starts on
// the configured localhost port with the current catalog snapshot. The
// snapshot can be swapped with [PreviewHandler.SetItems] after a refresh.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
