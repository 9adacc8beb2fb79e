// Package errs defines the error shapes returned to API clients.
//
// Every handler error ends up as an *HTTPError before it is serialized by the
// global error handler, so clients always receive the same JSON structure.
package errs
