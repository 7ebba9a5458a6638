// Package httputil provides shared HTTP response utilities for handlers.
//
// Handlers use these helpers instead of writing raw http.ResponseWriter
// calls so every response carries the same JSON envelope and 5xx bodies
// never include internal error detail.
package httputil
