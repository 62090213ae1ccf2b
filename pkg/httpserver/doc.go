// Package httpserver runs an http.Server with sensible timeouts and
// graceful shutdown on signals or context cancellation.
package httpserver
