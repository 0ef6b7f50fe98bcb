// Package http provides the HTTP transport used by rdiff profiles.
//
// It wraps the standard library's http package with additional features:
//   - Configurable timeouts, propagated as TransportError with Timeout set
//   - Redirect handling
//   - Proxy and TLS verification settings
//   - Ordered, case-insensitive header lists
//   - Full body reads with request duration tracking
package http
