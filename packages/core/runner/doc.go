// Package runner executes profiles and produces reports.
//
// It provides functionality for:
//   - Sending the single request of a request profile
//   - Sending both requests of a diff profile concurrently
//   - Normalizing responses with the profile's response filter
//   - Diffing the normalized texts
//
// Every send-time failure is returned as an errdefs.RequestError naming the
// profile and the request slot that failed. A failed diff never produces a
// partial result.
package runner
