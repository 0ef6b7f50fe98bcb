// Package output renders runner results for the terminal or for machines.
//
// Supported output formats:
//   - Console: colored terminal output with syntax highlighted headers and
//     bodies, and the line diff report of diff profiles
//   - JSON: one machine-readable JSON document per result
//
// Both formatters implement the Formatter interface.
package output
