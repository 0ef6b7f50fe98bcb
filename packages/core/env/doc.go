// Package env handles variable interpolation in profile documents.
//
// It provides functionality for:
//   - Loading dotenv files (.env or --env-file)
//   - Variable interpolation using {{variable}} syntax
//   - Process environment lookups with {{$VAR}}
//   - Built-in function evaluation (uuid, timestamp, base64, etc.)
//   - Expanding every string scalar of a parsed YAML document
package env
