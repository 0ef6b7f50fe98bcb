// Package builtin provides the functions available in profile documents.
//
// Available functions:
//   - uuid(): Generate a random UUID v4
//   - now(): Current time in RFC 3339
//   - date(layout): Current date, Go layout, default 2006-01-02
//   - timestamp(), timestampMs(): Current Unix time
//   - random(min, max): Random integer in range
//   - randomString(length): Random alphanumeric string
//   - base64(value), sha256(value), urlEncode(value)
//
// Functions are invoked with {{name(args)}} inside any string value.
package builtin
