// Package cmd implements the rdiff CLI commands using Cobra.
//
// Diff profiles (rdiff.yaml):
//   - run: Send both requests of a profile and print the response diff
//   - parse: Build a profile interactively from URLs or curl commands
//   - validate: Check a profile file without sending anything
//   - list: Show the profiles of a file
//
// Request profiles (xreq.yaml) have the same commands under xreq, plus
// url, which prints the URL a profile resolves to.
//
// import converts curl command files, init writes example files and
// version prints build information.
package cmd
