// Package profile holds request profiles and the documents that name them.
//
// A RequestProfile is a template (method, url, params, headers, body) that
// Generate turns into a concrete request after merging runtime overrides.
// DiffConfig and RequestConfig map names to comparison and single request
// profiles. Both are loaded through the same pipeline: parse (YAML, JSON or
// TOML), expand {{...}} expressions, lint against a JSON schema, decode and
// validate every profile.
package profile
