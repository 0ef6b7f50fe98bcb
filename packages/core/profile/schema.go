package profile

import (
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/abdul-hamid-achik/rdiff/packages/errdefs"
)

const requestSchema = `{
  "type": "object",
  "required": ["url"],
  "properties": {
    "method": {"type": "string"},
    "url": {"type": "string"},
    "params": {},
    "headers": {
      "type": ["object", "null"],
      "additionalProperties": {"type": ["string", "number", "boolean"]}
    },
    "body": {}
  },
  "additionalProperties": false
}`

// DiffSchema describes a comparison profile document.
var DiffSchema = `{
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "required": ["req1", "req2"],
    "properties": {
      "req1": {"$ref": "#/definitions/request"},
      "req2": {"$ref": "#/definitions/request"},
      "resp": {
        "type": ["object", "null"],
        "properties": {
          "skip_headers": {"type": ["array", "null"], "items": {"type": "string"}},
          "skip_body": {"type": ["array", "null"], "items": {"type": "string"}}
        },
        "additionalProperties": false
      }
    },
    "additionalProperties": false
  },
  "definitions": {"request": ` + requestSchema + `}
}`

// RequestSchema describes a single request profile document.
var RequestSchema = `{
  "type": "object",
  "additionalProperties": {"$ref": "#/definitions/request"},
  "definitions": {"request": ` + requestSchema + `}
}`

// lint checks the document structure before typed decoding. Params and
// body are left unconstrained here; their object shape is checked by
// Validate so the error carries the profile name the same way.
func lint(schema string, doc any) []error {
	if doc == nil {
		return nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return []error{errdefs.NewInvalidShapeError("(root)", err.Error())}
	}
	if result.Valid() {
		return nil
	}

	schemaErrs := result.Errors()
	sort.SliceStable(schemaErrs, func(i, j int) bool {
		if schemaErrs[i].Field() != schemaErrs[j].Field() {
			return schemaErrs[i].Field() < schemaErrs[j].Field()
		}
		return schemaErrs[i].Description() < schemaErrs[j].Description()
	})

	errs := make([]error, 0, len(schemaErrs))
	for _, e := range schemaErrs {
		field := e.Field()
		if field == "(root)" {
			errs = append(errs, errdefs.NewInvalidShapeError("document", e.Description()))
			continue
		}
		name, rest, found := strings.Cut(field, ".")
		if !found {
			rest = "profile"
		}
		errs = append(errs, errdefs.NewConfigValidationError(name, errdefs.NewInvalidShapeError(rest, e.Description())))
	}
	return errs
}
