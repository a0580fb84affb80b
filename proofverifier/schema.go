package proofverifier

import (
	"github.com/xeipuuv/gojsonschema"
)

// artifactSchema is the JSON schema every artifact must satisfy before
// the strict typed decode runs. It pins the overall shape; the decoder
// still re-checks every semantic constraint afterwards, so the schema is
// the first gate, not the only one.
const artifactSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "required": ["version", "notary_key_id", "signature", "signed_header", "commitments", "disclosed"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "notary_key_id": {"type": "string", "minLength": 1},
    "signature": {
      "type": "object",
      "additionalProperties": false,
      "required": ["scheme", "sig"],
      "properties": {
        "scheme": {"type": "string", "minLength": 1},
        "sig": {"type": "string", "minLength": 1}
      }
    },
    "signed_header": {"type": "string", "minLength": 1},
    "commitments": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["direction", "start", "length", "digest"],
        "properties": {
          "direction": {"type": "string"},
          "start": {"type": "integer", "minimum": 0},
          "length": {"type": "integer", "minimum": 1},
          "digest": {"type": "string", "minLength": 1},
          "blinder": {"type": "string"}
        }
      }
    },
    "disclosed": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["direction", "start", "length", "data"],
        "properties": {
          "direction": {"type": "string"},
          "start": {"type": "integer", "minimum": 0},
          "length": {"type": "integer", "minimum": 1},
          "data": {"type": "string"}
        }
      }
    }
  }
}`

// Compiled once; Validate on a compiled schema is safe for concurrent
// use, so independent verification calls share it without locking.
var compiledArtifactSchema = func() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(artifactSchema))
	if err != nil {
		panic("proofverifier: embedded artifact schema does not compile: " + err.Error())
	}
	return s
}()

// validateSchema checks the raw artifact JSON against the embedded
// schema. Returns a ProofError of kind Malformed on any violation,
// including invalid JSON.
func validateSchema(raw []byte) error {
	result, err := compiledArtifactSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return malformedErr("artifact is not valid JSON", err)
	}
	if !result.Valid() {
		// Report the first violation; one reason is enough to reject.
		first := result.Errors()[0]
		return malformedf("artifact schema violation: %s", first.String())
	}
	return nil
}
