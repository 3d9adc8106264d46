package core

import (
	"bytes"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SnapshotSchema checks that a persisted snapshot document carries every
// field needed to rebuild it.
type SnapshotSchema struct {
	schema *jsonschema.Schema
}

func NewSnapshotSchema() *SnapshotSchema {
	schema, err := compileSchema(snapshotSchemaLocation, snapshotSchemaDocument)
	if err != nil {
		panic(err) // the schema is a constant
	}
	return &SnapshotSchema{schema: schema}
}

func (this *SnapshotSchema) Validate(raw []byte) error {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("malformed snapshot document: %w", err)
	}
	if err = this.schema.Validate(instance); err != nil {
		return fmt.Errorf("invalid snapshot document: %w", err)
	}
	return nil
}

func compileSchema(location, document string) (*jsonschema.Schema, error) {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(document)))
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err = compiler.AddResource(location, parsed); err != nil {
		return nil, err
	}
	return compiler.Compile(location)
}

const snapshotSchemaLocation = "https://artifact-poller.local/schemas/snapshot.json"

const snapshotSchemaDocument = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["artifactID", "groupID", "repo", "artifacts"],
  "properties": {
    "artifactID": {"type": "string"},
    "groupID": {"type": "string"},
    "repo": {"type": "string"},
    "artifacts": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["version", "files"],
        "properties": {
          "version": {"type": "string"},
          "files": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["filename", "metadata"],
              "properties": {
                "filename": {"type": "string"},
                "metadata": {
                  "type": "object",
                  "required": ["size", "checksums"],
                  "properties": {
                    "size": {"type": ["integer", "string"], "minimum": 0, "pattern": "^[0-9]+$"},
                    "checksums": {
                      "type": "object",
                      "required": ["sha1", "md5"],
                      "properties": {
                        "sha1": {"type": "string"},
                        "md5": {"type": "string"}
                      }
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`
