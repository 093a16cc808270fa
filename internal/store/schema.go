package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const bankSchemaURL = "schema://question_bank.json"

// bankSchema describes the persisted question bank. Statistics are embedded
// in each record.
const bankSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "type", "options", "answer"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "type": {"enum": ["single", "multi", "boolean"]},
      "prompt": {"type": "string"},
      "options": {
        "type": "array",
        "minItems": 1,
        "maxItems": 5,
        "items": {
          "type": "object",
          "required": ["label", "text"],
          "properties": {
            "label": {"enum": ["A", "B", "C", "D", "E"]},
            "text": {"type": "string"},
            "color": {"type": "string", "pattern": "^#[0-9A-F]{6}$"}
          }
        }
      },
      "answer": {"type": "string", "pattern": "^[A-E]+$"},
      "source": {"enum": ["delimited", "spreadsheet"]},
      "stats": {
        "type": "object",
        "properties": {
          "consecutiveCorrect": {"type": "integer", "minimum": 0},
          "totalAttempts": {"type": "integer", "minimum": 0},
          "correctAttempts": {"type": "integer", "minimum": 0}
        }
      }
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledBank   *jsonschema.Schema
	compileBankErr error
)

func bankValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(bankSchema), &doc); err != nil {
			compileBankErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, doc); err != nil {
			compileBankErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledBank, compileBankErr = c.Compile(bankSchemaURL)
	})
	return compiledBank, compileBankErr
}

// validateBank checks raw persisted bank JSON against the schema.
func validateBank(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := bankValidator()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
