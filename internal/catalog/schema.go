// internal/catalog/schema.go
package catalog

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"finhealth-assistant/internal/common/errors"
)

// catalogSchema validates the shape of a catalog file before it is trusted.
const catalogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["hospitals"],
  "properties": {
    "hospitals": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["name", "procedures"],
            "properties": {
              "name": {"type": "string", "minLength": 1},
              "rating": {"type": "number", "minimum": 0, "maximum": 5},
              "emergency": {"type": "boolean"},
              "insurance_accepted": {"type": "array", "items": {"type": "string"}},
              "procedures": {
                "type": "object",
                "additionalProperties": {
                  "type": "object",
                  "required": ["base_price", "cash_price"],
                  "properties": {
                    "base_price": {"type": "number", "minimum": 0},
                    "cash_price": {"type": "number", "minimum": 0},
                    "insurance_price": {"type": "number", "minimum": 0}
                  }
                }
              }
            }
          }
        }
      }
    },
    "insurance_plans": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["deductible", "out_of_pocket_max", "coverage_percent"],
        "properties": {
          "deductible": {"type": "number", "minimum": 0},
          "out_of_pocket_max": {"type": "number", "minimum": 0},
          "coverage_percent": {"type": "number", "minimum": 0, "maximum": 1}
        }
      }
    },
    "medical_conditions": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["common_procedures"],
        "properties": {
          "common_procedures": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

// validateCatalog checks raw catalog JSON against the schema and returns a
// CATALOG_VALIDATION_FAILED error listing every violation.
func validateCatalog(raw []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(catalogSchema)
	docLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return errors.NewCatalogInvalidError(fmt.Sprintf("schema validation error: %v", err))
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return errors.NewCatalogInvalidError(strings.Join(problems, "; "))
}
