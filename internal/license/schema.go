// internal/license/schema.go
package license

import "github.com/xeipuuv/gojsonschema"

// recordSchemaJSON is the shape every upstream row must satisfy before
// mapping. Extra fields are allowed; the serial number is the only hard
// requirement at this stage.
const recordSchemaJSON = `{
	"type": "object",
	"properties": {
		"license_serial_number": {"type": "string", "minLength": 1},
		"premise_name": {"type": "string"},
		"premises_name": {"type": "string"},
		"doing_business_as_dba": {"type": "string"},
		"license_type_name": {"type": "string"},
		"license_class_code": {"type": "string"},
		"county_name": {"type": "string"},
		"county": {"type": "string"},
		"city": {"type": "string"},
		"actual_address_of_premises_address": {"type": "string"},
		"zip": {"type": "string"},
		"license_effective_date": {"type": "string"},
		"license_original_issue_date": {"type": "string"},
		"date_filed": {"type": "string"}
	},
	"required": ["license_serial_number"]
}`

var recordSchema = gojsonschema.NewStringLoader(recordSchemaJSON)

// validateRecord checks one raw row against the record schema and returns
// the first failure description, or "" when the row is valid.
func validateRecord(raw []byte) string {
	result, err := gojsonschema.Validate(recordSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return err.Error()
	}
	if !result.Valid() {
		return result.Errors()[0].String()
	}
	return ""
}
