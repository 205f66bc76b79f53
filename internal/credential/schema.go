package credential

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var documentSchema = mustDocumentSchema()

func mustDocumentSchema() *gojsonschema.Schema {
	schema := map[string]any{
		"type":     "object",
		"required": []string{SectionAccounts},
		"properties": map[string]any{
			SectionCredential: map[string]any{"type": "object"},
			SectionAccounts: map[string]any{
				"type":                 "object",
				"required":             defaultTemplate.accounts,
				"additionalProperties": map[string]any{"type": "object"},
			},
		},
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		panic(err)
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateDocument checks a plaintext config.yml before it is encrypted:
// it must be a mapping whose accounts section holds a mapping for every
// known account. Failures are reported as MalformedDocument.
func ValidateDocument(plaintext []byte) error {
	doc, err := parseDocument(plaintext)
	if err != nil {
		return &ConfigurationError{Kind: MalformedDocument, Err: err}
	}

	result, err := documentSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return &ConfigurationError{Kind: MalformedDocument, Err: err}
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		msgs = append(msgs, re.String())
	}
	return &ConfigurationError{
		Kind: MalformedDocument,
		Err:  fmt.Errorf("%s", strings.Join(msgs, "; ")),
	}
}
