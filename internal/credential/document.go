package credential

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

var errNotUTF8 = errors.New("decrypted text is not valid UTF-8")

// parseDocument decodes decrypted YAML into a string-keyed mapping
func parseDocument(plaintext []byte) (map[string]any, error) {
	if !utf8.Valid(plaintext) {
		return nil, errNotUTF8
	}

	var raw any
	if err := yaml.Unmarshal(plaintext, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return map[string]any{}, nil
	}

	doc, ok := normalize(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top level is %T, want a mapping", raw)
	}
	return doc, nil
}

// normalize turns the map[any]any nodes yaml.v3 produces for non-string
// keys into map[string]any so the rest of the package sees one shape.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}

// merge overlays doc onto c and checks the accounts section. Every known
// account must be present, not only the requested ones.
func (c *conf) merge(doc map[string]any, source string, known []string) error {
	for _, k := range sortedKeys(doc) {
		if c.data == nil {
			return &ConfigurationError{Kind: KeyMissing, Key: k, Path: source}
		}
		c.data[k] = doc[k]
	}

	section := map[string]any{}
	if raw, ok := doc[SectionAccounts]; ok && raw != nil {
		m, ok := raw.(map[string]any)
		if !ok {
			return &ConfigurationError{
				Kind: MalformedDocument,
				Path: source,
				Err:  fmt.Errorf("%q is %T, want a mapping", SectionAccounts, raw),
			}
		}
		section = m
	}

	for _, name := range known {
		if _, ok := section[name]; !ok {
			return &ConfigurationError{Kind: SubKeyMissing, Key: name, Path: source}
		}
	}

	for _, name := range sortedKeys(c.account) {
		value, ok := section[name]
		if !ok {
			return &ConfigurationError{Kind: SubKeyMissing, Key: name, Path: source}
		}
		c.account[name] = deepCopy(value)
	}

	return nil
}
