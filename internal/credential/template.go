package credential

import (
	"sort"

	"github.com/wateraccounting/wacollect/internal/config"
)

// Fixed file names inside a workspace
const (
	EncryptedConfigFile = "config.yml-encrypted"
	KeyFile             = "credential.yml"
)

// Defaults for key derivation
const (
	DefaultPassword   = "W@t3r@ccounting"
	DefaultSalt       = "WaterAccounting_"
	DefaultIterations = 100000
	DefaultKeyLength  = 32
)

// Top-level configuration slots served by Store.Get
const (
	SlotPath    = "path"
	SlotFile    = "file"
	SlotAccount = "account"
	SlotData    = "data"
)

// Document sections inside the data slot
const (
	SectionCredential = "credential"
	SectionAccounts   = "accounts"
)

// template is the read-only default configuration. Stores never touch it
// directly; each one works on the result of instantiate.
type template struct {
	file      string
	keyFile   string
	keyParams KeyParams
	accounts  []string
}

var defaultTemplate = template{
	file:      EncryptedConfigFile,
	keyFile:   KeyFile,
	keyParams: DefaultKeyParams(),
	accounts:  append([]string(nil), config.KnownAccounts...),
}

// conf is the per-store configuration mapping
type conf struct {
	path    string
	file    string
	account map[string]any
	data    map[string]any
}

func (t template) instantiate() *conf {
	accounts := make(map[string]any, len(t.accounts))
	for _, name := range t.accounts {
		accounts[name] = map[string]any{}
	}

	return &conf{
		file:    t.file,
		account: map[string]any{},
		data: map[string]any{
			SectionCredential: map[string]any{
				"file":       t.keyFile,
				"password":   t.keyParams.Password,
				"length":     t.keyParams.Length,
				"iterations": t.keyParams.Iterations,
				"salt":       t.keyParams.Salt,
			},
			SectionAccounts: accounts,
		},
	}
}

func (c *conf) slots() map[string]any {
	return map[string]any{
		SlotPath:    c.path,
		SlotFile:    c.file,
		SlotAccount: c.account,
		SlotData:    c.data,
	}
}

// credentialFile returns the key file name, honoring a credential.file
// override already present in data.
func (c *conf) credentialFile() string {
	if section, ok := c.data[SectionCredential].(map[string]any); ok {
		if name, ok := section["file"].(string); ok && name != "" {
			return name
		}
	}
	return defaultTemplate.keyFile
}

func (c *conf) setPassword(password string) {
	if section, ok := c.data[SectionCredential].(map[string]any); ok {
		section["password"] = password
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// deepCopy clones the maps and slices a decoded YAML document is made of.
// Scalars are returned as is.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	case []byte:
		return append([]byte(nil), t...)
	default:
		return v
	}
}
