package credential

import (
	"fmt"
	"sort"
)

// Account is the credential entry of one portal
type Account struct {
	Name     string
	Username string
	Password string
	// Fields holds every entry of the account mapping, including
	// username and password.
	Fields map[string]any
}

func (a Account) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Username)
}

func newAccount(name string, raw any) Account {
	a := Account{Name: name, Fields: map[string]any{}}
	m, ok := raw.(map[string]any)
	if !ok {
		return a
	}
	for k, v := range m {
		a.Fields[k] = deepCopy(v)
	}
	a.Username = scalarString(m["username"])
	a.Password = scalarString(m["password"])
	return a
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// Account returns the credentials stored under name in the accounts
// section, whether or not name was requested at construction.
func (s *Store) Account(name string) (Account, error) {
	section, _ := s.conf.data[SectionAccounts].(map[string]any)
	raw, ok := section[name]
	if !ok {
		return Account{}, &LookupError{Key: name, Available: sortedKeys(section)}
	}
	return newAccount(name, raw), nil
}

// Accounts returns the requested accounts keyed by name
func (s *Store) Accounts() map[string]Account {
	out := make(map[string]Account, len(s.conf.account))
	for name, raw := range s.conf.account {
		out[name] = newAccount(name, raw)
	}
	return out
}

// AllAccounts returns every account of the accounts section sorted by name
func (s *Store) AllAccounts() []Account {
	section, _ := s.conf.data[SectionAccounts].(map[string]any)
	names := make([]string, 0, len(section))
	for name := range section {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Account, 0, len(names))
	for _, name := range names {
		out = append(out, newAccount(name, section[name]))
	}
	return out
}

func (s *Store) passwords() []string {
	var out []string
	for _, a := range s.AllAccounts() {
		if a.Password != "" {
			out = append(out, a.Password)
		}
	}
	return out
}
