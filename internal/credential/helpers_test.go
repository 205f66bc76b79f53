package credential

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const fullDocument = `credential:
  file: credential.yml
  password: W@t3r@ccounting
  length: 32
  iterations: 100000
  salt: WaterAccounting_
accounts:
  NASA: {username: nasa-user, password: nasa-pass}
  GLEAM: {username: gleam-user, password: gleam-pass}
  FTP_WA: {username: wa-user, password: wa-pass}
  FTP_WA_GUESS: {username: wateraccountingguest, password: W@t3r@ccounting}
  MSWEP: {username: mswep-user, password: mswep-pass}
  Copernicus: {username: cds-user, password: cds-pass, uid: 12345}
  VITO: {username: vito-user, password: vito-pass}
notes:
  owner: wa-team
`

// newKey returns a fresh random key
func newKey(t *testing.T) []byte {
	t.Helper()
	key, err := GenerateKey()
	require.NoError(t, err)
	return key
}

// writeWorkspace creates a workspace holding document encrypted with
// encKey and keyFile as the key file content.
func writeWorkspace(t *testing.T, document string, encKey, keyFile []byte) string {
	t.Helper()
	dir := t.TempDir()

	token, err := Encrypt([]byte(document), encKey)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, EncryptedConfigFile), token, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyFile), keyFile, 0600))
	return dir
}

// withoutAccount removes the line defining name from fullDocument
func withoutAccount(name string) string {
	var kept []string
	for _, line := range strings.Split(fullDocument, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), name+":") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func decodeYAML(t *testing.T, document string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(document), &doc))
	return doc
}
