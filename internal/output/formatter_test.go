package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountRow struct {
	Name     string
	Username string
	hidden   string
}

func TestJSONFormatter(t *testing.T) {
	var out, errOut bytes.Buffer
	f := NewWithWriters("json", &out, &errOut)

	rows := []accountRow{{Name: "NASA", Username: "alice"}, {Name: "VITO", Username: "bob"}}
	require.NoError(t, f.PrintList(rows, []Column{{Name: "Name", Key: "Name"}}))

	var envelope struct {
		Data  []map[string]any `json:"data"`
		Count int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &envelope))
	assert.Equal(t, 2, envelope.Count)
	assert.Equal(t, "NASA", envelope.Data[0]["Name"])

	f.PrintError(errors.New("nope"))
	f.PrintHint("ignored")
	assert.JSONEq(t, `{"error":"nope"}`, errOut.String())
}

func TestPlainFormatterPrint(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{
			name: "struct skips unexported",
			data: accountRow{Name: "GLEAM", Username: "carol", hidden: "x"},
			want: "Name\tGLEAM\nUsername\tcarol\n",
		},
		{
			name: "map sorted with nested flow yaml",
			data: map[string]any{"username": "dave", "extra": map[string]any{"uid": 1}},
			want: "extra\t{uid: 1}\nusername\tdave\n",
		},
		{
			name: "scalar",
			data: "/data/ws",
			want: "value\t/data/ws\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			f := NewWithWriters("plain", &out, &bytes.Buffer{})
			require.NoError(t, f.Print(tt.data))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestPlainFormatterPrintList(t *testing.T) {
	var out bytes.Buffer
	f := NewWithWriters("plain", &out, &bytes.Buffer{})

	items := []map[string]string{{"Key": "account", "Value": "NASA"}}
	require.NoError(t, f.PrintList(items, []Column{{Name: "KEY", Key: "Key"}, {Name: "VALUE", Key: "Value"}}))
	assert.Equal(t, "KEY\tVALUE\naccount\tNASA\n", out.String())

	assert.Error(t, f.PrintList("not a slice", nil))
}

func TestRichFormatterPrintList(t *testing.T) {
	var out bytes.Buffer
	f := NewWithWriters("rich", &out, &bytes.Buffer{})

	rows := []accountRow{{Name: "Copernicus", Username: "erin"}}
	require.NoError(t, f.PrintList(rows, []Column{{Name: "ACCOUNT", Key: "Name"}, {Name: "USER", Key: "Username"}}))
	assert.Contains(t, out.String(), "ACCOUNT")
	assert.Contains(t, out.String(), "Copernicus")
	assert.Contains(t, out.String(), "erin")
}

func TestRichFormatterNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var out bytes.Buffer
	f := NewWithWriters("rich", &out, &bytes.Buffer{})

	rows := []accountRow{{Name: "MSWEP", Username: "gina"}}
	require.NoError(t, f.PrintList(rows, []Column{{Name: "ACCOUNT", Key: "Name"}, {Name: "USER", Key: "Username"}}))
	assert.NotContains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "ACCOUNT")
}

func TestUnknownModeFallsBackToPlain(t *testing.T) {
	var out bytes.Buffer
	f := NewWithWriters("sparkly", &out, &bytes.Buffer{})
	_, ok := f.(*plainFormatter)
	assert.True(t, ok)
}
