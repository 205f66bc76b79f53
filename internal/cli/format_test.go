package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := map[string]struct {
		size int64
		want string
	}{
		"empty archive":    {size: 0, want: "0 B"},
		"under a kibibyte": {size: 1023, want: "1023 B"},
		"one kibibyte":     {size: 1 << 10, want: "1.0 KB"},
		"small raster":     {size: 3*(1<<20) + 1<<19, want: "3.5 MB"},
		"daily mosaic":     {size: 2 << 30, want: "2.0 GB"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatBytes(tt.size))
		})
	}
}

func TestFormatBool(t *testing.T) {
	assert.Equal(t, "Yes", formatBool(true))
	assert.Equal(t, "No", formatBool(false))
}

func TestMaskSecret(t *testing.T) {
	assert.Empty(t, maskSecret(""))
	assert.Equal(t, "****", maskSecret("pw"))
	assert.Equal(t, "****", maskSecret("four"))
	assert.Equal(t, "****2024", maskSecret("Earthdata-2024"))
}

func TestMaskPasswords(t *testing.T) {
	tests := []struct {
		name     string
		password any
		want     any
	}{
		{name: "string", password: "hunter2", want: "****ter2"},
		{name: "numeric", password: 123456789, want: "****6789"},
		{name: "short numeric", password: 42, want: "****"},
		{name: "boolean", password: true, want: "****"},
		{name: "null", password: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := map[string]any{
				"accounts": map[string]any{
					"NASA": map[string]any{"username": "alice", "password": tt.password},
					"list": []any{map[string]any{"password": tt.password}},
				},
			}

			maskPasswords(doc)

			accounts := doc["accounts"].(map[string]any)
			nasa := accounts["NASA"].(map[string]any)
			assert.Equal(t, "alice", nasa["username"])
			assert.Equal(t, tt.want, nasa["password"])
			assert.Equal(t, tt.want, accounts["list"].([]any)[0].(map[string]any)["password"])
		})
	}
}
