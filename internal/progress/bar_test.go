package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarRender(t *testing.T) {
	tests := []struct {
		name     string
		bar      Bar
		i, total int64
		want     string
	}{
		{
			name:  "start",
			bar:   Bar{Width: 4, Fill: "#", Decimals: 1},
			i:     0,
			total: 4,
			want:  "\rGet |----| 0.0% tif",
		},
		{
			name:  "half",
			bar:   Bar{Width: 4, Fill: "#", Decimals: 0},
			i:     2,
			total: 4,
			want:  "\rGet |##--| 50% tif",
		},
		{
			name:  "complete ends line",
			bar:   Bar{Width: 4, Fill: "#", Decimals: 1},
			i:     4,
			total: 4,
			want:  "\rGet |####| 100.0% tif\n",
		},
		{
			name:  "zero total completes",
			bar:   Bar{Width: 4, Fill: "#", Decimals: 1},
			i:     0,
			total: 0,
			want:  "\rGet |----| 0.0% tif\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.bar.Render(&buf, tt.i, tt.total, "Get", "tif"))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestBarRenderOverflowClamps(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Bar{Width: 3, Fill: "#"}.Render(&buf, 9, 3, "", ""))
	assert.Contains(t, buf.String(), "|###|")
}

func TestBarDefaults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Bar{}.Render(&buf, 1, 2, "p", "s"))
	assert.Equal(t, 25, strings.Count(buf.String(), Default.Fill))
	assert.Equal(t, 25, strings.Count(buf.String(), "-"))
}
