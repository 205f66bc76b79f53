// Package progress renders a single-line console progress bar.
package progress

import (
	"fmt"
	"io"
	"strings"
)

// Bar describes how a progress line is drawn.
type Bar struct {
	Width    int    // characters between the pipes
	Fill     string // glyph for the completed part
	Decimals int    // precision of the percentage
}

// Default is the bar used by the CLI.
var Default = Bar{Width: 50, Fill: "█", Decimals: 1}

// Render writes "\r<prefix> |<bar>| <pct>% <suffix>" to w and ends the line
// once i reaches total. A zero total is treated as a tiny positive one so
// the call never divides by zero.
func (b Bar) Render(w io.Writer, i, total int64, prefix, suffix string) error {
	width := b.Width
	if width <= 0 {
		width = Default.Width
	}
	fill := b.Fill
	if fill == "" {
		fill = Default.Fill
	}

	denom := float64(total)
	if total == 0 {
		denom = 0.0001
	}
	ratio := float64(i) / denom

	filled := int(float64(width) * ratio)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat(fill, filled) + strings.Repeat("-", width-filled)
	line := fmt.Sprintf("\r%s |%s| %.*f%% %s", prefix, bar, b.Decimals, 100*ratio, suffix)
	if i == total {
		line += "\n"
	}

	_, err := io.WriteString(w, line)
	return err
}
