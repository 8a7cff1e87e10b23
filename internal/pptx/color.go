package pptx

import (
	"strconv"

	"SlideBoard/internal/raster"
)

// themeColors maps scheme color names to the stock Office theme.
var themeColors = map[string]raster.Color{
	"tx1":     0xFF000000,
	"dk1":     0xFF000000,
	"tx2":     0xFF444444,
	"dk2":     0xFF444444,
	"bg1":     0xFFFFFFFF,
	"lt1":     0xFFFFFFFF,
	"bg2":     0xFFEEEEEE,
	"lt2":     0xFFEEEEEE,
	"accent1": 0xFF4472C4,
	"accent2": 0xFFED7D31,
	"accent3": 0xFFA5A5A5,
	"accent4": 0xFFFFC000,
	"accent5": 0xFF5B9BD5,
	"accent6": 0xFF70AD47,
}

// resolve returns the color a fill names, or def when it names none the
// importer understands.
func (c *colorChoice) resolve(def raster.Color) raster.Color {
	if c == nil {
		return def
	}
	var (
		v   *colorValue
		col raster.Color
		ok  bool
	)
	switch {
	case c.SRGB != nil:
		v = c.SRGB
		col, ok = hexColor(v.Val)
	case c.Scheme != nil:
		v = c.Scheme
		col, ok = themeColors[v.Val]
	case c.Preset != nil:
		v = c.Preset
		parsed, err := raster.ParseColor(v.Val)
		col, ok = parsed, err == nil
	case c.System != nil:
		v = c.System
		col, ok = hexColor(v.LastClr)
	}
	if !ok {
		return def
	}
	if v.Alpha != nil {
		// Alpha is given in thousandths of a percent.
		a := min(max(v.Alpha.Val, 0), 100000)
		col = col.WithAlpha(uint8((a*255 + 50000) / 100000))
	}
	return col
}

func hexColor(s string) (raster.Color, bool) {
	if len(s) != 6 {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return raster.Color(v) | 0xFF000000, true
}
