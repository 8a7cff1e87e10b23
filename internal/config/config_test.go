package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"

	"SlideBoard/internal/raster"
	"SlideBoard/internal/state"
)

func TestDefaultMatchesScene(t *testing.T) {
	cfg := Default()
	opts := cfg.SceneOptions(nil)
	assert.Equal(t, state.DefaultOptions(), opts)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
[canvas]
width = 800
background = "white"

[selection]
highlight = "#FF8800"
group = "0x80FF0000"

[hit]
text = 10
`))
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Canvas.Width)
	assert.Equal(t, 720, cfg.Canvas.Height, "unset keys keep defaults")
	assert.Equal(t, raster.White, cfg.Canvas.Background)
	assert.Equal(t, raster.Color(0xFFFF8800), cfg.Selection.Highlight)
	assert.Equal(t, raster.Color(0x80FF0000), cfg.Selection.Group)
	assert.Equal(t, 10.0, cfg.Hit.Text)
	assert.Equal(t, 5.0, cfg.Hit.Rectangle)

	opts := cfg.SceneOptions(nil)
	assert.Equal(t, 10.0, opts.Padding.Text)
	assert.Equal(t, raster.White, opts.Background)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":      "[canvas\nwidth = 1",
		"unknown key": "[canvas]\ndepth = 3",
		"bad color":   "[canvas]\nbackground = \"not-a-color\"",
		"see-through": "[canvas]\nbackground = \"#80FFFFFF\"",
		"bad size":    "[canvas]\nwidth = 0",
		"huge canvas": "[canvas]\nheight = 100000",
		"font size":   "[text]\ndefault_size = -1",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(dir, "board.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\naddr = \"127.0.0.1:9000\"\nmdns = false\n"), 0o600))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.False(t, cfg.Server.MDNS)

	require.NoError(t, os.WriteFile(path, []byte("[server\n"), 0o600))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestFont(t *testing.T) {
	f, err := Default().Font()
	require.NoError(t, err)
	assert.NotNil(t, f)

	dir := t.TempDir()
	path := filepath.Join(dir, "mono.ttf")
	require.NoError(t, os.WriteFile(path, gomono.TTF, 0o600))

	cfg := Default()
	cfg.Text.Font = path
	f, err = cfg.Font()
	require.NoError(t, err)
	assert.Contains(t, f.Name(), "Mono")

	cfg.Text.Font = filepath.Join(dir, "nope.ttf")
	_, err = cfg.Font()
	assert.Error(t, err)
}
