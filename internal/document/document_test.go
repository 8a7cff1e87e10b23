package document

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SlideBoard/internal/pptx"
	"SlideBoard/internal/state"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"deck.pptx", FormatPPTX},
		{"Deck.PPTX", FormatPPTX},
		{"scene.json", FormatSnapshot},
		{"/tmp/out.png", FormatPNG},
		{"out.pdf", FormatPDF},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := FormatOf("notes.txt")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestSaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")

	s := state.New(state.DefaultOptions())
	s.AddRectangle(1, 2, 3, 4, 0xFFFF0000)
	s.AddText(5, 5, "hello", 0xFF000000, 12)
	require.NoError(t, Save(path, s, 100, 100))

	loaded := state.New(state.DefaultOptions())
	loaded.AddEllipse(0, 0, 1, 1, 0xFF00FF00)
	require.NoError(t, Open(path, loaded))
	assert.Equal(t, 2, loaded.Count())
	assert.Equal(t, "hello", loaded.Text(loaded.UIDAt(1)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.png")
	s := state.New(state.DefaultOptions())
	s.AddRectangle(0, 0, 10, 10, 0xFFFF0000)
	require.NoError(t, Save(path, s, 40, 30))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
}

func TestWriteRejectsInputOnlyFormats(t *testing.T) {
	s := state.New(state.DefaultOptions())
	err := Write(&bytes.Buffer{}, "deck.pptx", s, 10, 10)
	assert.ErrorIs(t, err, ErrFormat)

	err = Read("scene.png", nil, s)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestFailedOpenKeepsScene(t *testing.T) {
	s := state.New(state.DefaultOptions())
	uid := s.AddRectangle(0, 0, 5, 5, 0xFFFF0000)
	s.Select(uid, false)

	assert.Error(t, Read("deck.pptx", []byte("not a zip"), s))
	assert.Error(t, Read("scene.json", []byte("{"), s))
	assert.Error(t, Open(filepath.Join(t.TempDir(), "missing.json"), s))

	assert.Equal(t, 1, s.Count())
	assert.True(t, s.IsSelected(uid))
}

func TestImportPPTXRejectsNonDeck(t *testing.T) {
	s := state.New(state.DefaultOptions())
	_, err := ImportPPTX([]byte("PK"), s, pptx.DefaultOptions())
	assert.Error(t, err)
	assert.Zero(t, s.Count())
}
