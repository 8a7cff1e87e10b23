// Package document opens and saves scenes by file name. The extension
// picks the format: .json snapshots and .pptx decks can be opened, and
// scenes can be written as .json, .png or .pdf.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"SlideBoard/internal/export"
	"SlideBoard/internal/logging"
	"SlideBoard/internal/pptx"
	"SlideBoard/internal/state"
)

var ErrFormat = errors.New("document: unsupported format")

type Format int

const (
	FormatSnapshot Format = iota
	FormatPPTX
	FormatPNG
	FormatPDF
)

func (f Format) String() string {
	switch f {
	case FormatSnapshot:
		return "snapshot"
	case FormatPPTX:
		return "pptx"
	case FormatPNG:
		return "png"
	case FormatPDF:
		return "pdf"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatOf maps a file name to its format.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatSnapshot, nil
	case ".pptx":
		return FormatPPTX, nil
	case ".png":
		return FormatPNG, nil
	case ".pdf":
		return FormatPDF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrFormat, filepath.Base(name))
}

// Open replaces the contents of s with the document at path.
func Open(path string, s *state.Scene) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("document: %w", err)
	}
	return Read(path, data, s)
}

// Read replaces the contents of s with data, decoded according to name.
// On error s is left as it was.
func Read(name string, data []byte, s *state.Scene) error {
	f, err := FormatOf(name)
	if err != nil {
		return err
	}
	switch f {
	case FormatSnapshot:
		return state.Load(bytes.NewReader(data), s)
	case FormatPPTX:
		_, err := ImportPPTX(data, s, pptx.DefaultOptions())
		return err
	}
	return fmt.Errorf("%w: cannot open %s", ErrFormat, f)
}

// ImportPPTX replaces the contents of s with the slides of a deck. The deck
// is imported into a scratch scene first, so a failed import leaves s
// untouched.
func ImportPPTX(data []byte, s *state.Scene, opts pptx.Options) (pptx.Stats, error) {
	scratch := state.New(s.Options())
	scratch.SetFont(s.Font())
	stats, err := pptx.Import(bytes.NewReader(data), int64(len(data)), scratch, opts)
	if err != nil {
		return stats, err
	}

	s.Clear()
	for i := range scratch.Count() {
		if sh, ok := scratch.Lookup(scratch.UIDAt(i)); ok {
			s.Add(sh)
		}
	}
	logging.Logger().Info("deck imported",
		"slides", stats.Slides, "shapes", stats.Shapes, "texts", stats.Texts,
		"images", stats.Images, "skipped", stats.SkippedSlides)
	return stats, nil
}

// Write encodes s according to name. Raster and PDF output use a
// width×height page.
func Write(w io.Writer, name string, s *state.Scene, width, height int) error {
	f, err := FormatOf(name)
	if err != nil {
		return err
	}
	switch f {
	case FormatSnapshot:
		return state.Save(w, s)
	case FormatPNG:
		return export.PNG(w, s, width, height)
	case FormatPDF:
		title := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
		return export.PDF(w, s, export.PDFOptions{Width: float64(width), Height: float64(height), Title: title})
	}
	return fmt.Errorf("%w: cannot save %s", ErrFormat, f)
}

// Save writes s to path. The file is replaced only once encoding has
// succeeded.
func Save(path string, s *state.Scene, width, height int) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("document: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, path, s, width, height); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("document: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("document: %w", err)
	}
	logging.Logger().Info("document saved", "path", path)
	return nil
}
