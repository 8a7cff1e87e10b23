package raster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOver(t *testing.T) {
	tests := []struct {
		name     string
		dst, src Color
		want     Color
	}{
		{"transparent keeps destination", 0xFF112233, 0x00FFFFFF, 0xFF112233},
		{"opaque replaces", 0xFF112233, 0xFFAABBCC, 0xFFAABBCC},
		{"half white over black", 0xFF000000, 0x80FFFFFF, 0xFF808080},
		{"quarter red over blue", 0xFF0000FF, 0x40FF0000, 0xFF4000BF},
		{"result is opaque", 0x00000000, 0x80FF0000, 0xFF800000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Over(tt.dst, tt.src), "got %s", Over(tt.dst, tt.src))
		})
	}
}

func TestBufferWritesAreClipped(t *testing.T) {
	b := NewBuffer(4, 3)
	b.Fill(Black)

	b.Set(-1, 0, White)
	b.Set(4, 0, White)
	b.Blend(0, 3, White)
	b.FillRect(-10, -10, 100, 1, White)

	for x := 0; x < 4; x++ {
		assert.Equal(t, White, b.At(x, 0))
		assert.Equal(t, Black, b.At(x, 1))
	}
	assert.Equal(t, Transparent, b.At(10, 10))
}

func TestWrapShortSlice(t *testing.T) {
	pix := make([]uint32, 10)
	b := Wrap(pix, 4, 4)
	require.Equal(t, 2, b.Height)

	b.FillRect(0, 0, 4, 4, White)
	for _, p := range pix[:8] {
		assert.Equal(t, uint32(White), p)
	}
	assert.Zero(t, pix[8])
}

func TestStrokeRect(t *testing.T) {
	b := NewBuffer(5, 5)
	b.StrokeRect(1, 1, 3, 3, White)

	assert.Equal(t, White, b.At(1, 1))
	assert.Equal(t, White, b.At(3, 2))
	assert.Equal(t, Transparent, b.At(2, 2), "interior untouched")
	assert.Equal(t, Transparent, b.At(0, 0))
}

func TestStrokeRectHugeBox(t *testing.T) {
	b := NewBuffer(10, 10)
	b.StrokeRect(-1e9, 2, 1e9, 1e9, White)

	for x := 0; x < 10; x++ {
		assert.Equal(t, White, b.At(x, 2))
		assert.Equal(t, Transparent, b.At(x, 3))
	}
	assert.Equal(t, Transparent, b.At(0, 5), "sides are off the buffer")
}

func TestNewBufferBadSize(t *testing.T) {
	for _, size := range [][2]int{{-1, 5}, {5, 0}, {math.MaxInt, 2}, {math.MaxInt / 2, 3}} {
		b := NewBuffer(size[0], size[1])
		assert.Zero(t, b.Width, "%v", size)
		assert.Zero(t, b.Height, "%v", size)
		assert.Empty(t, b.Pix)
		assert.NotPanics(t, func() { b.Fill(White) })
	}
}

func TestPackARGB(t *testing.T) {
	pix := []uint32{0xFF102030, 0x00000000, 0x80FFFFFF}
	b := PackARGB(pix)
	assert.Equal(t, []byte{0xFF, 0x10, 0x20, 0x30}, b[:4])
	assert.Equal(t, pix, UnpackARGB(b))
	assert.Empty(t, UnpackARGB([]byte{1, 2, 3}))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#007AFF", want: 0xFF007AFF},
		{in: "#80FF0000", want: 0x80FF0000},
		{in: "0xFF252526", want: 0xFF252526},
		{in: "#fff", want: 0xFFFFFFFF},
		{in: "white", want: White},
		{in: "Orange", want: 0xFFFFA500},
		{in: "", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "notacolor", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestColorTextRoundTrip(t *testing.T) {
	var c Color
	require.NoError(t, c.UnmarshalText([]byte("#FF9500")))
	text, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "#FFFF9500", string(text))
}

func TestBufferImage(t *testing.T) {
	b := NewBuffer(2, 1)
	b.Set(0, 0, 0xFF102030)
	img := b.Image()
	c := img.NRGBAAt(0, 0)
	assert.Equal(t, [4]uint8{0x10, 0x20, 0x30, 0xFF}, [4]uint8{c.R, c.G, c.B, c.A})
}
