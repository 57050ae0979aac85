package ppu

import "testing"

func TestFramebufferFormatBytesPerPixel(t *testing.T) {
	cases := map[FramebufferFormat]int{
		FormatGREY8:    1,
		FormatRGB888:   3,
		FormatRGBA8888: 4,
	}
	for format, want := range cases {
		if got := format.BytesPerPixel(); got != want {
			t.Errorf("BytesPerPixel(%v) = %d, want %d", format, got, want)
		}
	}
}

func TestConvertGREY8PassesIndicesThrough(t *testing.T) {
	fb := &Framebuffer{}
	fb[0] = 0x20
	fb[1] = 0x0F

	dst := make([]byte, len(fb))
	FormatGREY8.Convert(fb, dst)

	if dst[0] != 0x20 || dst[1] != 0x0F {
		t.Errorf("got %v, want raw indices preserved", dst[:2])
	}
}

func TestConvertRGB888LooksUpHardwarePalette(t *testing.T) {
	fb := &Framebuffer{}
	fb[0] = 0x01 // HardwarePalette[1] = {0, 30, 116}

	dst := make([]byte, len(fb)*3)
	FormatRGB888.Convert(fb, dst)

	want := HardwarePalette[1]
	if dst[0] != want.R || dst[1] != want.G || dst[2] != want.B {
		t.Errorf("got RGB (%d,%d,%d), want (%d,%d,%d)", dst[0], dst[1], dst[2], want.R, want.G, want.B)
	}
}

func TestConvertRGBA8888SetsOpaqueAlpha(t *testing.T) {
	fb := &Framebuffer{}
	fb[0] = 0x10

	dst := make([]byte, len(fb)*4)
	FormatRGBA8888.Convert(fb, dst)

	if dst[3] != 0xFF {
		t.Errorf("alpha = %#02x, want 0xFF", dst[3])
	}
	want := HardwarePalette[0x10]
	if dst[0] != want.R || dst[1] != want.G || dst[2] != want.B {
		t.Errorf("got RGB (%d,%d,%d), want (%d,%d,%d)", dst[0], dst[1], dst[2], want.R, want.G, want.B)
	}
}

func TestConvertMasksPaletteIndexToSixBits(t *testing.T) {
	fb := &Framebuffer{}
	fb[0] = 0xFF // top 2 bits should be masked off: 0xFF & 0x3F = 0x3F

	dst := make([]byte, len(fb)*3)
	FormatRGB888.Convert(fb, dst)

	want := HardwarePalette[0x3F]
	if dst[0] != want.R || dst[1] != want.G || dst[2] != want.B {
		t.Errorf("out-of-range index not masked: got (%d,%d,%d), want (%d,%d,%d)", dst[0], dst[1], dst[2], want.R, want.G, want.B)
	}
}
