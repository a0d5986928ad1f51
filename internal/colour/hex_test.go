package colour

import (
	"math/rand/v2"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		pixel Pixel
	}{
		{name: "black", pixel: Pixel{0, 0, 0}},
		{name: "white", pixel: Pixel{255, 255, 255}},
		{name: "red", pixel: Pixel{255, 0, 0}},
		{name: "teal", pixel: Pixel{0, 128, 128}},
		{name: "odd", pixel: Pixel{0x1a, 0x2b, 0x3c}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(ToLab(tt.pixel))
			if !got.Valid() {
				t.Fatalf("Encode() = %q, not a valid hex colour", got)
			}
			back := Pixel{R: hexByte(t, got[1:3]), G: hexByte(t, got[3:5]), B: hexByte(t, got[5:7])}
			if channelDiff(back.R, tt.pixel.R) > 1 || channelDiff(back.G, tt.pixel.G) > 1 || channelDiff(back.B, tt.pixel.B) > 1 {
				t.Errorf("Encode() = %s, want close to %s", got, tt.pixel.Hex())
			}
		})
	}
}

func TestEncodeFormatForAnyFiniteColour(t *testing.T) {
	rng := rand.New(rand.NewPCG(99, 99))
	for range 5000 {
		c := Lab{
			L: rng.Float64()*400 - 150,
			A: rng.Float64()*1000 - 500,
			B: rng.Float64()*1000 - 500,
		}
		if got := Encode(c); !got.Valid() {
			t.Fatalf("Encode(%+v) = %q, want #rrggbb", c, got)
		}
	}
}

func TestPixelHex(t *testing.T) {
	if got := (Pixel{R: 0x1a, G: 0x2b, B: 0x3c}).Hex(); got != "#1a2b3c" {
		t.Errorf("Hex() = %s, want #1a2b3c", got)
	}
}

func TestHexColourValid(t *testing.T) {
	tests := map[HexColour]bool{
		"#a1b2c3":  true,
		"#A1B2C3":  false,
		"a1b2c3":   false,
		"#a1b2c":   false,
		"#a1b2c3d": false,
		"#g1b2c3":  false,
	}
	for hex, want := range tests {
		if got := hex.Valid(); got != want {
			t.Errorf("HexColour(%q).Valid() = %v, want %v", hex, got, want)
		}
	}
}

func TestHexColourRGBA(t *testing.T) {
	if got := HexColour("#1a2b3c").RGBA(0xAA); got != "rgba(1a2b3cAA)" {
		t.Errorf("RGBA() = %s, want rgba(1a2b3cAA)", got)
	}
	if got := HexColour("#ffffff").StripHash(); got != "ffffff" {
		t.Errorf("StripHash() = %s, want ffffff", got)
	}
}

func hexByte(t *testing.T, s HexColour) uint8 {
	t.Helper()
	var v uint8
	for _, c := range []byte(s) {
		v *= 16
		switch {
		case c >= '0' && c <= '9':
			v += c - '0'
		case c >= 'a' && c <= 'f':
			v += c - 'a' + 10
		default:
			t.Fatalf("invalid hex digit %q", c)
		}
	}
	return v
}
