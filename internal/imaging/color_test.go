package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createBorderedImage creates an NRGBA image of color fill with a one-pixel
// border ring of color border.
func createBorderedImage(width, height int, border, fill color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				img.SetNRGBA(x, y, border)
			} else {
				img.SetNRGBA(x, y, fill)
			}
		}
	}
	return img
}

func TestSampleColor(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 128, 64, 255})

	result, err := SampleColor(img, 50, 50)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}

	// Check hex
	if result.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", result.Hex)
	}

	// Check RGB
	if result.RGB.R != 255 || result.RGB.G != 128 || result.RGB.B != 64 {
		t.Errorf("RGB: got (%d,%d,%d), want (255,128,64)", result.RGB.R, result.RGB.G, result.RGB.B)
	}

	// Check RGBA
	if result.RGBA.R != 255 || result.RGBA.G != 128 || result.RGBA.B != 64 || result.RGBA.A != 255 {
		t.Errorf("RGBA: got (%d,%d,%d,%d), want (255,128,64,255)",
			result.RGBA.R, result.RGBA.G, result.RGBA.B, result.RGBA.A)
	}
}

func TestSampleColor_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		color   color.RGBA
		wantHex string
		wantHue int
	}{
		{"pure red", color.RGBA{255, 0, 0, 255}, "#FF0000", 0},
		{"pure green", color.RGBA{0, 255, 0, 255}, "#00FF00", 120},
		{"pure blue", color.RGBA{0, 0, 255, 255}, "#0000FF", 240},
		{"white", color.RGBA{255, 255, 255, 255}, "#FFFFFF", 0},
		{"black", color.RGBA{0, 0, 0, 255}, "#000000", 0},
		{"gray", color.RGBA{128, 128, 128, 255}, "#808080", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(10, 10, tt.color)
			result, err := SampleColor(img, 5, 5)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}

			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
			if result.HSL.H != tt.wantHue {
				t.Errorf("Hue: got %d, want %d", result.HSL.H, tt.wantHue)
			}
		})
	}
}

func TestSampleColor_TransparentKeepsRGB(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(1, 1, color.NRGBA{250, 240, 230, 0})

	result, err := SampleColor(img, 1, 1)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.Hex != "#FAF0E6" || result.RGBA.A != 0 {
		t.Errorf("got %s alpha %d, want #FAF0E6 alpha 0", result.Hex, result.RGBA.A)
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 50},
		{"negative y", 50, -1},
		{"x too large", 100, 50},
		{"y too large", 50, 100},
		{"both too large", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleColor(img, tt.x, tt.y)
			if err == nil {
				t.Error("SampleColor should fail for out-of-bounds coordinates")
			}
		})
	}
}

func TestSampleColor_EdgeCoordinates(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	// Test edge coordinates (should succeed)
	tests := []struct {
		name string
		x, y int
	}{
		{"top-left", 0, 0},
		{"top-right", 99, 0},
		{"bottom-left", 0, 99},
		{"bottom-right", 99, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleColor(img, tt.x, tt.y)
			if err != nil {
				t.Errorf("SampleColor failed for valid edge coordinate (%d,%d): %v", tt.x, tt.y, err)
			}
		})
	}
}

func TestRgbToHSL(t *testing.T) {
	tests := []struct {
		name string
		c    RGBColor
		want HSLColor
	}{
		{"red", RGBColor{255, 0, 0}, HSLColor{0, 100, 50}},
		{"green", RGBColor{0, 255, 0}, HSLColor{120, 100, 50}},
		{"blue", RGBColor{0, 0, 255}, HSLColor{240, 100, 50}},
		{"white", RGBColor{255, 255, 255}, HSLColor{0, 0, 100}},
		{"black", RGBColor{0, 0, 0}, HSLColor{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rgbToHSL(tt.c); got != tt.want {
				t.Errorf("rgbToHSL(%v) = %+v, want %+v", tt.c, got, tt.want)
			}
		})
	}
}

func TestRGBColor_Distance(t *testing.T) {
	tests := []struct {
		a, b RGBColor
		want int
	}{
		{RGBColor{255, 255, 255}, RGBColor{255, 255, 255}, 0},
		{RGBColor{255, 255, 255}, RGBColor{250, 250, 250}, 15},
		{RGBColor{250, 250, 250}, RGBColor{255, 255, 255}, 15},
		{RGBColor{255, 255, 255}, RGBColor{0, 0, 0}, 765},
		{RGBColor{10, 200, 30}, RGBColor{20, 190, 30}, 20},
	}
	for _, tt := range tests {
		if got := tt.a.Distance(tt.b); got != tt.want {
			t.Errorf("%v.Distance(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    RGBColor
		wantErr bool
	}{
		{"#FF0000", RGBColor{255, 0, 0}, false},
		{"#00ff00", RGBColor{0, 255, 0}, false},
		{"0000FF", RGBColor{0, 0, 255}, false},
		{"#FFF", RGBColor{255, 255, 255}, false},
		{"#000", RGBColor{0, 0, 0}, false},
		{" #F0F0F0 ", RGBColor{240, 240, 240}, false},
		{"", RGBColor{}, true},
		{"#GGGGGG", RGBColor{}, true},
		{"#12", RGBColor{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHexColor(%q) should fail", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	palette := DefaultPalette().With(map[string]RGBColor{"Studio": {R: 240, G: 240, B: 240}})

	tests := []struct {
		input   string
		want    RGBColor
		wantErr bool
	}{
		{"white", RGBColor{255, 255, 255}, false},
		{"BLACK", RGBColor{0, 0, 0}, false},
		{" green ", RGBColor{0, 255, 0}, false},
		{"blue", RGBColor{0, 0, 255}, false},
		{"studio", RGBColor{240, 240, 240}, false},
		{"#102030", RGBColor{16, 32, 48}, false},
		{"magenta", RGBColor{}, true},
		{"", RGBColor{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input, palette)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseColor(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPalette(t *testing.T) {
	p := DefaultPalette()
	names := p.Names()
	want := []string{"black", "blue", "green", "white"}
	if len(names) != len(want) {
		t.Fatalf("Names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	extended := p.With(map[string]RGBColor{"White": {R: 250, G: 250, B: 250}})
	if extended["white"] != (RGBColor{250, 250, 250}) {
		t.Errorf("override not applied: %v", extended["white"])
	}
	if p["white"] != (RGBColor{255, 255, 255}) {
		t.Error("With modified the receiver")
	}
}

func TestPalette_Nearest(t *testing.T) {
	p := DefaultPalette()

	tests := []struct {
		c        RGBColor
		wantName string
		wantDist int
	}{
		{RGBColor{250, 250, 250}, "white", 15},
		{RGBColor{3, 3, 3}, "black", 9},
		{RGBColor{10, 240, 20}, "green", 45},
		{RGBColor{0, 0, 255}, "blue", 0},
	}
	for _, tt := range tests {
		name, d, ok := p.Nearest(tt.c)
		if !ok || name != tt.wantName || d != tt.wantDist {
			t.Errorf("Nearest(%v) = (%q, %d, %v), want (%q, %d, true)", tt.c, name, d, ok, tt.wantName, tt.wantDist)
		}
	}

	if _, _, ok := Palette(nil).Nearest(RGBColor{}); ok {
		t.Error("Nearest on empty palette should report !ok")
	}
}
