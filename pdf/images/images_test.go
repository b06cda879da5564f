package images

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func createTestRGBA(width, height int, alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x % 256),
				G: uint8(y % 256),
				B: 128,
				A: alpha,
			})
		}
	}
	return img
}

func createTestPNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}
	return buf.Bytes()
}

func createTestJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		t.Fatalf("jpeg.Encode failed: %v", err)
	}
	return buf.Bytes()
}

func createTestGrayImage(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x + y) % 256)})
		}
	}
	return img
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected Format
	}{
		{"PNG", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, FormatPNG},
		{"JPEG", []byte{0xFF, 0xD8, 0xFF, 0xE0}, FormatJPEG},
		{"GIF", []byte("GIF89a\x00\x00"), ""},
		{"Too short", []byte{0xFF, 0xD8}, ""},
		{"Empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := DetectFormat(tt.data); result != tt.expected {
				t.Errorf("DetectFormat() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestDecodeJPEG(t *testing.T) {
	data := createTestJPEG(t, createTestRGBA(40, 30, 255))
	img, err := DecodeJPEG(data)
	if err != nil {
		t.Fatalf("DecodeJPEG failed: %v", err)
	}
	if img.Width != 40 || img.Height != 30 {
		t.Errorf("Expected 40x30, got %dx%d", img.Width, img.Height)
	}
	if img.ColorSpace != ColorSpaceRGB || img.Components != 3 || img.BitsPerComponent != 8 {
		t.Errorf("Unexpected color info %s/%d/%d", img.ColorSpace, img.Components, img.BitsPerComponent)
	}
	if !bytes.Equal(img.Data, data) {
		t.Error("JPEG data should be passed through unchanged")
	}
	if img.InvertedCMYK || img.HasAlpha() {
		t.Error("RGB JPEG should not be inverted or masked")
	}

	gray, err := DecodeJPEG(createTestJPEG(t, createTestGrayImage(8, 8)))
	if err != nil {
		t.Fatalf("DecodeJPEG gray failed: %v", err)
	}
	if gray.ColorSpace != ColorSpaceGray || gray.Components != 1 {
		t.Errorf("Expected DeviceGray, got %s", gray.ColorSpace)
	}
}

func TestDecodeJPEGInvalid(t *testing.T) {
	if _, err := DecodeJPEG([]byte("not a jpeg")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := DecodeJPEG([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}); !errors.Is(err, ErrDecodeFailed) {
		t.Errorf("Expected ErrDecodeFailed, got %v", err)
	}
}

func TestScanJPEGSegments(t *testing.T) {
	data := []byte{0xFF, 0xD8}
	// APP0 JFIF, units=1 (DPI), 300x150
	app0 := []byte("JFIF\x00\x01\x02\x01\x01\x2C\x00\x96\x00\x00")
	data = append(data, 0xFF, 0xE0, 0x00, byte(len(app0)+2))
	data = append(data, app0...)
	// APP14 Adobe
	app14 := []byte("Adobe\x00\x64\x00\x00\x00\x00\x02")
	data = append(data, 0xFF, 0xEE, 0x00, byte(len(app14)+2))
	data = append(data, app14...)
	data = append(data, 0xFF, 0xD9)

	img := &Image{DPIx: 72, DPIy: 72}
	if !scanJPEGSegments(data, img) {
		t.Error("Expected Adobe segment")
	}
	if img.DPIx != 300 || img.DPIy != 150 {
		t.Errorf("Expected 300x150 DPI, got %vx%v", img.DPIx, img.DPIy)
	}

	plain := &Image{DPIx: 72, DPIy: 72}
	if scanJPEGSegments([]byte{0xFF, 0xD8, 0xFF, 0xD9}, plain) {
		t.Error("Unexpected Adobe segment")
	}
	if plain.DPIx != 72 {
		t.Errorf("Expected default DPI, got %v", plain.DPIx)
	}
}

func TestDecodePNG(t *testing.T) {
	img, err := DecodePNG(createTestPNG(t, createTestRGBA(4, 3, 255)))
	if err != nil {
		t.Fatalf("DecodePNG failed: %v", err)
	}
	if img.Format != FormatPNG || img.Width != 4 || img.Height != 3 {
		t.Errorf("Unexpected image %s %dx%d", img.Format, img.Width, img.Height)
	}
	if img.ColorSpace != ColorSpaceRGB || len(img.Data) != 4*3*3 {
		t.Errorf("Expected %d RGB samples, got %d", 4*3*3, len(img.Data))
	}
	if !bytes.Equal(img.Data[3:6], []byte{1, 0, 128}) {
		t.Errorf("Unexpected pixel samples %v", img.Data[3:6])
	}
	if img.HasAlpha() {
		t.Error("Opaque PNG should have no alpha plane")
	}
	if img.DPIx != 72 {
		t.Errorf("Expected default DPI, got %v", img.DPIx)
	}
}

func TestDecodePNGAlpha(t *testing.T) {
	img, err := DecodePNG(createTestPNG(t, createTestRGBA(5, 5, 100)))
	if err != nil {
		t.Fatalf("DecodePNG failed: %v", err)
	}
	if !img.HasAlpha() || len(img.Alpha) != 25 {
		t.Fatalf("Expected 25 alpha samples, got %d", len(img.Alpha))
	}
	if img.Alpha[0] != 100 {
		t.Errorf("Expected alpha 100, got %d", img.Alpha[0])
	}
	// Samples are not premultiplied.
	if img.Data[2] != 128 {
		t.Errorf("Expected blue 128, got %d", img.Data[2])
	}
}

func TestDecodePNGGray(t *testing.T) {
	img, err := DecodePNG(createTestPNG(t, createTestGrayImage(10, 10)))
	if err != nil {
		t.Fatalf("DecodePNG failed: %v", err)
	}
	if img.ColorSpace != ColorSpaceGray || img.Components != 1 || len(img.Data) != 100 {
		t.Errorf("Unexpected gray image %s/%d/%d", img.ColorSpace, img.Components, len(img.Data))
	}
	if img.Data[11] != 2 {
		t.Errorf("Expected sample 2 at (1,1), got %d", img.Data[11])
	}
}

func TestDecodePNGInvalid(t *testing.T) {
	if _, err := DecodePNG([]byte("nope")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
	truncated := createTestPNG(t, createTestGrayImage(10, 10))[:20]
	if _, err := DecodePNG(truncated); !errors.Is(err, ErrDecodeFailed) {
		t.Errorf("Expected ErrDecodeFailed, got %v", err)
	}
}

func TestFromImageInvalidDimensions(t *testing.T) {
	if _, err := FromImage(image.NewRGBA(image.Rect(0, 0, 0, 5))); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions, got %v", err)
	}
}

func TestPNGDPI(t *testing.T) {
	// Signature, then a pHYs chunk of 2835 pixels per meter (72 DPI rounded)
	data := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	data = append(data, 0, 0, 0, 9)
	data = append(data, "pHYs"...)
	data = append(data, 0, 0, 0x0B, 0x13, 0, 0, 0x0B, 0x13, 1)
	data = append(data, 0, 0, 0, 0) // CRC, unchecked

	x, y := pngDPI(data)
	if x < 71.9 || x > 72.1 || y < 71.9 || y > 72.1 {
		t.Errorf("Expected ~72 DPI, got %v x %v", x, y)
	}
}
