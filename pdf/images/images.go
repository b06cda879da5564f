// Package images provides the JPEG and PNG collaborators used to embed
// images as PDF XObjects.
package images

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
)

// Common errors
var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrDecodeFailed      = errors.New("image decode failed")
	ErrInvalidDimensions = errors.New("invalid image dimensions")
)

// ColorSpace represents a PDF color space.
type ColorSpace string

const (
	ColorSpaceGray ColorSpace = "DeviceGray"
	ColorSpaceRGB  ColorSpace = "DeviceRGB"
	ColorSpaceCMYK ColorSpace = "DeviceCMYK"
)

// Format represents an image file format.
type Format string

const (
	FormatPNG  Format = "PNG"
	FormatJPEG Format = "JPEG"
)

// Image describes an image ready for embedding.
type Image struct {
	Format           Format
	Width            int
	Height           int
	BitsPerComponent int
	ColorSpace       ColorSpace
	// Components per pixel (1 for gray, 3 for RGB, 4 for CMYK)
	Components int
	// Data is the original file for JPEG and decoded, unfiltered samples
	// for PNG.
	Data []byte
	// Alpha holds one 8-bit sample per pixel, or nil when every pixel is
	// opaque.
	Alpha []byte
	// InvertedCMYK is set for Adobe CMYK JPEGs, which store inverted
	// components.
	InvertedCMYK bool
	// DPI resolution
	DPIx, DPIy float64
}

// HasAlpha reports whether the image carries a soft mask.
func (img *Image) HasAlpha() bool {
	return len(img.Alpha) > 0
}

// DetectFormat detects the image format from the file header.
func DetectFormat(data []byte) Format {
	if len(data) >= 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}) {
		return FormatPNG
	}
	if len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return FormatJPEG
	}
	return ""
}

// DecodeJPEG reads the JPEG header. The compressed stream is kept as is
// for DCTDecode passthrough.
func DecodeJPEG(data []byte) (*Image, error) {
	if DetectFormat(data) != FormatJPEG {
		return nil, fmt.Errorf("%w: missing JPEG signature", ErrUnsupportedFormat)
	}
	config, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	if config.Width <= 0 || config.Height <= 0 {
		return nil, ErrInvalidDimensions
	}

	img := &Image{
		Format:           FormatJPEG,
		Width:            config.Width,
		Height:           config.Height,
		BitsPerComponent: 8,
		Data:             data,
		DPIx:             72,
		DPIy:             72,
	}

	switch config.ColorModel {
	case color.GrayModel:
		img.ColorSpace, img.Components = ColorSpaceGray, 1
	case color.CMYKModel:
		img.ColorSpace, img.Components = ColorSpaceCMYK, 4
	default:
		img.ColorSpace, img.Components = ColorSpaceRGB, 3
	}

	adobe := scanJPEGSegments(data, img)
	img.InvertedCMYK = adobe && img.ColorSpace == ColorSpaceCMYK
	return img, nil
}

// scanJPEGSegments walks the header segments, reading the JFIF density into
// img and reporting whether an Adobe APP14 segment is present.
func scanJPEGSegments(data []byte, img *Image) (adobe bool) {
	offset := 2
	for offset+4 <= len(data) {
		if data[offset] != 0xFF {
			break
		}
		marker := data[offset+1]
		if marker == 0xD9 || marker == 0xDA { // EOI, SOS
			break
		}
		if marker >= 0xD0 && marker <= 0xD8 || marker == 0x01 {
			offset += 2
			continue
		}

		length := int(binary.BigEndian.Uint16(data[offset+2 : offset+4]))
		if length < 2 || offset+2+length > len(data) {
			break
		}
		segment := data[offset+4 : offset+2+length]

		switch marker {
		case 0xE0: // APP0
			if bytes.HasPrefix(segment, []byte("JFIF\x00")) && len(segment) >= 12 {
				units := segment[7]
				xDensity := float64(binary.BigEndian.Uint16(segment[8:10]))
				yDensity := float64(binary.BigEndian.Uint16(segment[10:12]))
				switch units {
				case 1: // DPI
					img.DPIx, img.DPIy = xDensity, yDensity
				case 2: // DPCM
					img.DPIx, img.DPIy = xDensity*2.54, yDensity*2.54
				}
			}
		case 0xEE: // APP14
			if bytes.HasPrefix(segment, []byte("Adobe")) {
				adobe = true
			}
		}
		offset += 2 + length
	}
	return adobe
}

// DecodePNG decodes a PNG into 8-bit samples and an optional alpha plane.
func DecodePNG(data []byte) (*Image, error) {
	if DetectFormat(data) != FormatPNG {
		return nil, fmt.Errorf("%w: missing PNG signature", ErrUnsupportedFormat)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	img, err := FromImage(decoded)
	if err != nil {
		return nil, err
	}
	img.Format = FormatPNG
	img.DPIx, img.DPIy = pngDPI(data)
	return img, nil
}

// FromImage converts a decoded image into 8-bit samples. Gray images stay
// single-channel; everything else becomes DeviceRGB.
func FromImage(src image.Image) (*Image, error) {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	gray := false
	switch src.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		gray = true
	}

	img := &Image{
		Width:            width,
		Height:           height,
		BitsPerComponent: 8,
		ColorSpace:       ColorSpaceRGB,
		Components:       3,
		DPIx:             72,
		DPIy:             72,
	}
	if gray {
		img.ColorSpace, img.Components = ColorSpaceGray, 1
	}

	samples := make([]byte, 0, width*height*img.Components)
	alpha := make([]byte, 0, width*height)
	opaque := true

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			if gray {
				samples = append(samples, c.R)
			} else {
				samples = append(samples, c.R, c.G, c.B)
			}
			alpha = append(alpha, c.A)
			if c.A != 0xFF {
				opaque = false
			}
		}
	}

	img.Data = samples
	if !opaque {
		img.Alpha = alpha
	}
	return img, nil
}

// pngDPI reads the pHYs chunk; 72 DPI when absent.
func pngDPI(data []byte) (float64, float64) {
	offset := 8
	for offset+12 <= len(data) {
		chunkLen := int(binary.BigEndian.Uint32(data[offset : offset+4]))
		chunkType := string(data[offset+4 : offset+8])

		if chunkType == "pHYs" && offset+12+chunkLen <= len(data) && chunkLen >= 9 {
			chunk := data[offset+8 : offset+8+chunkLen]
			if chunk[8] == 1 { // meters
				ppuX := binary.BigEndian.Uint32(chunk[0:4])
				ppuY := binary.BigEndian.Uint32(chunk[4:8])
				return float64(ppuX) / 39.3701, float64(ppuY) / 39.3701
			}
		}
		if chunkType == "IEND" || chunkType == "IDAT" {
			break
		}
		offset += 12 + chunkLen
	}
	return 72, 72
}
