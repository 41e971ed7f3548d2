package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/image/bmp"
)

// Format is an image file format for captures.
type Format string

const (
	PNG Format = "png"
	BMP Format = "bmp"
)

// ParseFormat parses "png" or "bmp", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case PNG, BMP:
		return f, nil
	}
	return "", fmt.Errorf("unknown image format %q", s)
}

// Capture writes frames to numbered, timestamped files in a directory.
type Capture struct {
	outputDir string
	prefix    string
	format    Format
	seq       atomic.Uint32
}

// NewCapture creates a capture handler. An unknown format falls back to PNG.
func NewCapture(outputDir, prefix string, format Format) *Capture {
	if format != BMP {
		format = PNG
	}
	return &Capture{outputDir: outputDir, prefix: prefix, format: format}
}

// SetOutputDir sets the output directory for captures.
func (c *Capture) SetOutputDir(dir string) {
	c.outputDir = dir
}

// Format returns the capture file format.
func (c *Capture) Format() Format {
	return c.format
}

// FromPixels builds an image from bottom-up RGBA rows as read back from
// OpenGL, flipping it to top-down.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// CaptureFromPixels saves an OpenGL read-back frame and returns its path.
func (c *Capture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return c.CaptureFromImage(img)
}

// CaptureFromImage saves img under a fresh file name and returns its path.
func (c *Capture) CaptureFromImage(img image.Image) (string, error) {
	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	filename := c.GenerateFilename()
	if err := Save(filename, img, c.format); err != nil {
		return "", err
	}
	return filename, nil
}

// GenerateFilename returns the next capture path without writing anything.
func (c *Capture) GenerateFilename() string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	n := c.seq.Add(1)
	filename := fmt.Sprintf("%s_%s_%03d.%s", c.prefix, timestamp, n, c.format)
	if c.outputDir != "" {
		filename = filepath.Join(c.outputDir, filename)
	}
	return filename
}

// Save encodes img to path in the given format.
func Save(path string, img image.Image, format Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	switch format {
	case BMP:
		err = bmp.Encode(file, img)
	default:
		err = png.Encode(file, img)
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	return file.Close()
}
