package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/uispline/internal/engine/picking"
	"github.com/Faultbox/uispline/pkg/math"
)

func TestBoundsOutline(t *testing.T) {
	b := picking.NewAABB(math.Vec3{}, math.Vec3{X: 2, Y: 3, Z: 4})
	pts := BoundsOutline(b, 1)
	if len(pts) != OutlineVertexCount {
		t.Fatalf("len = %d, want %d", len(pts), OutlineVertexCount)
	}
	grown := picking.NewAABB(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 3, Y: 4, Z: 5})
	for i, p := range pts {
		if !grown.Contains(p) {
			t.Errorf("point %d = %v outside padded box", i, p)
		}
	}
	// Each edge changes exactly one coordinate.
	for i := 0; i < len(pts); i += 2 {
		d := pts[i+1].Sub(pts[i])
		changed := 0
		for _, c := range []float32{d.X, d.Y, d.Z} {
			if c != 0 {
				changed++
			}
		}
		if changed != 1 {
			t.Errorf("edge %d from %v to %v is not axis aligned", i/2, pts[i], pts[i+1])
		}
	}
}

func TestRectOutline(t *testing.T) {
	b := picking.NewAABB(math.Vec3{X: 1, Y: 1, Z: 5}, math.Vec3{X: 3, Y: 2, Z: 5})
	pts := RectOutline(b, 0)
	if len(pts) != 8 {
		t.Fatalf("len = %d, want 8", len(pts))
	}
	for i, p := range pts {
		if p.Z != 0 {
			t.Errorf("point %d z = %v, want 0", i, p.Z)
		}
	}
	if pts[0] != (math.Vec3{X: 1, Y: 1}) || pts[3] != (math.Vec3{X: 3, Y: 2}) {
		t.Errorf("corners = %v, %v", pts[0], pts[3])
	}
}

func TestFlatten(t *testing.T) {
	got := Flatten([]math.Vec3{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}})
	want := []float32{1, 2, 3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("Flatten() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Flatten()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGridLines(t *testing.T) {
	tests := []struct {
		name  string
		box   picking.AABB
		step  float32
		lines int
	}{
		{"aligned", picking.NewAABB(math.Vec3{}, math.Vec3{X: 20, Y: 10}), 10, 3 + 2},
		{"unaligned", picking.NewAABB(math.Vec3{X: -5, Y: 1}, math.Vec3{X: 5, Y: 9}), 10, 3 + 2},
		{"zero step", picking.NewAABB(math.Vec3{}, math.Vec3{X: 1, Y: 1}), 0, 0},
		{"too dense", picking.NewAABB(math.Vec3{}, math.Vec3{X: 1e6, Y: 1}), 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := GridLines(tt.box, tt.step)
			if len(pts) != tt.lines*2 {
				t.Errorf("GridLines() returned %d lines, want %d", len(pts)/2, tt.lines)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", PNG, false},
		{"BMP", BMP, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestFromPixelsFlips(t *testing.T) {
	// Two rows: bottom row red, top row blue, as OpenGL reads them.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top pixel = %v, want blue", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom pixel = %v, want red", got)
	}

	if _, err := FromPixels(pixels, 2, 2); err == nil {
		t.Error("FromPixels() accepted short buffer")
	}
}

func TestCapture(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	img.SetRGBA(1, 1, color.RGBA{10, 20, 30, 255})

	for _, format := range []Format{PNG, BMP} {
		t.Run(string(format), func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "shots")
			c := NewCapture(dir, "ribbon", format)
			path, err := c.CaptureFromImage(img)
			if err != nil {
				t.Fatalf("CaptureFromImage() error = %v", err)
			}
			if !strings.HasSuffix(path, "."+string(format)) {
				t.Errorf("path = %q, want .%s suffix", path, format)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			var decoded image.Image
			if format == BMP {
				decoded, err = bmp.Decode(f)
			} else {
				decoded, err = png.Decode(f)
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if decoded.Bounds() != img.Bounds() {
				t.Errorf("bounds = %v, want %v", decoded.Bounds(), img.Bounds())
			}
			r, g, b, _ := decoded.At(1, 1).RGBA()
			if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
				t.Errorf("pixel = %d,%d,%d, want 10,20,30", r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestGenerateFilenameUnique(t *testing.T) {
	c := NewCapture("", "x", "tiff")
	if c.Format() != PNG {
		t.Errorf("Format() = %q, want png", c.Format())
	}
	a, b := c.GenerateFilename(), c.GenerateFilename()
	if a == b {
		t.Errorf("GenerateFilename() repeated %q", a)
	}
}
