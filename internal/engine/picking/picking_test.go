package picking

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/uispline/pkg/math"
)

func nearVec(a, b math.Vec3) bool {
	const eps = 1e-3
	return math32.Abs(a.X-b.X) <= eps && math32.Abs(a.Y-b.Y) <= eps && math32.Abs(a.Z-b.Z) <= eps
}

func TestScreenToRayOrtho(t *testing.T) {
	proj := math.Ortho(0, 800, 600, 0, -1, 1)
	inv := proj.Inverse()

	tests := []struct {
		x, y float32
		want math.Vec3
	}{
		{0, 0, math.Vec3{X: 0, Y: 0}},
		{400, 300, math.Vec3{X: 400, Y: 300}},
		{800, 600, math.Vec3{X: 800, Y: 600}},
	}
	for _, tt := range tests {
		ray := ScreenToRay(tt.x, tt.y, 800, 600, inv)
		got, ok := ray.IntersectPlaneZ(0)
		if !ok {
			t.Fatalf("IntersectPlaneZ() for (%v,%v) missed", tt.x, tt.y)
		}
		if !nearVec(got, tt.want) {
			t.Errorf("ScreenToRay(%v,%v) hit %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestIntersectPlaneZ(t *testing.T) {
	tests := []struct {
		name string
		ray  Ray
		want math.Vec3
		ok   bool
	}{
		{"straight down", Ray{Origin: math.Vec3{X: 1, Y: 2, Z: 5}, Direction: math.Vec3{Z: -1}}, math.Vec3{X: 1, Y: 2}, true},
		{"parallel", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{X: 1}}, math.Vec3{}, false},
		{"behind", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}, math.Vec3{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectPlaneZ(0)
			if ok != tt.ok || (ok && !nearVec(got, tt.want)) {
				t.Errorf("IntersectPlaneZ() = %v, %v, want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{X: -1, Y: -1, Z: -1})

	tests := []struct {
		name  string
		ray   Ray
		wantT float32
		hit   bool
	}{
		{"hit from front", Ray{Origin: math.Vec3{Z: -5}, Direction: math.Vec3{Z: 1}}, 4, true},
		{"inside", Ray{Direction: math.Vec3{X: 1}}, 1, true},
		{"miss", Ray{Origin: math.Vec3{Y: 3, Z: -5}, Direction: math.Vec3{Z: 1}}, 0, false},
		{"pointing away", Ray{Origin: math.Vec3{Z: -5}, Direction: math.Vec3{Z: -1}}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			if hit != tt.hit || (hit && math32.Abs(got-tt.wantT) > 1e-4) {
				t.Errorf("IntersectAABB() = %v, %v, want %v, %v", got, hit, tt.wantT, tt.hit)
			}
		})
	}
}

func TestAABB(t *testing.T) {
	box := CubeAt(math.Vec3{X: 10, Y: 10}, 4)
	if got := box.Size(); got != (math.Vec3{X: 4, Y: 4, Z: 4}) {
		t.Errorf("Size() = %v, want 4x4x4", got)
	}
	box = box.Encapsulate(CubeAt(math.Vec3{X: 20, Y: 10}, 2))
	if got := box.Center(); !nearVec(got, math.Vec3{X: 14.5, Y: 10}) {
		t.Errorf("Center() = %v, want (14.5,10,0)", got)
	}
	if !box.Contains(math.Vec3{X: 21, Y: 10}) {
		t.Error("Contains() edge point = false")
	}
	if box.Contains(math.Vec3{X: 10, Y: 10, Z: 9}) {
		t.Error("Contains() point off-plane = true")
	}
	if !box.ContainsXY(math.Vec3{X: 10, Y: 10, Z: 9}) {
		t.Error("ContainsXY() point off-plane = false")
	}
	if (AABB{Min: math.Vec3{X: math32.NaN()}}).IsFinite() {
		t.Error("IsFinite() with NaN = true")
	}
}
