package emitter

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTrackValueAt(t *testing.T) {
	tr := Track{Keys: []Keyframe{
		{Time: 1, Value: mgl32.Vec3{0, 0, 0}},
		{Time: 2, Value: mgl32.Vec3{10, -4, 2}},
		{Time: 4, Value: mgl32.Vec3{10, 0, 2}},
	}}

	cases := []struct {
		name string
		t    float32
		want mgl32.Vec3
	}{
		{"before first clamps", 0, mgl32.Vec3{0, 0, 0}},
		{"at first", 1, mgl32.Vec3{0, 0, 0}},
		{"midpoint", 1.5, mgl32.Vec3{5, -2, 1}},
		{"at key", 2, mgl32.Vec3{10, -4, 2}},
		{"second segment", 3, mgl32.Vec3{10, -2, 2}},
		{"after last clamps", 9, mgl32.Vec3{10, 0, 2}},
	}
	for _, c := range cases {
		got := tr.ValueAt(c.t)
		if !got.ApproxEqualThreshold(c.want, 1e-6) {
			t.Errorf("%s: ValueAt(%v) = %v, want %v", c.name, c.t, got, c.want)
		}
	}
}

func TestTrackEmptyAndSingle(t *testing.T) {
	var empty Track
	if got := empty.ValueAt(3); got != (mgl32.Vec3{}) {
		t.Errorf("empty track = %v, want zero", got)
	}

	one := Track{Keys: []Keyframe{{Time: 2, Value: mgl32.Vec3{1, 2, 3}}}}
	for _, tt := range []float32{0, 2, 5} {
		if got := one.ValueAt(tt); got != (mgl32.Vec3{1, 2, 3}) {
			t.Errorf("single-key track at %v = %v", tt, got)
		}
	}
}

func TestAnimatedPositionFallback(t *testing.T) {
	n := Default()
	n.Position = mgl32.Vec3{1, 2, 3}
	if got := n.AnimatedPosition(0.5); got != n.Position {
		t.Errorf("no keys: AnimatedPosition = %v, want static %v", got, n.Position)
	}

	n.PositionKeys.Keys = []Keyframe{
		{Time: 0, Value: mgl32.Vec3{0, 0, 0}},
		{Time: 1, Value: mgl32.Vec3{0, 0, 4}},
	}
	got := n.AnimatedPosition(0.5)
	if !got.ApproxEqualThreshold(mgl32.Vec3{0, 0, 2}, 1e-6) {
		t.Errorf("keyed AnimatedPosition = %v, want (0,0,2)", got)
	}
}

func TestUniqueNameSuffixes(t *testing.T) {
	cases := []struct {
		base  string
		taken []string
		want  string
	}{
		{"emitter", nil, "emitter_2"},
		{"emitter", []string{"emitter", "emitter_2"}, "emitter_3"},
		{"fire_3", []string{"fire_3"}, "fire_4"},
		{"fire_3", []string{"fire_3", "fire_4", "fire_5"}, "fire_6"},
		{"trail_", nil, "trail__2"},
	}
	for _, c := range cases {
		if got := UniqueName(c.base, c.taken); got != c.want {
			t.Errorf("UniqueName(%q, %v) = %q, want %q", c.base, c.taken, got, c.want)
		}
	}
}
