package emitter

import "github.com/go-gl/mathgl/mgl32"

// Keyframe is one (time, value) sample of a vector-valued track.
type Keyframe struct {
	Time  float32
	Value mgl32.Vec3
}

// Track is an ordered keyframe sequence. Callers must append keys in
// ascending time order; evaluation assumes it.
type Track struct {
	Keys []Keyframe
}

// ValueAt linearly interpolates the track at time t. Before the first key
// it returns the first value, after the last key the last value. An empty
// track evaluates to zero.
func (tr *Track) ValueAt(t float32) mgl32.Vec3 {
	keys := tr.Keys
	if len(keys) == 0 {
		return mgl32.Vec3{}
	}
	if len(keys) == 1 || t <= keys[0].Time {
		return keys[0].Value
	}
	for i := 0; i < len(keys)-1; i++ {
		a, b := keys[i], keys[i+1]
		if t >= a.Time && t <= b.Time {
			if b.Time == a.Time {
				return b.Value
			}
			f := (t - a.Time) / (b.Time - a.Time)
			return lerpVec3(a.Value, b.Value, f)
		}
	}
	return keys[len(keys)-1].Value
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}
