package editor

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Particle is one slot in an emitter's pool. Dead particles stay in place
// with Active false and are reused by the next spawn.
type Particle struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Color    mgl32.Vec4
	Size     float32
	Life     float32
	MaxLife  float32
	Rotation float32
	Mass     float32
	Active   bool
}

// Age returns elapsed lifetime in seconds.
func (p *Particle) Age() float32 {
	return p.MaxLife - p.Life
}

// EmitterState is the mutable runtime side of one emitter: the particle
// pool, its RNG, the spawn accumulator and the animation clock.
type EmitterState struct {
	Particles    []Particle
	MaxParticles int
	Rng          *Rand

	SpawnAccum    float32
	AnimationTime float32
}

func NewEmitterState(maxParticles int, seed uint64) *EmitterState {
	return &EmitterState{
		MaxParticles: maxParticles,
		Rng:          NewRand(seed),
	}
}

// ActiveCount counts live particles.
func (s *EmitterState) ActiveCount() int {
	n := 0
	for i := range s.Particles {
		if s.Particles[i].Active {
			n++
		}
	}
	return n
}

// acquire returns the first inactive slot, growing the pool while under the
// cap. Nil when the pool is full.
func (s *EmitterState) acquire() *Particle {
	for i := range s.Particles {
		if !s.Particles[i].Active {
			return &s.Particles[i]
		}
	}
	if len(s.Particles) < s.MaxParticles {
		s.Particles = append(s.Particles, Particle{})
		return &s.Particles[len(s.Particles)-1]
	}
	return nil
}

// SyncStates grows or shrinks states so it stays index-aligned with an
// emitter list of length n. Called at the top of every frame before
// stepping.
func SyncStates(states []*EmitterState, n, maxParticles int, seed uint64) []*EmitterState {
	for len(states) < n {
		states = append(states, NewEmitterState(maxParticles, seed+uint64(len(states))*0x9e3779b97f4a7c15))
	}
	if len(states) > n {
		states = states[:n]
	}
	return states
}
