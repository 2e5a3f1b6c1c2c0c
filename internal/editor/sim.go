package editor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/varenx/nwn-emitter-editor/internal/emitter"
)

// Step advances one emitter's particles by dt seconds and spawns new ones
// on the fountain schedule. Only the runtime state is mutated.
func Step(e *emitter.Node, s *EmitterState, dt float32) {
	if dt < 0 || math32.IsNaN(dt) || math32.IsInf(dt, 0) {
		dt = 0
	}

	s.AnimationTime += dt

	for i := range s.Particles {
		p := &s.Particles[i]
		if !p.Active {
			continue
		}
		p.Life -= dt
		if p.Life <= 0 {
			p.Active = false
			continue
		}

		p.Position = p.Position.Add(p.Velocity.Mul(dt))
		p.Velocity[2] -= e.Grav * dt
		// drag*dt > 1 inverts the velocity; kept as a known quirk.
		p.Velocity = p.Velocity.Mul(1 - e.Drag*dt)

		frac := p.Life / p.MaxLife
		p.Color = mgl32.Vec4{
			mix(e.ColorEnd[0], e.ColorStart[0], frac),
			mix(e.ColorEnd[1], e.ColorStart[1], frac),
			mix(e.ColorEnd[2], e.ColorStart[2], frac),
			mix(e.AlphaEnd, e.AlphaStart, frac),
		}
		p.Size = mix(e.SizeEnd, e.SizeStart, frac)
		p.Rotation += e.ParticleRot * dt
	}

	if e.Update != emitter.UpdateFountain || e.BirthRate <= 0 {
		return
	}
	interval := 1 / e.BirthRate
	s.SpawnAccum += dt
	for s.SpawnAccum >= interval && len(s.Particles) < s.MaxParticles {
		pos := e.AnimatedPosition(s.AnimationTime)
		spawn(e, s, pos)
		s.SpawnAccum -= interval
	}
}

// spawn places one particle at a random point in the emitter footprint with
// a velocity drawn from the spread cone. Both are rotated by the emitter
// orientation. Returns false when the pool has no free slot.
func spawn(e *emitter.Node, s *EmitterState, emitterPos mgl32.Vec3) bool {
	p := s.acquire()
	if p == nil {
		return false
	}

	rot := e.Orientation().Mat4().Mat3()

	local := mgl32.Vec3{
		s.Rng.RangeF(-e.XSize/2, e.XSize/2),
		s.Rng.RangeF(-e.YSize/2, e.YSize/2),
		0,
	}

	halfSpread := mgl32.DegToRad(s.Rng.RangeF(0, e.Spread/2))
	azimuth := mgl32.DegToRad(s.Rng.RangeF(0, 360))
	speed := e.Velocity * s.Rng.RangeF(0.8, 1.2)
	dir := mgl32.Vec3{
		math32.Sin(halfSpread) * math32.Cos(azimuth),
		math32.Sin(halfSpread) * math32.Sin(azimuth),
		math32.Cos(halfSpread),
	}

	p.Active = true
	p.Life = e.LifeExp
	p.MaxLife = e.LifeExp
	p.Mass = e.Mass
	p.Position = emitterPos.Add(rot.Mul3x1(local))
	p.Velocity = rot.Mul3x1(dir.Mul(speed))
	p.Color = mgl32.Vec4{e.ColorStart[0], e.ColorStart[1], e.ColorStart[2], e.AlphaStart}
	p.Size = e.SizeStart
	p.Rotation = 0
	return true
}

func mix(a, b, t float32) float32 {
	return a + (b-a)*t
}
