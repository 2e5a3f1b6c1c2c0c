package mdl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/varenx/nwn-emitter-editor/internal/emitter"
)

// Parse reads an ASCII MDL stream into a Model. Emitters start from a zero
// Node so that fields the writer omits come back as zero. A second node
// block with an already-seen name continues the existing emitter instead of
// adding a duplicate.
func Parse(r io.Reader) (*Model, error) {
	m := &Model{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var cur *emitter.Node
	lineNo := 0

	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "newmodel":
			if len(fields) > 1 {
				m.Name = fields[1]
			}
		case "node":
			if len(fields) < 3 {
				return nil, fmt.Errorf("mdl: line %d: malformed node directive", lineNo)
			}
			if fields[1] != "emitter" {
				cur = nil
				continue
			}
			cur = findOrAdd(m, fields[2])
		case "endnode":
			// Stray endnode outside a block is tolerated.
			cur = nil
		default:
			if cur == nil {
				continue
			}
			if err := parseDirective(sc, cur, fields, &lineNo); err != nil {
				return nil, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mdl: read: %w", err)
	}
	return m, nil
}

func findOrAdd(m *Model, name string) *emitter.Node {
	for i := range m.Emitters {
		if m.Emitters[i].Name == name {
			return &m.Emitters[i]
		}
	}
	m.Emitters = append(m.Emitters, emitter.Node{Name: name})
	return &m.Emitters[len(m.Emitters)-1]
}

func parseDirective(sc *bufio.Scanner, e *emitter.Node, fields []string, lineNo *int) error {
	key, args := fields[0], fields[1:]

	f := func(i int) float32 {
		if i >= len(args) {
			return 0
		}
		v, _ := strconv.ParseFloat(args[i], 32)
		return float32(v)
	}
	n := func(i int) int {
		if i >= len(args) {
			return 0
		}
		v, _ := strconv.Atoi(args[i])
		return v
	}
	flag := func(i int) bool { return n(i) != 0 }

	switch key {
	case "parent":
		if len(args) > 0 {
			e.Parent = args[0]
		}
	case "p2p":
		e.P2P = flag(0)
	case "p2p_sel":
		e.P2PSel = n(0)
	case "affectedByWind":
		e.AffectedByWind = flag(0)
	case "m_isTinted":
		e.Tinted = flag(0)
	case "bounce":
		e.Bounce = flag(0)
	case "random":
		e.Random = flag(0)
	case "inherit":
		e.Inherit = flag(0)
	case "inheritvel":
		e.InheritVel = flag(0)
	case "inherit_local":
		e.InheritLocal = flag(0)
	case "splat":
		e.Splat = flag(0)
	case "inherit_part":
		e.InheritPart = flag(0)
	case "renderorder":
		e.RenderOrder = n(0)
	case "spawntype":
		e.SpawnKind = emitter.SpawnType(n(0))
	case "update":
		if len(args) > 0 {
			if t, ok := emitter.ParseUpdateType(args[0]); ok {
				e.Update = t
			}
		}
	case "render":
		if len(args) > 0 {
			if t, ok := emitter.ParseRenderType(args[0]); ok {
				e.Render = t
			}
		}
	case "blend":
		if len(args) > 0 {
			if t, ok := emitter.ParseBlendType(args[0]); ok {
				e.Blend = t
			}
		}
	case "texture":
		if len(args) > 0 {
			e.Texture = args[0]
		}
	case "xgrid":
		e.XGrid = n(0)
	case "ygrid":
		e.YGrid = n(0)
	case "loop":
		e.Loop = flag(0)
	case "deadspace":
		e.DeadSpace = f(0)
	case "twosidedtex":
		e.TwoSidedTex = flag(0)
	case "blastRadius":
		e.BlastRadius = f(0)
	case "blastLength":
		e.BlastLength = f(0)
	case "position":
		e.Position = emitter.MDLToGamePos(mgl32.Vec3{f(0), f(1), f(2)})
	case "orientation":
		q := mgl32.Quat{W: f(0), V: mgl32.Vec3{f(1), f(2), f(3)}}
		e.Rotation = emitter.AnglesFromQuat(emitter.MDLToGameOrient(q))
	case "xsize":
		e.XSize = f(0)
	case "ysize":
		e.YSize = f(0)
	case "colorStart":
		e.ColorStart = mgl32.Vec3{f(0), f(1), f(2)}
	case "colorEnd":
		e.ColorEnd = mgl32.Vec3{f(0), f(1), f(2)}
	case "alphaStart":
		e.AlphaStart = f(0)
	case "alphaEnd":
		e.AlphaEnd = f(0)
	case "sizeStart":
		e.SizeStart = f(0)
	case "sizeEnd":
		e.SizeEnd = f(0)
	case "sizeStart_y":
		e.SizeStartY = f(0)
	case "sizeEnd_y":
		e.SizeEndY = f(0)
	case "birthrate":
		e.BirthRate = f(0)
	case "lifeExp":
		e.LifeExp = f(0)
	case "mass":
		e.Mass = f(0)
	case "spread":
		e.Spread = f(0)
	case "particleRot":
		e.ParticleRot = f(0)
	case "velocity":
		e.Velocity = f(0)
	case "grav":
		e.Grav = f(0)
	case "drag":
		e.Drag = f(0)
	case "threshold":
		e.Threshold = f(0)
	case "fps":
		e.FPS = f(0)
	case "frameStart":
		e.FrameStart = f(0)
	case "frameEnd":
		e.FrameEnd = f(0)
	case "bounce_co":
		e.BounceCo = f(0)
	case "combinetime":
		e.CombineTime = f(0)
	case "blurlength":
		e.BlurLength = f(0)
	case "lightningDelay":
		e.LightningDelay = f(0)
	case "lightningRadius":
		e.LightningRadius = f(0)
	case "lightningScale":
		e.LightningScale = f(0)
	case "lightningSubDiv":
		e.LightningSubDiv = f(0)
	case "lightningZigZag":
		e.LightningZigZag = f(0)
	case "positionkey":
		keys, err := parseKeyBlock(sc, n(0), 4, lineNo)
		if err != nil {
			return err
		}
		e.PositionKeys.Keys = e.PositionKeys.Keys[:0]
		for _, k := range keys {
			e.PositionKeys.Keys = append(e.PositionKeys.Keys, emitter.Keyframe{
				Time:  k[0],
				Value: emitter.MDLToGamePos(mgl32.Vec3{k[1], k[2], k[3]}),
			})
		}
	case "orientationkey":
		// Keys carry angles plus a trailing component that is not used.
		keys, err := parseKeyBlock(sc, n(0), 5, lineNo)
		if err != nil {
			return err
		}
		e.OrientationKeys.Keys = e.OrientationKeys.Keys[:0]
		for _, k := range keys {
			e.OrientationKeys.Keys = append(e.OrientationKeys.Keys, emitter.Keyframe{
				Time:  k[0],
				Value: mgl32.Vec3{k[1], k[2], k[3]},
			})
		}
	default:
		// Unknown directive, skip.
	}
	return nil
}

func parseKeyBlock(sc *bufio.Scanner, count, width int, lineNo *int) ([][5]float32, error) {
	keys := make([][5]float32, 0, count)
	for i := 0; i < count; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("mdl: line %d: key block truncated after %d of %d keys", *lineNo, i, count)
		}
		*lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) < width {
			return nil, fmt.Errorf("mdl: line %d: key needs %d values, got %d", *lineNo, width, len(fields))
		}
		var k [5]float32
		for j := 0; j < width; j++ {
			v, err := strconv.ParseFloat(fields[j], 32)
			if err != nil {
				return nil, fmt.Errorf("mdl: line %d: bad key value %q", *lineNo, fields[j])
			}
			k[j] = float32(v)
		}
		keys = append(keys, k)
	}
	return keys, nil
}
