package mdl

import (
	"fmt"
	"io"
	"strings"

	"github.com/varenx/nwn-emitter-editor/internal/emitter"
)

// Write serializes the model as MDL text. Positions and orientations are
// converted from the editor's Z-up space to the file's Y-up convention.
func Write(w io.Writer, m *Model) error {
	var b strings.Builder

	name := m.Name
	if name == "" {
		name = "emitter_model"
	}

	fmt.Fprintf(&b, "#MAXMODEL ASCII\n")
	fmt.Fprintf(&b, "# model: %s\n", name)
	fmt.Fprintf(&b, "newmodel %s\n", name)
	fmt.Fprintf(&b, "setsupermodel %s NULL\n", name)
	fmt.Fprintf(&b, "classification effect\n")
	fmt.Fprintf(&b, "setanimationscale 1\n")
	fmt.Fprintf(&b, "#MAXGEOM ASCII\n")
	fmt.Fprintf(&b, "beginmodelgeom %s\n", name)

	fmt.Fprintf(&b, "node dummy %s\n", name)
	fmt.Fprintf(&b, "  parent NULL\n")
	fmt.Fprintf(&b, "endnode\n")

	for i := range m.Emitters {
		writeEmitter(&b, &m.Emitters[i], name)
	}

	fmt.Fprintf(&b, "endmodelgeom %s\n", name)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeEmitter(b *strings.Builder, e *emitter.Node, modelName string) {
	fmt.Fprintf(b, "node emitter %s\n", e.Name)
	fmt.Fprintf(b, "  parent %s\n", modelName)
	fmt.Fprintf(b, "  p2p %s\n", btoi(e.P2P))
	fmt.Fprintf(b, "  p2p_sel %d\n", e.P2PSel)
	fmt.Fprintf(b, "  affectedByWind %s\n", btoi(e.AffectedByWind))
	fmt.Fprintf(b, "  m_isTinted %s\n", btoi(e.Tinted))
	fmt.Fprintf(b, "  bounce %s\n", btoi(e.Bounce))
	fmt.Fprintf(b, "  random %s\n", btoi(e.Random))
	fmt.Fprintf(b, "  inherit %s\n", btoi(e.Inherit))
	fmt.Fprintf(b, "  inheritvel %s\n", btoi(e.InheritVel))
	fmt.Fprintf(b, "  inherit_local %s\n", btoi(e.InheritLocal))
	fmt.Fprintf(b, "  splat %s\n", btoi(e.Splat))
	fmt.Fprintf(b, "  inherit_part %s\n", btoi(e.InheritPart))
	fmt.Fprintf(b, "  renderorder %d\n", e.RenderOrder)
	fmt.Fprintf(b, "  spawntype %d\n", int(e.SpawnKind))
	fmt.Fprintf(b, "  update %s\n", e.Update)
	fmt.Fprintf(b, "  render %s\n", e.Render)
	fmt.Fprintf(b, "  blend %s\n", e.Blend)

	if e.Texture != "" {
		fmt.Fprintf(b, "  texture %s\n", e.Texture)
	}

	fmt.Fprintf(b, "  xgrid %d\n", e.XGrid)
	fmt.Fprintf(b, "  ygrid %d\n", e.YGrid)
	fmt.Fprintf(b, "  loop %s\n", btoi(e.Loop))
	fmt.Fprintf(b, "  deadspace %s\n", ftoa(e.DeadSpace))
	fmt.Fprintf(b, "  twosidedtex %s\n", btoi(e.TwoSidedTex))
	fmt.Fprintf(b, "  blastRadius %s\n", ftoa(e.BlastRadius))
	fmt.Fprintf(b, "  blastLength %s\n", ftoa(e.BlastLength))

	pos := emitter.GameToMDLPos(e.Position)
	fmt.Fprintf(b, "  position %s %s %s\n", ftoa(pos[0]), ftoa(pos[1]), ftoa(pos[2]))

	q := emitter.GameToMDLOrient(e.Orientation())
	fmt.Fprintf(b, "  orientation %s %s %s %s\n",
		ftoa(q.W), ftoa(q.V[0]), ftoa(q.V[1]), ftoa(q.V[2]))

	if e.XSize > 0 || e.YSize > 0 {
		fmt.Fprintf(b, "  xsize %s\n", ftoa(e.XSize))
		fmt.Fprintf(b, "  ysize %s\n", ftoa(e.YSize))
	}

	fmt.Fprintf(b, "  colorStart %s %s %s\n",
		ftoa(e.ColorStart[0]), ftoa(e.ColorStart[1]), ftoa(e.ColorStart[2]))
	fmt.Fprintf(b, "  colorEnd %s %s %s\n",
		ftoa(e.ColorEnd[0]), ftoa(e.ColorEnd[1]), ftoa(e.ColorEnd[2]))
	fmt.Fprintf(b, "  alphaStart %s\n", ftoa(e.AlphaStart))
	fmt.Fprintf(b, "  alphaEnd %s\n", ftoa(e.AlphaEnd))
	fmt.Fprintf(b, "  sizeStart %s\n", ftoa(e.SizeStart))
	fmt.Fprintf(b, "  sizeEnd %s\n", ftoa(e.SizeEnd))
	fmt.Fprintf(b, "  sizeStart_y %s\n", ftoa(e.SizeStartY))
	fmt.Fprintf(b, "  sizeEnd_y %s\n", ftoa(e.SizeEndY))

	fmt.Fprintf(b, "  birthrate %s\n", ftoa(e.BirthRate))
	fmt.Fprintf(b, "  lifeExp %s\n", ftoa(e.LifeExp))
	fmt.Fprintf(b, "  mass %s\n", ftoa(e.Mass))
	fmt.Fprintf(b, "  spread %s\n", ftoa(e.Spread))
	fmt.Fprintf(b, "  particleRot %s\n", ftoa(e.ParticleRot))
	fmt.Fprintf(b, "  velocity %s\n", ftoa(e.Velocity))

	// Sparse fields: written only when nonzero; absent means zero on load.
	writeSparse(b, "grav", e.Grav)
	writeSparse(b, "drag", e.Drag)
	writeSparse(b, "threshold", e.Threshold)
	writeSparse(b, "fps", e.FPS)
	writeSparse(b, "frameStart", e.FrameStart)
	writeSparse(b, "frameEnd", e.FrameEnd)
	writeSparse(b, "bounce_co", e.BounceCo)
	writeSparse(b, "combinetime", e.CombineTime)
	writeSparse(b, "blurlength", e.BlurLength)
	writeSparse(b, "lightningDelay", e.LightningDelay)
	writeSparse(b, "lightningRadius", e.LightningRadius)
	writeSparse(b, "lightningScale", e.LightningScale)
	writeSparse(b, "lightningSubDiv", e.LightningSubDiv)
	writeSparse(b, "lightningZigZag", e.LightningZigZag)

	if n := len(e.PositionKeys.Keys); n > 0 {
		fmt.Fprintf(b, "  positionkey %d\n", n)
		for _, k := range e.PositionKeys.Keys {
			p := emitter.GameToMDLPos(k.Value)
			fmt.Fprintf(b, "    %s %s %s %s\n", ftoa(k.Time), ftoa(p[0]), ftoa(p[1]), ftoa(p[2]))
		}
	}
	if n := len(e.OrientationKeys.Keys); n > 0 {
		fmt.Fprintf(b, "  orientationkey %d\n", n)
		for _, k := range e.OrientationKeys.Keys {
			fmt.Fprintf(b, "    %s %s %s %s 0\n",
				ftoa(k.Time), ftoa(k.Value[0]), ftoa(k.Value[1]), ftoa(k.Value[2]))
		}
	}

	fmt.Fprintf(b, "endnode\n")
}

func writeSparse(b *strings.Builder, key string, v float32) {
	if v != 0 {
		fmt.Fprintf(b, "  %s %s\n", key, ftoa(v))
	}
}
