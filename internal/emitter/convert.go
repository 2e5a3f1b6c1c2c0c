package emitter

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// The MDL file format is Y-up; the editor works Z-up. Positions convert by
// swapping the Y and Z components. Orientations additionally compose a fixed
// 90-degree rotation about Z, with opposite sign per direction. These
// transforms are asymmetric on purpose: they reproduce the reference
// implementation exactly and are pinned by round-trip tests. Do not
// re-derive them.

// MDLToGamePos converts a file-space (Y-up) position to editor space (Z-up).
func MDLToGamePos(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[2], v[1]}
}

// GameToMDLPos converts an editor-space (Z-up) position to file space (Y-up).
func GameToMDLPos(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[2], v[1]}
}

// MDLToGameOrient converts a file-space orientation quaternion to editor space.
func MDLToGameOrient(q mgl32.Quat) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1}).Mul(q)
}

// GameToMDLOrient converts an editor-space orientation quaternion to file space.
func GameToMDLOrient(q mgl32.Quat) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(-90), mgl32.Vec3{0, 0, 1}).Mul(q)
}

// QuatFromAngles builds a quaternion from per-axis rotation angles in
// degrees, composed as Rz * Ry * Rx.
func QuatFromAngles(deg mgl32.Vec3) mgl32.Quat {
	qx := mgl32.QuatRotate(mgl32.DegToRad(deg[0]), mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(mgl32.DegToRad(deg[1]), mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(mgl32.DegToRad(deg[2]), mgl32.Vec3{0, 0, 1})
	return qz.Mul(qy).Mul(qx)
}

// AnglesFromQuat extracts per-axis rotation angles in degrees, the inverse
// of QuatFromAngles. At the pitch singularity (|Y angle| = 90 degrees) the
// decomposition is not unique; one valid solution is returned.
func AnglesFromQuat(q mgl32.Quat) mgl32.Vec3 {
	m := q.Normalize().Mat4()
	sy := -m.At(2, 0)
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}
	x := math32.Atan2(m.At(2, 1), m.At(2, 2))
	y := math32.Asin(sy)
	z := math32.Atan2(m.At(1, 0), m.At(0, 0))
	return mgl32.Vec3{mgl32.RadToDeg(x), mgl32.RadToDeg(y), mgl32.RadToDeg(z)}
}
