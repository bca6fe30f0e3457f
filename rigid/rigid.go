// Package rigid: Transform type, constructors, composition, inversion, and
// point/vector application. See doc.go for the package contract.
package rigid

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// degenerateEps is the squared-length threshold below which a rotation
// column is treated as degenerate during re-orthonormalization.
const degenerateEps = 1e-12

// Transform is a rigid-body mapping between two 3-D frames, stored as a 4×4
// homogeneous matrix whose rotation block is kept orthonormal.
//
// The zero value is NOT a valid transform; use Identity, FromParts or
// FromMatrix.
type Transform struct {
	m mgl64.Mat4
}

// Identity returns the transform that maps every point to itself.
func Identity() Transform {
	return Transform{m: mgl64.Ident4()}
}

// FromParts builds a Transform from a rotation matrix and a translation
// vector. The rotation is re-orthonormalized before storage; this is silent
// and never fails.
func FromParts(rot mgl64.Mat3, trans mgl64.Vec3) Transform {
	// 1. Correct rotation drift
	r := orthonormalize(rot)

	// 2. Pack rotation and translation into homogeneous form
	m := mgl64.Ident4()
	var row, col int
	for row = 0; row < 3; row++ {
		for col = 0; col < 3; col++ {
			m.Set(row, col, r.At(row, col))
		}
		m.Set(row, 3, trans[row])
	}

	return Transform{m: m}
}

// FromTranslation builds a pure translation (identity rotation).
func FromTranslation(trans mgl64.Vec3) Transform {
	return FromParts(mgl64.Ident3(), trans)
}

// FromRotation builds a pure rotation (zero translation).
func FromRotation(rot mgl64.Mat3) Transform {
	return FromParts(rot, mgl64.Vec3{})
}

// FromMatrix builds a Transform from a full 4×4 homogeneous matrix.
// The rotation block is re-orthonormalized and the bottom row is forced to
// (0,0,0,1), so any affine-looking input is coerced to a rigid transform.
func FromMatrix(m mgl64.Mat4) Transform {
	var rot mgl64.Mat3
	var row, col int
	for row = 0; row < 3; row++ {
		for col = 0; col < 3; col++ {
			rot.Set(row, col, m.At(row, col))
		}
	}
	trans := mgl64.Vec3{m.At(0, 3), m.At(1, 3), m.At(2, 3)}

	return FromParts(rot, trans)
}

// Mat4 returns the underlying homogeneous matrix (a copy).
func (t Transform) Mat4() mgl64.Mat4 {
	return t.m
}

// Rotation returns the 3×3 rotation block (a copy).
func (t Transform) Rotation() mgl64.Mat3 {
	var rot mgl64.Mat3
	var row, col int
	for row = 0; row < 3; row++ {
		for col = 0; col < 3; col++ {
			rot.Set(row, col, t.m.At(row, col))
		}
	}

	return rot
}

// Translation returns the translation component.
func (t Transform) Translation() mgl64.Vec3 {
	return mgl64.Vec3{t.m.At(0, 3), t.m.At(1, 3), t.m.At(2, 3)}
}

// Compose returns this ∘ other: the transform that first applies other,
// then this. The convention matches plain matrix multiplication
// (this.Mat4() * other.Mat4()) and is used consistently across the module.
func (t Transform) Compose(other Transform) Transform {
	return Transform{m: t.m.Mul4(other.m)}
}

// Invert returns the exact rigid inverse (Rᵀ, −Rᵀ·t). Because the rotation
// block is orthonormal by construction, no general matrix inversion is
// needed and the result is exact up to float rounding.
func (t Transform) Invert() Transform {
	rt := t.Rotation().Transpose()
	back := rt.Mul3x1(t.Translation()).Mul(-1)

	return FromParts(rt, back)
}

// ApplyPoint maps a point through the full affine transform
// (rotation followed by translation).
func (t Transform) ApplyPoint(p mgl64.Vec3) mgl64.Vec3 {
	h := t.m.Mul4x1(p.Vec4(1))

	return mgl64.Vec3{h.X(), h.Y(), h.Z()}
}

// ApplyVector maps a direction through the rotation only; the translation
// component is ignored. Callers that need unit directions should
// renormalize the result, since composed chains of renormalized rotations
// can introduce scale drift.
func (t Transform) ApplyVector(v mgl64.Vec3) mgl64.Vec3 {
	h := t.m.Mul4x1(v.Vec4(0))

	return mgl64.Vec3{h.X(), h.Y(), h.Z()}
}

// ApplyPoints maps a batch of points, returning a new slice of equal length.
func (t Transform) ApplyPoints(ps []mgl64.Vec3) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(ps))
	for i, p := range ps {
		out[i] = t.ApplyPoint(p)
	}

	return out
}

// ApplyVectors maps a batch of directions, rotation only.
func (t Transform) ApplyVectors(vs []mgl64.Vec3) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(vs))
	for i, v := range vs {
		out[i] = t.ApplyVector(v)
	}

	return out
}

// ApproxEqual reports whether two transforms agree element-wise within eps.
// The tolerance is absolute: a composed chain leaves sub-eps residuals in
// elements that are exactly zero in the other matrix, which a relative
// comparison would reject.
func (t Transform) ApproxEqual(other Transform, eps float64) bool {
	for i := 0; i < 16; i++ {
		if math.Abs(t.m[i]-other.m[i]) > eps {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer for debugging.
func (t Transform) String() string {
	return fmt.Sprintf("rigid.Transform(R=%v, t=%v)", t.Rotation(), t.Translation())
}

// orthonormalize rebuilds rot as a right-handed orthonormal basis via
// Gram–Schmidt over its columns. Degenerate columns fall back to the
// corresponding identity axis so the result is always a proper rotation.
func orthonormalize(rot mgl64.Mat3) mgl64.Mat3 {
	c0 := mgl64.Vec3{rot.At(0, 0), rot.At(1, 0), rot.At(2, 0)}
	c1 := mgl64.Vec3{rot.At(0, 1), rot.At(1, 1), rot.At(2, 1)}

	// First axis: normalize or fall back to +x
	if c0.LenSqr() < degenerateEps {
		c0 = mgl64.Vec3{1, 0, 0}
	}
	u0 := c0.Normalize()

	// Second axis: remove the u0 component, normalize or fall back
	c1 = c1.Sub(u0.Mul(c1.Dot(u0)))
	if c1.LenSqr() < degenerateEps {
		c1 = anyOrthogonal(u0)
	}
	u1 := c1.Normalize()

	// Third axis: cross product keeps the basis right-handed
	u2 := u0.Cross(u1)

	var out mgl64.Mat3
	var row int
	for row = 0; row < 3; row++ {
		out.Set(row, 0, u0[row])
		out.Set(row, 1, u1[row])
		out.Set(row, 2, u2[row])
	}

	return out
}

// anyOrthogonal returns a vector orthogonal to unit vector u.
func anyOrthogonal(u mgl64.Vec3) mgl64.Vec3 {
	pick := mgl64.Vec3{0, 1, 0}
	if u.Dot(pick)*u.Dot(pick) > 0.9 {
		pick = mgl64.Vec3{0, 0, 1}
	}

	return pick.Sub(u.Mul(pick.Dot(u)))
}
