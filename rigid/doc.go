// Package rigid implements 4×4 homogeneous rigid-body transforms: a 3×3
// rotation packed together with a 3-component translation, composable and
// exactly invertible.
//
// Key features:
//   - FromParts / FromMatrix constructors with silent rotation re-orthonormalization
//   - Compose(other): matrix product this ∘ other, one convention everywhere
//   - Invert(): exact rigid inverse (Rᵀ, −Rᵀ·t), no general 4×4 inversion
//   - ApplyPoint (full affine) vs ApplyVector (rotation only) semantics
//   - Batch forms over []mgl64.Vec3; the homogeneous coordinate never leaks out
//
// All values are float64; geometry is in centimeters and radians.
//
// Rotations that drift from orthonormality (accumulated float error, sloppy
// input) are corrected by Gram–Schmidt before storage. Correction is silent
// and never fails; a degenerate rotation column falls back to the matching
// identity axis.
//
// Complexity: every operation is O(1) on fixed-size matrices.
package rigid
