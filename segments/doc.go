// Package segments builds AM (Analytical Method) trigger-primitive
// segments: line-like objects reconstructing a particle path through a DT
// station, parametrized by a 1-D offset and an angle (phi view) or slope
// (theta view) measured in the station's trigger-primitive frame.
//
// Key features:
//   - Build(src, info): record-driven construction; each record names its
//     station slot (wh, sc, st) and either psi/x (phi view, psi in
//     degrees) or k/z (theta view, slope and offset)
//   - The trigger-primitive frames are registered into the station graph
//     lazily on first use; stations are cached per slot within one Build
//   - Segment centers and directions are produced by transforming the
//     frame-local anchor and direction out to the station and CMS frames,
//     renormalizing the direction after every vector transform
//   - Unrecognized record fields are copied verbatim onto the segment and
//     readable through Attribute
//
// Theta-view construction requires superlayer 2; stations without it fail
// with ErrThetaUnavailable — a loud error, not a silent skip.
//
// Errors:
//
//	ErrMissingView      - a record carries neither psi/x nor k/z.
//	ErrThetaUnavailable - theta segment requested for a station without superlayer 2.
//
// Records also surface records.ErrFieldMissing / records.ErrFieldType and
// any geometry construction error for the named station slot.
package segments
