// Package geom provides the 3D types and fixed-point conversions used by
// EVTC position, effect and missile events.
//
// Game coordinates are in inches with Z pointing down. The MumbleLink
// coordinate space is in meters with Y pointing up.
package geom

import (
	"encoding/json"
	"math"
)

// InchToMeter converts game units (inches) to meters.
const InchToMeter = 0.0254

// OrientationRatio is the fixed-point scale of packed orientations.
const OrientationRatio = 1000

// Position is a point or vector in game space.
type Position struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// MarshalJSON encodes the position, writing non-finite components as
// null.
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		X Float `json:"x"`
		Y Float `json:"y"`
		Z Float `json:"z"`
	}{Float(p.X), Float(p.Y), Float(p.Z)})
}

// Float is a float32 read from raw record bits. Such values may be
// infinite or NaN, which JSON cannot represent; they encode as null.
type Float float32

// IsFinite reports whether f is neither infinite nor NaN.
func (f Float) IsFinite() bool {
	v := float64(f)
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// MarshalJSON encodes f as a JSON number, or null when f is not finite.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.IsFinite() {
		return []byte("null"), nil
	}
	return json.Marshal(float32(f))
}

// New returns a Position from its components.
func New(x, y, z float32) Position {
	return Position{X: x, Y: y, Z: z}
}

// FromArray returns a Position from an [x, y, z] array.
func FromArray(v [3]float32) Position {
	return Position{X: v[0], Y: v[1], Z: v[2]}
}

// FromMumble converts MumbleLink coordinates (meters, Y up) to game space.
func FromMumble(coords [3]float32) Position {
	x, y, z := coords[0], coords[1], coords[2]
	return Position{
		X: x / InchToMeter,
		Y: z / InchToMeter,
		Z: -y / InchToMeter,
	}
}

// FromScaledInt16 converts packed fixed-point components to a Position.
func FromScaledInt16(x, y, z int16, scale float32) Position {
	return Position{
		X: float32(x) * scale,
		Y: float32(y) * scale,
		Z: float32(z) * scale,
	}
}

// Array returns the components as an [x, y, z] array.
func (p Position) Array() [3]float32 {
	return [3]float32{p.X, p.Y, p.Z}
}

// ToMumble converts game space to MumbleLink coordinates.
func (p Position) ToMumble() [3]float32 {
	return [3]float32{
		p.X * InchToMeter,
		-p.Z * InchToMeter,
		p.Y * InchToMeter,
	}
}

// Len returns the euclidean length of the vector.
func (p Position) Len() float32 {
	x, y, z := float64(p.X), float64(p.Y), float64(p.Z)
	return float32(math.Sqrt(x*x + y*y + z*z))
}

// Add returns the component-wise sum.
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// Sub returns the component-wise difference.
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

// Scale multiplies every component by s.
func (p Position) Scale(s float32) Position {
	return Position{X: p.X * s, Y: p.Y * s, Z: p.Z * s}
}

// MatMul multiplies the row-major matrix m with p as a column vector.
func (p Position) MatMul(m [3][3]float32) Position {
	return Position{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z,
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z,
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z,
	}
}

// RotationMatrix interprets p as euler angles in radians
// (X roll, Y pitch, Z yaw, applied in ZYX order) and returns the rotation matrix.
func (p Position) RotationMatrix() [3][3]float32 {
	sa, ca := math.Sincos(float64(p.X))
	sb, cb := math.Sincos(float64(p.Y))
	sg, cg := math.Sincos(float64(p.Z))

	return [3][3]float32{
		{
			float32(cb * cg),
			float32(sa*sb*cg - ca*sg),
			float32(ca*sb*cg + sa*sg),
		},
		{
			float32(cb * sg),
			float32(sa*sb*sg + ca*cg),
			float32(ca*sb*sg - sa*cg),
		},
		{
			float32(-sb),
			float32(sa * cb),
			float32(ca * cb),
		},
	}
}

// Rotate rotates v by the euler angles in p.
func (p Position) Rotate(v Position) Position {
	return v.MatMul(p.RotationMatrix())
}

// OrientationToInt16 packs an orientation component into fixed point,
// saturating at the int16 bounds.
func OrientationToInt16(f float32) int16 {
	v := math.Round(float64(f) * OrientationRatio)
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt16:
		return math.MaxInt16
	case v <= math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}

// OrientationFromInt16 unpacks a fixed-point orientation component.
func OrientationFromInt16(i int16) float32 {
	return float32(i) / OrientationRatio
}

// OrientationFromFloats packs three orientation components.
func OrientationFromFloats(x, y, z float32) [3]int16 {
	return [3]int16{OrientationToInt16(x), OrientationToInt16(y), OrientationToInt16(z)}
}

// OrientationFromInt16s unpacks three fixed-point orientation components.
func OrientationFromInt16s(v [3]int16) Position {
	return FromScaledInt16(v[0], v[1], v[2], 1.0/OrientationRatio)
}
