package holofoil

import "github.com/chewxy/math32"

// Quaternion represents a rotation w + a·(i,j,k).
//
// Repeated composition accumulates floating-point drift; callers that
// chain rotations every frame must call Normalize before using the value
// as a rotation. Normalizing a zero-length quaternion is a precondition
// violation, not a checked error.
type Quaternion struct {
	A Vector
	W float32
}

// Identity is the identity rotation.
var Identity = Quaternion{W: 1}

// FromRadians builds the rotation about axis by angle radians.
//
// The half angle is negated (angle' = -angle/2) so that positive angles
// rotate in the direction a viewer dragging the card expects. This sign
// choice is part of the public contract; Euler angles reported by ToEuler
// and consumed by UI sliders are calibrated against it.
func FromRadians(axis Vector, angle float32) Quaternion {
	angle = -angle / 2
	sin := math32.Sin(angle)
	cos := math32.Cos(angle)

	return Quaternion{A: axis.Mul(sin), W: cos}
}

// Mul returns the Hamilton product q*r. Composition is right-to-left:
// q.Mul(r) applies r first, then q.
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return Quaternion{
		A: q.A.Mul(r.W).Add(r.A.Mul(q.W)).Add(q.A.Cross(r.A)),
		W: q.W*r.W - q.A.Dot(r.A),
	}
}

// Normalize returns the quaternion scaled to unit length.
// The input must have non-zero length.
func (q Quaternion) Normalize() Quaternion {
	d := math32.Sqrt(q.A.Dot(q.A) + q.W*q.W)

	return Quaternion{A: q.A.Div(d), W: q.W / d}
}

// ToEuler decomposes the rotation into pitch (X), yaw (Y), and roll (Z)
// angles in radians.
//
// Each angle is folded into [0, 2π) with an asymmetric convention:
// negative angles are negated, non-negative angles map to
// (2π − angle) mod 2π. UI sliders bound to these values rely on this
// exact fold; do not replace it with a standard wrap.
func (q Quaternion) ToEuler() Vector {
	pitch := math32.Asin(clamp(2*(q.W*q.A.X-q.A.Y*q.A.Z), -1, 1))

	yaw := math32.Atan2(
		2*(q.W*q.A.Y+q.A.Z*q.A.X),
		1-2*(q.A.X*q.A.X+q.A.Y*q.A.Y),
	)

	roll := math32.Atan2(
		2*(q.W*q.A.Z+q.A.X*q.A.Y),
		1-2*(q.A.X*q.A.X+q.A.Z*q.A.Z),
	)

	return Vector{
		X: foldAngle(pitch),
		Y: foldAngle(yaw),
		Z: foldAngle(roll),
	}
}

// foldAngle maps an angle in (-2π, 2π) into [0, 2π): negative angles are
// negated, non-negative angles become (2π − angle) mod 2π.
func foldAngle(angle float32) float32 {
	if angle < 0 {
		return -angle
	}
	folded := math32.Mod(2*math32.Pi-angle, 2*math32.Pi)
	if folded < 0 {
		folded += 2 * math32.Pi
	}
	return folded
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
