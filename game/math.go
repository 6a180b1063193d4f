package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Clamp32 clamps the given value to the given range.
func Clamp32(val, min, max float32) float32 {
	if val < min {
		return min
	}
	return math32.Min(val, max)
}

// Lerp32 linearly interpolates from one value towards another by factor t.
func Lerp32(from, to, t float32) float32 {
	return from + (to-from)*t
}

// LerpVec3 linearly interpolates a vector towards another by factor t.
func LerpVec3(from, to mgl32.Vec3, t float32) mgl32.Vec3 {
	return from.Add(to.Sub(from).Mul(t))
}

// Round32 will round a float32 to a given precision.
func Round32(val float32, precision int) float32 {
	pwr := math32.Pow(10, float32(precision))
	return math32.Round(val*pwr) / pwr
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// DirectionVector returns a direction vector from the given yaw and pitch values.
func DirectionVector(yaw, pitch float32) mgl32.Vec3 {
	yawRad, pitchRad := mgl32.DegToRad(yaw), mgl32.DegToRad(pitch)
	m := math32.Cos(pitchRad)

	return mgl32.Vec3{
		-m * math32.Sin(yawRad),
		-math32.Sin(pitchRad),
		m * math32.Cos(yawRad),
	}
}

// YawVectors returns the horizontal forward and right basis vectors for the
// given yaw in degrees.
func YawVectors(yaw float32) (forward, right mgl32.Vec3) {
	yawRad := mgl32.DegToRad(yaw)
	sin, cos := math32.Sin(yawRad), math32.Cos(yawRad)
	return mgl32.Vec3{-sin, 0, cos}, mgl32.Vec3{cos, 0, sin}
}

// WrapYawDelta ...
func WrapYawDelta(delta float32) float32 {
	if delta > 180 {
		delta -= 360
	} else if delta < -180 {
		delta += 360
	}
	return delta
}

// Vec3HzDistSqr returns the squared horizontal distance in a vector.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}
