package optical

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"
)

// orthonormalBasis returns two unit vectors orthogonal to n and to each
// other, completing a right-handed basis with n, using the Duff et al.
// branchless construction (stable for any unit n, including near the
// poles).
func orthonormalBasis(n r3.Vec) (tangent, bitangent r3.Vec) {
	sign := math.Copysign(1.0, n.Z)
	a := -1.0 / (sign + n.Z)
	b := n.X * n.Y * a
	tangent = r3.Vec{X: 1 + sign*n.X*n.X*a, Y: sign * b, Z: -sign * n.X}
	bitangent = r3.Vec{X: b, Y: sign + n.Y*n.Y*a, Z: -n.Y}
	return tangent, bitangent
}

// CosineWeightedDirection draws one direction from the cosine-weighted
// hemisphere distribution around normal n, using the injected rng.
func CosineWeightedDirection(n r3.Vec, rng *rand.Rand) r3.Vec {
	u01 := distuv.Uniform{Min: 0, Max: 1, Src: rng}
	r1, r2 := u01.Rand(), u01.Rand()

	radius := math.Sqrt(r1)
	theta := 2 * math.Pi * r2
	x := radius * math.Cos(theta)
	y := radius * math.Sin(theta)
	z := math.Sqrt(math.Max(0, 1-r1))

	t, b := orthonormalBasis(n)
	return r3.Add(r3.Add(r3.Scale(x, t), r3.Scale(y, b)), r3.Scale(z, n))
}
