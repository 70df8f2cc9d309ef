package core

// Ray is a ray with an origin and direction. InvDirection and Sign are
// precomputed at construction so that Hit can test against an AABB with a
// branchless slab test instead of dividing per axis per box.
type Ray struct {
	Origin       Vec3
	Direction    Vec3
	InvDirection Vec3
	Sign         [3]int // 1 if Direction[axis] < 0, else 0
}

// NewRay creates a new ray, precomputing its reciprocal direction and axis
// sign bits. A zero direction component yields +/-inf in InvDirection,
// which Hit's slab test handles correctly without a special case.
func NewRay(origin, direction Vec3) Ray {
	inv := NewVec3(1.0/direction.X, 1.0/direction.Y, 1.0/direction.Z)
	var sign [3]int
	if direction.X < 0 {
		sign[0] = 1
	}
	if direction.Y < 0 {
		sign[1] = 1
	}
	if direction.Z < 0 {
		sign[2] = 1
	}
	return Ray{Origin: origin, Direction: direction, InvDirection: inv, Sign: sign}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Hit reports whether the ray intersects aabb within parameter range
// [tMin, tMax], using the branchless slab test indexed by the ray's
// precomputed sign bits. The empty AABB never hits.
func (r Ray) Hit(aabb AABB, tMin, tMax float64) bool {
	bounds := [2]Vec3{aabb.Min, aabb.Max}

	for axis := 0; axis < 3; axis++ {
		near := (bounds[r.Sign[axis]].Component(axis) - r.Origin.Component(axis)) * r.InvDirection.Component(axis)
		far := (bounds[1-r.Sign[axis]].Component(axis) - r.Origin.Component(axis)) * r.InvDirection.Component(axis)

		// Comparisons rather than math.Max/Min: an origin lying exactly on a
		// slab plane with a zero direction component gives 0*inf = NaN, which
		// must leave the interval unchanged instead of poisoning it.
		if near > tMin {
			tMin = near
		}
		if far < tMax {
			tMax = far
		}
		if tMin > tMax {
			return false
		}
	}

	return true
}
