package core

import "math"

// AABB is an axis-aligned bounding box given by its min and max corners.
//
// The empty AABB (Min = +inf, Max = -inf on every axis) is the identity
// element under Union: Union(Empty(), x) == x.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns the empty AABB, the identity under Union.
func EmptyAABB() AABB {
	return AABB{
		Min: NewVec3(math.Inf(1), math.Inf(1), math.Inf(1)),
		Max: NewVec3(math.Inf(-1), math.Inf(-1), math.Inf(-1)),
	}
}

// IsEmpty reports whether this is the empty AABB (or otherwise degenerate,
// with min exceeding max on some axis).
func (aabb AABB) IsEmpty() bool {
	return aabb.Min.X > aabb.Max.X || aabb.Min.Y > aabb.Max.Y || aabb.Min.Z > aabb.Max.Z
}

// Union returns the smallest AABB containing both aabb and other.
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: aabb.Min.Min(other.Min),
		Max: aabb.Max.Max(other.Max),
	}
}

// UnionPoint returns the smallest AABB containing both aabb and point.
func (aabb AABB) UnionPoint(point Vec3) AABB {
	return AABB{
		Min: aabb.Min.Min(point),
		Max: aabb.Max.Max(point),
	}
}

// Contains reports whether point lies within the box, inclusive of bounds.
func (aabb AABB) Contains(point Vec3) bool {
	return point.X >= aabb.Min.X && point.X <= aabb.Max.X &&
		point.Y >= aabb.Min.Y && point.Y <= aabb.Max.Y &&
		point.Z >= aabb.Min.Z && point.Z <= aabb.Max.Z
}

// Center returns the midpoint of the box.
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the extent of the box along each axis.
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the total surface area of the box, zero for the empty
// AABB.
func (aabb AABB) SurfaceArea() float64 {
	if aabb.IsEmpty() {
		return 0
	}
	size := aabb.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LargestAxis returns the axis (0=X, 1=Y, 2=Z) of greatest extent.
func (aabb AABB) LargestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// IsValid reports whether min <= max holds on every axis.
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// IsFinite reports whether every component of min and max is finite,
// i.e. neither NaN nor +/-inf. The empty AABB is intentionally not finite.
func (aabb AABB) IsFinite() bool {
	vals := [6]float64{aabb.Min.X, aabb.Min.Y, aabb.Min.Z, aabb.Max.X, aabb.Max.Y, aabb.Max.Z}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
