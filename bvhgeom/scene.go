package bvhgeom

// Scene holds the parallel arrays assembled before the BVH is built: the
// triangle geometry plus per-triangle front/back material indices. Vertex
// normals are not required by the radiation core (surfaces carry a single
// outward normal) so they are omitted here, unlike the reference renderer's
// general-purpose scene.
type Scene struct {
	Triangles     []Triangle
	FrontMaterial []int
	BackMaterial  []int
	BVH           *BVH
}

// NewScene assembles a scene from parallel triangle/material slices. len
// must agree across all three.
func NewScene(tris []Triangle, front, back []int) *Scene {
	return &Scene{Triangles: tris, FrontMaterial: front, BackMaterial: back}
}

// Build constructs and attaches the scene's BVH, reordering its parallel
// material arrays to match the permutation the builder applied to the
// triangle list.
func (s *Scene) Build() {
	bvh, perm := Build(s.Triangles)
	s.BVH = bvh
	s.Triangles = bvh.Triangles

	if len(s.FrontMaterial) > 0 {
		front := make([]int, len(perm))
		back := make([]int, len(perm))
		for i, orig := range perm {
			front[i] = s.FrontMaterial[orig]
			back[i] = s.BackMaterial[orig]
		}
		s.FrontMaterial = front
		s.BackMaterial = back
	}
}

// AppendTriangles appends meshed triangles to the scene with the given
// front/back material index repeated for each one, for use when meshing a
// sphere or single-triangle primitive at assembly time.
func (s *Scene) AppendTriangles(tris []Triangle, frontMat, backMat int) {
	for range tris {
		s.FrontMaterial = append(s.FrontMaterial, frontMat)
		s.BackMaterial = append(s.BackMaterial, backMat)
	}
	s.Triangles = append(s.Triangles, tris...)
}

// Intersect is a convenience forwarding to the built BVH.
func (s *Scene) Intersect(r Ray) (Hit, bool) {
	return s.BVH.Intersect(r)
}

// Unobstructed is a convenience forwarding to the built BVH.
func (s *Scene) Unobstructed(r Ray, targetDist2 float64) bool {
	return s.BVH.UnobstructedDistance(r, targetDist2)
}
