package bvhgeom

import "gonum.org/v1/gonum/spatial/r3"

// MeshTriangle meshes a single-triangle primitive to itself, so that the
// scene-assembly code can treat triangles and spheres uniformly.
func MeshTriangle(a, b, c r3.Vec) []Triangle {
	return []Triangle{NewTriangle(a, b, c)}
}

// MeshSphere meshes a sphere (center, radius) to a triangulated icosahedron
// refined by subdivisions levels of recursive midpoint subdivision, each
// new vertex re-projected onto the sphere. The reference renderer uses 5
// subdivisions for light-source spheres.
func MeshSphere(center r3.Vec, radius float64, subdivisions int) []Triangle {
	verts, faces := icosahedron()
	for i := range verts {
		verts[i] = r3.Add(center, r3.Scale(radius, r3.Unit(verts[i])))
	}

	type edgeKey struct{ a, b int }
	for s := 0; s < subdivisions; s++ {
		midpoints := map[edgeKey]int{}
		getMid := func(i, j int) int {
			key := edgeKey{i, j}
			if i > j {
				key = edgeKey{j, i}
			}
			if idx, ok := midpoints[key]; ok {
				return idx
			}
			mid := r3.Scale(0.5, r3.Add(verts[i], verts[j]))
			mid = r3.Add(center, r3.Scale(radius, r3.Unit(r3.Sub(mid, center))))
			verts = append(verts, mid)
			idx := len(verts) - 1
			midpoints[key] = idx
			return idx
		}

		newFaces := make([][3]int, 0, len(faces)*4)
		for _, f := range faces {
			a, b, c := f[0], f[1], f[2]
			ab := getMid(a, b)
			bc := getMid(b, c)
			ca := getMid(c, a)
			newFaces = append(newFaces,
				[3]int{a, ab, ca},
				[3]int{b, bc, ab},
				[3]int{c, ca, bc},
				[3]int{ab, bc, ca},
			)
		}
		faces = newFaces
	}

	tris := make([]Triangle, len(faces))
	for i, f := range faces {
		tris[i] = NewTriangle(verts[f[0]], verts[f[1]], verts[f[2]])
	}
	return tris
}

// icosahedron returns the 12 vertices and 20 faces of a unit icosahedron
// centered at the origin, the standard seed for sphere subdivision.
func icosahedron() ([]r3.Vec, [][3]int) {
	t := (1.0 + 2.2360679774997896) / 2.0 // golden ratio

	verts := []r3.Vec{
		{X: -1, Y: t, Z: 0}, {X: 1, Y: t, Z: 0}, {X: -1, Y: -t, Z: 0}, {X: 1, Y: -t, Z: 0},
		{X: 0, Y: -1, Z: t}, {X: 0, Y: 1, Z: t}, {X: 0, Y: -1, Z: -t}, {X: 0, Y: 1, Z: -t},
		{X: t, Y: 0, Z: -1}, {X: t, Y: 0, Z: 1}, {X: -t, Y: 0, Z: -1}, {X: -t, Y: 0, Z: 1},
	}

	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	return verts, faces
}
