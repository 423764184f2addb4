package main

import (
	"fmt"

	"github.com/arl/gobj"
)

// loadOBJGeometry reads filename as Wavefront OBJ and flattens it into the
// triangle soup navmesh.Builder.Build expects: a flat world-space vertex
// array and a flat triangle index array, each face triangulated as a fan
// around its first vertex. Grounded on the teacher's
// recast/meshloaderobj.go MeshLoaderObj.Load, adapted to gobj's actual
// Polygon type ([]Vertex, full vertex copies per face) rather than the
// vertex-index form that file assumes.
func loadOBJGeometry(filename string) (verts []float32, tris []int32, err error) {
	obj, err := gobj.Load(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", filename, err)
	}

	type key struct{ x, y, z float32 }
	index := make(map[key]int32)

	vertIndex := func(v gobj.Vertex) int32 {
		k := key{float32(v.X()), float32(v.Y()), float32(v.Z())}
		if i, ok := index[k]; ok {
			return i
		}
		i := int32(len(verts) / 3)
		verts = append(verts, k.x, k.y, k.z)
		index[k] = i
		return i
	}

	for _, p := range obj.Polys() {
		if len(p) < 3 {
			continue
		}
		a := vertIndex(p[0])
		for i := 2; i < len(p); i++ {
			b := vertIndex(p[i-1])
			c := vertIndex(p[i])
			tris = append(tris, a, b, c)
		}
	}

	if len(verts) == 0 || len(tris) == 0 {
		return nil, nil, fmt.Errorf("%s: no triangles found", filename)
	}
	return verts, tris, nil
}
