// Package navmesh converts triangle-mesh input geometry into a navigation
// mesh: a connected set of convex polygons, plus a high-detail triangulated
// surface, describing the walkable part of that geometry.
//
// A build runs five stages in strict order, each consuming the previous
// stage's output:
//
//	SolidHeightfield -> OpenHeightfield -> ContourSet -> PolyMeshField -> DetailMesh
//
// Use NewBuilder to configure a run and Builder.Build to execute it. A
// Builder owns all of one run's working state, so independent builds may run
// concurrently from separate goroutines as long as each owns its own
// Builder.
package navmesh
