// Package export writes the extruded L-profile as a triangle mesh.
// The mesh reuses the display polygon unchanged, so an exported
// bullnose is faceted exactly like the on-screen one.
package export

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/ashlar/pkg/profile"
	"github.com/chazu/ashlar/pkg/section"
)

// Mesh triangulates the extruded profile into a closed, outward-wound
// triangle soup: front cap, back cap, and two triangles per lateral
// quad. The caller is responsible for validating p first.
//
// The caps split along the slab/lip seam at y = T, which decomposes
// the L-profile into two convex pieces (the treated corner only ever
// rounds the slab piece), so a simple fan per piece suffices. The
// lateral loop carries the (W, T) seam vertex and the slab cap the
// (W-Lw, T) one, so every edge is shared by exactly two triangles in
// opposite directions and the mesh is manifold.
func Mesh(p profile.Params, arcSegments int) []*sdf.Triangle3 {
	outline := section.Build(p, arcSegments)
	n := len(outline)
	bottom := p.T + p.Lh
	seam := section.Point{X: p.W, Y: p.T}
	innerCorner := section.Point{X: p.W - p.Lw, Y: p.T}

	// The shared traversal order puts the four lip/underside vertices
	// at the tail; everything before them is the slab's top boundary.
	slab := append(append([]section.Point{}, outline[:n-4]...),
		seam, innerCorner, section.Point{X: 0, Y: p.T},
	)
	lip := []section.Point{
		innerCorner,
		seam,
		{X: p.W, Y: bottom},
		{X: p.W - p.Lw, Y: bottom},
	}

	var tris []*sdf.Triangle3
	for _, piece := range [][]section.Point{slab, lip} {
		tris = append(tris, fan(piece, 0, true)...)    // front cap, -z out
		tris = append(tris, fan(piece, p.L, false)...) // back cap, +z out
	}

	// Lateral faces follow the outline with the seam vertex spliced
	// into the outer side, matching the cap subdivision.
	loop := append(append([]section.Point{}, outline[:n-4]...), seam)
	loop = append(loop, outline[n-4:]...)

	// (frontᵢ, frontⱼ, backⱼ) + (frontᵢ, backⱼ, backᵢ) winds outward
	// for a clockwise outline in y-down coordinates.
	for i := range loop {
		j := (i + 1) % len(loop)
		fi := vec(loop[i], 0)
		fj := vec(loop[j], 0)
		bi := vec(loop[i], p.L)
		bj := vec(loop[j], p.L)
		tris = append(tris,
			&sdf.Triangle3{fi, fj, bj},
			&sdf.Triangle3{fi, bj, bi},
		)
	}

	return tris
}

// SaveSTL writes the mesh for p to an STL file at path.
func SaveSTL(p profile.Params, arcSegments int, path string) error {
	if errs := profile.Validate(p); len(errs) > 0 {
		return fmt.Errorf("export: invalid profile: %s", errs[0])
	}
	if err := render.SaveSTL(path, Mesh(p, arcSegments)); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// fan triangulates a convex polygon at depth z, fanning from the first
// vertex. flip reverses the winding for the front cap.
func fan(poly []section.Point, z float64, flip bool) []*sdf.Triangle3 {
	var tris []*sdf.Triangle3
	for i := 1; i < len(poly)-1; i++ {
		a, b, c := vec(poly[0], z), vec(poly[i], z), vec(poly[i+1], z)
		if flip {
			b, c = c, b
		}
		tris = append(tris, &sdf.Triangle3{a, b, c})
	}
	return tris
}

func vec(pt section.Point, z float64) v3.Vec {
	return v3.Vec{X: pt.X, Y: pt.Y, Z: z}
}
