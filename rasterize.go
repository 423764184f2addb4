package navmesh

import (
	assert "github.com/arl/assertgo"
	"github.com/arl/gogeo/f32/d3"
	"github.com/arl/math32"
)

// MarkWalkableTriangles sets FlagWalkable in flags[i] for every triangle
// whose unit normal has a y component strictly greater than the cosine of
// cfg's max traversable slope, as described in section 4.1 step 2. The
// normal is (v1-v0)x(v2-v0), so a triangle whose winding makes it point
// down is never flagged.
func MarkWalkableTriangles(cfg *Config, verts []float32, tris []int32, flags []uint8) {
	thr := cfg.walkableThreshold()
	ntris := int32(len(tris)) / 3
	for i := int32(0); i < ntris; i++ {
		a := verts[tris[i*3+0]*3:]
		b := verts[tris[i*3+1]*3:]
		c := verts[tris[i*3+2]*3:]
		norm := triNormal(a, b, c)
		if norm[1] > thr {
			flags[i] |= FlagWalkable
		}
	}
}

func triNormal(v0, v1, v2 []float32) [3]float32 {
	e0, e1, n := d3.NewVec3(), d3.NewVec3(), d3.NewVec3()
	d3.Vec3Sub(e0, d3.Vec3(v1[:3]), d3.Vec3(v0[:3]))
	d3.Vec3Sub(e1, d3.Vec3(v2[:3]), d3.Vec3(v0[:3]))
	d3.Vec3Cross(n, e0, e1)
	d := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	if d > 0 {
		n[0] /= d
		n[1] /= d
		n[2] /= d
	}
	return [3]float32{n[0], n[1], n[2]}
}

// RasterizeTriangles voxelizes an indexed triangle mesh into hf. Each
// triangle's rasterized spans carry flags[i]; spans that overlap are merged
// per SolidHeightfield.AddSpan's ADD semantics.
func RasterizeTriangles(ctx *BuildContext, hf *SolidHeightfield, verts []float32, tris []int32, flags []uint8) error {
	assert.True(ctx != nil, "ctx should not be nil")
	assert.True(hf != nil, "hf should not be nil")

	ctx.StartTimer(TimerRasterizeTriangles)
	defer ctx.StopTimer(TimerRasterizeTriangles)

	ntris := int32(len(tris)) / 3
	ics := 1.0 / hf.CellSize
	ich := 1.0 / hf.CellHeight
	for i := int32(0); i < ntris; i++ {
		v0 := verts[tris[i*3+0]*3:]
		v1 := verts[tris[i*3+1]*3:]
		v2 := verts[tris[i*3+2]*3:]
		if !rasterizeTri(hf, v0, v1, v2, flags[i], ics, ich) {
			return fail(ctx, "RasterizeTriangles", ErrOutOfMemory, "could not rasterize triangle %d", i)
		}
	}
	return nil
}

func rasterizeTri(hf *SolidHeightfield, v0, v1, v2 []float32, flags uint8, ics, ich float32) bool {
	w := hf.Width
	h := hf.Height
	bmin := hf.BMin
	bmax := hf.BMax
	by := bmax[1] - bmin[1]

	var tmin, tmax [3]float32
	copy(tmin[:], v0[:3])
	copy(tmax[:], v0[:3])
	for _, v := range [2][]float32{v1, v2} {
		for k := 0; k < 3; k++ {
			if v[k] < tmin[k] {
				tmin[k] = v[k]
			}
			if v[k] > tmax[k] {
				tmax[k] = v[k]
			}
		}
	}

	if tmin[0] > bmax[0] || tmax[0] < bmin[0] ||
		tmin[1] > bmax[1] || tmax[1] < bmin[1] ||
		tmin[2] > bmax[2] || tmax[2] < bmin[2] {
		return true
	}

	y0 := iClamp(int32((tmin[2]-bmin[2])*ics), 0, h-1)
	y1 := iClamp(int32((tmax[2]-bmin[2])*ics), 0, h-1)

	var buf [7 * 3 * 4]float32
	in := buf[:21]
	inrow := buf[21:42]
	p1 := buf[42:63]
	p2 := buf[63:84]

	copy(in[0:3], v0[:3])
	copy(in[3:6], v1[:3])
	copy(in[6:9], v2[:3])
	nvIn := int32(3)

	cs := hf.CellSize

	for y := y0; y <= y1; y++ {
		var nvrow int32
		cz := bmin[2] + float32(y)*cs
		dividePoly(in, nvIn, inrow, &nvrow, p1, &nvIn, cz+cs, 2)
		in, p1 = p1, in
		if nvrow < 3 {
			continue
		}

		minX, maxX := inrow[0], inrow[0]
		for i := int32(1); i < nvrow; i++ {
			if inrow[i*3] < minX {
				minX = inrow[i*3]
			}
			if inrow[i*3] > maxX {
				maxX = inrow[i*3]
			}
		}
		x0 := iClamp(int32((minX-bmin[0])*ics), 0, w-1)
		x1 := iClamp(int32((maxX-bmin[0])*ics), 0, w-1)

		var nv, nv2 int32
		nv2 = nvrow

		for x := x0; x <= x1; x++ {
			cx := bmin[0] + float32(x)*cs
			dividePoly(inrow, nv2, p1, &nv, p2, &nv2, cx+cs, 0)
			inrow, p2 = p2, inrow
			if nv < 3 {
				continue
			}

			smin, smax := p1[1], p1[1]
			for i := int32(1); i < nv; i++ {
				smin = math32.Min(smin, p1[i*3+1])
				smax = math32.Max(smax, p1[i*3+1])
			}
			smin -= bmin[1]
			smax -= bmin[1]
			if smax < 0 || smin > by {
				continue
			}
			if smin < 0 {
				smin = 0
			}
			if smax > by {
				smax = by
			}

			ismin := uint16(iClamp(int32(math32.Floor(smin*ich)), 0, 0xffff))
			ismax := uint16(iClamp(int32(math32.Ceil(smax*ich)), int32(ismin)+1, 0xffff))

			if !hf.AddSpan(x, y, ismin, ismax, flags) {
				return false
			}
		}
	}
	return true
}

// dividePoly splits a convex polygon (nin vertices) into the parts on
// either side of the plane `axis == x`, using the same "left on the line
// goes to both" Sutherland-Hodgman variant the voxelizer needs for its two
// clipping axes (z-slab then x-column), matching section 4.1 step 3.
func dividePoly(in []float32, nin int32, out1 []float32, nout1 *int32, out2 []float32, nout2 *int32, x float32, axis int32) {
	var d [12]float32
	for i := int32(0); i < nin; i++ {
		d[i] = x - in[i*3+axis]
	}

	var m, n int32
	j := nin - 1
	for i := int32(0); i < nin; i++ {
		ina := d[j] >= 0
		inb := d[i] >= 0
		if ina != inb {
			s := d[j] / (d[j] - d[i])
			out1[m*3+0] = in[j*3+0] + (in[i*3+0]-in[j*3+0])*s
			out1[m*3+1] = in[j*3+1] + (in[i*3+1]-in[j*3+1])*s
			out1[m*3+2] = in[j*3+2] + (in[i*3+2]-in[j*3+2])*s
			copy(out2[n*3:n*3+3], out1[m*3:m*3+3])
			m++
			n++
			if d[i] > 0 {
				copy(out1[m*3:m*3+3], in[i*3:i*3+3])
				m++
			} else if d[i] < 0 {
				copy(out2[n*3:n*3+3], in[i*3:i*3+3])
				n++
			}
		} else {
			if d[i] >= 0 {
				copy(out1[m*3:m*3+3], in[i*3:i*3+3])
				m++
				if d[i] != 0 {
					j = i
					continue
				}
			}
			copy(out2[n*3:n*3+3], in[i*3:i*3+3])
			n++
		}
		j = i
	}
	*nout1 = m
	*nout2 = n
}
