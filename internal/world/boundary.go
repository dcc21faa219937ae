package world

import (
	"mini-vox/internal/profiling"
	"mini-vox/internal/voxel"
)

// faceAxis returns the axis (0=x, 1=y, 2=z) a face points along and its sign.
func faceAxis(f voxel.Face) (axis, sign int) {
	dx, dy, dz := f.Normal()
	switch {
	case dx != 0:
		return 0, dx
	case dy != 0:
		return 1, dy
	default:
		return 2, dz
	}
}

// forEachFaceCell visits the margin cells of layer k (0 nearest the chunk)
// behind face f, paired with the neighbour's logical cell at the same world
// position. Only the face area is visited; edges and corners of the margin
// belong to diagonal chunks.
func forEachFaceCell(d voxel.Dims, f voxel.Face, k int, fn func(ours, theirs int)) {
	size := [3]int{d.X, d.Y, d.Z}
	axis, sign := faceAxis(f)
	a1, a2 := (axis+1)%3, (axis+2)%3

	var o, t [3]int
	if sign > 0 {
		o[axis], t[axis] = size[axis]+k, k
	} else {
		o[axis], t[axis] = -1-k, size[axis]-1-k
	}
	for i := 0; i < size[a1]; i++ {
		o[a1], t[a1] = i, i
		for j := 0; j < size[a2]; j++ {
			o[a2], t[a2] = j, j
			fn(d.Index(o[0], o[1], o[2]), d.Index(t[0], t[1], t[2]))
		}
	}
}

// ExchangeBoundaries copies the layers of each present neighbour that touch
// this chunk into the margin, voxels and light alike.
func (c *Chunk) ExchangeBoundaries(n Neighbors) {
	defer profiling.Track("world.ExchangeBoundaries")()
	d := c.dims
	for i, nb := range n {
		if nb == nil || nb.grid == nil {
			continue
		}
		for k := 0; k < d.Half(); k++ {
			forEachFaceCell(d, voxel.Face(i), k, func(ours, theirs int) {
				c.grid[ours] = nb.grid[theirs]
				c.lightMap[ours] = nb.lightMap[theirs]
			})
		}
	}
}
