package world

import (
	"mini-vox/internal/profiling"
	"mini-vox/internal/voxel"

	"github.com/gammazero/deque"
)

// flowFaces are the directions water may spread: everything but up.
var flowFaces = [...]voxel.Face{
	voxel.FaceRight, voxel.FaceLeft,
	voxel.FaceFront, voxel.FaceBack,
	voxel.FaceBottom,
}

// ComputeWater floods air reachable from water sideways and downward. Water on
// a neighbour's boundary layer is pulled into the margin and seeds the flood.
// Neighbours are only read during the call.
//
// A chunk is flooded once. Water reaching it from a neighbour generated later
// is not picked up.
func (c *Chunk) ComputeWater(n Neighbors) {
	if c.watered {
		return
	}
	defer profiling.Track("world.ComputeWater")()
	d := c.dims

	var q deque.Deque[int]
	for i, b := range c.grid {
		if b == voxel.Water {
			q.PushBack(i)
		}
	}
	for i, nb := range n {
		if nb == nil || nb.grid == nil {
			continue
		}
		forEachFaceCell(d, voxel.Face(i), 0, func(ours, theirs int) {
			if nb.grid[theirs] == voxel.Water && c.grid[ours] != voxel.Water {
				c.grid[ours] = voxel.Water
				q.PushBack(ours)
			}
		})
	}

	for q.Len() > 0 {
		i := q.PopFront()
		x, y, z := d.Coords(i)
		for _, f := range flowFaces {
			dx, dy, dz := f.Normal()
			if !d.InPadded(x+dx, y+dy, z+dz) {
				continue
			}
			j := i + d.Offset(f)
			if c.grid[j] != voxel.Air {
				continue
			}
			c.grid[j] = voxel.Water
			q.PushBack(j)
		}
	}
	c.watered = true
}
