package world

import (
	"mini-vox/internal/profiling"
	"mini-vox/internal/voxel"

	"github.com/gammazero/deque"
)

// FullLight is the light level of a voxel open to the sky.
const FullLight = 15

// IsMaskZero reports whether no column of a light mask carries sky light.
func IsMaskZero(mask []byte) bool {
	for _, v := range mask {
		if v != 0 {
			return false
		}
	}
	return true
}

// ComputeLight casts sky light down every padded column. above is the light
// mask of the chunk on top, nil when nothing is above. A chunk whose above
// mask is all zero is flagged underground and skips the scan.
func (c *Chunk) ComputeLight(above []byte) {
	if c.lighted {
		return
	}
	defer profiling.Track("world.ComputeLight")()

	if above != nil && IsMaskZero(above) {
		c.underground = true
		c.lighted = true
		clear(c.lightMask)
		return
	}

	d := c.dims
	_, py, _ := d.Padded()
	sy := d.StrideY()
	bottom := d.Half() // padded row of logical y = 0

	for col := 0; col < d.Footprint(); col++ {
		mask := byte(FullLight)
		if above != nil {
			mask = above[col]
		}
		for y := py - 1; y >= 0; y-- {
			i := col + y*sy
			if voxel.IsOpaque(c.grid[i]) {
				mask = 0
			} else if mask == FullLight {
				c.lightMap[i] = FullLight
			}
			if y == bottom {
				c.lightMask[col] = mask
			}
		}
	}
	c.lighted = true
}

// PropagateLight spreads light sideways and down from lit voxels, losing one
// level per step through transparent voxels. It stays inside the padded grid.
func (c *Chunk) PropagateLight() {
	defer profiling.Track("world.PropagateLight")()
	d := c.dims

	var q deque.Deque[int]
	for i, l := range c.lightMap {
		if l > 1 && voxel.IsTransparent(c.grid[i]) {
			q.PushBack(i)
		}
	}

	for q.Len() > 0 {
		i := q.PopFront()
		next := c.lightMap[i] - 1
		x, y, z := d.Coords(i)
		for _, f := range voxel.Faces {
			dx, dy, dz := f.Normal()
			if !d.InPadded(x+dx, y+dy, z+dz) {
				continue
			}
			j := i + d.Offset(f)
			if voxel.IsOpaque(c.grid[j]) || c.lightMap[j] >= next {
				continue
			}
			c.lightMap[j] = next
			if next > 1 {
				q.PushBack(j)
			}
		}
	}
}
