package voxel

// MaxPaddedVolume caps the number of voxels a single chunk grid may hold.
const MaxPaddedVolume = 1 << 24

// Dims describes a chunk's logical size and the margin of neighbour voxels
// stored around it. Margin is even and split in half on each side of an axis.
type Dims struct {
	X, Y, Z int
	Margin  int
}

// NewDims builds cubic or cuboid dims.
func NewDims(x, y, z, margin int) Dims {
	return Dims{X: x, Y: y, Z: z, Margin: margin}
}

// Half is the number of margin layers on each side.
func (d Dims) Half() int {
	return d.Margin / 2
}

// Padded returns the padded size along each axis.
func (d Dims) Padded() (px, py, pz int) {
	return d.X + d.Margin, d.Y + d.Margin, d.Z + d.Margin
}

// PaddedVolume is the number of bytes a grid for these dims holds.
func (d Dims) PaddedVolume() int {
	px, py, pz := d.Padded()
	return px * py * pz
}

// Footprint is the number of padded (x,z) columns.
func (d Dims) Footprint() int {
	px, _, pz := d.Padded()
	return px * pz
}

// StrideZ is the index distance between z and z+1.
func (d Dims) StrideZ() int {
	return d.X + d.Margin
}

// StrideY is the index distance between y and y+1.
func (d Dims) StrideY() int {
	return (d.X + d.Margin) * (d.Z + d.Margin)
}

// Index maps logical coordinates, which may reach into the margin
// ([-Half, size+Half) on each axis), to a grid index.
func (d Dims) Index(x, y, z int) int {
	h := d.Half()
	return (x + h) + (z+h)*d.StrideZ() + (y+h)*d.StrideY()
}

// Column maps logical (x,z), margin included, to a light mask index.
func (d Dims) Column(x, z int) int {
	h := d.Half()
	return (x + h) + (z+h)*d.StrideZ()
}

// Coords is the inverse of Index.
func (d Dims) Coords(i int) (x, y, z int) {
	h := d.Half()
	sz, sy := d.StrideZ(), d.StrideY()
	y = i / sy
	r := i - y*sy
	z = r / sz
	x = r - z*sz
	return x - h, y - h, z - h
}

// InPadded reports whether logical coordinates fall inside the padded volume.
func (d Dims) InPadded(x, y, z int) bool {
	h := d.Half()
	return x >= -h && x < d.X+h &&
		y >= -h && y < d.Y+h &&
		z >= -h && z < d.Z+h
}

// Offset returns the index delta of one step in the face's direction.
func (d Dims) Offset(f Face) int {
	dx, dy, dz := f.Normal()
	return dx + dz*d.StrideZ() + dy*d.StrideY()
}

// Valid reports whether the dims can back a chunk grid.
func (d Dims) Valid() bool {
	return d.X > 0 && d.Y > 0 && d.Z > 0 && d.Margin >= 2 && d.Margin%2 == 0
}
