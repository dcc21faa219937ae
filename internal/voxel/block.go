package voxel

// Block is the raw value stored per voxel in a chunk grid.
type Block = byte

const (
	Air     Block = 0
	Dirt    Block = 1
	Stone   Block = 2
	Sand    Block = 3
	Gravel  Block = 4
	Snow    Block = 5
	Bedrock Block = 6
	Log     Block = 7
	Leaves  Block = 8
	Clay    Block = 9

	// MaxSolid is the highest value a solid material may use.
	MaxSolid Block = 14

	// Water marks both water sources and flooded voxels.
	Water Block = 15
)

// Material IDs emitted in mesh vertices. A material is the block value minus one,
// except for the grass-top variant which no block value maps to.
const (
	MaterialDirt     uint8 = Dirt - 1
	MaterialWater    uint8 = Water - 1
	MaterialGrassTop uint8 = 15
)

// IsTransparent reports whether light and faces pass through the block.
func IsTransparent(b Block) bool {
	return b == Air || b == Water
}

// IsOpaque is the complement of IsTransparent.
func IsOpaque(b Block) bool {
	return b != Air && b != Water
}

// Material converts a solid block value into its material ID.
func Material(b Block) uint8 {
	return b - 1
}
