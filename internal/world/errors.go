package world

import "errors"

var (
	// ErrDataSizeMismatch is returned when a texture does not cover the padded chunk volume.
	ErrDataSizeMismatch = errors.New("world: texture size does not match chunk dims")

	// ErrResourceExhausted is returned when a chunk would exceed the voxel cap
	// or the GPU refuses a buffer.
	ErrResourceExhausted = errors.New("world: resource exhausted")
)
