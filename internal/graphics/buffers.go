package graphics

import (
	"fmt"
	"unsafe"

	"mini-vox/internal/meshing"
	"mini-vox/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Attribute layout of meshing.Vertex as the chunk shader reads it.
var (
	layoutVertex meshing.Vertex
	vertexStride = int32(unsafe.Sizeof(layoutVertex))

	offPosition = unsafe.Offsetof(layoutVertex.Position)
	offAO       = unsafe.Offsetof(layoutVertex.AO)
	offID       = unsafe.Offsetof(layoutVertex.ID)
	offFaces    = unsafe.Offsetof(layoutVertex.VisibleFaces)
	offLight    = unsafe.Offsetof(layoutVertex.Light)
)

// pointBuffer is one VAO/VBO pair holding vertex points.
type pointBuffer struct {
	vao, vbo uint32
	count    int32
}

func (b *pointBuffer) draw() {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.POINTS, 0, b.count)
}

func (b *pointBuffer) release() {
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	*b = pointBuffer{}
}

// ChunkBuffers holds the opaque and transparent point buffers of one chunk.
type ChunkBuffers struct {
	opaque      pointBuffer
	transparent pointBuffer
}

func (c *ChunkBuffers) DrawOpaque()      { c.opaque.draw() }
func (c *ChunkBuffers) DrawTransparent() { c.transparent.draw() }

func (c *ChunkBuffers) Release() {
	c.opaque.release()
	c.transparent.release()
}

// MeshUploader creates GPU buffers for chunk meshes. It must be used on the
// thread owning the GL context.
type MeshUploader struct{}

// Upload copies both vertex lists into static buffers.
func (MeshUploader) Upload(opaque, transparent []meshing.Vertex) (world.MeshBuffers, error) {
	cb := &ChunkBuffers{}
	if err := upload(&cb.opaque, opaque); err != nil {
		cb.Release()
		return nil, err
	}
	if err := upload(&cb.transparent, transparent); err != nil {
		cb.Release()
		return nil, err
	}
	return cb, nil
}

func upload(b *pointBuffer, verts []meshing.Vertex) error {
	if len(verts) == 0 {
		return nil
	}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*int(vertexStride), gl.Ptr(verts), gl.STATIC_DRAW)
	if e := gl.GetError(); e == gl.OUT_OF_MEMORY {
		gl.BindVertexArray(0)
		return fmt.Errorf("gl: %d vertices: %w", len(verts), world.ErrResourceExhausted)
	}

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, offPosition)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribIPointerWithOffset(1, 2, gl.UNSIGNED_INT, vertexStride, offAO)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribIPointerWithOffset(2, 1, gl.UNSIGNED_BYTE, vertexStride, offID)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribIPointerWithOffset(3, 1, gl.UNSIGNED_BYTE, vertexStride, offFaces)
	gl.EnableVertexAttribArray(4)
	gl.VertexAttribIPointerWithOffset(4, 1, gl.UNSIGNED_INT, vertexStride, offLight)

	gl.BindVertexArray(0)
	b.count = int32(len(verts))
	return nil
}
