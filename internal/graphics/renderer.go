package graphics

import (
	"mini-vox/internal/camera"
	"mini-vox/internal/profiling"
	"mini-vox/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Sun is the directional light applied on top of the per-face sky light.
type Sun struct {
	Direction mgl32.Vec3 // towards the sun
	Ambient   mgl32.Vec3
	Color     mgl32.Vec3
}

// DefaultSun is a warm, high afternoon sun.
func DefaultSun() Sun {
	return Sun{
		Direction: mgl32.Vec3{30, 30, 18},
		Ambient:   mgl32.Vec3{0.77, 0.88, 1.0}.Mul(0.075),
		Color:     mgl32.Vec3{1.0, 0.964, 0.77},
	}
}

// ChunkRenderer draws chunk meshes with the point-expanding chunk shader.
type ChunkRenderer struct {
	shader   *Shader
	textures uint32
	sun      Sun
}

// NewChunkRenderer compiles the chunk shader and loads the material textures.
func NewChunkRenderer(texturePaths []string, tile int) (*ChunkRenderer, error) {
	shader, err := NewChunkShader()
	if err != nil {
		return nil, err
	}
	tex, err := LoadBlockTextures(texturePaths, tile)
	if err != nil {
		shader.Delete()
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return &ChunkRenderer{shader: shader, textures: tex, sun: DefaultSun()}, nil
}

// SetSun replaces the directional light. A zero direction is ignored.
func (r *ChunkRenderer) SetSun(s Sun) {
	if s.Direction.Len() == 0 {
		return
	}
	r.sun = s
}

// Render draws opaque geometry first, then water back to front.
// chunks must already be sorted back to front. underwater tints the frame.
func (r *ChunkRenderer) Render(cam *camera.Camera, chunks []*world.Chunk, underwater bool) {
	defer profiling.Track("graphics.Render")()
	if underwater {
		gl.ClearColor(0.08, 0.22, 0.45, 1.0)
	} else {
		gl.ClearColor(0.53, 0.81, 0.92, 1.0)
	}
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.shader.Use()
	r.shader.SetMatrix4("uViewProj", cam.ViewProjectionMatrix())
	r.shader.SetInt("uTextures", 0)
	r.shader.SetVec3("uSunDir", r.sun.Direction)
	r.shader.SetVec3("uAmbient", r.sun.Ambient)
	r.shader.SetVec3("uSunColor", r.sun.Color)
	var uw int32
	if underwater {
		uw = 1
	}
	r.shader.SetInt("uUnderwater", uw)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, r.textures)

	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	for i := len(chunks) - 1; i >= 0; i-- {
		c := chunks[i]
		if b := c.Buffers(); b != nil {
			r.shader.SetVec3("uChunkOrigin", c.Position)
			b.DrawOpaque()
		}
	}

	gl.Enable(gl.BLEND)
	gl.DepthMask(false)
	for _, c := range chunks {
		if b := c.Buffers(); b != nil {
			r.shader.SetVec3("uChunkOrigin", c.Position)
			b.DrawTransparent()
		}
	}
	gl.DepthMask(true)
	gl.BindVertexArray(0)
}

// Close frees the shader and textures.
func (r *ChunkRenderer) Close() {
	r.shader.Delete()
	gl.DeleteTextures(1, &r.textures)
}
