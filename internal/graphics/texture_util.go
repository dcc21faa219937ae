package graphics

import (
	"mini-vox/internal/graphics/atlas"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// LoadBlockTextures builds the material texture array from image files, one
// per material ID. Empty or missing entries use palette colours.
func LoadBlockTextures(paths []string, tile int) (uint32, error) {
	a, err := atlas.Load(paths, tile)
	if err != nil {
		return 0, err
	}
	return UploadTextureArray(a), nil
}

// UploadTextureArray uploads prepared tiles as a 2D texture array.
func UploadTextureArray(a *atlas.Array) uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, texture)

	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.TexImage3D(
		gl.TEXTURE_2D_ARRAY,
		0,
		gl.RGBA8,
		int32(a.Tile),
		int32(a.Tile),
		atlas.Layers,
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(a.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D_ARRAY)

	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)
	return texture
}
