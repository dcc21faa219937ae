// Package atlas prepares block textures for upload as a texture array.
package atlas

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// Layers is the number of texture layers, one per material ID.
const Layers = 16

// Array is tightly packed RGBA data for Layers square tiles.
type Array struct {
	Tile int
	Pix  []byte
}

// LayerSize is the byte size of one tile.
func (a *Array) LayerSize() int {
	return a.Tile * a.Tile * 4
}

// Layer returns the pixels of layer i.
func (a *Array) Layer(i int) []byte {
	n := a.LayerSize()
	return a.Pix[i*n : (i+1)*n]
}

// New scales each image into a tile of the array; layer i is material i.
// Missing or nil entries fall back to the palette colour.
func New(images []image.Image, tile int) (*Array, error) {
	if tile <= 0 {
		return nil, fmt.Errorf("atlas: tile size %d", tile)
	}
	if len(images) > Layers {
		return nil, fmt.Errorf("atlas: %d images for %d layers", len(images), Layers)
	}
	a := &Array{Tile: tile, Pix: make([]byte, Layers*tile*tile*4)}
	rect := image.Rect(0, 0, tile, tile)
	for i := 0; i < Layers; i++ {
		dst := &image.RGBA{Pix: a.Layer(i), Stride: tile * 4, Rect: rect}
		if i < len(images) && images[i] != nil {
			src := images[i]
			draw.NearestNeighbor.Scale(dst, rect, src, src.Bounds(), draw.Src, nil)
			continue
		}
		fillPalette(dst, i)
	}
	return a, nil
}

// Load decodes image files and builds the array from them.
func Load(paths []string, tile int) (*Array, error) {
	images := make([]image.Image, len(paths))
	for i, p := range paths {
		if p == "" {
			continue
		}
		img, err := decode(p)
		if err != nil {
			return nil, err
		}
		images[i] = img
	}
	return New(images, tile)
}

func decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// palette gives every material a flat colour when no texture is configured.
var palette = [Layers]color.RGBA{
	{134, 96, 67, 255},   // dirt
	{125, 125, 125, 255}, // stone
	{219, 207, 163, 255}, // sand
	{136, 126, 126, 255}, // gravel
	{240, 251, 251, 255}, // snow
	{50, 50, 50, 255},    // bedrock
	{102, 81, 50, 255},   // log
	{60, 120, 40, 255},   // leaves
	{160, 166, 179, 255}, // clay
	{200, 0, 200, 255},
	{200, 0, 200, 255},
	{200, 0, 200, 255},
	{200, 0, 200, 255},
	{200, 0, 200, 255},
	{47, 67, 244, 180}, // water
	{95, 159, 53, 255}, // grass top
}

func fillPalette(dst *image.RGBA, layer int) {
	base := palette[layer]
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			// Checker noise so flat colours still show voxel edges.
			c := base
			if (x+y)%2 == 0 {
				c.R = uint8(int(c.R) * 9 / 10)
				c.G = uint8(int(c.G) * 9 / 10)
				c.B = uint8(int(c.B) * 9 / 10)
			}
			dst.SetRGBA(x, y, c)
		}
	}
}
