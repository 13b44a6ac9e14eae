package opengl

import (
	"fmt"
	"image"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"lightlab/scene"
)

const (
	brushTextureSize = 256
	maxImageTexture  = 1024
)

// brushTexture returns the texture for b, rasterizing and uploading it on
// first use. Brushes are immutable once built, so textures are cached by
// identity.
func (r *Renderer) brushTexture(b scene.Brush) (uint32, error) {
	if tex, ok := r.textures[b]; ok {
		return tex, nil
	}
	w, h := brushTextureSize, brushTextureSize
	if ib, ok := b.(*scene.ImageBrush); ok && ib.Image != nil {
		bounds := ib.Image.Bounds()
		w, h = min(bounds.Dx(), maxImageTexture), min(bounds.Dy(), maxImageTexture)
	}
	tex, err := uploadTexture(scene.Rasterize(b, w, h))
	if err != nil {
		return 0, err
	}
	r.textures[b] = tex
	return tex, nil
}

// uploadTexture uploads img as an RGBA texture with mipmaps. Row 0 of the
// image lands at t = 0, matching the brush v coordinate.
// Call this from the main goroutine (OpenGL context must be current).
func uploadTexture(img *image.NRGBA) (uint32, error) {
	if img == nil || len(img.Pix) == 0 {
		return 0, fmt.Errorf("texture has no pixel data")
	}
	b := img.Bounds()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(b.Dx()),
		int32(b.Dy()),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(img.Pix),
	)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id, nil
}

// deleteTexture frees a previously uploaded GPU texture.
func deleteTexture(id uint32) {
	if id == 0 {
		return
	}
	gl.DeleteTextures(1, &id)
}
